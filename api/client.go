package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Klaijan/rootin/model"
)

const defaultTimeout = 15 * time.Second

// Client is the typed gateway to the skincare backend. One method per
// backend capability; every method returns either a decoded payload or a
// classified error (ErrUnreachable, *StatusError, ErrMalformedResponse).
// The client performs no caching and no automatic retries; callers decide.
type Client struct {
	baseURL   string // api root, e.g. http://127.0.0.1:8000/api
	healthURL string // sibling root path for the connectivity probe
	http      *http.Client
	limiter   *rate.Limiter
}

// New creates a client for the given api base URL. healthURL may be empty,
// in which case the probe goes to the base URL's origin.
func New(baseURL, healthURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := strings.TrimRight(baseURL, "/")
	if healthURL == "" {
		healthURL = originOf(base) + "/health"
	}
	return &Client{
		baseURL:   base,
		healthURL: healthURL,
		http:      &http.Client{Timeout: timeout},
		// Interactive use never needs more than a handful of requests per
		// second; the burst covers the startup fan-out.
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

func originOf(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" {
		return base
	}
	return u.Scheme + "://" + u.Host
}

// Health probes backend connectivity. Any 2xx counts as connected.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return decodeStatusError(resp.StatusCode, body)
	}
	return nil
}

// Products fetches the product catalog.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StepNames fetches the step-number to display-name mapping.
func (c *Client) StepNames(ctx context.Context) (model.StepNameMap, error) {
	var out model.StepNameMap
	if err := c.doJSON(ctx, http.MethodGet, "/config/step-names", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Treatments fetches the available cosmetic treatments.
func (c *Client) Treatments(ctx context.Context) ([]model.Treatment, error) {
	var out []model.Treatment
	if err := c.doJSON(ctx, http.MethodGet, "/treatments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRoutines fetches saved routine summaries.
func (c *Client) ListRoutines(ctx context.Context) ([]model.SavedRoutine, error) {
	var resp struct {
		Routines []model.SavedRoutine `json:"routines"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/routines", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Routines, nil
}

// GetRoutine fetches one saved routine with resolved items.
func (c *Client) GetRoutine(ctx context.Context, id string) (*model.SavedRoutine, error) {
	var out model.SavedRoutine
	if err := c.doJSON(ctx, http.MethodGet, "/routines/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRoutine persists a routine and returns the server's resolved copy.
func (c *Client) CreateRoutine(ctx context.Context, req model.CreateRoutineRequest) (*model.SavedRoutine, error) {
	var out model.SavedRoutine
	if err := c.doJSON(ctx, http.MethodPost, "/routines", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRoutine removes a saved routine.
func (c *Client) DeleteRoutine(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/routines/"+url.PathEscape(id), nil, nil)
}

// AnalyzeInteractions runs ad-hoc interaction detection on an unsaved
// routine payload.
func (c *Client) AnalyzeInteractions(ctx context.Context, req model.AnalysisRequest) ([]model.Interaction, error) {
	var out []model.Interaction
	if err := c.doJSON(ctx, http.MethodPost, "/analyze/interactions", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyzeScore runs ad-hoc multi-category scoring.
func (c *Client) AnalyzeScore(ctx context.Context, req model.AnalysisRequest) (*model.ScoreResult, error) {
	var out model.ScoreResult
	if err := c.doJSON(ctx, http.MethodPost, "/analyze/score", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzePostTreatment runs ad-hoc post-treatment safety screening.
func (c *Client) AnalyzePostTreatment(ctx context.Context, req model.AnalysisRequest, treatmentID int) (*model.TreatmentResult, error) {
	var out model.TreatmentResult
	path := fmt.Sprintf("/analyze/post-treatment?treatment_id=%d", treatmentID)
	if err := c.doJSON(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RoutineInteractions runs interaction detection on a saved routine.
func (c *Client) RoutineInteractions(ctx context.Context, id string) ([]model.Interaction, error) {
	var out []model.Interaction
	path := "/routines/" + url.PathEscape(id) + "/analyze/interactions"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RoutineScore runs scoring on a saved routine.
func (c *Client) RoutineScore(ctx context.Context, id string) (*model.ScoreResult, error) {
	var out model.ScoreResult
	path := "/routines/" + url.PathEscape(id) + "/analyze/score"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RoutineTreatment runs post-treatment screening on a saved routine.
func (c *Client) RoutineTreatment(ctx context.Context, id string, treatmentID int) (*model.TreatmentResult, error) {
	var out model.TreatmentResult
	path := fmt.Sprintf("/routines/%s/analyze/post-treatment/%d", url.PathEscape(id), treatmentID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeStatusError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v (%s)", ErrMalformedResponse, err, snippet(raw))
	}
	return nil
}

// snippet trims a raw body for inclusion in error messages.
func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 120 {
		return s[:117] + "..."
	}
	return s
}
