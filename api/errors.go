package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnreachable wraps transport-level failures (connection refused,
	// DNS, timeout). The backend never saw the request, or its answer never
	// arrived.
	ErrUnreachable = errors.New("backend unreachable")

	// ErrMalformedResponse wraps 2xx responses whose body could not be
	// decoded into the expected payload.
	ErrMalformedResponse = errors.New("malformed response")
)

// FieldError is one entry of a FastAPI-style 422 validation detail list.
type FieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// String renders the error as "body.name: field required".
func (fe FieldError) String() string {
	parts := make([]string, 0, len(fe.Loc))
	for _, l := range fe.Loc {
		parts = append(parts, fmt.Sprint(l))
	}
	return strings.Join(parts, ".") + ": " + fe.Msg
}

// StatusError is a non-2xx response, carrying the decoded detail when the
// body was structured and the raw body otherwise.
type StatusError struct {
	StatusCode int
	Message    string
	Fields     []FieldError
	Body       string
}

func (e *StatusError) Error() string {
	if len(e.Fields) > 0 {
		msgs := make([]string, len(e.Fields))
		for i, fe := range e.Fields {
			msgs[i] = fe.String()
		}
		return fmt.Sprintf("validation rejected (%d): %s", e.StatusCode, strings.Join(msgs, "; "))
	}
	if e.Message != "" {
		return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (%d)", e.StatusCode)
}

// AsStatusError returns err as a *StatusError, or nil.
func AsStatusError(err error) *StatusError {
	var se *StatusError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	se := AsStatusError(err)
	return se != nil && se.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is a 422 response with field details.
func IsValidation(err error) bool {
	se := AsStatusError(err)
	return se != nil && se.StatusCode == http.StatusUnprocessableEntity
}

// decodeStatusError classifies a non-2xx body. FastAPI puts either a plain
// string or a validation list under "detail".
func decodeStatusError(statusCode int, body []byte) *StatusError {
	se := &StatusError{StatusCode: statusCode, Body: string(body)}

	var structured struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &structured); err != nil || structured.Detail == nil {
		se.Message = strings.TrimSpace(string(body))
		return se
	}

	var fields []FieldError
	if err := json.Unmarshal(structured.Detail, &fields); err == nil && len(fields) > 0 {
		se.Fields = fields
		return se
	}

	var msg string
	if err := json.Unmarshal(structured.Detail, &msg); err == nil {
		se.Message = msg
		return se
	}
	se.Message = strings.TrimSpace(string(structured.Detail))
	return se
}
