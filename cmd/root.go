package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Klaijan/rootin/analysis"
	"github.com/Klaijan/rootin/api"
	"github.com/Klaijan/rootin/catalog"
	"github.com/Klaijan/rootin/config"
	"github.com/Klaijan/rootin/routine"
	"github.com/Klaijan/rootin/ui"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

func printUsage() {
	fmt.Fprintf(os.Stderr, `rootin v%s — Terminal client for the skincare-routine analysis service

Usage:
  rootin [OPTIONS]

Modes:
  (default)         Interactive TUI (bubbletea, fullscreen)
  -report ID        Markdown analysis report for a saved routine, then exit
  -routines         List saved routines to stdout, then exit
  -json             Dump catalog and saved routines as JSON, then exit
  -version          Print version and exit

Options:
  -api URL          Backend API base URL (default: http://127.0.0.1:8000/api,
                    or api.base_url from the config file / ROOTIN_API_BASE_URL)
  -treatment N      Treatment id for the post-treatment section of -report

Examples:
  rootin                                 Interactive TUI
  rootin -routines                       List saved routines
  rootin -report 68a1f2 > report.md      Full analysis report
  rootin -report 68a1f2 -treatment 2     Include chemical-peel screening
  rootin -api http://10.0.0.2:8000/api
`, Version)
}

// session is the application state shared by the TUI and the CLI modes:
// gateway, catalog, draft, library, and the analysis orchestrator.
type session struct {
	client  *api.Client
	catalog *catalog.Cache
	draft   *routine.Draft
	library *routine.Library
	orch    *analysis.Orchestrator
	cfg     *config.Config
}

func newSession(apiOverride string) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	base := cfg.API.BaseURL
	if apiOverride != "" {
		base = apiOverride
	}
	client := api.New(base, cfg.API.HealthURL, time.Duration(cfg.API.TimeoutSec)*time.Second)
	return &session{
		client:  client,
		catalog: catalog.New(),
		draft:   routine.NewDraft(),
		library: routine.NewLibrary(client),
		orch:    analysis.New(client),
		cfg:     cfg,
	}, nil
}

// Run parses flags and starts the application.
func Run() error {
	var (
		apiURL      string
		reportID    string
		treatmentID int
		listMode    bool
		jsonMode    bool
		showVersion bool
	)

	flag.StringVar(&apiURL, "api", "", "Backend API base URL")
	flag.StringVar(&reportID, "report", "", "Print a markdown analysis report for a saved routine id")
	flag.IntVar(&treatmentID, "treatment", 0, "Treatment id for the -report post-treatment section")
	flag.BoolVar(&listMode, "routines", false, "List saved routines and exit")
	flag.BoolVar(&jsonMode, "json", false, "Dump catalog and saved routines as JSON and exit")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("rootin v%s\n", Version)
		return nil
	}

	sess, err := newSession(apiURL)
	if err != nil {
		return err
	}

	if reportID != "" {
		return runReport(sess, reportID, treatmentID)
	}
	if listMode {
		return runList(sess)
	}
	if jsonMode {
		return runJSON(sess)
	}

	model := ui.NewModel(sess.client, sess.catalog, sess.draft, sess.library, sess.orch,
		sess.cfg.Defaults.TimeOfDay, sess.cfg.Defaults.UserID)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// runList prints the saved-routine summaries.
func runList(sess *session) error {
	ctx := context.Background()
	if err := sess.library.Load(ctx); err != nil {
		return fmt.Errorf("list routines: %w", err)
	}
	routines := sess.library.Routines()
	if len(routines) == 0 {
		fmt.Println("no saved routines")
		return nil
	}
	for _, rt := range routines {
		line := fmt.Sprintf("%s  %s", rt.RoutineID, rt.Name)
		if rt.TimeOfDay != "" {
			line += "  (" + rt.TimeOfDay + ")"
		}
		fmt.Println(line)
	}
	return nil
}

// runJSON dumps the catalog and the saved routines as one JSON document.
func runJSON(sess *session) error {
	ctx := context.Background()
	catErr := sess.catalog.Load(ctx, sess.client)
	libErr := sess.library.Load(ctx)

	data := map[string]any{
		"fetched_at": time.Now().Format(time.RFC3339),
		"products":   sess.catalog.Products(),
		"treatments": sess.catalog.Treatments(),
		"routines":   sess.library.Routines(),
		"degraded":   sess.catalog.Degraded(),
	}
	if catErr != nil {
		data["catalog_error"] = catErr.Error()
	}
	if libErr != nil {
		data["routines_error"] = libErr.Error()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
