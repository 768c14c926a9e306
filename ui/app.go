package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Klaijan/rootin/analysis"
	"github.com/Klaijan/rootin/api"
	"github.com/Klaijan/rootin/catalog"
	"github.com/Klaijan/rootin/model"
	"github.com/Klaijan/rootin/routine"
)

// Tab identifies the active screen.
type Tab int

const (
	TabProducts Tab = iota
	TabRoutines
	TabAnalyze
	TabTreatments
	tabCount
)

var tabNames = []string{"Products", "Routines", "Analyze", "Treatments"}

// draftAnalysisName is the routine name sent with ad-hoc draft analysis.
const draftAnalysisName = "My Routine"

type catalogMsg struct{ err error }

type libraryMsg struct{ err error }

type healthMsg struct{ err error }

type savedMsg struct {
	routine *model.SavedRoutine
	err     error
}

type deletedMsg struct {
	id  string
	err error
}

type detailMsg struct {
	routine *model.SavedRoutine
	groups  []routine.StepGroup
	err     error
}

type analysisMsg struct {
	ticket analysis.Ticket
	result *analysis.Result
	err    error
}

// Model is the bubbletea model.
type Model struct {
	client  *api.Client
	catalog *catalog.Cache
	draft   *routine.Draft
	library *routine.Library
	orch    *analysis.Orchestrator

	timeOfDay string
	userID    string

	width  int
	height int

	tab         Tab
	showHelp    bool
	builderOpen bool

	nameInput         textinput.Model
	ingredientInput   textinput.Model
	typingName        bool
	typingIngredients bool

	spin spinner.Model

	online     bool
	loadingCat bool
	loadingLib bool

	productCursor int
	draftCursor   int
	routineCursor int
	treatCursor   int

	// selectedTreatment is the treatment id for post-treatment analysis;
	// 0 means none picked yet.
	selectedTreatment int

	confirmDeleteID string

	detail       *model.SavedRoutine
	detailGroups []routine.StepGroup
	detailErr    string
	loadingView  bool

	// analyzeSaved switches the analysis source between the draft and the
	// routine selected on the Routines tab.
	analyzeSaved bool

	loading         map[analysis.Kind]bool
	panelErr        map[analysis.Kind]string
	interactions    []analysis.InteractionGroup
	hasInteractions bool
	score           *model.ScoreResult
	treatment       *model.TreatmentResult

	status     string
	statusTime time.Time
}

// NewModel creates the TUI model over an application session.
func NewModel(client *api.Client, cache *catalog.Cache, draft *routine.Draft,
	lib *routine.Library, orch *analysis.Orchestrator, timeOfDay, userID string) Model {

	name := textinput.New()
	name.Placeholder = "routine name"
	name.CharLimit = 60
	name.Width = 32

	ingredients := textinput.New()
	ingredients.Placeholder = "e.g. Niacinamide, Zinc PCA"
	ingredients.CharLimit = 120
	ingredients.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorRose)

	return Model{
		client:          client,
		catalog:         cache,
		draft:           draft,
		library:         lib,
		orch:            orch,
		timeOfDay:       timeOfDay,
		userID:          userID,
		nameInput:       name,
		ingredientInput: ingredients,
		spin:            sp,
		loadingCat:      true,
		loadingLib:      true,
		loading:         make(map[analysis.Kind]bool),
		panelErr:        make(map[analysis.Kind]string),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadCatalog(m.catalog, m.client),
		loadLibrary(m.library),
		checkHealth(m.client),
		m.spin.Tick,
	)
}

func loadCatalog(cache *catalog.Cache, gw catalog.Gateway) tea.Cmd {
	return func() tea.Msg {
		return catalogMsg{err: cache.Load(context.Background(), gw)}
	}
}

func loadLibrary(lib *routine.Library) tea.Cmd {
	return func() tea.Msg {
		return libraryMsg{err: lib.Load(context.Background())}
	}
}

func checkHealth(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		return healthMsg{err: client.Health(context.Background())}
	}
}

func saveDraft(lib *routine.Library, name string, ids []int, timeOfDay, userID string) tea.Cmd {
	return func() tea.Msg {
		rt, err := lib.Save(context.Background(), name, "", ids, timeOfDay, userID)
		return savedMsg{routine: rt, err: err}
	}
}

func deleteRoutine(lib *routine.Library, id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: lib.Delete(context.Background(), id)}
	}
}

func viewRoutine(lib *routine.Library, stepName routine.StepNameFunc, id string) tea.Cmd {
	return func() tea.Msg {
		rt, err := lib.Get(context.Background(), id)
		if err != nil {
			return detailMsg{err: err}
		}
		groups, err := routine.GroupSteps(rt.Items, stepName)
		if err != nil {
			return detailMsg{routine: rt, err: err}
		}
		return detailMsg{routine: rt, groups: groups}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case catalogMsg:
		m.loadingCat = false
		if msg.err != nil {
			m.setStatus("catalog: " + errLine(msg.err) + " (using built-in fallback)")
		}
	case libraryMsg:
		m.loadingLib = false
		if msg.err != nil {
			m.setStatus("routines: " + errLine(msg.err))
		}
	case healthMsg:
		m.online = msg.err == nil
	case savedMsg:
		if msg.err != nil {
			m.setStatus("save failed: " + errLine(msg.err))
			return m, nil
		}
		m.builderOpen = false
		m.typingName = false
		m.nameInput.Blur()
		m.nameInput.SetValue("")
		m.clearDraftAndResults()
		m.setStatus(fmt.Sprintf("saved %q", msg.routine.Name))
	case deletedMsg:
		if msg.err != nil {
			m.setStatus("delete failed: " + errLine(msg.err))
			return m, nil
		}
		if m.routineCursor >= m.library.Len() && m.routineCursor > 0 {
			m.routineCursor--
		}
		if m.detail != nil && m.detail.RoutineID == msg.id {
			m.detail = nil
			m.detailGroups = nil
		}
		m.setStatus("routine deleted")
	case detailMsg:
		m.loadingView = false
		if msg.err != nil {
			m.detail = msg.routine
			m.detailGroups = nil
			m.detailErr = errLine(msg.err)
			return m, nil
		}
		m.detail = msg.routine
		m.detailGroups = msg.groups
		m.detailErr = ""
	case analysisMsg:
		// A newer dispatch for the same source and kind owns the panel now.
		if !m.orch.Current(msg.ticket) {
			return m, nil
		}
		m.loading[msg.ticket.Kind] = false
		if msg.err != nil {
			m.panelErr[msg.ticket.Kind] = errLine(msg.err)
			return m, nil
		}
		m.panelErr[msg.ticket.Kind] = ""
		switch msg.ticket.Kind {
		case analysis.KindInteractions:
			m.interactions = analysis.GroupInteractions(msg.result.Interactions)
			m.hasInteractions = true
		case analysis.KindScore:
			m.score = msg.result.Score
		case analysis.KindTreatment:
			m.treatment = msg.result.Treatment
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Delete confirmation captures the next key.
	if m.confirmDeleteID != "" {
		id := m.confirmDeleteID
		m.confirmDeleteID = ""
		if msg.String() == "y" {
			return m, deleteRoutine(m.library, id)
		}
		m.setStatus("delete cancelled")
		return m, nil
	}

	if m.typingName {
		switch msg.String() {
		case "esc":
			// Cancel keeps the draft; only a successful save clears it.
			m.builderOpen = false
			m.typingName = false
			m.nameInput.Blur()
			return m, nil
		case "enter":
			return m, saveDraft(m.library, m.nameInput.Value(), m.draft.ProductIDs(), m.timeOfDay, m.userID)
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	if m.typingIngredients {
		switch msg.String() {
		case "esc":
			m.typingIngredients = false
			m.ingredientInput.Blur()
			m.ingredientInput.SetValue("")
			return m, nil
		case "enter":
			if err := m.draft.AddCustomIngredients(m.ingredientInput.Value()); err != nil {
				m.setStatus(errLine(err))
				return m, nil
			}
			m.typingIngredients = false
			m.ingredientInput.Blur()
			m.ingredientInput.SetValue("")
			m.setStatus("custom ingredients added")
			return m, nil
		}
		var cmd tea.Cmd
		m.ingredientInput, cmd = m.ingredientInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "esc":
		if m.builderOpen {
			m.builderOpen = false
			return m, nil
		}
		if m.detail != nil {
			m.detail = nil
			m.detailGroups = nil
			m.detailErr = ""
		}
	case "1":
		m.tab = TabProducts
	case "2":
		m.tab = TabRoutines
	case "3":
		m.tab = TabAnalyze
	case "4":
		m.tab = TabTreatments
	case "tab":
		m.tab = (m.tab + 1) % tabCount
	case "shift+tab":
		m.tab = (m.tab - 1 + tabCount) % tabCount
	case "r":
		m.loadingCat = true
		m.loadingLib = true
		return m, tea.Batch(
			loadCatalog(m.catalog, m.client),
			loadLibrary(m.library),
			checkHealth(m.client),
		)
	case "b":
		if m.draft.Len() == 0 {
			m.setStatus("add products or ingredients before saving")
			return m, nil
		}
		m.builderOpen = true
		m.typingName = true
		return m, m.nameInput.Focus()
	case "C":
		m.clearDraftAndResults()
		m.setStatus("draft cleared")
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "J":
		if m.tab == TabProducts && m.draftCursor < m.draft.Len()-1 {
			m.draftCursor++
		}
	case "K":
		if m.tab == TabProducts && m.draftCursor > 0 {
			m.draftCursor--
		}
	case "x":
		switch m.tab {
		case TabProducts:
			if m.draft.Len() > 0 {
				m.draft.RemoveAt(m.draftCursor)
				if m.draftCursor >= m.draft.Len() && m.draftCursor > 0 {
					m.draftCursor--
				}
			}
		case TabRoutines:
			if rt, ok := m.selectedRoutine(); ok {
				m.confirmDeleteID = rt.RoutineID
			}
		}
	case "i":
		if m.tab == TabProducts {
			m.typingIngredients = true
			return m, m.ingredientInput.Focus()
		}
		if m.tab == TabAnalyze {
			return m, m.dispatch(analysis.KindInteractions)
		}
	case "s":
		if m.tab == TabAnalyze {
			return m, m.dispatch(analysis.KindScore)
		}
	case "t":
		if m.tab == TabAnalyze {
			return m, m.dispatch(analysis.KindTreatment)
		}
	case "a":
		if m.tab == TabAnalyze {
			cmds := []tea.Cmd{
				m.dispatch(analysis.KindInteractions),
				m.dispatch(analysis.KindScore),
			}
			if m.selectedTreatment > 0 {
				cmds = append(cmds, m.dispatch(analysis.KindTreatment))
			}
			return m, tea.Batch(cmds...)
		}
	case "m":
		if m.tab == TabAnalyze {
			m.analyzeSaved = !m.analyzeSaved
		}
	case "enter":
		switch m.tab {
		case TabProducts:
			products := m.catalog.Products()
			if m.productCursor < len(products) {
				if err := m.draft.AddProduct(m.catalog, products[m.productCursor].ProductID); err != nil {
					m.setStatus(errLine(err))
				}
			}
		case TabRoutines:
			if rt, ok := m.selectedRoutine(); ok {
				m.loadingView = true
				m.detailErr = ""
				return m, viewRoutine(m.library, m.catalog.StepName, rt.RoutineID)
			}
		case TabTreatments:
			treatments := m.catalog.Treatments()
			if m.treatCursor < len(treatments) {
				t := treatments[m.treatCursor]
				m.selectedTreatment = t.TreatmentID
				m.setStatus("treatment selected: " + t.Label())
			}
		}
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	clamp := func(cur, n int) int {
		cur += delta
		if cur < 0 {
			cur = 0
		}
		if cur > n-1 {
			cur = n - 1
		}
		if cur < 0 {
			cur = 0
		}
		return cur
	}
	switch m.tab {
	case TabProducts:
		m.productCursor = clamp(m.productCursor, len(m.catalog.Products()))
	case TabRoutines:
		m.routineCursor = clamp(m.routineCursor, m.library.Len())
	case TabTreatments:
		m.treatCursor = clamp(m.treatCursor, len(m.catalog.Treatments()))
	}
}

func (m Model) selectedRoutine() (model.SavedRoutine, bool) {
	routines := m.library.Routines()
	if m.routineCursor < 0 || m.routineCursor >= len(routines) {
		return model.SavedRoutine{}, false
	}
	return routines[m.routineCursor], true
}

func (m *Model) analysisSource() analysis.Source {
	if m.analyzeSaved {
		if rt, ok := m.selectedRoutine(); ok {
			return analysis.SavedSource(rt.RoutineID)
		}
		return analysis.Source{}
	}
	return analysis.DraftSource(m.draft.AnalysisRequest(draftAnalysisName, m.timeOfDay))
}

func (m *Model) dispatch(kind analysis.Kind) tea.Cmd {
	ticket, err := m.orch.Dispatch(kind, m.analysisSource(), m.selectedTreatment)
	if err != nil {
		m.setStatus(errLine(err))
		return nil
	}
	m.loading[kind] = true
	m.panelErr[kind] = ""
	orch := m.orch
	return func() tea.Msg {
		res, err := orch.Execute(context.Background(), ticket)
		return analysisMsg{ticket: ticket, result: res, err: err}
	}
}

// clearDraftAndResults empties the draft and every analysis panel: stale
// results for a cleared routine would be misleading.
func (m *Model) clearDraftAndResults() {
	m.draft.Clear()
	m.draftCursor = 0
	m.interactions = nil
	m.hasInteractions = false
	m.score = nil
	m.treatment = nil
	for k := range m.loading {
		delete(m.loading, k)
	}
	for k := range m.panelErr {
		delete(m.panelErr, k)
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTime = time.Now()
}

func errLine(err error) string {
	var se *api.StatusError
	switch {
	case errors.Is(err, api.ErrUnreachable):
		return "backend unreachable"
	case errors.As(err, &se):
		return se.Error()
	}
	return err.Error()
}

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.tab {
	case TabProducts:
		content = renderProductsPage(
			m.catalog, m.draft, m.productCursor, m.draftCursor,
			m.typingIngredients, m.ingredientInput.View(), m.width)
	case TabRoutines:
		content = renderRoutinesPage(
			m.library.Routines(), m.routineCursor,
			m.detail, m.detailGroups, m.detailErr,
			m.loadingView, m.spin.View(), m.confirmDeleteID, m.width)
	case TabAnalyze:
		content = renderAnalyzePage(analyzeView{
			savedMode:       m.analyzeSaved,
			savedName:       m.analyzeSourceName(),
			draftCount:      m.draft.Len(),
			treatmentLabel:  m.selectedTreatmentLabel(),
			loading:         m.loading,
			panelErr:        m.panelErr,
			interactions:    m.interactions,
			hasInteractions: m.hasInteractions,
			score:           m.score,
			treatment:       m.treatment,
			spinner:         m.spin.View(),
		}, m.width)
	case TabTreatments:
		content = renderTreatmentsPage(m.catalog.Treatments(), m.treatCursor, m.selectedTreatment, m.width)
	}

	if m.builderOpen {
		content += "\n" + renderBuilder(m.draft, m.nameInput.View(), m.width)
	}

	// Trim to viewport height, leaving room for the status bar.
	lines := strings.Split(content, "\n")
	maxLines := m.height - 2
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	content = strings.Join(lines, "\n")

	return content + "\n" + m.renderStatusBar()
}

func (m Model) analyzeSourceName() string {
	if rt, ok := m.selectedRoutine(); ok {
		return rt.Name
	}
	return ""
}

func (m Model) selectedTreatmentLabel() string {
	for _, t := range m.catalog.Treatments() {
		if t.TreatmentID == m.selectedTreatment {
			return t.Label()
		}
	}
	return ""
}

func (m Model) renderStatusBar() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d:%s", i+1, name)
		if Tab(i) == m.tab {
			tabs = append(tabs, headerStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, dimStyle.Render(" "+label+" "))
		}
	}
	left := strings.Join(tabs, "")

	var indicators string
	if m.loadingCat || m.loadingLib {
		indicators += "  " + m.spin.View() + dimStyle.Render("loading")
	}
	if !m.online {
		indicators += "  " + critStyle.Render("[offline]")
	}
	if m.catalog.Degraded() {
		indicators += "  " + warnStyle.Render("[fallback catalog]")
	}
	if n := m.draft.Len(); n > 0 {
		indicators += "  " + okStyle.Render(fmt.Sprintf("[draft: %d]", n))
	}
	if m.status != "" && time.Since(m.statusTime) < 5*time.Second {
		indicators += "  " + valueStyle.Render(m.status)
	}

	help := helpStyle.Render("tab:switch  b:save  C:clear  r:reload  ?:help  q:quit")

	leftFull := left + indicators
	leftW := lipgloss.Width(leftFull)
	helpW := lipgloss.Width(help)
	if leftW+helpW+1 <= m.width {
		return leftFull + strings.Repeat(" ", m.width-leftW-helpW) + help
	}
	if leftW <= m.width {
		return leftFull
	}
	return left
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("rootin — skincare routine assistant"))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("Navigation"))
	sb.WriteString("\n")
	sb.WriteString("  1-4        Switch tab (Products, Routines, Analyze, Treatments)\n")
	sb.WriteString("  tab        Next tab\n")
	sb.WriteString("  j/k        Move selection\n")
	sb.WriteString("  Esc        Close builder / routine detail\n")
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Building a routine"))
	sb.WriteString("\n")
	sb.WriteString("  Enter      Add selected product to the draft (Products tab)\n")
	sb.WriteString("  i          Enter custom ingredients, comma separated\n")
	sb.WriteString("  J/K        Move selection inside the draft\n")
	sb.WriteString("  x          Remove selected draft entry\n")
	sb.WriteString("  b          Save draft as a routine (opens name prompt)\n")
	sb.WriteString("  C          Clear draft and analysis results\n")
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Saved routines"))
	sb.WriteString("\n")
	sb.WriteString("  Enter      View routine grouped by steps\n")
	sb.WriteString("  x          Delete selected routine (y to confirm)\n")
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Analysis"))
	sb.WriteString("\n")
	sb.WriteString("  m          Toggle source: current draft / selected routine\n")
	sb.WriteString("  i          Ingredient interactions\n")
	sb.WriteString("  s          Routine score\n")
	sb.WriteString("  t          Post-treatment safety (pick a treatment first)\n")
	sb.WriteString("  a          Run all\n")
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Press any key to close"))
	return sb.String()
}
