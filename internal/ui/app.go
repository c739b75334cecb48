package ui

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/8AVIANVS/paperscope/internal/api"
	"github.com/8AVIANVS/paperscope/internal/logging"
	"github.com/8AVIANVS/paperscope/internal/query"
	"github.com/8AVIANVS/paperscope/internal/store"
	"github.com/8AVIANVS/paperscope/internal/task"
)

// viewMode is the active view.
type viewMode int

const (
	modePapers viewMode = iota
	modeDetail
	modeDashboard
	modeActions
)

// focusTarget is which input, if any, owns keystrokes.
type focusTarget int

const (
	focusNone focusTarget = iota
	focusSearch
	focusMin
	focusMax
	focusRows
)

// AppConfig wires the App to its collaborators. Every field is a
// command factory so tests can substitute fakes without a network or a
// database; main constructs the real ones around api.Client and
// store.Store.
type AppConfig struct {
	LoadPapers     func(params url.Values, seq uint64) tea.Cmd
	LoadPaper      func(id string) tea.Cmd
	LoadStats      func() tea.Cmd
	LoadCategories func() tea.Cmd
	LoadStatus     func(gen int, poll bool) tea.Cmd
	StartScrape    func() tea.Cmd
	StartEvaluate  func(rows int) tea.Cmd
	MarkRead       func(id string) tea.Cmd
	ToggleStar     func(id string) tea.Cmd
	LoadMarks      func(ids []string) tea.Cmd

	PollInterval   time.Duration
	SearchDebounce time.Duration
	ScoreDebounce  time.Duration
	PerPage        int
	EvaluateRows   int
}

// App is the root Bubble Tea model. It is the single writer of the
// query state and the task snapshot; views only render what it holds.
type App struct {
	cfg AppConfig

	mode viewMode

	// Listing state.
	query  query.State
	page   api.PapersPage
	marks  map[string]store.Mark
	cursor int
	seq    uint64 // latest issued listing fetch

	// Detail state.
	detail api.Paper

	// Dashboard state.
	stats api.Stats

	// Category filter cycling. Index 0 means no filter.
	categories []string
	catIndex   int

	// Job tracking.
	status  task.Snapshot
	session task.Session

	// Inputs.
	focus       focusTarget
	searchInput textinput.Model
	minInput    textinput.Model
	maxInput    textinput.Model
	rowsInput   textinput.Model

	searchDeb Debouncer
	scoreDeb  Debouncer

	// Chrome.
	spinner   spinner.Model
	loading   bool
	width     int
	height    int
	ready     bool
	statusMsg string
	errMsg    string
}

// NewApp creates the root model.
func NewApp(cfg AppConfig) App {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = 300 * time.Millisecond
	}
	if cfg.ScoreDebounce <= 0 {
		cfg.ScoreDebounce = 500 * time.Millisecond
	}
	if cfg.EvaluateRows <= 0 {
		cfg.EvaluateRows = 5
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	search := textinput.New()
	search.Placeholder = "search title, abstract, authors"
	search.CharLimit = 120
	search.Width = 40

	minIn := textinput.New()
	minIn.Placeholder = "min"
	minIn.CharLimit = 4
	minIn.Width = 4

	maxIn := textinput.New()
	maxIn.Placeholder = "max"
	maxIn.CharLimit = 4
	maxIn.Width = 4

	rows := textinput.New()
	rows.Placeholder = strconv.Itoa(cfg.EvaluateRows)
	rows.CharLimit = 4
	rows.Width = 5

	return App{
		cfg:         cfg,
		query:       query.NewState(cfg.PerPage),
		marks:       make(map[string]store.Mark),
		searchInput: search,
		minInput:    minIn,
		maxInput:    maxIn,
		rowsInput:   rows,
		searchDeb:   NewDebouncer(cfg.SearchDebounce),
		scoreDeb:    NewDebouncer(cfg.ScoreDebounce),
		spinner:     s,
		seq:         1,
		loading:     true,
	}
}

// Init loads the first page, the category list, and a one-shot status
// check: if a job is already running the polling session starts
// without waiting for a user action.
//
// Init must not mutate the model, so NewApp pre-issues sequence 1 for
// the first listing fetch.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	if a.cfg.LoadPapers != nil {
		cmds = append(cmds, a.cfg.LoadPapers(a.query.Values(), a.seq))
	}
	if a.cfg.LoadCategories != nil {
		cmds = append(cmds, a.cfg.LoadCategories())
	}
	if a.cfg.LoadStatus != nil {
		cmds = append(cmds, a.cfg.LoadStatus(0, false))
	}
	return tea.Batch(cmds...)
}

// fetchPapers issues a new listing request under a fresh sequence
// number. Responses carrying an older number are discarded on arrival,
// so rapid pagination or filter bursts can never overwrite a newer
// page with a stale one.
func (a *App) fetchPapers() tea.Cmd {
	if a.cfg.LoadPapers == nil {
		return nil
	}
	a.seq++
	a.loading = true
	return a.cfg.LoadPapers(a.query.Values(), a.seq)
}

// startPolling activates the polling session. Idempotent: if a session
// is live this schedules nothing, so there is never a second timer.
func (a *App) startPolling() tea.Cmd {
	gen, started := a.session.Start()
	if !started {
		return nil
	}
	logging.Info("polling started", "gen", gen)
	return a.tickCmd(gen)
}

func (a App) tickCmd(gen int) tea.Cmd {
	return tea.Tick(a.cfg.PollInterval, func(time.Time) tea.Msg {
		return pollTick{Gen: gen}
	})
}

// reconcile performs the one-shot refresh after the session observes
// both jobs non-running: aggregates when the dashboard is visible,
// the listing page otherwise.
func (a *App) reconcile() tea.Cmd {
	if a.mode == modeDashboard {
		if a.cfg.LoadStats != nil {
			return a.cfg.LoadStats()
		}
		return nil
	}
	return a.fetchPapers()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case PapersLoaded:
		if msg.Seq != a.seq {
			logging.Debug("stale page discarded", "seq", msg.Seq, "latest", a.seq)
			return a, nil
		}
		a.loading = false
		a.page = msg.Page
		if a.cursor >= len(a.page.Papers) {
			a.cursor = max(0, len(a.page.Papers)-1)
		}
		if msg.Err != nil {
			a.errMsg = "papers: " + msg.Err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.statusMsg = fmt.Sprintf("%d papers", a.page.Total)
		if a.cfg.LoadMarks != nil && len(a.page.Papers) > 0 {
			ids := make([]string, len(a.page.Papers))
			for i, p := range a.page.Papers {
				ids[i] = p.ID
			}
			return a, a.cfg.LoadMarks(ids)
		}
		return a, nil

	case PaperLoaded:
		a.loading = false
		if msg.Err != nil {
			// Missing papers are logged, never modal.
			logging.Warn("paper load failed", "err", msg.Err)
			a.errMsg = "paper: " + msg.Err.Error()
			return a, nil
		}
		a.detail = msg.Paper
		a.mode = modeDetail
		return a, nil

	case StatsLoaded:
		a.loading = false
		if msg.Err != nil {
			a.errMsg = "stats: " + msg.Err.Error()
		}
		a.stats = msg.Stats
		return a, nil

	case CategoriesLoaded:
		if msg.Err == nil {
			a.categories = query.TopLevelCategories(msg.Raw)
		}
		return a, nil

	case MarksLoaded:
		if msg.Err == nil && msg.Marks != nil {
			a.marks = msg.Marks
		}
		return a, nil

	case StarToggled:
		if msg.Err == nil {
			m := a.marks[msg.ID]
			m.PaperID = msg.ID
			m.Starred = msg.Starred
			a.marks[msg.ID] = m
		}
		return a, nil

	case StatusLoaded:
		return a.handleStatus(msg)

	case JobStarted:
		return a.handleJobStarted(msg)

	case pollTick:
		// An orphan tick from a stopped session does nothing.
		if !a.session.Current(msg.Gen) {
			return a, nil
		}
		if a.cfg.LoadStatus == nil {
			return a, nil
		}
		return a, a.cfg.LoadStatus(msg.Gen, true)

	case debounceFired:
		return a.handleDebounce(msg)
	}

	return a, nil
}

// handleStatus applies one task-status response.
//
// Poll responses: the session stays alive as long as either job is
// running and tears down in the same tick that observes both
// non-running, firing exactly one reconciliation. A transport failure
// keeps the previous snapshot and the session alive; the next tick
// retries.
//
// One-shot responses (load or view switch): the snapshot is updated
// and, if a job is mid-flight, the session starts so a restart of the
// client does not lose visibility.
func (a App) handleStatus(msg StatusLoaded) (tea.Model, tea.Cmd) {
	if msg.Poll {
		if !a.session.Current(msg.Gen) {
			return a, nil
		}
		if msg.Err != nil {
			return a, a.tickCmd(msg.Gen)
		}
		a.status = msg.Snapshot
		if a.status.AnyRunning() {
			return a, a.tickCmd(msg.Gen)
		}
		a.session.Stop()
		logging.Info("polling stopped",
			"scraper", a.status.Scraper.Label(),
			"evaluator", a.status.Evaluator.Label())
		return a, a.reconcile()
	}

	if msg.Err != nil {
		return a, nil
	}
	a.status = msg.Snapshot
	if a.status.AnyRunning() {
		return a, a.startPolling()
	}
	return a, nil
}

// handleJobStarted applies a trigger response. A rejection ("already
// running", transport fault) is surfaced verbatim and the job is not
// marked running; an accepted start marks it running immediately and
// ensures polling is live.
func (a App) handleJobStarted(msg JobStarted) (tea.Model, tea.Cmd) {
	a.loading = false
	reason := msg.Result.Message
	if msg.Err != nil && reason == "" {
		reason = msg.Err.Error()
	}

	if msg.Err != nil || !msg.Result.Started() {
		st := task.Status{State: task.Failed, Reason: reason}
		if msg.Job == task.Evaluator {
			a.status.Evaluator = st
		} else {
			a.status.Scraper = st
		}
		logging.Warn("job start rejected", "job", msg.Job.String(), "reason", reason)
		return a, nil
	}

	if msg.Job == task.Evaluator {
		a.status.Evaluator = task.Status{State: task.Running}
	} else {
		a.status.Scraper = task.Status{State: task.Running}
	}
	a.statusMsg = reason
	logging.Info("job started", "job", msg.Job.String())
	return a, a.startPolling()
}

// handleDebounce commits the trailing input of a settled burst. Fires
// superseded by a newer bump are dropped, so a burst of N inputs
// yields exactly one fetch, using the last value.
func (a App) handleDebounce(msg debounceFired) (tea.Model, tea.Cmd) {
	switch msg.Group {
	case debounceSearch:
		if !a.searchDeb.Current(msg.Gen) {
			return a, nil
		}
		a.query = a.query.WithSearch(a.searchInput.Value())
	case debounceScore:
		if !a.scoreDeb.Current(msg.Gen) {
			return a, nil
		}
		a.query = a.query.WithScoreRange(parseScore(a.minInput.Value()), parseScore(a.maxInput.Value()))
	default:
		return a, nil
	}
	return a, a.fetchPapers()
}

// parseScore converts an input field to an optional bound. Blank or
// unparseable text means the bound is absent.
func parseScore(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 10 {
		return nil
	}
	return &v
}

// switchView changes the active view and triggers the load appropriate
// to it. An in-flight polling session is never cancelled here, and
// startPolling's idempotency means a switch can never create a second
// one.
func (a App) switchView(mode viewMode) (tea.Model, tea.Cmd) {
	if a.mode == mode {
		return a, nil
	}
	a.mode = mode
	a.blurInputs()

	var cmds []tea.Cmd
	switch mode {
	case modePapers:
		cmds = append(cmds, a.fetchPapers())
	case modeDashboard:
		a.loading = true
		if a.cfg.LoadStats != nil {
			cmds = append(cmds, a.cfg.LoadStats())
		}
	case modeActions:
		// Status check so the actions view opens current.
	}
	if !a.session.Active() && a.cfg.LoadStatus != nil {
		cmds = append(cmds, a.cfg.LoadStatus(0, false))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) blurInputs() {
	a.focus = focusNone
	a.searchInput.Blur()
	a.minInput.Blur()
	a.maxInput.Blur()
	a.rowsInput.Blur()
}

// handleKey routes keystrokes. A focused input owns everything except
// enter and esc.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.focus != focusNone {
		return a.handleInputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "1":
		return a.switchView(modePapers)
	case "2":
		return a.switchView(modeDashboard)
	case "3":
		return a.switchView(modeActions)

	case "esc":
		if a.mode == modeDetail {
			a.mode = modePapers
		}
		return a, nil

	case "r":
		switch a.mode {
		case modeDashboard:
			a.loading = true
			if a.cfg.LoadStats != nil {
				return a, a.cfg.LoadStats()
			}
			return a, nil
		default:
			return a, a.fetchPapers()
		}
	}

	switch a.mode {
	case modePapers:
		return a.handlePapersKey(msg)
	case modeActions:
		return a.handleActionsKey(msg)
	}
	return a, nil
}

func (a App) handlePapersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if a.cursor < len(a.page.Papers)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		if len(a.page.Papers) > 0 {
			a.cursor = len(a.page.Papers) - 1
		}

	case "h", "left":
		next := a.query.Prev()
		if next.Page != a.query.Page {
			a.query = next
			return a, a.fetchPapers()
		}
	case "l", "right":
		next := a.query.Next(a.page.TotalPages)
		if next.Page != a.query.Page {
			a.query = next
			return a, a.fetchPapers()
		}

	case "/":
		a.focus = focusSearch
		return a, a.searchInput.Focus()
	case "m":
		a.focus = focusMin
		return a, a.minInput.Focus()
	case "M":
		a.focus = focusMax
		return a, a.maxInput.Focus()

	case "c":
		a.catIndex = (a.catIndex + 1) % (len(a.categories) + 1)
		cat := ""
		if a.catIndex > 0 {
			cat = a.categories[a.catIndex-1]
		}
		a.query = a.query.WithCategory(cat)
		return a, a.fetchPapers()

	case "o":
		a.query = a.query.CycleSort()
		return a, a.fetchPapers()
	case "O":
		a.query = a.query.FlipOrder()
		return a, a.fetchPapers()

	case "s":
		if p, ok := a.selected(); ok && a.cfg.ToggleStar != nil {
			return a, a.cfg.ToggleStar(p.ID)
		}

	case "enter":
		if p, ok := a.selected(); ok {
			a.loading = true
			var cmds []tea.Cmd
			if a.cfg.MarkRead != nil {
				cmds = append(cmds, a.cfg.MarkRead(p.ID))
			}
			if a.cfg.LoadPaper != nil {
				cmds = append(cmds, a.cfg.LoadPaper(p.ID))
			}
			m := a.marks[p.ID]
			m.PaperID = p.ID
			m.Read = true
			a.marks[p.ID] = m
			return a, tea.Batch(cmds...)
		}
	}
	return a, nil
}

func (a App) handleActionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		if a.status.Scraper.State == task.Running {
			return a, nil
		}
		if a.cfg.StartScrape != nil {
			a.loading = true
			return a, a.cfg.StartScrape()
		}
	case "e":
		if a.status.Evaluator.State == task.Running {
			return a, nil
		}
		if a.cfg.StartEvaluate != nil {
			a.loading = true
			return a, a.cfg.StartEvaluate(a.evaluateRows())
		}
	case "n":
		a.focus = focusRows
		return a, a.rowsInput.Focus()
	}
	return a, nil
}

// evaluateRows reads the rows input, falling back to the configured
// default and clamping to the service bounds (1-1000).
func (a App) evaluateRows() int {
	n, err := strconv.Atoi(a.rowsInput.Value())
	if err != nil || n < 1 {
		return a.cfg.EvaluateRows
	}
	if n > 1000 {
		return 1000
	}
	return n
}

// handleInputKey feeds keystrokes to the focused input. Text and score
// edits bump their debouncer; enter commits immediately and esc
// abandons the pending commit.
func (a App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		switch a.focus {
		case focusSearch:
			a.searchDeb.Cancel()
		case focusMin, focusMax:
			a.scoreDeb.Cancel()
		}
		a.blurInputs()
		return a, nil

	case "enter":
		focus := a.focus
		a.blurInputs()
		switch focus {
		case focusSearch:
			a.searchDeb.Cancel()
			a.query = a.query.WithSearch(a.searchInput.Value())
			return a, a.fetchPapers()
		case focusMin, focusMax:
			a.scoreDeb.Cancel()
			a.query = a.query.WithScoreRange(parseScore(a.minInput.Value()), parseScore(a.maxInput.Value()))
			return a, a.fetchPapers()
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.focus {
	case focusSearch:
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, tea.Batch(cmd, a.searchDeb.Bump(func(gen int) tea.Msg {
			return debounceFired{Group: debounceSearch, Gen: gen}
		}))
	case focusMin:
		a.minInput, cmd = a.minInput.Update(msg)
	case focusMax:
		a.maxInput, cmd = a.maxInput.Update(msg)
	case focusRows:
		a.rowsInput, cmd = a.rowsInput.Update(msg)
		return a, cmd
	default:
		return a, nil
	}
	return a, tea.Batch(cmd, a.scoreDeb.Bump(func(gen int) tea.Msg {
		return debounceFired{Group: debounceScore, Gen: gen}
	}))
}

func (a App) selected() (api.Paper, bool) {
	if len(a.page.Papers) == 0 || a.cursor >= len(a.page.Papers) {
		return api.Paper{}, false
	}
	return a.page.Papers[a.cursor], true
}

// View implements tea.Model.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	contentHeight := a.height - 3 // header, status bar, error line
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch a.mode {
	case modePapers:
		content = a.renderPapersView(contentHeight)
	case modeDetail:
		content = renderDetail(a.detail, a.marks[a.detail.ID], a.width, contentHeight)
	case modeDashboard:
		content = renderDashboard(a.stats, a.width)
	case modeActions:
		content = a.renderActions()
	}

	errLine := ""
	if a.errMsg != "" {
		errLine = ErrorStyle.Width(a.width).Render(a.errMsg) + "\n"
	}

	return a.renderHeader() + "\n" + content + "\n" + errLine + a.renderStatusBar()
}

func (a App) renderHeader() string {
	left := "PAPERSCOPE"
	switch a.mode {
	case modePapers, modeDetail:
		left += " │ papers"
	case modeDashboard:
		left += " │ dashboard"
	case modeActions:
		left += " │ actions"
	}
	if a.session.Active() {
		left += " │ " + a.spinner.View() + "job running"
	}
	if a.loading {
		left += " │ loading"
	}
	return Header.Width(a.width).Render(left)
}

func (a App) renderStatusBar() string {
	var help string
	switch a.mode {
	case modePapers:
		help = "j/k move  h/l page  / search  m/M score  c cat  o/O sort  s star  enter open  1/2/3 view  q quit"
	case modeDetail:
		help = "esc back  q quit"
	case modeDashboard:
		help = "r refresh  1/2/3 view  q quit"
	case modeActions:
		help = "s scrape  e evaluate  n rows  1/2/3 view  q quit"
	}
	status := a.statusMsg
	if status != "" {
		status += " │ "
	}
	return StatusBar.Width(a.width).Render(status + help)
}
