package ui

import (
	"errors"
	"net/url"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/8AVIANVS/paperscope/internal/api"
	"github.com/8AVIANVS/paperscope/internal/task"
)

// mockCmds counts factory invocations so tests can assert how many
// fetches the model issued without running any command.
type mockCmds struct {
	paperCalls  int
	lastParams  url.Values
	lastSeq     uint64
	statsCalls  int
	statusCalls int
	scrapeCalls int
	evalCalls   int
	evalRows    int
}

func (m *mockCmds) config() AppConfig {
	return AppConfig{
		LoadPapers: func(params url.Values, seq uint64) tea.Cmd {
			m.paperCalls++
			m.lastParams = params
			m.lastSeq = seq
			return nil
		},
		LoadStats: func() tea.Cmd {
			m.statsCalls++
			return nil
		},
		LoadStatus: func(gen int, poll bool) tea.Cmd {
			m.statusCalls++
			return nil
		},
		StartScrape: func() tea.Cmd {
			m.scrapeCalls++
			return func() tea.Msg { return nil }
		},
		StartEvaluate: func(rows int) tea.Cmd {
			m.evalCalls++
			m.evalRows = rows
			return func() tea.Msg { return nil }
		},
		PollInterval: 10 * time.Millisecond,
		PerPage:      20,
	}
}

func testPage(n int) api.PapersPage {
	papers := make([]api.Paper, n)
	for i := range papers {
		papers[i] = api.Paper{ID: string(rune('a' + i)), Title: "Paper"}
	}
	return api.PapersPage{Papers: papers, Total: n, Page: 1, PerPage: 20, TotalPages: 3}
}

func TestStalePageDiscarded(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())
	app.seq = 5

	fresh := testPage(2)
	model, _ := app.Update(PapersLoaded{Page: fresh, Seq: 5})
	updated := model.(App)
	if len(updated.page.Papers) != 2 {
		t.Fatalf("latest page should apply, got %d papers", len(updated.page.Papers))
	}

	// A response from an earlier request must not overwrite it.
	stale := testPage(9)
	model, _ = updated.Update(PapersLoaded{Page: stale, Seq: 3})
	updated = model.(App)
	if len(updated.page.Papers) != 2 {
		t.Errorf("stale page overwrote newer results")
	}
}

func TestPageErrorRendersEmpty(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())
	app.seq = 1
	app.page = testPage(2)

	model, _ := app.Update(PapersLoaded{Seq: 1, Err: errors.New("connection refused")})
	updated := model.(App)
	if len(updated.page.Papers) != 0 {
		t.Error("failed fetch should leave an empty, renderable page")
	}
	if updated.errMsg == "" {
		t.Error("failure should surface in the error line")
	}
}

func TestInitialStatusRunningStartsPolling(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	snap := task.ParseSnapshot("running", "")
	model, cmd := app.Update(StatusLoaded{Snapshot: snap, Poll: false})
	updated := model.(App)

	if !updated.session.Active() {
		t.Fatal("a running job on load should start the polling session")
	}
	if cmd == nil {
		t.Error("session start should schedule the first tick")
	}
}

func TestSecondStartDoesNotDuplicateTimer(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	snap := task.ParseSnapshot("running", "")
	model, cmd := app.Update(StatusLoaded{Snapshot: snap, Poll: false})
	updated := model.(App)
	if cmd == nil {
		t.Fatal("first start should schedule a tick")
	}

	// Same status again (e.g. after a view switch): no second timer.
	model, cmd = updated.Update(StatusLoaded{Snapshot: snap, Poll: false})
	updated = model.(App)
	if cmd != nil {
		t.Error("start while active must not schedule another tick")
	}
	if !updated.session.Active() {
		t.Error("session should still be active")
	}
}

func TestPollStopsAndReconcilesOnce(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	model, _ := app.Update(StatusLoaded{Snapshot: task.ParseSnapshot("running", "running"), Poll: false})
	updated := model.(App)
	gen, _ := updated.session.Start()

	fetchesBefore := mock.paperCalls

	// Both jobs finish in the same tick: one reconciliation, listing view.
	done := task.ParseSnapshot("completed", "completed")
	model, _ = updated.Update(StatusLoaded{Snapshot: done, Gen: gen, Poll: true})
	updated = model.(App)

	if updated.session.Active() {
		t.Error("session should tear down when both jobs are non-running")
	}
	if got := mock.paperCalls - fetchesBefore; got != 1 {
		t.Errorf("expected exactly 1 reconciliation fetch, got %d", got)
	}
	if mock.statsCalls != 0 {
		t.Error("listing reconciliation must not also refresh stats")
	}

	// A stale poll response from the stopped session does nothing.
	model, cmd := updated.Update(StatusLoaded{Snapshot: done, Gen: gen, Poll: true})
	updated = model.(App)
	if cmd != nil {
		t.Error("stale poll response scheduled work after teardown")
	}
	if got := mock.paperCalls - fetchesBefore; got != 1 {
		t.Errorf("stale poll response reconciled again: %d fetches", mock.paperCalls-fetchesBefore)
	}
}

func TestReconcileOnDashboardRefreshesStats(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())
	app.mode = modeDashboard

	model, _ := app.Update(StatusLoaded{Snapshot: task.ParseSnapshot("", "running"), Poll: false})
	updated := model.(App)
	gen, _ := updated.session.Start()

	fetchesBefore := mock.paperCalls
	statsBefore := mock.statsCalls

	model, _ = updated.Update(StatusLoaded{Snapshot: task.ParseSnapshot("", "completed"), Gen: gen, Poll: true})
	_ = model.(App)

	if mock.statsCalls-statsBefore != 1 {
		t.Errorf("dashboard reconciliation should refresh stats once, got %d", mock.statsCalls-statsBefore)
	}
	if mock.paperCalls != fetchesBefore {
		t.Error("dashboard reconciliation must not also refetch papers")
	}
}

func TestPollContinuesWhileOneJobRuns(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	model, _ := app.Update(StatusLoaded{Snapshot: task.ParseSnapshot("running", "running"), Poll: false})
	updated := model.(App)
	gen, _ := updated.session.Start()

	// Evaluator fails, scraper still running: session stays up.
	snap := task.ParseSnapshot("running", "failed: no key")
	model, cmd := updated.Update(StatusLoaded{Snapshot: snap, Gen: gen, Poll: true})
	updated = model.(App)

	if !updated.session.Active() {
		t.Error("session must stay active while either job runs")
	}
	if cmd == nil {
		t.Error("expected next tick to be scheduled")
	}
	if updated.status.Evaluator.Reason != "failed: no key" {
		t.Errorf("failure reason should surface verbatim, got %q", updated.status.Evaluator.Reason)
	}
}

func TestPollTransportFailureKeepsSession(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	model, _ := app.Update(StatusLoaded{Snapshot: task.ParseSnapshot("running", ""), Poll: false})
	updated := model.(App)
	gen, _ := updated.session.Start()

	model, cmd := updated.Update(StatusLoaded{Gen: gen, Poll: true, Err: errors.New("connection refused")})
	updated = model.(App)

	if !updated.session.Active() {
		t.Error("one failed poll must not tear down the session")
	}
	if cmd == nil {
		t.Error("next tick should still be scheduled")
	}
	if updated.status.Scraper.State != task.Running {
		t.Error("failed poll must not clobber the last known snapshot")
	}
}

func TestOrphanTickIsNoop(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	model, _ := app.Update(StatusLoaded{Snapshot: task.ParseSnapshot("running", ""), Poll: false})
	updated := model.(App)
	gen, _ := updated.session.Start()
	updated.session.Stop()

	statusBefore := mock.statusCalls
	_, cmd := updated.Update(pollTick{Gen: gen})
	if cmd != nil {
		t.Error("tick from a stopped session should schedule nothing")
	}
	if mock.statusCalls != statusBefore {
		t.Error("tick from a stopped session should not fetch status")
	}
}

func TestDebounceBurstYieldsOneFetch(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	// Focus search and type a burst.
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	updated := model.(App)
	for _, r := range "llm" {
		model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		updated = model.(App)
	}

	lastGen := updated.searchDeb.gen
	if lastGen != 3 {
		t.Fatalf("expected 3 bumps, got %d", lastGen)
	}

	fetchesBefore := mock.paperCalls

	// The first two timers fire late and are superseded.
	for gen := 1; gen < lastGen; gen++ {
		model, _ = updated.Update(debounceFired{Group: debounceSearch, Gen: gen})
		updated = model.(App)
	}
	if mock.paperCalls != fetchesBefore {
		t.Fatalf("superseded debounce fires issued %d fetches", mock.paperCalls-fetchesBefore)
	}

	// Only the trailing fire commits, with the full value.
	model, _ = updated.Update(debounceFired{Group: debounceSearch, Gen: lastGen})
	updated = model.(App)
	if mock.paperCalls-fetchesBefore != 1 {
		t.Fatalf("expected exactly 1 fetch, got %d", mock.paperCalls-fetchesBefore)
	}
	if got := mock.lastParams.Get("search"); got != "llm" {
		t.Errorf("committed search should be the last input, got %q", got)
	}
	if got := mock.lastParams.Get("page"); got != "1" {
		t.Errorf("search change should reset to page 1, got %q", got)
	}
}

func TestScoreDebounceCommitsBothBounds(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())
	app.minInput.SetValue("5")
	app.maxInput.SetValue("9")
	app.scoreDeb.gen = 2

	model, _ := app.Update(debounceFired{Group: debounceScore, Gen: 2})
	_ = model.(App)

	if mock.paperCalls != 1 {
		t.Fatalf("expected 1 fetch, got %d", mock.paperCalls)
	}
	if mock.lastParams.Get("min_score") != "5" || mock.lastParams.Get("max_score") != "9" {
		t.Errorf("score bounds not committed: %v", mock.lastParams)
	}
}

func TestEnterCommitsSearchImmediately(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	updated := model.(App)
	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	updated = model.(App)
	pendingGen := updated.searchDeb.gen

	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated = model.(App)

	if mock.paperCalls != 1 {
		t.Fatalf("enter should fetch immediately, got %d fetches", mock.paperCalls)
	}
	if updated.focus != focusNone {
		t.Error("enter should blur the input")
	}

	// The pending debounce timer is dead; its fire must not double-fetch.
	model, _ = updated.Update(debounceFired{Group: debounceSearch, Gen: pendingGen})
	_ = model.(App)
	if mock.paperCalls != 1 {
		t.Error("cancelled debounce fire still fetched")
	}
}

func TestPaginationGuards(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())
	app.page = testPage(3)
	app.page.TotalPages = 2

	// prev at page 1: no fetch.
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	updated := model.(App)
	if mock.paperCalls != 0 {
		t.Error("prev at page 1 should be a no-op")
	}

	// next: fetch page 2.
	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	updated = model.(App)
	if mock.paperCalls != 1 || mock.lastParams.Get("page") != "2" {
		t.Errorf("next should fetch page 2, calls=%d params=%v", mock.paperCalls, mock.lastParams)
	}

	// next at the last known page: no further fetch.
	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	_ = model.(App)
	if mock.paperCalls != 1 {
		t.Error("next at the last page should be a no-op")
	}
}

func TestViewSwitchLoadsTargetData(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	updated := model.(App)
	if updated.mode != modeDashboard {
		t.Fatal("'2' should open the dashboard")
	}
	if mock.statsCalls != 1 {
		t.Errorf("dashboard switch should load stats, got %d calls", mock.statsCalls)
	}
	if mock.statusCalls != 1 {
		t.Errorf("view switch should check status once, got %d calls", mock.statusCalls)
	}

	// Switching to the same view again does nothing.
	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	_ = model.(App)
	if mock.statsCalls != 1 {
		t.Error("re-selecting the active view should not reload")
	}
}

func TestViewSwitchSkipsStatusCheckWhilePolling(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	model, _ := app.Update(StatusLoaded{Snapshot: task.ParseSnapshot("running", ""), Poll: false})
	updated := model.(App)
	statusBefore := mock.statusCalls

	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	_ = model.(App)
	if mock.statusCalls != statusBefore {
		t.Error("an active session already polls; the switch must not add a check")
	}
}

func TestJobStartRejection(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	model, cmd := app.Update(JobStarted{
		Job:    task.Scraper,
		Result: api.ActionResult{Status: "running", Message: "Scraper is already running"},
	})
	updated := model.(App)

	if updated.status.Scraper.State != task.Failed {
		t.Error("rejection should surface as an error state, not a fresh job")
	}
	if updated.status.Scraper.Reason != "Scraper is already running" {
		t.Errorf("rejection message should surface verbatim, got %q", updated.status.Scraper.Reason)
	}
	if updated.session.Active() {
		t.Error("rejection must not start polling")
	}
	if cmd != nil {
		t.Error("rejection should schedule nothing")
	}
}

func TestJobStartAccepted(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	model, cmd := app.Update(JobStarted{
		Job:    task.Evaluator,
		Result: api.ActionResult{Status: "started", Message: "Evaluator started for 5 papers"},
	})
	updated := model.(App)

	if updated.status.Evaluator.State != task.Running {
		t.Error("accepted start should mark the job running")
	}
	if !updated.session.Active() {
		t.Error("accepted start should start the polling session")
	}
	if cmd == nil {
		t.Error("expected the first tick to be scheduled")
	}
}

func TestActionsTriggerWhileRunningIsNoop(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())
	app.mode = modeActions
	app.status.Scraper = task.Status{State: task.Running}

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	_ = model.(App)
	if mock.scrapeCalls != 0 {
		t.Error("scrape trigger while running should be rejected locally")
	}
}

func TestEvaluateRowsBounds(t *testing.T) {
	mock := &mockCmds{}
	cfg := mock.config()
	cfg.EvaluateRows = 5
	app := NewApp(cfg)
	app.mode = modeActions

	app.rowsInput.SetValue("2500")
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	updated := model.(App)
	if mock.evalRows != 1000 {
		t.Errorf("rows should clamp to 1000, got %d", mock.evalRows)
	}

	updated.rowsInput.SetValue("")
	model, _ = updated.Update(JobStarted{Job: task.Evaluator, Result: api.ActionResult{Status: "error", Message: "x"}})
	updated = model.(App)
	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	_ = model.(App)
	if mock.evalRows != 5 {
		t.Errorf("blank rows should fall back to the default, got %d", mock.evalRows)
	}
}

func TestWindowSize(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated := model.(App)
	if updated.width != 100 || updated.height != 40 {
		t.Errorf("size not applied: %dx%d", updated.width, updated.height)
	}
	if !updated.ready {
		t.Error("app should be ready after WindowSizeMsg")
	}
}

func TestViewNotReady(t *testing.T) {
	app := NewApp(AppConfig{})
	if app.View() != "Loading..." {
		t.Error("View should show 'Loading...' before the first WindowSizeMsg")
	}
}

func TestViewRenders(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.config())
	app.ready = true
	app.width = 100
	app.height = 30
	app.page = testPage(3)
	app.loading = false

	for _, mode := range []viewMode{modePapers, modeDashboard, modeActions} {
		app.mode = mode
		if app.View() == "" {
			t.Errorf("View for mode %d should not be empty", mode)
		}
	}
}
