package main

import (
	"context"
	"log"
	"net/url"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/8AVIANVS/paperscope/internal/api"
	"github.com/8AVIANVS/paperscope/internal/config"
	"github.com/8AVIANVS/paperscope/internal/logging"
	"github.com/8AVIANVS/paperscope/internal/store"
	"github.com/8AVIANVS/paperscope/internal/task"
	"github.com/8AVIANVS/paperscope/internal/ui"
)

func main() {
	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logging.Init(config.DataDir()); err != nil {
		log.Fatalf("Failed to init logging: %v", err)
	}
	defer logging.Close()

	st, err := store.Open(filepath.Join(config.DataDir(), "paperscope.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	client := api.New(cfg.Server, cfg.RequestTimeout())

	// Wire the UI to the service and the local store. Each field is a
	// tea.Cmd factory; all I/O happens inside the returned commands.
	appCfg := ui.AppConfig{
		LoadPapers: func(params url.Values, seq uint64) tea.Cmd {
			return func() tea.Msg {
				page, err := client.Papers(ctx, params)
				return ui.PapersLoaded{Page: page, Seq: seq, Err: err}
			}
		},
		LoadPaper: func(id string) tea.Cmd {
			return func() tea.Msg {
				paper, err := client.Paper(ctx, id)
				return ui.PaperLoaded{Paper: paper, Err: err}
			}
		},
		LoadStats: func() tea.Cmd {
			return func() tea.Msg {
				stats, err := client.Stats(ctx)
				return ui.StatsLoaded{Stats: stats, Err: err}
			}
		},
		LoadCategories: func() tea.Cmd {
			return func() tea.Msg {
				cl, err := client.Categories(ctx)
				return ui.CategoriesLoaded{Raw: cl.Categories, Err: err}
			}
		},
		LoadStatus: func(gen int, poll bool) tea.Cmd {
			return func() tea.Msg {
				ts, err := client.Status(ctx)
				return ui.StatusLoaded{
					Snapshot: task.ParseSnapshot(ts.Scraper, ts.Evaluator),
					Gen:      gen,
					Poll:     poll,
					Err:      err,
				}
			}
		},
		StartScrape: func() tea.Cmd {
			return func() tea.Msg {
				res, err := client.StartScrape(ctx)
				return ui.JobStarted{Job: task.Scraper, Result: res, Err: err}
			}
		},
		StartEvaluate: func(rows int) tea.Cmd {
			return func() tea.Msg {
				res, err := client.StartEvaluate(ctx, rows)
				return ui.JobStarted{Job: task.Evaluator, Result: res, Err: err}
			}
		},
		MarkRead: func(id string) tea.Cmd {
			return func() tea.Msg {
				if err := st.MarkRead(id); err != nil {
					logging.Warn("mark read failed", "id", id, "err", err)
				}
				return nil
			}
		},
		ToggleStar: func(id string) tea.Cmd {
			return func() tea.Msg {
				starred, err := st.ToggleStar(id)
				return ui.StarToggled{ID: id, Starred: starred, Err: err}
			}
		},
		LoadMarks: func(ids []string) tea.Cmd {
			return func() tea.Msg {
				marks, err := st.Marks(ids)
				return ui.MarksLoaded{Marks: marks, Err: err}
			}
		},

		PollInterval:   cfg.PollInterval(),
		SearchDebounce: cfg.SearchDebounce(),
		ScoreDebounce:  cfg.ScoreDebounce(),
		PerPage:        cfg.PerPage,
		EvaluateRows:   cfg.EvaluateRows,
	}

	program := tea.NewProgram(ui.NewApp(appCfg), tea.WithAltScreen())

	// Run UI (blocks until quit). Quitting cancels the context, which
	// aborts any in-flight request; the Bubble Tea runtime tears down
	// its own timers with the program.
	if _, err := program.Run(); err != nil {
		log.Printf("Error running program: %v", err)
	}
}
