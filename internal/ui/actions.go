package ui

import (
	"strings"

	"github.com/8AVIANVS/paperscope/internal/task"
)

// renderActions renders the job trigger view. Failure reasons are
// shown verbatim and stay on screen until the job is started again.
func (a App) renderActions() string {
	var b strings.Builder

	b.WriteString(SectionTitle.Render("Scraper"))
	b.WriteString("\n")
	b.WriteString(" " + jobLine(a.status.Scraper))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("press 's' to collect new papers"))
	b.WriteString("\n")

	b.WriteString(SectionTitle.Render("Evaluator"))
	b.WriteString("\n")
	b.WriteString(" " + jobLine(a.status.Evaluator))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("press 'e' to score papers, 'n' to set row count"))
	b.WriteString("\n")
	b.WriteString(" " + FilterLabel.Render("rows:") + " " + a.rowsInput.View())
	b.WriteString("\n")

	if a.session.Active() {
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render(a.spinner.View() + " polling job status..."))
		b.WriteString("\n")
	}

	return b.String()
}

func jobLine(st task.Status) string {
	switch st.State {
	case task.Running:
		return JobRunning.Render("running")
	case task.Completed:
		return JobCompleted.Render("completed")
	case task.Failed:
		return JobFailed.Render(st.Reason)
	default:
		return JobIdle.Render("idle")
	}
}
