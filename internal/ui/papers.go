package ui

import (
	"fmt"
	"strings"

	"github.com/8AVIANVS/paperscope/internal/api"
)

// scoreBucket is the visual severity of a paper's score. An unscored
// paper is its own bucket, distinct from any real score.
type scoreBucket int

const (
	bucketNone scoreBucket = iota
	bucketLow              // 0 - 3.9
	bucketMedium           // 4 - 6.9
	bucketHigh             // >= 7
)

func bucketFor(score *float64) scoreBucket {
	switch {
	case score == nil:
		return bucketNone
	case *score >= 7:
		return bucketHigh
	case *score >= 4:
		return bucketMedium
	default:
		return bucketLow
	}
}

// scoreBadge renders a fixed-width score column, "N/A" for unscored.
func scoreBadge(score *float64) string {
	switch bucketFor(score) {
	case bucketHigh:
		return ScoreHigh.Render(fmt.Sprintf("%4.1f", *score))
	case bucketMedium:
		return ScoreMedium.Render(fmt.Sprintf("%4.1f", *score))
	case bucketLow:
		return ScoreLow.Render(fmt.Sprintf("%4.1f", *score))
	default:
		return ScoreNone.Render(" N/A")
	}
}

// renderPapersView renders the filter bar, the listing, and the
// pagination line.
func (a App) renderPapersView(height int) string {
	var b strings.Builder

	b.WriteString(a.renderFilterBar())
	b.WriteString("\n")

	listHeight := height - 3 // filter bar + pagination line
	if listHeight < 1 {
		listHeight = 1
	}

	if len(a.page.Papers) == 0 {
		if a.loading {
			b.WriteString(HelpStyle.Render(a.spinner.View() + " loading papers..."))
		} else {
			b.WriteString(HelpStyle.Render("No papers. Press '3' to run the scraper, 'r' to refresh."))
		}
		b.WriteString("\n")
		return b.String()
	}

	start := 0
	if a.cursor >= listHeight {
		start = a.cursor - listHeight + 1
	}
	for i := start; i < len(a.page.Papers) && i-start < listHeight; i++ {
		b.WriteString(a.renderPaperLine(a.page.Papers[i], i == a.cursor))
		b.WriteString("\n")
	}

	b.WriteString(a.renderPageLine())
	return b.String()
}

func (a App) renderPaperLine(p api.Paper, selected bool) string {
	mark := a.marks[p.ID]

	star := " "
	if mark.Starred {
		star = "★"
	}

	title := p.Title
	maxTitle := a.width - 20
	if maxTitle > 0 && len(title) > maxTitle {
		title = title[:maxTitle-1] + "…"
	}

	line := fmt.Sprintf("%s %s  %-11s %s", star, scoreBadge(p.Score), firstField(p.Categories), title)

	switch {
	case selected:
		return SelectedItem.Width(a.width).Render(line)
	case mark.Read:
		return ReadItem.Render(line)
	default:
		return NormalItem.Render(line)
	}
}

func (a App) renderPageLine() string {
	if a.page.TotalPages == 0 {
		return HelpStyle.Render("page 0/0")
	}
	return HelpStyle.Render(fmt.Sprintf("page %d/%d · %d papers · sort %s %s",
		a.query.Page, a.page.TotalPages, a.page.Total, a.query.SortBy, a.query.SortOrder))
}

// renderFilterBar shows the live filter inputs. Inputs render their
// pending text; the committed query may lag behind by one debounce
// window.
func (a App) renderFilterBar() string {
	cat := "all"
	if a.query.Category != "" {
		cat = a.query.Category
	}

	parts := []string{
		FilterLabel.Render("search:") + " " + a.searchInput.View(),
		FilterLabel.Render("score:") + " " + a.minInput.View() + "-" + a.maxInput.View(),
		FilterLabel.Render("cat:") + " " + cat,
	}
	return " " + strings.Join(parts, "  ")
}

// firstField returns the first whitespace-separated token, for showing
// a single category tag in the listing.
func firstField(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
