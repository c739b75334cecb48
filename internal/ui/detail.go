package ui

import (
	"fmt"
	"strings"

	"github.com/8AVIANVS/paperscope/internal/api"
	"github.com/8AVIANVS/paperscope/internal/store"
)

// renderDetail renders the single-paper view.
func renderDetail(p api.Paper, mark store.Mark, width, height int) string {
	if p.ID == "" {
		return HelpStyle.Render("No paper loaded.")
	}

	var b strings.Builder

	title := p.Title
	if mark.Starred {
		title = "★ " + title
	}
	b.WriteString(SectionTitle.Render(title))
	b.WriteString("\n")

	meta := fmt.Sprintf("%s · %s", p.ID, p.Categories)
	if p.Created != "" {
		meta += " · created " + p.Created
	}
	if p.Updated != "" {
		meta += " · updated " + p.Updated
	}
	if p.DOI != "" {
		meta += " · doi " + p.DOI
	}
	b.WriteString(HelpStyle.Render(meta))
	b.WriteString("\n")

	b.WriteString(NormalItem.Render("Authors: " + p.Authors))
	b.WriteString("\n")

	b.WriteString(SectionTitle.Render("Score"))
	b.WriteString("\n")
	b.WriteString(" " + scoreBadge(p.Score))
	b.WriteString("\n")
	if p.Reasoning != "" {
		b.WriteString(NormalItem.Render(wrap(p.Reasoning, width-4)))
		b.WriteString("\n")
	}

	b.WriteString(SectionTitle.Render("Abstract"))
	b.WriteString("\n")
	b.WriteString(NormalItem.Render(wrap(p.Abstract, width-4)))
	b.WriteString("\n")

	return clampLines(b.String(), height)
}

// wrap does greedy word wrapping to the given width.
func wrap(s string, width int) string {
	if width < 20 {
		width = 20
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}

// clampLines truncates rendered output to at most h lines.
func clampLines(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= h {
		return s
	}
	return strings.Join(lines[:h], "\n")
}
