package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/8AVIANVS/paperscope/internal/api"
)

// renderDashboard renders collection aggregates: headline counts, the
// score distribution, and per-category counts.
func renderDashboard(st api.Stats, width int) string {
	var b strings.Builder

	b.WriteString(SectionTitle.Render("Collection"))
	b.WriteString("\n")
	b.WriteString(NormalItem.Render(fmt.Sprintf("papers: %d   evaluated: %d   avg score: %s",
		st.TotalPapers, st.EvaluatedPapers, formatAvg(st.AverageScore))))
	b.WriteString("\n")
	if st.LastScrape != "" {
		b.WriteString(HelpStyle.Render("last scrape: " + st.LastScrape))
		b.WriteString("\n")
	}

	b.WriteString(SectionTitle.Render("Score distribution"))
	b.WriteString("\n")
	if len(st.ScoreDist) == 0 {
		b.WriteString(HelpStyle.Render("no evaluated papers yet"))
		b.WriteString("\n")
	} else {
		for _, line := range distributionRows(st.ScoreDist, width-16) {
			b.WriteString(" " + line + "\n")
		}
	}

	b.WriteString(SectionTitle.Render("Categories"))
	b.WriteString("\n")
	for _, line := range categoryRows(st.Categories, 10) {
		b.WriteString(" " + line + "\n")
	}

	return b.String()
}

func formatAvg(avg *float64) string {
	if avg == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *avg)
}

// distributionRows renders one horizontal bar per score bucket, sorted
// numerically, with bar lengths proportional to counts. A non-zero
// bucket always gets at least one cell so it stays visible.
func distributionRows(dist map[string]int, maxBar int) []string {
	if maxBar < 10 {
		maxBar = 10
	}

	buckets := make([]string, 0, len(dist))
	maxCount := 0
	for bucket, count := range dist {
		buckets = append(buckets, bucket)
		if count > maxCount {
			maxCount = count
		}
	}
	sort.Slice(buckets, func(i, j int) bool {
		bi, _ := strconv.Atoi(buckets[i])
		bj, _ := strconv.Atoi(buckets[j])
		return bi < bj
	})

	rows := make([]string, 0, len(buckets))
	for _, bucket := range buckets {
		count := dist[bucket]
		barLen := 0
		if maxCount > 0 {
			barLen = count * maxBar / maxCount
		}
		if count > 0 && barLen == 0 {
			barLen = 1
		}
		rows = append(rows, fmt.Sprintf("%3s %s %d",
			bucket, Bar.Render(strings.Repeat("█", barLen)), count))
	}
	return rows
}

// categoryRows lists the top n categories by count, descending.
func categoryRows(categories map[string]int, n int) []string {
	type catCount struct {
		name  string
		count int
	}
	cats := make([]catCount, 0, len(categories))
	for name, count := range categories {
		cats = append(cats, catCount{name, count})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].count != cats[j].count {
			return cats[i].count > cats[j].count
		}
		return cats[i].name < cats[j].name
	})

	if len(cats) > n {
		cats = cats[:n]
	}
	rows := make([]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, fmt.Sprintf("%-8s %d", c.name, c.count))
	}
	if len(rows) == 0 {
		rows = append(rows, "none")
	}
	return rows
}
