package ui

import (
	"strings"
	"testing"
)

func barCells(row string) int {
	return strings.Count(row, "█")
}

func TestDistributionRowsProportional(t *testing.T) {
	rows := distributionRows(map[string]int{"3": 2, "7": 5}, 50)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Sorted numerically, so "3" first.
	low, high := barCells(rows[0]), barCells(rows[1])
	if high <= low {
		t.Errorf("bucket with 5 papers should have the longer bar: low=%d high=%d", low, high)
	}
	if high != 50 {
		t.Errorf("the largest bucket should fill the bar, got %d", high)
	}
}

func TestDistributionRowsNumericSort(t *testing.T) {
	rows := distributionRows(map[string]int{"10": 1, "2": 1, "9": 1}, 20)
	want := []string{"  2", "  9", " 10"}
	for i, label := range want {
		if rows[i][:3] != label {
			t.Errorf("row %d = %q, want label %q (numeric order, not lexical)", i, rows[i], label)
		}
	}
}

func TestDistributionRowsSmallCountStaysVisible(t *testing.T) {
	rows := distributionRows(map[string]int{"1": 1, "8": 500}, 40)
	if barCells(rows[0]) < 1 {
		t.Error("a non-zero bucket should render at least one bar cell")
	}
}

func TestCategoryRowsTopNByCount(t *testing.T) {
	rows := categoryRows(map[string]int{"cs": 10, "math": 3, "eess": 7, "stat": 1}, 3)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if !strings.HasPrefix(rows[0], "cs") || !strings.HasPrefix(rows[1], "eess") || !strings.HasPrefix(rows[2], "math") {
		t.Errorf("rows not sorted by count desc: %v", rows)
	}
}

func TestCategoryRowsEmpty(t *testing.T) {
	rows := categoryRows(nil, 10)
	if len(rows) != 1 || rows[0] != "none" {
		t.Errorf("empty categories should render a placeholder, got %v", rows)
	}
}

func TestFormatAvg(t *testing.T) {
	if got := formatAvg(nil); got != "N/A" {
		t.Errorf("nil average = %q, want N/A", got)
	}
	v := 6.125
	if got := formatAvg(&v); got != "6.12" {
		t.Errorf("formatAvg(6.125) = %q", got)
	}
}
