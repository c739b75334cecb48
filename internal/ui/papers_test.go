package ui

import (
	"strings"
	"testing"
)

func fptr(v float64) *float64 { return &v }

func TestBucketFor(t *testing.T) {
	cases := []struct {
		name  string
		score *float64
		want  scoreBucket
	}{
		{"unscored", nil, bucketNone},
		{"zero", fptr(0), bucketLow},
		{"low boundary", fptr(3.9), bucketLow},
		{"medium lower", fptr(4), bucketMedium},
		{"medium upper", fptr(6.9), bucketMedium},
		{"high boundary", fptr(7), bucketHigh},
		{"max", fptr(10), bucketHigh},
	}
	for _, tc := range cases {
		if got := bucketFor(tc.score); got != tc.want {
			t.Errorf("%s: bucketFor = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestUnscoredDistinctFromZero(t *testing.T) {
	// A missing score is not a zero score.
	if bucketFor(nil) == bucketFor(fptr(0)) {
		t.Error("unscored papers must not share a bucket with score 0")
	}
}

func TestScoreBadge(t *testing.T) {
	if !strings.Contains(scoreBadge(nil), "N/A") {
		t.Error("unscored badge should read N/A")
	}
	if !strings.Contains(scoreBadge(fptr(8.5)), "8.5") {
		t.Error("scored badge should carry the value")
	}
}

func TestFirstField(t *testing.T) {
	if got := firstField("cs.AI cs.LG"); got != "cs.AI" {
		t.Errorf("firstField = %q", got)
	}
	if got := firstField(""); got != "" {
		t.Errorf("firstField of empty = %q", got)
	}
}
