// Package query owns the active listing query: search text, category,
// score bounds, sort, and pagination. The state is a plain value with
// copy-on-write setters; the UI model is its single writer.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Sort fields accepted by the service.
type SortField string

const (
	SortCreated SortField = "created"
	SortUpdated SortField = "updated"
	SortScore   SortField = "score"
	SortTitle   SortField = "title"
)

// sortCycle is the order the listing view steps through with the sort key.
var sortCycle = []SortField{SortCreated, SortUpdated, SortScore, SortTitle}

// SortOrder is the sort direction.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Per-page bounds enforced by the service.
const (
	MinPerPage     = 1
	MaxPerPage     = 100
	DefaultPerPage = 20
)

// State is the authoritative listing query. Every setter that changes
// anything other than the page resets Page to 1: a changed filter makes
// the old page offset meaningless.
type State struct {
	Search    string
	Category  string
	MinScore  *float64
	MaxScore  *float64
	SortBy    SortField
	SortOrder SortOrder
	Page      int
	PerPage   int
}

// NewState returns the default query: first page, newest first.
func NewState(perPage int) State {
	if perPage < MinPerPage || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	return State{
		SortBy:    SortCreated,
		SortOrder: Desc,
		Page:      1,
		PerPage:   perPage,
	}
}

// WithSearch sets the free-text search and resets the page.
func (s State) WithSearch(text string) State {
	s.Search = strings.TrimSpace(text)
	s.Page = 1
	return s
}

// WithCategory sets the category filter ("" clears it) and resets the page.
func (s State) WithCategory(cat string) State {
	s.Category = cat
	s.Page = 1
	return s
}

// WithScoreRange sets the score bounds (nil clears a bound) and resets the page.
func (s State) WithScoreRange(min, max *float64) State {
	s.MinScore = min
	s.MaxScore = max
	s.Page = 1
	return s
}

// WithSort sets the sort key and direction and resets the page.
func (s State) WithSort(field SortField, order SortOrder) State {
	s.SortBy = field
	s.SortOrder = order
	s.Page = 1
	return s
}

// CycleSort advances to the next sort field, keeping the direction.
func (s State) CycleSort() State {
	for i, f := range sortCycle {
		if f == s.SortBy {
			return s.WithSort(sortCycle[(i+1)%len(sortCycle)], s.SortOrder)
		}
	}
	return s.WithSort(SortCreated, s.SortOrder)
}

// FlipOrder toggles between ascending and descending.
func (s State) FlipOrder() State {
	if s.SortOrder == Asc {
		return s.WithSort(s.SortBy, Desc)
	}
	return s.WithSort(s.SortBy, Asc)
}

// Prev moves back one page. No-op on page 1.
func (s State) Prev() State {
	if s.Page > 1 {
		s.Page--
	}
	return s
}

// Next moves forward one page, bounded by the last known page count.
// No-op when already on the last page (or when nothing is known yet).
func (s State) Next(totalPages int) State {
	if s.Page < totalPages {
		s.Page++
	}
	return s
}

// Values projects the state into request parameters. Absent optional
// fields are omitted entirely, never sent as empty strings. Pure: the
// same state always yields the same parameters.
func (s State) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(s.Page))
	v.Set("per_page", strconv.Itoa(s.PerPage))
	v.Set("sort_by", string(s.SortBy))
	v.Set("sort_order", string(s.SortOrder))
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	if s.Category != "" {
		v.Set("category", s.Category)
	}
	if s.MinScore != nil {
		v.Set("min_score", strconv.FormatFloat(*s.MinScore, 'f', -1, 64))
	}
	if s.MaxScore != nil {
		v.Set("max_score", strconv.FormatFloat(*s.MaxScore, 'f', -1, 64))
	}
	return v
}

// TopLevelCategories reduces raw category tags to their sorted, unique
// top-level prefixes: "cs.AI cs.LG" and "cs" all collapse to "cs".
func TopLevelCategories(raw []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tag := range raw {
		for _, part := range strings.Fields(tag) {
			top, _, _ := strings.Cut(part, ".")
			if top == "" || seen[top] {
				continue
			}
			seen[top] = true
			out = append(out, top)
		}
	}
	sort.Strings(out)
	return out
}
