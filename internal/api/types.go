// Package api provides the typed HTTP client for the paper scraper service.
package api

// Paper is a single scraped paper as returned by the service.
// Score and Reasoning are only present after evaluation.
type Paper struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Categories string   `json:"categories"` // space-joined tags, e.g. "cs.AI cs.LG"
	Abstract   string   `json:"abstract"`
	DOI        string   `json:"doi,omitempty"`
	Created    string   `json:"created,omitempty"`
	Updated    string   `json:"updated,omitempty"`
	Authors    string   `json:"authors"` // comma-joined
	Score      *float64 `json:"score,omitempty"`
	Reasoning  string   `json:"reasoning,omitempty"`
}

// PapersPage is one page of the paper listing.
type PapersPage struct {
	Papers     []Paper `json:"papers"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	TotalPages int     `json:"total_pages"`
}

// Stats summarizes the whole collection.
type Stats struct {
	TotalPapers      int            `json:"total_papers"`
	EvaluatedPapers  int            `json:"evaluated_papers"`
	AverageScore     *float64       `json:"average_score"`
	Categories       map[string]int `json:"categories"`
	ScoreDist        map[string]int `json:"score_distribution"` // integer bucket -> count
	LastScrape       string         `json:"last_scrape"`
}

// CategoryList is the raw category tag list.
type CategoryList struct {
	Categories []string `json:"categories"`
}

// TaskStatus reports the raw status strings of both background jobs.
// An empty string means the job has never run (idle).
type TaskStatus struct {
	Scraper   string `json:"scraper"`
	Evaluator string `json:"evaluator"`
}

// ActionResult is the response to a job trigger.
// Status is "started" on success; anything else is a rejection and
// Message explains why.
type ActionResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Started reports whether the trigger actually started a job.
func (a ActionResult) Started() bool {
	return a.Status == "started"
}
