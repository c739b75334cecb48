package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/8AVIANVS/paperscope/internal/logging"
)

// Client talks to the paper scraper service.
//
// Every read method returns a zero-valued payload on failure so callers
// can render the result directly; the error is returned alongside for
// status display only, never as something the caller must branch on
// before rendering. No retries: reads are idempotent and the next
// user-driven fetch or poll tick repeats them anyway.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a Client for the given base URL (e.g. "http://localhost:8000").
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
	}
}

// Papers fetches one page of the listing. params comes from query.State.Values().
func (c *Client) Papers(ctx context.Context, params url.Values) (PapersPage, error) {
	var page PapersPage
	err := c.getJSON(ctx, "/api/papers", params, &page)
	return page, err
}

// Paper fetches a single paper by ID. A missing paper surfaces as an
// error with a zero Paper; the caller logs it and shows nothing.
func (c *Client) Paper(ctx context.Context, id string) (Paper, error) {
	var p Paper
	err := c.getJSON(ctx, "/api/paper/"+url.PathEscape(id), nil, &p)
	return p, err
}

// Stats fetches collection-wide aggregates.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := c.getJSON(ctx, "/api/stats", nil, &st)
	if st.Categories == nil {
		st.Categories = map[string]int{}
	}
	if st.ScoreDist == nil {
		st.ScoreDist = map[string]int{}
	}
	return st, err
}

// Categories fetches the raw category tag list.
func (c *Client) Categories(ctx context.Context) (CategoryList, error) {
	var cl CategoryList
	err := c.getJSON(ctx, "/api/categories", nil, &cl)
	return cl, err
}

// Status fetches the combined status of both background jobs in one call.
func (c *Client) Status(ctx context.Context) (TaskStatus, error) {
	var ts TaskStatus
	err := c.getJSON(ctx, "/api/task-status", nil, &ts)
	return ts, err
}

// StartScrape triggers the data-collection job.
func (c *Client) StartScrape(ctx context.Context) (ActionResult, error) {
	return c.postAction(ctx, "/api/scrape", nil)
}

// StartEvaluate triggers the scoring job for up to numRows papers.
func (c *Client) StartEvaluate(ctx context.Context, numRows int) (ActionResult, error) {
	params := url.Values{}
	params.Set("num_rows", strconv.Itoa(numRows))
	return c.postAction(ctx, "/api/evaluate", params)
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		logging.Warn("bad response body", "path", path, "err", err)
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func (c *Client) postAction(ctx context.Context, path string, params url.Values) (ActionResult, error) {
	var res ActionResult
	body, err := c.do(ctx, http.MethodPost, path, params)
	if err != nil {
		return ActionResult{Status: "error", Message: err.Error()}, err
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return ActionResult{Status: "error", Message: "unreadable response"}, fmt.Errorf("parse response: %w", err)
	}
	return res, nil
}

// do performs a single rate-limited request and returns the body.
// One attempt only; failures are logged here so callers don't have to.
func (c *Client) do(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	reqID := uuid.NewString()[:8]
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		logging.Warn("request failed", "req", reqID, "method", method, "path", path, "err", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		logging.Warn("read body failed", "req", reqID, "path", path, "err", err)
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Warn("non-success status", "req", reqID, "method", method, "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	logging.Debug("request ok", "req", reqID, "method", method, "path", path)
	return body, nil
}
