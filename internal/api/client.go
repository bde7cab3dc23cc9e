package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/newsdesk/internal/query"
	"github.com/jask/newsdesk/internal/workflow"
)

// Client talks to the editorial backend. All calls take a context, carry the
// bearer token and a fresh X-Request-ID, and fail on any non-2xx status.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient wraps httpClient for the backend at baseURL. The caller owns the
// http.Client (timeouts included); a nil client falls back to the default.
func NewClient(httpClient *http.Client, baseURL, token string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// StatusError is a non-2xx backend response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("backend returned status %d", e.Code)
}

func (c *Client) do(ctx context.Context, method, path string, qv url.Values, body, out any) error {
	u := c.baseURL + path
	if len(qv) > 0 {
		u += "?" + qv.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("api: %s %s: %w", method, path,
			&StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))})
	}
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

type wirePage struct {
	Results      []wireRecord    `json:"results"`
	TotalRecords json.RawMessage `json:"total_records"`
}

// FetchActivities returns one page of content records matching p, plus the
// total match count. In latest-month mode the backend returns the whole
// current month unpaged.
func (c *Client) FetchActivities(ctx context.Context, p query.Params) (Page, error) {
	var wire wirePage
	if err := c.do(ctx, http.MethodGet, "/api/activities", p.Values(), nil, &wire); err != nil {
		return Page{}, err
	}
	page := Page{
		Results:      make([]ContentRecord, 0, len(wire.Results)),
		TotalRecords: looseInt(wire.TotalRecords),
	}
	for _, w := range wire.Results {
		page.Results = append(page.Results, w.normalize())
	}
	if page.TotalRecords < len(page.Results) {
		page.TotalRecords = len(page.Results)
	}
	return page, nil
}

// GetContent fetches the current state of one record.
func (c *Client) GetContent(ctx context.Context, id int) (ContentRecord, error) {
	var wire wireRecord
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/content/%d", id), nil, nil, &wire); err != nil {
		return ContentRecord{}, err
	}
	return wire.normalize(), nil
}

// GetContentVersion fetches a record with its editable fields as of the given
// version snapshot. Version and lock metadata still reflect the current
// record, not the historical version.
func (c *Client) GetContentVersion(ctx context.Context, id, version int) (ContentRecord, error) {
	var wire wireRecord
	path := fmt.Sprintf("/api/content/%d/versions/%d", id, version)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &wire); err != nil {
		return ContentRecord{}, err
	}
	return wire.normalize(), nil
}

type statusBody struct {
	Status *int `json:"status,omitempty"`
}

type successResp struct {
	Success bool `json:"success"`
}

// UpdateStatus is the sole mutation entry point for workflow transitions.
// The server applies the lock side effects of the target status atomically
// with the status change. Implements workflow.StatusMutator.
func (c *Client) UpdateStatus(ctx context.Context, id int, target workflow.Status) error {
	n := int(target)
	var resp successResp
	path := fmt.Sprintf("/api/content/%d/status", id)
	if err := c.do(ctx, http.MethodPut, path, nil, statusBody{Status: &n}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("api: status update of record %d rejected", id)
	}
	return nil
}

// ReleaseLock is the status-less variant of the status endpoint: a generic
// unlock/refresh. No workflow action reaches it; locks normally release as a
// side effect of leaving a locked status.
func (c *Client) ReleaseLock(ctx context.Context, id int) error {
	var resp successResp
	path := fmt.Sprintf("/api/content/%d/status", id)
	if err := c.do(ctx, http.MethodPut, path, nil, statusBody{}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("api: lock release of record %d rejected", id)
	}
	return nil
}

type commentBody struct {
	ContentID   int    `json:"content_id"`
	CommentText string `json:"comment_text"`
}

type commentResp struct {
	Data wireComment `json:"data"`
}

// AddComment appends a comment to a record. Comments are append-only.
func (c *Client) AddComment(ctx context.Context, id int, text string) (Comment, error) {
	var resp commentResp
	path := fmt.Sprintf("/api/content/%d/comments", id)
	err := c.do(ctx, http.MethodPost, path, nil, commentBody{ContentID: id, CommentText: text}, &resp)
	if err != nil {
		return Comment{}, err
	}
	return Comment{
		ID:          looseInt(resp.Data.ID),
		Text:        resp.Data.Text,
		CreatedBy:   looseInt(resp.Data.CreatedBy),
		CreatedName: resp.Data.CreatedName,
		CreatedDate: resp.Data.CreatedDate,
	}, nil
}

type wireCounts struct {
	Drafts      json.RawMessage `json:"drafts"`
	InputQueue  json.RawMessage `json:"input_queue"`
	OutputQueue json.RawMessage `json:"output_queue"`
	Returned    json.RawMessage `json:"returned"`
	Published   json.RawMessage `json:"published"`
}

// FetchCounts recomputes the badge counters. Wired into workflow.Counts as
// its fetcher.
func (c *Client) FetchCounts(ctx context.Context) (workflow.CountsSnapshot, error) {
	var wire wireCounts
	if err := c.do(ctx, http.MethodGet, "/api/counts", nil, nil, &wire); err != nil {
		return workflow.CountsSnapshot{}, err
	}
	return workflow.CountsSnapshot{
		Drafts:      looseInt(wire.Drafts),
		InputQueue:  looseInt(wire.InputQueue),
		OutputQueue: looseInt(wire.OutputQueue),
		Returned:    looseInt(wire.Returned),
		Published:   looseInt(wire.Published),
	}, nil
}
