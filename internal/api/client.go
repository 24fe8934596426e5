// Package api is the typed client for the daily-tracker backend. All
// backend calls in the application go through it. Each call is a single
// attempt: retry and timeout policy belong to the caller's http.Client,
// not to this layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// Client talks to the backend REST API.
type Client struct {
	base  string
	httpc *http.Client
}

// NewClient creates a client for the given base URL (for example
// http://localhost:8000/api/v1). A nil http.Client falls back to the
// default client; serve wires one whose transport is the offline cache
// worker.
func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// do performs one request. A non-nil body is serialized as JSON. A non-nil
// out receives the parsed 2xx response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &RequestError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

// decodeResponse turns a response into out or a RequestError. The error
// message prefers the backend's JSON detail field and falls back to the
// bare status.
func decodeResponse(resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Kind: KindNetwork, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fmt.Sprintf("HTTP %d", resp.StatusCode)
		var errBody struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &errBody) == nil && errBody.Detail != "" {
			message = errBody.Detail
		}
		return &RequestError{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode, Message: message}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// ---- records ----

type recordCreate struct {
	Date         string   `json:"date"`
	RawInput     string   `json:"raw_input"`
	TasksPlanned []string `json:"tasks_planned"`
}

// CreateRecord creates a new daily record.
func (c *Client) CreateRecord(ctx context.Context, date, rawInput string, tasksPlanned []string) (*Record, error) {
	if tasksPlanned == nil {
		tasksPlanned = []string{}
	}
	var rec Record
	err := c.do(ctx, http.MethodPost, "/records", nil, recordCreate{Date: date, RawInput: rawInput, TasksPlanned: tasksPlanned}, &rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListRecords fetches records in the inclusive date range.
func (c *Client) ListRecords(ctx context.Context, startDate, endDate string) ([]Record, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}
	var recs []Record
	if err := c.do(ctx, http.MethodGet, "/records", q, nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// GetRecord fetches a single record by date key.
func (c *Client) GetRecord(ctx context.Context, date string) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, "/records/"+date, nil, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateRecord replaces a record's log and completed tasks.
func (c *Client) UpdateRecord(ctx context.Context, date string, upd RecordUpdate) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPut, "/records/"+date, nil, upd, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteRecord removes a record. The backend answers 204.
func (c *Client) DeleteRecord(ctx context.Context, date string) error {
	return c.do(ctx, http.MethodDelete, "/records/"+date, nil, nil, nil)
}

// ---- analysis ----

// GenerateAnalysis asks the backend to (re)generate the daily analysis.
func (c *Client) GenerateAnalysis(ctx context.Context, date string) (*Analysis, error) {
	var a Analysis
	if err := c.do(ctx, http.MethodPost, "/analysis/"+date+"/generate", nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAnalysis fetches a stored daily analysis.
func (c *Client) GetAnalysis(ctx context.Context, date string) (*Analysis, error) {
	var a Analysis
	if err := c.do(ctx, http.MethodGet, "/analysis/"+date, nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAnalyses fetches analyses in the inclusive date range.
func (c *Client) ListAnalyses(ctx context.Context, startDate, endDate string) ([]Analysis, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}
	var as []Analysis
	if err := c.do(ctx, http.MethodGet, "/analysis", q, nil, &as); err != nil {
		return nil, err
	}
	return as, nil
}

// ---- weekly ----

// GetWeekly fetches a stored weekly report by ISO week id.
func (c *Client) GetWeekly(ctx context.Context, weekID string) (*WeeklyReport, error) {
	var w WeeklyReport
	if err := c.do(ctx, http.MethodGet, "/weekly/"+weekID, nil, nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// GenerateWeekly asks the backend to (re)generate a weekly report.
func (c *Client) GenerateWeekly(ctx context.Context, weekID string) (*WeeklyReport, error) {
	var w WeeklyReport
	if err := c.do(ctx, http.MethodPost, "/weekly/"+weekID+"/generate", nil, nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// ---- screenshots ----

// UploadScreenshot sends a screen-time screenshot as multipart form data
// and returns the extracted usage breakdown.
func (c *Client) UploadScreenshot(ctx context.Context, date, filename string, file io.Reader) (*ScreenTime, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("reading screenshot: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/screenshots/"+date, &buf)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &RequestError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	var payload screenshotResponse
	if err := decodeResponse(resp, &payload); err != nil {
		return nil, err
	}
	return &payload.ScreenTime, nil
}
