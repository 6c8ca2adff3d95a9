// Package notion is a thin client for the hosted document-database API the
// bot keeps all of its state in: query-by-filter with cursor pagination,
// create page, update page. Only the property shapes the bot consumes are
// modeled.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
)

type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
	logger     *slog.Logger
}

func NewClient(token string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      token,
		baseURL:    defaultBaseURL,
		logger:     logger.With("component", "notion"),
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// QueryRequest is one page of a database query.
type QueryRequest struct {
	Filter      map[string]any `json:"filter,omitempty"`
	StartCursor string         `json:"start_cursor,omitempty"`
	PageSize    int            `json:"page_size,omitempty"`
}

// QueryResponse is the API's paginated query result.
type QueryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// Query fetches a single page of rows matching filter.
func (c *Client) Query(ctx context.Context, databaseID string, req QueryRequest) (QueryResponse, error) {
	var resp QueryResponse
	url := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, databaseID)
	if err := c.do(ctx, http.MethodPost, url, req, &resp); err != nil {
		return QueryResponse{}, fmt.Errorf("query database %s: %w", databaseID, err)
	}
	return resp, nil
}

// QueryAll follows cursors until the query is exhausted.
func (c *Client) QueryAll(ctx context.Context, databaseID string, filter map[string]any, pageSize int) ([]Page, error) {
	var pages []Page
	cursor := ""
	for {
		resp, err := c.Query(ctx, databaseID, QueryRequest{
			Filter:      filter,
			StartCursor: cursor,
			PageSize:    pageSize,
		})
		if err != nil {
			return nil, err
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore {
			return pages, nil
		}
		cursor = resp.NextCursor
	}
}

// CreatePage creates a row in the given database.
func (c *Client) CreatePage(ctx context.Context, databaseID string, props map[string]any) error {
	body := map[string]any{
		"parent":     map[string]any{"database_id": databaseID},
		"properties": props,
	}
	url := c.baseURL + "/v1/pages"
	if err := c.do(ctx, http.MethodPost, url, body, nil); err != nil {
		return fmt.Errorf("create page in %s: %w", databaseID, err)
	}
	return nil
}

// UpdatePage patches properties on an existing row.
func (c *Client) UpdatePage(ctx context.Context, pageID string, props map[string]any) error {
	body := map[string]any{"properties": props}
	url := c.baseURL + "/v1/pages/" + pageID
	if err := c.do(ctx, http.MethodPatch, url, body, nil); err != nil {
		return fmt.Errorf("update page %s: %w", pageID, err)
	}
	return nil
}

// Ping verifies the credential by fetching the bot user. Used by the
// readiness check.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.baseURL+"/v1/users/me", nil, nil)
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body) // drain so the connection can be reused by the pool
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
