// Package tables implements the bot's CRUD helpers over the remote
// document-database: to-do, projects, budget, jobs, inspiration, habits,
// website pages and the activity log. Every helper returns a short
// human-readable result string; an unset table id yields a "not set"
// result instead of an error, and a missed title lookup yields "not found".
package tables

import (
	"context"
	"log/slog"
	"time"

	"github.com/lizark9x/connor-bot/internal/notion"
)

// Client is the subset of the document-database API the helpers need.
// Satisfied by *notion.Client.
type Client interface {
	Query(ctx context.Context, databaseID string, req notion.QueryRequest) (notion.QueryResponse, error)
	QueryAll(ctx context.Context, databaseID string, filter map[string]any, pageSize int) ([]notion.Page, error)
	CreatePage(ctx context.Context, databaseID string, props map[string]any) error
	UpdatePage(ctx context.Context, pageID string, props map[string]any) error
}

// Config holds the per-table database ids. Any of them may be empty,
// which disables the corresponding feature set.
type Config struct {
	Todo      string
	Projects  string
	Website   string
	Budget    string
	Jobs      string
	Inspo     string
	Habits    string
	Templates string
	Schedule  string
	Log       string
}

type Store struct {
	client Client
	cfg    Config
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewStore(client Client, cfg Config, loc *time.Location, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
		logger: logger.With("component", "tables"),
		loc:    loc,
		now:    time.Now,
	}
}

// SetNow overrides the clock. Used by tests.
func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}

func (s *Store) today() string {
	return s.now().In(s.loc).Format("2006-01-02")
}

// findByTitle returns the first row whose title property contains title,
// or nil when there is no match or the lookup fails.
func (s *Store) findByTitle(ctx context.Context, databaseID, titleProp, title string) *notion.Page {
	resp, err := s.client.Query(ctx, databaseID, notion.QueryRequest{
		Filter: map[string]any{
			"property": titleProp,
			"title":    map[string]any{"contains": title},
		},
		PageSize: 5,
	})
	if err != nil {
		s.logger.Warn("find by title", "database", databaseID, "error", err)
		return nil
	}
	if len(resp.Results) == 0 {
		return nil
	}
	return &resp.Results[0]
}
