package bot

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/lizark9x/connor-bot/internal/domain"
	"github.com/lizark9x/connor-bot/internal/notion"
)

// Selector resolves a schedule entry to literal message text: literal text
// wins, then a random row from the remote template table for the entry's
// category, then the built-in default pool for that category.
type Selector struct {
	client     TableClient
	databaseID string
	logger     *slog.Logger
	pick       func(n int) int
}

func NewSelector(client TableClient, databaseID string, logger *slog.Logger) *Selector {
	return &Selector{
		client:     client,
		databaseID: databaseID,
		logger:     logger.With("component", "selector"),
		pick:       rand.Intn,
	}
}

// SetPick overrides the random choice. Used by tests.
func (s *Selector) SetPick(pick func(n int) int) {
	s.pick = pick
}

// Resolve returns the message text for the entry, or "" for weather
// entries, which are a side-effecting action rather than a text message.
func (s *Selector) Resolve(ctx context.Context, entry domain.ScheduleEntry) string {
	if entry.Kind == "weather" {
		return ""
	}
	if entry.Text != "" {
		return entry.Text
	}

	category := entry.TemplateCategory
	if category == "" {
		category = entry.Kind
	}
	if category == "" {
		category = "day"
	}

	if pool := s.remotePool(ctx, category); len(pool) > 0 {
		return pool[s.pick(len(pool))]
	}
	pool := domain.DefaultPool(category)
	return pool[s.pick(len(pool))]
}

// PickDefault returns a random text from the given built-in pool.
func (s *Selector) PickDefault(pool []string) string {
	return pool[s.pick(len(pool))]
}

func (s *Selector) remotePool(ctx context.Context, category string) []string {
	if s.client == nil || s.databaseID == "" {
		return nil
	}
	resp, err := s.client.Query(ctx, s.databaseID, notion.QueryRequest{
		Filter: map[string]any{
			"property":  "Category",
			"rich_text": map[string]any{"equals": category},
		},
		PageSize: 100,
	})
	if err != nil {
		s.logger.Warn("template lookup failed, using defaults", "category", category, "error", err)
		return nil
	}
	var pool []string
	for _, p := range resp.Results {
		if text := p.Text("Text"); text != "" {
			pool = append(pool, text)
		}
	}
	return pool
}
