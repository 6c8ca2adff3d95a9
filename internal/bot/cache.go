package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lizark9x/connor-bot/internal/domain"
	"github.com/lizark9x/connor-bot/internal/metrics"
	"github.com/lizark9x/connor-bot/internal/notion"
)

// TableClient is the slice of the document-database API the bot core
// needs. Satisfied by *notion.Client.
type TableClient interface {
	Query(ctx context.Context, databaseID string, req notion.QueryRequest) (notion.QueryResponse, error)
	QueryAll(ctx context.Context, databaseID string, filter map[string]any, pageSize int) ([]notion.Page, error)
	UpdatePage(ctx context.Context, pageID string, props map[string]any) error
}

// ScheduleCache holds the enabled schedule entries fetched from the remote
// table. The cached list is replaced wholesale on refresh; if a refresh
// fails the previous entries are kept (fail-soft).
type ScheduleCache struct {
	client     TableClient
	databaseID string
	ttl        time.Duration
	logger     *slog.Logger
	now        func() time.Time

	mu        sync.Mutex
	entries   []domain.ScheduleEntry
	fetchedAt time.Time
}

func NewScheduleCache(client TableClient, databaseID string, ttl time.Duration, logger *slog.Logger) *ScheduleCache {
	return &ScheduleCache{
		client:     client,
		databaseID: databaseID,
		ttl:        ttl,
		logger:     logger.With("component", "schedule_cache"),
		now:        time.Now,
	}
}

// SetNow overrides the clock. Used by tests.
func (c *ScheduleCache) SetNow(now func() time.Time) {
	c.now = now
}

// Refresh re-fetches the schedule when forced or when the cache is older
// than its TTL. Fetch failures never propagate: the stale entries stay.
func (c *ScheduleCache) Refresh(ctx context.Context, force bool) {
	if c.client == nil || c.databaseID == "" {
		return
	}

	c.mu.Lock()
	fresh := !force && c.now().Sub(c.fetchedAt) < c.ttl && !c.fetchedAt.IsZero()
	c.mu.Unlock()
	if fresh {
		return
	}

	entries, err := c.fetchRows(ctx)
	if err != nil {
		metrics.ScheduleCacheRefreshesTotal.WithLabelValues("error").Inc()
		c.logger.Error("refresh schedule", "error", err)
		return
	}

	c.mu.Lock()
	c.entries = entries
	c.fetchedAt = c.now()
	c.mu.Unlock()

	metrics.ScheduleCacheRefreshesTotal.WithLabelValues("ok").Inc()
	metrics.ScheduleCacheEntries.Set(float64(len(entries)))
	c.logger.Debug("schedule refreshed", "entries", len(entries))
}

// Match returns the cached entries that fire at now, in cache order.
func (c *ScheduleCache) Match(now time.Time) []domain.ScheduleEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	var matched []domain.ScheduleEntry
	for i := range c.entries {
		if c.entries[i].Matches(now) {
			matched = append(matched, c.entries[i])
		}
	}
	return matched
}

// FetchRows reads the current enabled schedule straight from the remote
// table, bypassing the cache. Used by the list_schedule command.
func (c *ScheduleCache) FetchRows(ctx context.Context) ([]domain.ScheduleEntry, error) {
	if c.client == nil || c.databaseID == "" {
		return nil, nil
	}
	return c.fetchRows(ctx)
}

func (c *ScheduleCache) fetchRows(ctx context.Context) ([]domain.ScheduleEntry, error) {
	pages, err := c.client.QueryAll(ctx, c.databaseID, map[string]any{
		"property": "Enabled",
		"checkbox": map[string]any{"equals": true},
	}, 100)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ScheduleEntry, 0, len(pages))
	for _, p := range pages {
		e := entryFromPage(p)
		if e.CronExpr != "" {
			if err := domain.ValidateCron(e.CronExpr); err != nil {
				c.logger.Warn("skipping schedule row with bad cron", "id", e.ID, "cron", e.CronExpr)
				continue
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func entryFromPage(p notion.Page) domain.ScheduleEntry {
	kind := strings.ToLower(p.SelectName("Type"))
	if kind == "" {
		kind = "custom"
	}
	timeStr := p.Text("Time")
	if timeStr == "" {
		timeStr = "00:00"
	}
	title := p.TitleText("Title")
	if title == "" {
		title = "scheduled"
	}
	return domain.ScheduleEntry{
		ID:               p.ID,
		Title:            title,
		Kind:             kind,
		Time:             timeStr,
		Days:             p.MultiSelectNames("Days"),
		Text:             p.Text("Text"),
		TemplateCategory: p.Text("TemplateCategory"),
		CronExpr:         p.Text("Cron"),
	}
}
