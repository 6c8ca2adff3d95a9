package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/lizark9x/connor-bot/internal/domain"
	"github.com/lizark9x/connor-bot/internal/metrics"
	"github.com/lizark9x/connor-bot/internal/notion"
	"github.com/lizark9x/connor-bot/internal/requestid"
)

// Drainer fetches all Pending command records on its own interval,
// executes each exactly once and writes back a terminal Done status with a
// short result string. Commands are never retried and never left Pending
// after an execution attempt: at-most-once, not at-least-once.
type Drainer struct {
	client     TableClient
	databaseID string
	executor   *Executor
	interval   time.Duration
	logger     *slog.Logger
}

func NewDrainer(client TableClient, databaseID string, executor *Executor, interval time.Duration, logger *slog.Logger) *Drainer {
	return &Drainer{
		client:     client,
		databaseID: databaseID,
		executor:   executor,
		interval:   interval,
		logger:     logger.With("component", "drainer"),
	}
}

func (d *Drainer) Start(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("drainer started", "interval", d.interval)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("drainer shut down")
			return
		case <-ticker.C:
			d.Drain(ctx)
		}
	}
}

// Drain runs one drain cycle.
func (d *Drainer) Drain(ctx context.Context) {
	if d.client == nil || d.databaseID == "" {
		return
	}

	start := time.Now()
	defer func() { metrics.DrainDuration.Observe(time.Since(start).Seconds()) }()

	resp, err := d.client.Query(ctx, d.databaseID, notion.QueryRequest{
		Filter: map[string]any{
			"property": "Status",
			"select":   map[string]any{"equals": string(domain.CommandPending)},
		},
		PageSize: 50,
	})
	if err != nil {
		d.logger.Error("fetch pending commands", "error", err)
		return
	}

	for _, page := range resp.Results {
		cmd := commandFromPage(page)
		cmdCtx := requestid.WithCommandID(ctx, cmd.PageID)

		result := d.executor.Execute(cmdCtx, cmd)

		outcome := "ok"
		if strings.HasPrefix(result, "error:") {
			outcome = "error"
		}
		metrics.CommandsExecutedTotal.WithLabelValues(cmd.Name, outcome).Inc()
		d.logger.Info("command executed", "command", cmd.Name, "result", result)

		// Best-effort terminal transition. If this write fails the record
		// stays Pending and will be executed again next cycle.
		if err := d.client.UpdatePage(cmdCtx, cmd.PageID, map[string]any{
			"Status": notion.SelectProp(string(domain.CommandDone)),
			"Result": notion.RichTextProp(result),
		}); err != nil {
			d.logger.Error("mark command done", "command", cmd.Name, "error", err)
		}
	}
}

func commandFromPage(p notion.Page) domain.Command {
	cmd := domain.Command{
		PageID:           p.ID,
		Name:             p.SelectName("Command"),
		Text:             p.Text("Text"),
		City:             p.Text("City"),
		Category:         p.Text("Category"),
		TypeName:         p.SelectName("Type"),
		Time:             p.Text("Time"),
		Days:             p.Text("Days"),
		CronExpr:         p.Text("Cron"),
		TemplateCategory: p.Text("TemplateCategory"),
		ItemName:         p.Text("Name"),
		Company:          p.Text("Company"),
		URL:              p.URLValue("URL"),
		Date:             p.DateStart("Date"),
		Due:              p.DateStart("Due"),
		Stage:            p.Text("Stage"),
		Priority:         p.Text("Priority"),
		Tags:             p.Text("Tags"),
		Notes:            p.Text("Notes"),
	}
	if amount, ok := p.NumberValue("Amount"); ok {
		cmd.Amount = &amount
	}
	return cmd
}
