package tables

import (
	"context"
	"fmt"
	"time"

	"github.com/lizark9x/connor-bot/internal/notion"
)

// RecordActivity writes one row to the activity log table. Logging is
// best-effort: failures are logged locally and swallowed so a broken log
// table can never block a send.
func (s *Store) RecordActivity(ctx context.Context, kind, text, result string) {
	if s.cfg.Log == "" {
		return
	}
	now := s.now().In(s.loc)
	props := map[string]any{
		"Title":  notion.TitleProp(fmt.Sprintf("%s @ %s", kind, now.Format("2006-01-02 15:04"))),
		"When":   notion.DateProp(now.Format(time.RFC3339)),
		"Type":   notion.RichTextProp(kind),
		"Text":   notion.RichTextProp(text),
		"Result": notion.RichTextProp(result),
	}
	if err := s.client.CreatePage(ctx, s.cfg.Log, props); err != nil {
		s.logger.Warn("record activity", "kind", kind, "error", err)
	}
}
