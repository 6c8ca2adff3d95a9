package tables

import (
	"context"
	"fmt"

	"github.com/lizark9x/connor-bot/internal/domain"
	"github.com/lizark9x/connor-bot/internal/notion"
)

func (s *Store) TemplateAdd(ctx context.Context, category, text string) (string, error) {
	if s.cfg.Templates == "" {
		return "templates db not set", nil
	}
	title := category
	if title == "" {
		title = "template"
	}
	if err := s.client.CreatePage(ctx, s.cfg.Templates, map[string]any{
		"Title":    notion.TitleProp(title),
		"Category": notion.RichTextProp(category),
		"Text":     notion.RichTextProp(text),
	}); err != nil {
		return "", err
	}
	return "template added", nil
}

// ScheduleAdd creates an enabled schedule row. Rows carry either an
// "HH:MM" time plus optional days, or a cron expression.
func (s *Store) ScheduleAdd(ctx context.Context, kind, timeStr, daysStr, cronExpr, templateCategory, text string) (string, error) {
	if s.cfg.Schedule == "" {
		return "schedule db not set", nil
	}
	if kind == "" {
		kind = "custom"
	}
	when := cronExpr
	if cronExpr != "" {
		if err := domain.ValidateCron(cronExpr); err != nil {
			return "invalid cron expression", nil
		}
	} else {
		if timeStr == "" {
			timeStr = "00:00"
		} else if err := domain.ValidateTime(timeStr); err != nil {
			return "invalid time", nil
		}
		when = timeStr
	}

	props := map[string]any{
		"Title":            notion.TitleProp(fmt.Sprintf("%s %s", kind, when)),
		"Enabled":          notion.CheckboxProp(true),
		"Type":             notion.SelectProp(kind),
		"Time":             notion.RichTextProp(timeStr),
		"Days":             notion.MultiSelectProp(domain.ParseDays(daysStr)),
		"TemplateCategory": notion.RichTextProp(templateCategory),
		"Text":             notion.RichTextProp(text),
	}
	if cronExpr != "" {
		props["Cron"] = notion.RichTextProp(cronExpr)
	}
	if err := s.client.CreatePage(ctx, s.cfg.Schedule, props); err != nil {
		return "", err
	}
	return "schedule added", nil
}
