package tables

import (
	"context"
	"fmt"

	"github.com/lizark9x/connor-bot/internal/notion"
)

func (s *Store) HabitAdd(ctx context.Context, name string) (string, error) {
	if s.cfg.Habits == "" {
		return "habits db not set", nil
	}
	if err := s.client.CreatePage(ctx, s.cfg.Habits, map[string]any{
		"Habit": notion.TitleProp(name),
	}); err != nil {
		return "", err
	}
	return "habit added", nil
}

// HabitMark records the habit as done for the given date (today when empty).
func (s *Store) HabitMark(ctx context.Context, name, date, notes string) (string, error) {
	if s.cfg.Habits == "" {
		return "habits db not set", nil
	}
	if date == "" {
		date = s.today()
	}
	props := map[string]any{
		"Habit": notion.TitleProp(name),
		"Date":  notion.DateProp(date),
		"Done":  notion.CheckboxProp(true),
	}
	if notes != "" {
		props["Notes"] = notion.RichTextProp(notes)
	}
	if err := s.client.CreatePage(ctx, s.cfg.Habits, props); err != nil {
		return "", err
	}
	return "habit marked", nil
}

func (s *Store) HabitToday(ctx context.Context) (string, error) {
	if s.cfg.Habits == "" {
		return "habits db not set", nil
	}
	resp, err := s.client.Query(ctx, s.cfg.Habits, notion.QueryRequest{
		Filter: map[string]any{
			"property": "Date",
			"date":     map[string]any{"equals": s.today()},
		},
		PageSize: 50,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Marked %d habits today.", len(resp.Results)), nil
}

func (s *Store) HabitSummary(ctx context.Context) (string, error) {
	if s.cfg.Habits == "" {
		return "habits db not set", nil
	}
	resp, err := s.client.Query(ctx, s.cfg.Habits, notion.QueryRequest{PageSize: 100})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Recorded entries: %d", len(resp.Results)), nil
}
