package tables

import (
	"context"

	"github.com/lizark9x/connor-bot/internal/notion"
)

func (s *Store) ProjectAdd(ctx context.Context, name, due, notes, status string) (string, error) {
	if s.cfg.Projects == "" {
		return "projects db not set", nil
	}
	if status == "" {
		status = "Planned"
	}
	props := map[string]any{
		"Name":   notion.TitleProp(name),
		"Status": notion.SelectProp(status),
	}
	if due != "" {
		props["Due"] = notion.DateProp(due)
	}
	if notes != "" {
		props["Notes"] = notion.RichTextProp(notes)
	}
	if err := s.client.CreatePage(ctx, s.cfg.Projects, props); err != nil {
		return "", err
	}
	return "project added", nil
}

func (s *Store) ProjectStatus(ctx context.Context, name, status string) (string, error) {
	if s.cfg.Projects == "" {
		return "projects db not set", nil
	}
	page := s.findByTitle(ctx, s.cfg.Projects, "Name", name)
	if page == nil {
		return "not found", nil
	}
	if err := s.client.UpdatePage(ctx, page.ID, map[string]any{
		"Status": notion.SelectProp(status),
	}); err != nil {
		return "", err
	}
	return "project updated", nil
}

func (s *Store) ProjectNote(ctx context.Context, name, note string) (string, error) {
	if s.cfg.Projects == "" {
		return "projects db not set", nil
	}
	page := s.findByTitle(ctx, s.cfg.Projects, "Name", name)
	if page == nil {
		return "not found", nil
	}
	if err := s.client.UpdatePage(ctx, page.ID, map[string]any{
		"Notes": notion.RichTextProp(note),
	}); err != nil {
		return "", err
	}
	return "note saved", nil
}
