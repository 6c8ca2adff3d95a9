package tables

import (
	"context"

	"github.com/lizark9x/connor-bot/internal/notion"
)

func (s *Store) WebsiteAddPage(ctx context.Context, name, content, url string) (string, error) {
	if s.cfg.Website == "" {
		return "website db not set", nil
	}
	props := map[string]any{
		"Name": notion.TitleProp(name),
	}
	if content != "" {
		props["Content"] = notion.RichTextProp(content)
	}
	if url != "" {
		props["URL"] = notion.URLProp(url)
	}
	if err := s.client.CreatePage(ctx, s.cfg.Website, props); err != nil {
		return "", err
	}
	return "page added", nil
}

// WebsiteAppend appends content to an existing page's Content property.
func (s *Store) WebsiteAppend(ctx context.Context, name, content string) (string, error) {
	if s.cfg.Website == "" {
		return "website db not set", nil
	}
	page := s.findByTitle(ctx, s.cfg.Website, "Name", name)
	if page == nil {
		return "not found", nil
	}
	existing := page.Text("Content")
	if existing != "" {
		content = existing + "\n" + content
	}
	if err := s.client.UpdatePage(ctx, page.ID, map[string]any{
		"Content": notion.RichTextProp(content),
	}); err != nil {
		return "", err
	}
	return "appended", nil
}
