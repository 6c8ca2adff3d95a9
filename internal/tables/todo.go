package tables

import (
	"context"
	"fmt"
	"strings"

	"github.com/lizark9x/connor-bot/internal/notion"
)

func (s *Store) TodoAdd(ctx context.Context, name, due, priority, tags, notes string) (string, error) {
	if s.cfg.Todo == "" {
		return "todo db not set", nil
	}
	props := map[string]any{
		"Title":  notion.TitleProp(name),
		"Status": notion.SelectProp("Todo"),
	}
	if due != "" {
		props["Due"] = notion.DateProp(due)
	}
	if priority != "" {
		props["Priority"] = notion.SelectProp(priority)
	}
	if tagList := splitTags(tags); len(tagList) > 0 {
		props["Tags"] = notion.MultiSelectProp(tagList)
	}
	if notes != "" {
		props["Notes"] = notion.RichTextProp(notes)
	}
	if err := s.client.CreatePage(ctx, s.cfg.Todo, props); err != nil {
		return "", err
	}
	return "todo added", nil
}

func (s *Store) TodoDone(ctx context.Context, name string) (string, error) {
	if s.cfg.Todo == "" {
		return "todo db not set", nil
	}
	page := s.findByTitle(ctx, s.cfg.Todo, "Title", name)
	if page == nil {
		return "not found", nil
	}
	if err := s.client.UpdatePage(ctx, page.ID, map[string]any{
		"Status": notion.SelectProp("Done"),
	}); err != nil {
		return "", err
	}
	return "todo done", nil
}

func (s *Store) TodoList(ctx context.Context) (string, error) {
	if s.cfg.Todo == "" {
		return "todo db not set", nil
	}
	resp, err := s.client.Query(ctx, s.cfg.Todo, notion.QueryRequest{PageSize: 20})
	if err != nil {
		return "", err
	}
	var lines []string
	for _, p := range resp.Results {
		line := fmt.Sprintf("- %s [%s]", p.TitleText("Title"), p.SelectName("Status"))
		if due := p.DateStart("Due"); due != "" {
			line += " → " + due
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "empty", nil
	}
	return strings.Join(lines, "\n"), nil
}

func splitTags(tags string) []string {
	var out []string
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
