package tables

import (
	"context"
	"strings"

	"github.com/lizark9x/connor-bot/internal/notion"
)

func (s *Store) InspoAdd(ctx context.Context, text, url, category, tags string) (string, error) {
	if s.cfg.Inspo == "" {
		return "inspo db not set", nil
	}
	title := strings.TrimSpace(text)
	if title == "" {
		title = strings.TrimSpace(url)
	}
	if title == "" {
		title = "Inspiration"
	}
	if r := []rune(title); len(r) > 200 {
		title = string(r[:200])
	}
	props := map[string]any{
		"Title": notion.TitleProp(title),
	}
	if url != "" {
		props["URL"] = notion.URLProp(url)
	}
	if category != "" {
		props["Category"] = notion.RichTextProp(category)
	}
	if tagList := splitTags(tags); len(tagList) > 0 {
		props["Tags"] = notion.MultiSelectProp(tagList)
	}
	if text != "" {
		props["Notes"] = notion.RichTextProp(text)
	}
	if err := s.client.CreatePage(ctx, s.cfg.Inspo, props); err != nil {
		return "", err
	}
	return "inspo added", nil
}

func (s *Store) InspoList(ctx context.Context) (string, error) {
	if s.cfg.Inspo == "" {
		return "inspo db not set", nil
	}
	resp, err := s.client.Query(ctx, s.cfg.Inspo, notion.QueryRequest{PageSize: 20})
	if err != nil {
		return "", err
	}
	var lines []string
	for _, p := range resp.Results {
		line := "- " + p.TitleText("Title")
		if url := p.URLValue("URL"); url != "" {
			line += " → " + url
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "empty", nil
	}
	return strings.Join(lines, "\n"), nil
}
