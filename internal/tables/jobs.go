package tables

import (
	"context"
	"fmt"
	"strings"

	"github.com/lizark9x/connor-bot/internal/notion"
)

func (s *Store) JobAdd(ctx context.Context, role, company, link, stage, notes string) (string, error) {
	if s.cfg.Jobs == "" {
		return "jobs db not set", nil
	}
	if stage == "" {
		stage = "Applied"
	}
	props := map[string]any{
		"Role":    notion.TitleProp(role),
		"Stage":   notion.SelectProp(stage),
		"Applied": notion.DateProp(s.today()),
	}
	if company != "" {
		props["Company"] = notion.RichTextProp(company)
	}
	if link != "" {
		props["Link"] = notion.URLProp(link)
	}
	if notes != "" {
		props["Notes"] = notion.RichTextProp(notes)
	}
	if err := s.client.CreatePage(ctx, s.cfg.Jobs, props); err != nil {
		return "", err
	}
	return "job added", nil
}

// JobStage moves an application to a new stage. The lookup tries the role
// title first, then falls back to a company substring match.
func (s *Store) JobStage(ctx context.Context, roleOrCompany, stage string) (string, error) {
	if s.cfg.Jobs == "" {
		return "jobs db not set", nil
	}
	page := s.findByTitle(ctx, s.cfg.Jobs, "Role", roleOrCompany)
	if page == nil {
		resp, err := s.client.Query(ctx, s.cfg.Jobs, notion.QueryRequest{
			Filter: map[string]any{
				"property":  "Company",
				"rich_text": map[string]any{"contains": roleOrCompany},
			},
			PageSize: 1,
		})
		if err == nil && len(resp.Results) > 0 {
			page = &resp.Results[0]
		}
	}
	if page == nil {
		return "not found", nil
	}
	if err := s.client.UpdatePage(ctx, page.ID, map[string]any{
		"Stage": notion.SelectProp(stage),
	}); err != nil {
		return "", err
	}
	return "job updated", nil
}

func (s *Store) JobList(ctx context.Context) (string, error) {
	if s.cfg.Jobs == "" {
		return "jobs db not set", nil
	}
	resp, err := s.client.Query(ctx, s.cfg.Jobs, notion.QueryRequest{PageSize: 50})
	if err != nil {
		return "", err
	}
	var lines []string
	for _, p := range resp.Results {
		company := p.Text("Company")
		if company == "" {
			company = "—"
		}
		lines = append(lines, fmt.Sprintf("- %s @ %s [%s]",
			p.TitleText("Role"), company, p.SelectName("Stage")))
	}
	if len(lines) == 0 {
		return "empty", nil
	}
	return strings.Join(lines, "\n"), nil
}
