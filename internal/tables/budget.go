package tables

import (
	"context"
	"fmt"

	"github.com/lizark9x/connor-bot/internal/notion"
)

// BudgetAdd records one income or expense row. kind is "income" or
// "expense"; date defaults to today when empty.
func (s *Store) BudgetAdd(ctx context.Context, kind string, amount float64, category, date, notes string) (string, error) {
	if s.cfg.Budget == "" {
		return "budget db not set", nil
	}
	if date == "" {
		date = s.today()
	}
	props := map[string]any{
		"Title":  notion.TitleProp(fmt.Sprintf("%s %.2f", kind, amount)),
		"Type":   notion.SelectProp(kind),
		"Amount": notion.NumberProp(amount),
		"Date":   notion.DateProp(date),
	}
	if category != "" {
		props["Category"] = notion.RichTextProp(category)
	}
	if notes != "" {
		props["Notes"] = notion.RichTextProp(notes)
	}
	if err := s.client.CreatePage(ctx, s.cfg.Budget, props); err != nil {
		return "", err
	}
	return kind + " added", nil
}

// BudgetSummary totals income and expense rows for one "YYYY-MM" month.
func (s *Store) BudgetSummary(ctx context.Context, monthYM string) (string, error) {
	if s.cfg.Budget == "" {
		return "budget db not set", nil
	}
	var year, month int
	if _, err := fmt.Sscanf(monthYM, "%d-%d", &year, &month); err != nil || month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month %q, expected YYYY-MM", monthYM)
	}
	start := fmt.Sprintf("%04d-%02d-01", year, month)
	nextYear, nextMonth := year, month+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}
	end := fmt.Sprintf("%04d-%02d-01", nextYear, nextMonth)

	resp, err := s.client.Query(ctx, s.cfg.Budget, notion.QueryRequest{
		Filter: map[string]any{
			"and": []map[string]any{
				{"property": "Date", "date": map[string]any{"on_or_after": start}},
				{"property": "Date", "date": map[string]any{"before": end}},
			},
		},
		PageSize: 200,
	})
	if err != nil {
		return "", err
	}

	var income, expense float64
	for _, p := range resp.Results {
		amount, _ := p.NumberValue("Amount")
		switch p.SelectName("Type") {
		case "income":
			income += amount
		case "expense":
			expense += amount
		}
	}
	return fmt.Sprintf("%s\nIncome: %.2f\nExpense: %.2f\nBalance: %.2f",
		monthYM, income, expense, income-expense), nil
}
