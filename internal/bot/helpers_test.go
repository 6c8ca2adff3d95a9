package bot_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/lizark9x/connor-bot/internal/notion"
	"github.com/lizark9x/connor-bot/internal/weather"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeClient implements both bot.TableClient and tables.Client. Unset
// funcs behave as an empty database.
type fakeClient struct {
	query      func(ctx context.Context, databaseID string, req notion.QueryRequest) (notion.QueryResponse, error)
	queryAll   func(ctx context.Context, databaseID string, filter map[string]any, pageSize int) ([]notion.Page, error)
	createPage func(ctx context.Context, databaseID string, props map[string]any) error
	updatePage func(ctx context.Context, pageID string, props map[string]any) error
}

func (f *fakeClient) Query(ctx context.Context, databaseID string, req notion.QueryRequest) (notion.QueryResponse, error) {
	if f.query == nil {
		return notion.QueryResponse{}, nil
	}
	return f.query(ctx, databaseID, req)
}

func (f *fakeClient) QueryAll(ctx context.Context, databaseID string, filter map[string]any, pageSize int) ([]notion.Page, error) {
	if f.queryAll == nil {
		return nil, nil
	}
	return f.queryAll(ctx, databaseID, filter, pageSize)
}

func (f *fakeClient) CreatePage(ctx context.Context, databaseID string, props map[string]any) error {
	if f.createPage == nil {
		return nil
	}
	return f.createPage(ctx, databaseID, props)
}

func (f *fakeClient) UpdatePage(ctx context.Context, pageID string, props map[string]any) error {
	if f.updatePage == nil {
		return nil
	}
	return f.updatePage(ctx, pageID, props)
}

type fakeMessenger struct {
	err  error
	sent []string
}

func (f *fakeMessenger) Send(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

type fakeEmail struct {
	err     error
	to      string
	subject string
	body    string
}

func (f *fakeEmail) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to, f.subject, f.body = to, subject, body
	return nil
}

type fakeWeather struct {
	current func(ctx context.Context, city string) (weather.Report, error)
}

func (f *fakeWeather) Current(ctx context.Context, city string) (weather.Report, error) {
	return f.current(ctx, city)
}

func titleProp(s string) notion.Property {
	return notion.Property{Title: []notion.RichText{{Text: &notion.TextContent{Content: s}}}}
}

func textProp(s string) notion.Property {
	return notion.Property{RichText: []notion.RichText{{Text: &notion.TextContent{Content: s}}}}
}

func selectProp(name string) notion.Property {
	return notion.Property{Select: &notion.SelectOption{Name: name}}
}
