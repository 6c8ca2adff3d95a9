package notion_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lizark9x/connor-bot/internal/notion"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestQuery_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != "2022-06-28" {
			t.Errorf("Notion-Version = %q", got)
		}
		if r.Method != http.MethodPost || r.URL.Path != "/v1/databases/db1/query" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"results": [], "has_more": false}`))
	}))
	defer srv.Close()

	c := notion.NewClient("secret", discard)
	c.SetBaseURL(srv.URL)

	if _, err := c.Query(context.Background(), "db1", notion.QueryRequest{}); err != nil {
		t.Fatal(err)
	}
}

func TestQueryAll_FollowsCursors(t *testing.T) {
	var cursors []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req notion.QueryRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		cursors = append(cursors, req.StartCursor)

		if req.StartCursor == "" {
			_, _ = fmt.Fprint(w, `{"results": [{"id": "p1"}], "has_more": true, "next_cursor": "c2"}`)
			return
		}
		_, _ = fmt.Fprint(w, `{"results": [{"id": "p2"}], "has_more": false}`)
	}))
	defer srv.Close()

	c := notion.NewClient("secret", discard)
	c.SetBaseURL(srv.URL)

	pages, err := c.QueryAll(context.Background(), "db1", nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 || pages[0].ID != "p1" || pages[1].ID != "p2" {
		t.Fatalf("pages = %+v", pages)
	}
	if len(cursors) != 2 || cursors[1] != "c2" {
		t.Errorf("cursors = %v", cursors)
	}
}

func TestCreatePage_WrapsParent(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/pages" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := notion.NewClient("secret", discard)
	c.SetBaseURL(srv.URL)

	err := c.CreatePage(context.Background(), "db1", map[string]any{"Title": notion.TitleProp("x")})
	if err != nil {
		t.Fatal(err)
	}
	parent, _ := body["parent"].(map[string]any)
	if parent["database_id"] != "db1" {
		t.Errorf("parent = %v", body["parent"])
	}
	if _, ok := body["properties"]; !ok {
		t.Error("no properties in body")
	}
}

func TestUpdatePage_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s", r.Method)
		}
		http.Error(w, `{"message": "validation failed"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := notion.NewClient("secret", discard)
	c.SetBaseURL(srv.URL)

	if err := c.UpdatePage(context.Background(), "p1", map[string]any{}); err == nil {
		t.Fatal("expected error on 400")
	}
}

func TestPropertyAccessors(t *testing.T) {
	raw := `{
		"id": "p1",
		"properties": {
			"Title": {"type": "title", "title": [{"plain_text": "hello"}]},
			"Text": {"type": "rich_text", "rich_text": [{"text": {"content": "a"}}, {"text": {"content": "b"}}]},
			"Status": {"type": "select", "select": {"name": "Pending"}},
			"Days": {"type": "multi_select", "multi_select": [{"name": "Mon"}, {"name": "Fri"}]},
			"Enabled": {"type": "checkbox", "checkbox": true},
			"Amount": {"type": "number", "number": 12.5},
			"Due": {"type": "date", "date": {"start": "2026-09-01"}},
			"Link": {"type": "url", "url": "https://example.com"}
		}
	}`
	var p notion.Page
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatal(err)
	}

	if got := p.TitleText("Title"); got != "hello" {
		t.Errorf("TitleText = %q", got)
	}
	if got := p.Text("Text"); got != "ab" {
		t.Errorf("Text = %q", got)
	}
	if got := p.SelectName("Status"); got != "Pending" {
		t.Errorf("SelectName = %q", got)
	}
	if got := p.MultiSelectNames("Days"); len(got) != 2 || got[0] != "Mon" {
		t.Errorf("MultiSelectNames = %v", got)
	}
	if !p.CheckboxValue("Enabled") {
		t.Error("CheckboxValue = false")
	}
	if got, ok := p.NumberValue("Amount"); !ok || got != 12.5 {
		t.Errorf("NumberValue = %v %v", got, ok)
	}
	if got := p.DateStart("Due"); got != "2026-09-01" {
		t.Errorf("DateStart = %q", got)
	}
	if got := p.URLValue("Link"); got != "https://example.com" {
		t.Errorf("URLValue = %q", got)
	}
	// Absent properties read as zero values.
	if got := p.Text("Missing"); got != "" {
		t.Errorf("missing Text = %q", got)
	}
	if got, ok := p.NumberValue("Missing"); ok || got != 0 {
		t.Errorf("missing NumberValue = %v %v", got, ok)
	}
}
