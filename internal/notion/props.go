package notion

import "strings"

// RichText is one fragment of a text-valued property.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type DateValue struct {
	Start string `json:"start"`
}

// Property models the union of property shapes the bot reads. Exactly one
// of the value fields is set, according to Type.
type Property struct {
	Type        string         `json:"type,omitempty"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	URL         string         `json:"url,omitempty"`
}

// Page is one row of a database.
type Page struct {
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

func joinRichText(parts []RichText) string {
	var b strings.Builder
	for _, r := range parts {
		if r.Text != nil {
			b.WriteString(r.Text.Content)
		} else {
			b.WriteString(r.PlainText)
		}
	}
	return b.String()
}

// Text returns the joined rich_text value of the named property, or "".
func (p Page) Text(name string) string {
	return joinRichText(p.Properties[name].RichText)
}

// TitleText returns the joined title value of the named property, or "".
func (p Page) TitleText(name string) string {
	return joinRichText(p.Properties[name].Title)
}

// SelectName returns the select option name, or "".
func (p Page) SelectName(name string) string {
	if s := p.Properties[name].Select; s != nil {
		return s.Name
	}
	return ""
}

// MultiSelectNames returns all selected option names.
func (p Page) MultiSelectNames(name string) []string {
	opts := p.Properties[name].MultiSelect
	if len(opts) == 0 {
		return nil
	}
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Name)
	}
	return out
}

// CheckboxValue returns the checkbox state, false when unset.
func (p Page) CheckboxValue(name string) bool {
	if c := p.Properties[name].Checkbox; c != nil {
		return *c
	}
	return false
}

// NumberValue returns the number value and whether it was present.
func (p Page) NumberValue(name string) (float64, bool) {
	if n := p.Properties[name].Number; n != nil {
		return *n, true
	}
	return 0, false
}

// DateStart returns the start of a date property, or "".
func (p Page) DateStart(name string) string {
	if d := p.Properties[name].Date; d != nil {
		return d.Start
	}
	return ""
}

// URLValue returns a url property, falling back to rich text for rows
// where the column was created as plain text.
func (p Page) URLValue(name string) string {
	if u := p.Properties[name].URL; u != "" {
		return u
	}
	return p.Text(name)
}

// Property builders for writes.

func TitleProp(s string) map[string]any {
	return map[string]any{"title": []map[string]any{{"text": map[string]any{"content": s}}}}
}

func RichTextProp(s string) map[string]any {
	return map[string]any{"rich_text": []map[string]any{{"text": map[string]any{"content": s}}}}
}

func SelectProp(name string) map[string]any {
	return map[string]any{"select": map[string]any{"name": name}}
}

func MultiSelectProp(names []string) map[string]any {
	opts := make([]map[string]any, 0, len(names))
	for _, n := range names {
		opts = append(opts, map[string]any{"name": n})
	}
	return map[string]any{"multi_select": opts}
}

func CheckboxProp(v bool) map[string]any {
	return map[string]any{"checkbox": v}
}

func NumberProp(v float64) map[string]any {
	return map[string]any{"number": v}
}

func DateProp(start string) map[string]any {
	return map[string]any{"date": map[string]any{"start": start}}
}

func URLProp(u string) map[string]any {
	return map[string]any{"url": u}
}
