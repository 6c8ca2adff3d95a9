package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lizark9x/connor-bot/internal/domain"
	"github.com/lizark9x/connor-bot/internal/email"
	"github.com/lizark9x/connor-bot/internal/tables"
)

// Executor runs one remote command against the in-process state, the
// document-database tables or the messenger, and returns a short result
// string. Execution never raises: failures become "error: <message>"
// results, which the drainer still writes back as a terminal status.
type Executor struct {
	state    *State
	cache    *ScheduleCache
	courier  *Courier
	tables   *tables.Store
	email    email.Sender // nil disables email_digest
	digestTo string
	loc      *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

func NewExecutor(
	state *State,
	cache *ScheduleCache,
	courier *Courier,
	store *tables.Store,
	emailSender email.Sender,
	digestTo string,
	loc *time.Location,
	logger *slog.Logger,
) *Executor {
	return &Executor{
		state:    state,
		cache:    cache,
		courier:  courier,
		tables:   store,
		email:    emailSender,
		digestTo: digestTo,
		loc:      loc,
		logger:   logger.With("component", "executor"),
		now:      time.Now,
	}
}

// Execute dispatches cmd by name and returns its result string.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command) (result string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("command panicked", "command", cmd.Name, "panic", r)
			result = fmt.Sprintf("error: %v", r)
		}
	}()

	res, err := e.dispatch(ctx, cmd)
	if err != nil {
		e.logger.Warn("command failed", "command", cmd.Name, "error", err)
		return "error: " + err.Error()
	}
	return res
}

func (e *Executor) dispatch(ctx context.Context, cmd domain.Command) (string, error) {
	switch cmd.Name {
	case "send":
		if strings.TrimSpace(cmd.Text) == "" {
			return "no text", nil
		}
		if !e.courier.Deliver(ctx, "send", cmd.Text) {
			return "send failed", nil
		}
		return "sent", nil

	case "pause":
		e.state.Pause()
		return "paused", nil

	case "resume":
		e.state.Resume()
		return "resumed", nil

	case "set_city":
		city := e.state.SetCity(strings.TrimSpace(cmd.City))
		e.courier.Deliver(ctx, "send", "Weather city: "+city)
		return "city=" + city, nil

	case "add_template":
		return e.tables.TemplateAdd(ctx, cmd.Category, cmd.Text)

	case "add_schedule":
		res, err := e.tables.ScheduleAdd(ctx, strings.ToLower(cmd.TypeName), cmd.Time, cmd.Days, cmd.CronExpr, cmd.TemplateCategory, cmd.Text)
		if err == nil && res == "schedule added" {
			e.cache.Refresh(ctx, true)
		}
		return res, err

	case "list_schedule":
		rows, err := e.cache.FetchRows(ctx)
		if err != nil {
			return "", err
		}
		e.courier.Deliver(ctx, "send", "Current schedule:\n"+formatSchedule(rows))
		return "listed", nil

	case "reload_schedule":
		e.cache.Refresh(ctx, true)
		return "reloaded", nil

	// To-do
	case "todo_add":
		return e.tables.TodoAdd(ctx, cmd.ItemName, cmd.Due, cmd.Priority, cmd.Tags, cmd.Notes)
	case "todo_done":
		return e.tables.TodoDone(ctx, cmd.ItemName)
	case "todo_list":
		return e.sendList(ctx, e.tables.TodoList)

	// Projects
	case "project_add":
		return e.tables.ProjectAdd(ctx, cmd.ItemName, cmd.Due, cmd.Notes, "")
	case "project_status":
		status := firstNonEmpty(cmd.Stage, strings.TrimSpace(cmd.Text), "In progress")
		return e.tables.ProjectStatus(ctx, cmd.ItemName, status)
	case "project_note":
		return e.tables.ProjectNote(ctx, cmd.ItemName, firstNonEmpty(cmd.Notes, cmd.Text))

	// Budget
	case "budget_add_income":
		return e.budgetAdd(ctx, "income", cmd)
	case "budget_add_expense":
		return e.budgetAdd(ctx, "expense", cmd)
	case "budget_summary":
		month := strings.TrimSpace(cmd.Text)
		if month == "" {
			month = e.now().In(e.loc).Format("2006-01")
		}
		summary, err := e.tables.BudgetSummary(ctx, month)
		if err != nil {
			return "", err
		}
		e.courier.Deliver(ctx, "send", summary)
		return "summarized", nil

	// Jobs
	case "job_add":
		role := firstNonEmpty(cmd.ItemName, "Role")
		return e.tables.JobAdd(ctx, role, cmd.Company, cmd.URL, cmd.Stage, firstNonEmpty(cmd.Notes, cmd.Text))
	case "job_stage":
		target := firstNonEmpty(cmd.ItemName, cmd.Company)
		stage := firstNonEmpty(cmd.Stage, strings.TrimSpace(cmd.Text), "Interview")
		return e.tables.JobStage(ctx, target, stage)
	case "job_list":
		return e.sendList(ctx, e.tables.JobList)

	// Inspiration
	case "inspo_add":
		return e.tables.InspoAdd(ctx, cmd.Text, cmd.URL, cmd.Category, cmd.Tags)
	case "inspo_list":
		return e.sendList(ctx, e.tables.InspoList)

	// Habits
	case "habit_add":
		return e.tables.HabitAdd(ctx, cmd.ItemName)
	case "habit_mark":
		return e.tables.HabitMark(ctx, cmd.ItemName, cmd.Date, cmd.Notes)
	case "habit_today":
		return e.sendList(ctx, e.tables.HabitToday)
	case "habit_summary":
		return e.sendList(ctx, e.tables.HabitSummary)

	// Website
	case "website_add_page":
		name := firstNonEmpty(cmd.ItemName, "Post")
		return e.tables.WebsiteAddPage(ctx, name, firstNonEmpty(cmd.Text, cmd.Notes), cmd.URL)
	case "website_append":
		return e.tables.WebsiteAppend(ctx, cmd.ItemName, firstNonEmpty(cmd.Text, cmd.Notes))

	case "email_digest":
		return e.emailDigest(ctx)

	default:
		name := cmd.Name
		if name == "" {
			name = "(empty)"
		}
		return "unknown command: " + name, nil
	}
}

// sendList delivers the output of a list helper to the chat.
func (e *Executor) sendList(ctx context.Context, list func(context.Context) (string, error)) (string, error) {
	text, err := list(ctx)
	if err != nil {
		return "", err
	}
	e.courier.Deliver(ctx, "send", text)
	return "listed", nil
}

func (e *Executor) budgetAdd(ctx context.Context, kind string, cmd domain.Command) (string, error) {
	if cmd.Amount == nil {
		return "no amount", nil
	}
	return e.tables.BudgetAdd(ctx, kind, *cmd.Amount, cmd.Category, cmd.Date, firstNonEmpty(cmd.Notes, cmd.Text))
}

// emailDigest composes the to-do list, today's habits and the current
// month's budget summary into one email.
func (e *Executor) emailDigest(ctx context.Context) (string, error) {
	if e.email == nil || e.digestTo == "" {
		return "email not configured", nil
	}

	var sections []string
	var errs []error
	if todos, err := e.tables.TodoList(ctx); err == nil {
		sections = append(sections, "To-do:\n"+todos)
	} else {
		errs = append(errs, err)
	}
	if habits, err := e.tables.HabitToday(ctx); err == nil {
		sections = append(sections, habits)
	} else {
		errs = append(errs, err)
	}
	month := e.now().In(e.loc).Format("2006-01")
	if budget, err := e.tables.BudgetSummary(ctx, month); err == nil {
		sections = append(sections, "Budget:\n"+budget)
	} else {
		errs = append(errs, err)
	}

	// A digest with some sections missing is still worth sending; one with
	// no content at all is a failure, not an empty email.
	if len(sections) == 0 {
		return "", fmt.Errorf("compose digest: %w", errors.Join(errs...))
	}
	if len(errs) > 0 {
		e.logger.Warn("digest sections missing", "errors", errors.Join(errs...))
	}

	subject := "Connor digest " + e.now().In(e.loc).Format("2006-01-02")
	if err := e.email.Send(ctx, e.digestTo, subject, strings.Join(sections, "\n\n")); err != nil {
		return "", err
	}
	return "digest sent", nil
}

func formatSchedule(rows []domain.ScheduleEntry) string {
	if len(rows) == 0 {
		return "no active"
	}
	var lines []string
	for _, r := range rows {
		when := r.Time
		if r.CronExpr != "" {
			when = r.CronExpr
		}
		days := strings.Join(r.Days, ",")
		if days == "" {
			days = "daily"
		}
		lines = append(lines, fmt.Sprintf("- %s | %s | %s | %s", when, r.Kind, days, r.Title))
	}
	return strings.Join(lines, "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
