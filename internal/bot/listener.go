package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lizark9x/connor-bot/internal/domain"
	"github.com/lizark9x/connor-bot/internal/telegram"
)

// UpdateSource fetches incoming chat messages. Satisfied by
// *telegram.BotSender.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]telegram.Update, error)
}

// Long-poll timeout, kept under the HTTP client's 10s request timeout.
const pollTimeoutSec = 5

const helpText = `I'm Connor. Commands:
/status - pause state and weather city
/send <text> - send a message back
/weather - current weather
/todo_add <task>, /todo_done <task>, /todo_list
/job_add <role>, /job_list
/budget_expense <amount> [category], /budget_income <amount> [category]
/schedule_reload - refetch the schedule table`

// Listener is the interactive front-end: it long-polls the chat for slash
// commands and dispatches them through the same Executor the drainer uses.
// Messages from any chat other than the configured one are ignored.
type Listener struct {
	updates  UpdateSource
	chatID   int64
	executor *Executor
	tick     *TickLoop
	state    *State
	courier  *Courier
	logger   *slog.Logger

	offset int64
}

func NewListener(
	updates UpdateSource,
	chatID int64,
	executor *Executor,
	tick *TickLoop,
	state *State,
	courier *Courier,
	logger *slog.Logger,
) *Listener {
	return &Listener{
		updates:  updates,
		chatID:   chatID,
		executor: executor,
		tick:     tick,
		state:    state,
		courier:  courier,
		logger:   logger.With("component", "listener"),
	}
}

func (l *Listener) Start(ctx context.Context) {
	l.logger.Info("command listener started")

	for {
		if ctx.Err() != nil {
			l.logger.Info("command listener shut down")
			return
		}
		if err := l.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			l.logger.Warn("fetch updates", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(5 * time.Second):
			}
		}
	}
}

// Poll runs one getUpdates cycle, advancing the offset past every update
// seen, answered or not.
func (l *Listener) Poll(ctx context.Context) error {
	updates, err := l.updates.GetUpdates(ctx, l.offset, pollTimeoutSec)
	if err != nil {
		return err
	}
	for _, u := range updates {
		l.offset = u.ID + 1
		if u.Message == nil || u.Message.Chat.ID != l.chatID {
			continue
		}
		l.HandleText(ctx, u.Message.Text)
	}
	return nil
}

// HandleText dispatches one slash command from the chat. Plain text
// without a leading slash is ignored.
func (l *Listener) HandleText(ctx context.Context, text string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return
	}
	// Commands in group-style form (/status@ConnorBot) carry a mention.
	name, _, _ := strings.Cut(fields[0], "@")
	args := strings.TrimSpace(strings.TrimPrefix(text, fields[0]))

	switch name {
	case "/start", "/help":
		l.courier.Deliver(ctx, "send", helpText)
	case "/status":
		l.courier.Deliver(ctx, "send", fmt.Sprintf("paused: %v\ncity: %s", l.state.Paused(), l.state.City()))
	case "/weather":
		l.tick.SendWeather(ctx)
	case "/send":
		l.execute(ctx, domain.Command{Name: "send", Text: args})
	case "/todo_add":
		l.execute(ctx, domain.Command{Name: "todo_add", ItemName: args})
	case "/todo_done":
		l.execute(ctx, domain.Command{Name: "todo_done", ItemName: args})
	case "/todo_list":
		l.execute(ctx, domain.Command{Name: "todo_list"})
	case "/job_add":
		l.execute(ctx, domain.Command{Name: "job_add", ItemName: args})
	case "/job_list":
		l.execute(ctx, domain.Command{Name: "job_list"})
	case "/budget_expense":
		l.budget(ctx, "budget_add_expense", args)
	case "/budget_income":
		l.budget(ctx, "budget_add_income", args)
	case "/schedule_reload":
		l.execute(ctx, domain.Command{Name: "reload_schedule"})
	default:
		l.courier.Deliver(ctx, "send", "Unknown command. Try /help.")
	}
}

func (l *Listener) execute(ctx context.Context, cmd domain.Command) {
	result := l.executor.Execute(ctx, cmd)
	// List commands deliver their output themselves; echoing "listed" on
	// top of it would just be noise.
	if result == "listed" || result == "summarized" {
		return
	}
	l.courier.Deliver(ctx, "send", result)
}

func (l *Listener) budget(ctx context.Context, name, args string) {
	usage := "usage: /budget_" + strings.TrimPrefix(name, "budget_add_") + " <amount> [category]"
	parts := strings.Fields(args)
	if len(parts) == 0 {
		l.courier.Deliver(ctx, "send", usage)
		return
	}
	amount, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		l.courier.Deliver(ctx, "send", usage)
		return
	}
	l.execute(ctx, domain.Command{
		Name:     name,
		Amount:   &amount,
		Category: strings.Join(parts[1:], " "),
	})
}
