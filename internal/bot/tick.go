package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lizark9x/connor-bot/internal/domain"
	"github.com/lizark9x/connor-bot/internal/metrics"
	"github.com/lizark9x/connor-bot/internal/weather"
)

// WeatherProvider fetches current conditions. Satisfied by *weather.Client.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (weather.Report, error)
}

const (
	weatherNotConfiguredText = "Weather is unavailable: WEATHER_API_KEY is not set."
	weatherFailedText        = "Could not retrieve weather data."
)

// TickLoop is the process-wide scheduler: a stateless reconciliation re-run
// on every tick, guarded only by the per-minute dedup in State. Tick
// granularity is well under a minute, so the same clock-minute is observed
// several times; the dedup makes firing idempotent per minute. A minute the
// process sleeps through is simply dropped, not retried.
type TickLoop struct {
	state    *State
	cache    *ScheduleCache
	selector *Selector
	courier  *Courier
	weather  WeatherProvider // nil disables weather sends
	loc      *time.Location
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewTickLoop(
	state *State,
	cache *ScheduleCache,
	selector *Selector,
	courier *Courier,
	provider WeatherProvider,
	loc *time.Location,
	interval time.Duration,
	logger *slog.Logger,
) *TickLoop {
	return &TickLoop{
		state:    state,
		cache:    cache,
		selector: selector,
		courier:  courier,
		weather:  provider,
		loc:      loc,
		interval: interval,
		logger:   logger.With("component", "tick_loop"),
		now:      time.Now,
	}
}

// SetNow overrides the clock. Used by tests.
func (t *TickLoop) SetNow(now func() time.Time) {
	t.now = now
}

func (t *TickLoop) Start(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Info("tick loop started", "interval", t.interval)

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("tick loop shut down")
			return
		case <-ticker.C:
			t.Tick(ctx)
		}
	}
}

// Tick runs one reconciliation pass: refresh the cache if stale, then —
// at most once per clock-minute — evaluate the built-in fixed-time
// triggers and the remote schedule.
func (t *TickLoop) Tick(ctx context.Context) {
	start := time.Now()
	defer func() { metrics.TickDuration.Observe(time.Since(start).Seconds()) }()

	now := t.now().In(t.loc)

	t.cache.Refresh(ctx, false)

	if !t.state.RecordFired(now.Minute()) {
		return
	}
	if t.state.Paused() {
		return
	}

	hour, minute := now.Hour(), now.Minute()
	switch {
	case hour == 8 && minute == 0:
		t.courier.Deliver(ctx, "morning", t.selector.PickDefault(domain.MorningPool))
	case hour == 22 && minute == 0:
		t.courier.Deliver(ctx, "evening", t.selector.PickDefault(domain.EveningPool))
	case hour == 8 && minute == 30:
		t.SendWeather(ctx)
	case hour%2 == 0 && minute == 15:
		t.courier.Deliver(ctx, "day", t.selector.PickDefault(domain.DayAndPulse()))
	}

	// A built-in trigger and a remote entry aimed at the same minute both
	// fire; the recipient gets two messages.
	for _, entry := range t.cache.Match(now) {
		if entry.Kind == "weather" {
			t.SendWeather(ctx)
			continue
		}
		if msg := t.selector.Resolve(ctx, entry); msg != "" {
			t.courier.Deliver(ctx, entry.Kind, msg)
		}
	}
}

// SendWeather delivers the current weather for the configured city, or a
// fallback text when the provider is unconfigured or fails. Never errors.
func (t *TickLoop) SendWeather(ctx context.Context) {
	if t.state.Paused() {
		return
	}
	if t.weather == nil {
		t.courier.Deliver(ctx, "weather", weatherNotConfiguredText)
		return
	}
	report, err := t.weather.Current(ctx, t.state.City())
	if err != nil {
		t.logger.Warn("weather lookup failed", "error", err)
		t.courier.Deliver(ctx, "weather", weatherFailedText)
		return
	}
	t.courier.Deliver(ctx, "weather", fmt.Sprintf(
		"🌤️ Weather in %s:\n%s, temperature: %.1f°C, feels like %.1f°C.",
		report.City, report.Description, report.Temp, report.FeelsLike,
	))
}
