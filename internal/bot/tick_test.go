package bot_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lizark9x/connor-bot/internal/bot"
	"github.com/lizark9x/connor-bot/internal/domain"
	"github.com/lizark9x/connor-bot/internal/notion"
	"github.com/lizark9x/connor-bot/internal/weather"
)

type tickFixture struct {
	loop      *bot.TickLoop
	state     *bot.State
	messenger *fakeMessenger
}

func newTickFixture(t *testing.T, cacheClient *fakeClient, provider bot.WeatherProvider) *tickFixture {
	t.Helper()

	var cache *bot.ScheduleCache
	if cacheClient != nil {
		cache = bot.NewScheduleCache(cacheClient, "schedule", time.Minute, discard)
	} else {
		cache = bot.NewScheduleCache(nil, "", time.Minute, discard)
	}

	state := bot.NewState("Seoul")
	selector := bot.NewSelector(nil, "", discard)
	selector.SetPick(func(n int) int { return 0 })
	messenger := &fakeMessenger{}
	courier := bot.NewCourier(messenger, nil, discard)

	loop := bot.NewTickLoop(state, cache, selector, courier, provider, time.UTC, 20*time.Second, discard)
	return &tickFixture{loop: loop, state: state, messenger: messenger}
}

func at(hour, minute, sec int) time.Time {
	// 2026-08-31 is a Monday.
	return time.Date(2026, 8, 31, hour, minute, sec, 0, time.UTC)
}

func TestTick_MorningFiresOncePerMinute(t *testing.T) {
	f := newTickFixture(t, nil, nil)

	now := at(8, 0, 5)
	f.loop.SetNow(func() time.Time { return now })

	ctx := context.Background()
	f.loop.Tick(ctx)
	if len(f.messenger.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(f.messenger.sent))
	}
	if f.messenger.sent[0] != domain.MorningPool[0] {
		t.Errorf("sent %q, want first morning text", f.messenger.sent[0])
	}

	// More ticks inside the same clock-minute are deduplicated.
	now = at(8, 0, 25)
	f.loop.Tick(ctx)
	now = at(8, 0, 45)
	f.loop.Tick(ctx)
	if len(f.messenger.sent) != 1 {
		t.Fatalf("sent = %d after repeat ticks, want 1", len(f.messenger.sent))
	}
}

func TestTick_EveningAndPulse(t *testing.T) {
	f := newTickFixture(t, nil, nil)
	ctx := context.Background()

	now := at(22, 0, 0)
	f.loop.SetNow(func() time.Time { return now })
	f.loop.Tick(ctx)
	if len(f.messenger.sent) != 1 || f.messenger.sent[0] != domain.EveningPool[0] {
		t.Fatalf("evening sent = %v", f.messenger.sent)
	}

	now = at(10, 15, 0)
	f.loop.Tick(ctx)
	if len(f.messenger.sent) != 2 || f.messenger.sent[1] != domain.DayAndPulse()[0] {
		t.Fatalf("pulse sent = %v", f.messenger.sent)
	}

	// Odd hours have no :15 trigger. The 11:00 tick first moves the
	// minute dedup off :15 so the next check is about the trigger itself.
	now = at(11, 0, 0)
	f.loop.Tick(ctx)
	now = at(11, 15, 0)
	f.loop.Tick(ctx)
	if len(f.messenger.sent) != 2 {
		t.Fatalf("odd-hour pulse fired: %v", f.messenger.sent)
	}
}

func TestTick_PausedSuppressesSends(t *testing.T) {
	f := newTickFixture(t, nil, nil)
	f.state.Pause()

	now := at(8, 0, 0)
	f.loop.SetNow(func() time.Time { return now })
	f.loop.Tick(context.Background())

	if len(f.messenger.sent) != 0 {
		t.Fatalf("paused loop sent %v", f.messenger.sent)
	}
}

func TestTick_RemoteEntryFires(t *testing.T) {
	client := &fakeClient{
		queryAll: func(context.Context, string, map[string]any, int) ([]notion.Page, error) {
			return []notion.Page{schedulePage("p1", "water", "custom", "09:41", "Drink water")}, nil
		},
	}
	f := newTickFixture(t, client, nil)

	now := at(9, 41, 12)
	f.loop.SetNow(func() time.Time { return now })
	f.loop.Tick(context.Background())

	if len(f.messenger.sent) != 1 || f.messenger.sent[0] != "Drink water" {
		t.Fatalf("sent = %v, want the entry text", f.messenger.sent)
	}
}

func TestTick_WeatherNotConfigured(t *testing.T) {
	f := newTickFixture(t, nil, nil)

	now := at(8, 30, 0)
	f.loop.SetNow(func() time.Time { return now })
	f.loop.Tick(context.Background())

	want := "Weather is unavailable: WEATHER_API_KEY is not set."
	if len(f.messenger.sent) != 1 || f.messenger.sent[0] != want {
		t.Fatalf("sent = %v, want %q", f.messenger.sent, want)
	}
}

func TestTick_WeatherProviderError(t *testing.T) {
	provider := &fakeWeather{
		current: func(context.Context, string) (weather.Report, error) {
			return weather.Report{}, errors.New("upstream down")
		},
	}
	f := newTickFixture(t, nil, provider)

	now := at(8, 30, 0)
	f.loop.SetNow(func() time.Time { return now })
	f.loop.Tick(context.Background())

	want := "Could not retrieve weather data."
	if len(f.messenger.sent) != 1 || f.messenger.sent[0] != want {
		t.Fatalf("sent = %v, want fallback text", f.messenger.sent)
	}
}

func TestTick_WeatherSuccess(t *testing.T) {
	provider := &fakeWeather{
		current: func(_ context.Context, city string) (weather.Report, error) {
			if city != "Seoul" {
				t.Errorf("city = %q, want Seoul", city)
			}
			return weather.Report{City: "Seoul", Description: "Clear sky", Temp: 21.3, FeelsLike: 20.1}, nil
		},
	}
	f := newTickFixture(t, nil, provider)

	now := at(8, 30, 0)
	f.loop.SetNow(func() time.Time { return now })
	f.loop.Tick(context.Background())

	want := "🌤️ Weather in Seoul:\nClear sky, temperature: 21.3°C, feels like 20.1°C."
	if len(f.messenger.sent) != 1 || f.messenger.sent[0] != want {
		t.Fatalf("sent = %v, want %q", f.messenger.sent, want)
	}
}

func TestTick_BuiltinAndRemoteBothFire(t *testing.T) {
	client := &fakeClient{
		queryAll: func(context.Context, string, map[string]any, int) ([]notion.Page, error) {
			return []notion.Page{schedulePage("p1", "also morning", "custom", "08:00", "Remote hello")}, nil
		},
	}
	f := newTickFixture(t, client, nil)

	now := at(8, 0, 0)
	f.loop.SetNow(func() time.Time { return now })
	f.loop.Tick(context.Background())

	if len(f.messenger.sent) != 2 {
		t.Fatalf("sent = %v, want built-in plus remote", f.messenger.sent)
	}
}
