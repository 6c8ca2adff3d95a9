package domain_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/lizark9x/connor-bot/internal/domain"
)

func TestParseDays(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"daily", []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}},
		{"everyday", []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}},
		{"Mon,Wed,Fri", []string{"Mon", "Wed", "Fri"}},
		{"tuesday; thursday", []string{"Tue", "Thu"}},
		{"SAT, sun", []string{"Sat", "Sun"}},
		{"xyzzy", []string{"Xyz"}},
	}
	for _, tt := range tests {
		got := domain.ParseDays(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseDays(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMatchesDay_EmptyDaysMeansEveryDay(t *testing.T) {
	e := domain.ScheduleEntry{Time: "08:00"}
	for day := time.Sunday; day <= time.Saturday; day++ {
		if !e.MatchesDay(day) {
			t.Errorf("entry with empty days should match %s", day)
		}
	}
}

func TestMatches_TimeAndDays(t *testing.T) {
	e := domain.ScheduleEntry{Time: "08:00", Days: []string{"Mon", "Fri"}}

	// 2026-08-31 is a Monday.
	monday := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	if !e.Matches(monday) {
		t.Error("expected match on Monday 08:00")
	}
	if e.Matches(monday.Add(time.Minute)) {
		t.Error("unexpected match at 08:01")
	}

	tuesday := monday.AddDate(0, 0, 1)
	if e.Matches(tuesday) {
		t.Error("unexpected match on Tuesday")
	}
}

func TestMatches_MidMinuteSecondsIgnored(t *testing.T) {
	e := domain.ScheduleEntry{Time: "08:00"}
	now := time.Date(2026, 8, 31, 8, 0, 42, 0, time.UTC)
	if !e.Matches(now) {
		t.Error("expected match at 08:00:42")
	}
}

func TestMatches_Cron(t *testing.T) {
	e := domain.ScheduleEntry{CronExpr: "*/15 * * * *", Time: "23:59"}

	fire := time.Date(2026, 8, 31, 10, 30, 5, 0, time.UTC)
	if !e.Matches(fire) {
		t.Error("expected cron match at :30")
	}
	if e.Matches(fire.Add(time.Minute)) {
		t.Error("unexpected cron match at :31")
	}
}

func TestMatches_InvalidCronNeverFires(t *testing.T) {
	e := domain.ScheduleEntry{CronExpr: "not a cron"}
	if e.Matches(time.Now()) {
		t.Error("invalid cron expression must never fire")
	}
}

func TestValidate(t *testing.T) {
	if err := domain.ValidateTime("08:30"); err != nil {
		t.Errorf("ValidateTime(08:30) = %v", err)
	}
	if err := domain.ValidateTime("25:00"); err == nil {
		t.Error("expected error for 25:00")
	}
	if err := domain.ValidateCron("0 8 * * 1"); err != nil {
		t.Errorf("ValidateCron = %v", err)
	}
	if err := domain.ValidateCron("bogus"); err == nil {
		t.Error("expected error for bogus cron")
	}
}

func TestDefaultPool_UnknownCategoryFallsBack(t *testing.T) {
	if got := domain.DefaultPool("nope"); !reflect.DeepEqual(got, domain.DayPool) {
		t.Error("unknown category should fall back to the day pool")
	}
}
