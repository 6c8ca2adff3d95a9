package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	ErrInvalidCronExpr = errors.New("invalid cron expression")
	ErrInvalidTime     = errors.New("invalid time, expected HH:MM")
)

// Canonical weekday short codes, Monday first to match how schedule
// rows are written in the remote table.
var WeekdayCodes = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ScheduleEntry is one remotely-stored recurring send rule. Entries are
// created and edited in the remote table (or via the add_schedule command)
// and are read-only to the tick loop.
type ScheduleEntry struct {
	ID               string
	Title            string
	Kind             string // morning, evening, weather, pulse, day, custom, ...
	Time             string // "HH:MM", 24h, in the bot's fixed timezone
	Days             []string
	Text             string
	TemplateCategory string
	CronExpr         string // optional; overrides Time/Days matching when set
}

// Matches reports whether the entry should fire at now. Rows with a cron
// expression match iff the expression fires at now's minute; all other rows
// match when Time equals now formatted "HH:MM" and Days is empty or
// contains today's weekday code.
func (e *ScheduleEntry) Matches(now time.Time) bool {
	if e.CronExpr != "" {
		sched, err := cron.ParseStandard(e.CronExpr)
		if err != nil {
			// Expressions are validated when the entry is fetched or
			// created; an invalid one never fires.
			return false
		}
		minute := now.Truncate(time.Minute)
		return sched.Next(minute.Add(-time.Second)).Equal(minute)
	}
	if e.Time != now.Format("15:04") {
		return false
	}
	return e.MatchesDay(now.Weekday())
}

// MatchesDay reports whether the entry fires on the given weekday.
// An empty Days set means every day.
func (e *ScheduleEntry) MatchesDay(day time.Weekday) bool {
	if len(e.Days) == 0 {
		return true
	}
	code := day.String()[:3]
	for _, d := range e.Days {
		if d == code {
			return true
		}
	}
	return false
}

// ValidateTime checks that s is a valid 24h "HH:MM" string.
func ValidateTime(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTime
	}
	return nil
}

// ValidateCron checks a standard 5-field cron expression.
func ValidateCron(expr string) error {
	if _, err := cron.ParseStandard(expr); err != nil {
		return ErrInvalidCronExpr
	}
	return nil
}

var dayAliases = map[string]string{
	"mon": "Mon", "monday": "Mon",
	"tue": "Tue", "tuesday": "Tue",
	"wed": "Wed", "wednesday": "Wed",
	"thu": "Thu", "thursday": "Thu",
	"fri": "Fri", "friday": "Fri",
	"sat": "Sat", "saturday": "Sat",
	"sun": "Sun", "sunday": "Sun",
}

// ParseDays turns a free-form day list ("Mon,Wed,Fri", "tuesday; thursday",
// "daily") into canonical short codes. "daily" and "everyday" expand to the
// full week; unknown tokens fall back to their title-cased 3-letter prefix.
func ParseDays(s string) []string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	if s == "daily" || s == "everyday" {
		out := make([]string, len(WeekdayCodes))
		copy(out, WeekdayCodes)
		return out
	}
	s = strings.ReplaceAll(s, ";", ",")
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if code, ok := dayAliases[part]; ok {
			out = append(out, code)
			continue
		}
		if len(part) > 3 {
			part = part[:3]
		}
		out = append(out, titleCase(part))
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
