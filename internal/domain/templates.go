package domain

// Built-in template pools, used when the remote templates table is not
// configured, unreachable, or has no rows for a category.

var MorningPool = []string{
	"Good morning, Liza.",
	"Wake up.~ A new day is waiting for you.",
	"Good morning! May it be clear, light and calm.",
	"Everything you need is already within you. Start step by step.",
	"Take a breath. You can do this.",
}

var EveningPool = []string{
	"Good night, sweet dreams.",
	"I'll tuck you in. Sleep well.",
	"Today was enough. The rest can wait until tomorrow.",
	"The night is for rest. Let go and relax.",
}

var DayPool = []string{
	"How are you feeling?",
	"You are incredible.",
	"Take a pause if you need one. Intention matters more than haste.",
	"Smile. I'm here.",
	"You are moving — and that is what counts.",
}

var PulsePool = []string{
	"I'm here. Just a reminder.",
	"Hold on. You know what this is for.",
	"It's hard — but temporary. What matters is inside.",
	"Lift your head. Don't give up.",
}

// DefaultPool returns the built-in pool for a template category. Unknown
// categories fall back to the day pool.
func DefaultPool(category string) []string {
	switch category {
	case "morning":
		return MorningPool
	case "evening":
		return EveningPool
	case "pulse":
		return PulsePool
	case "day":
		return DayPool
	default:
		return DayPool
	}
}

// DayAndPulse is the union pool used by the even-hour built-in trigger.
func DayAndPulse() []string {
	out := make([]string, 0, len(DayPool)+len(PulsePool))
	out = append(out, DayPool...)
	out = append(out, PulsePool...)
	return out
}
