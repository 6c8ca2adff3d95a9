package domain

type CommandStatus string

const (
	CommandPending CommandStatus = "Pending"
	CommandDone    CommandStatus = "Done"
)

// Command is one remotely-queued instruction awaiting one-shot execution.
// It is created externally with status Pending and transitioned to Done
// exactly once by the drainer, regardless of the execution outcome.
type Command struct {
	PageID string
	Name   string

	// Free-form payload fields. Which ones are meaningful depends on the
	// command; unused fields are simply empty.
	Text             string
	City             string
	Category         string
	TypeName         string
	Time             string
	Days             string
	CronExpr         string
	TemplateCategory string

	ItemName string
	Company  string
	URL      string
	Amount   *float64
	Date     string
	Due      string
	Stage    string
	Priority string
	Tags     string
	Notes    string
}
