package core

// DaySignal tells the planner whether a new calendar day began since the
// previous tick. It is derived by the orchestrator from the working state's
// stored time, never by the planner itself.
type DaySignal int

const (
	// NoSignal means the tick happens on the same calendar day as the last one.
	NoSignal DaySignal = iota
	// FirstDay means no previous tick time was recorded for this agent.
	FirstDay
	// NewDay means the calendar day changed since the previous tick.
	NewDay
)

// String returns the signal name.
func (d DaySignal) String() string {
	switch d {
	case FirstDay:
		return "first_day"
	case NewDay:
		return "new_day"
	case NoSignal:
		return "no_signal"
	default:
		return "unknown"
	}
}
