package core

import "fmt"

// WorldEvent is a subject-centered fact attached to a tile: who or what the
// event is about, and an optional predicate/object/description triple. The
// zero value of the three optional fields means "unset"; an event with all
// three unset is an idle event.
//
// WorldEvent is a comparable value type on purpose: tile event sets, idling
// and removal all rely on full structural equality over the four fields.
type WorldEvent struct {
	Subject     Address `json:"subject"`
	Predicate   string  `json:"predicate,omitempty"`
	Object      string  `json:"object,omitempty"`
	Description string  `json:"description,omitempty"`
}

// NewIdleEvent returns the idle event for a subject.
func NewIdleEvent(subject Address) WorldEvent { return WorldEvent{Subject: subject} }

// Idle returns the idle variant of the event: same subject, every other
// field cleared.
func (e WorldEvent) Idle() WorldEvent { return WorldEvent{Subject: e.Subject} }

// IsIdle reports whether predicate, object and description are all unset.
func (e WorldEvent) IsIdle() bool {
	return e.Predicate == "" && e.Object == "" && e.Description == ""
}

// String renders the event as an SPO triple for logs.
func (e WorldEvent) String() string {
	if e.IsIdle() {
		return fmt.Sprintf("%s is idle", e.Subject)
	}
	return fmt.Sprintf("%s %s %s", e.Subject, e.Predicate, e.Object)
}
