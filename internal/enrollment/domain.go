// internal/enrollment/domain.go
package enrollment

import (
	"fitnexus/internal/catalog"
	"fitnexus/internal/membership"
)

// Request names a member and the session they want to act on.
// Names are resolved by the engine so that lookup failures surface in
// protocol order.
type Request struct {
	ClassType  string
	Instructor string
	Location   string
	Member     membership.Identity
}

// Kind tells which roster change an Outcome records.
type Kind string

const (
	KindCheckedIn       Kind = "CHECKED_IN"
	KindCheckedOut      Kind = "CHECKED_OUT"
	KindGuestCheckedIn  Kind = "GUEST_CHECKED_IN"
	KindGuestCheckedOut Kind = "GUEST_CHECKED_OUT"
)

// Outcome is a successful enrollment action with the member and session
// as they stand afterwards.
type Outcome struct {
	Kind    Kind                `json:"kind"`
	Member  membership.Member   `json:"member"`
	Session catalog.SessionView `json:"session"`
}
