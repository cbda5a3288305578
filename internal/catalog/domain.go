// internal/catalog/domain.go
package catalog

import (
	"fmt"
	"strings"

	"fitnexus/internal/apperr"
	"fitnexus/internal/membership"

	"github.com/google/uuid"
)

var sessionNamespace = uuid.MustParse("0b8e6f6a-5d1c-4c8e-8f43-7d3b2e9c1a24")

// ClassType is a kind of fitness class.
type ClassType string

const (
	Pilates  ClassType = "PILATES"
	Spinning ClassType = "SPINNING"
	Cardio   ClassType = "CARDIO"
)

// ParseClassType looks a class type up by name, ignoring case.
func ParseClassType(name string) (ClassType, error) {
	switch c := ClassType(strings.ToUpper(strings.TrimSpace(name))); c {
	case Pilates, Spinning, Cardio:
		return c, nil
	default:
		return "", apperr.New(apperr.CodeClassTypeNotFound, "%s - class name does not exist", name)
	}
}

// Instructor teaches classes.
type Instructor string

const (
	Jennifer Instructor = "JENNIFER"
	Kim      Instructor = "KIM"
	Denise   Instructor = "DENISE"
	Davis    Instructor = "DAVIS"
	Emma     Instructor = "EMMA"
)

// ParseInstructor looks an instructor up by name, ignoring case.
func ParseInstructor(name string) (Instructor, error) {
	switch i := Instructor(strings.ToUpper(strings.TrimSpace(name))); i {
	case Jennifer, Kim, Denise, Davis, Emma:
		return i, nil
	default:
		return "", apperr.New(apperr.CodeInstructorNotFound, "%s - instructor does not exist", name)
	}
}

// Timeslot is a class start time. The zero value means unscheduled.
type Timeslot string

const (
	Morning   Timeslot = "MORNING"
	Afternoon Timeslot = "AFTERNOON"
	Evening   Timeslot = "EVENING"
)

var clockTimes = map[Timeslot][2]int{
	Morning:   {9, 30},
	Afternoon: {14, 0},
	Evening:   {18, 30},
}

// ParseTimeslot looks a timeslot up by name, ignoring case. An empty
// name yields the zero Timeslot.
func ParseTimeslot(name string) (Timeslot, error) {
	ts := Timeslot(strings.ToUpper(strings.TrimSpace(name)))
	if ts == "" {
		return "", nil
	}
	if _, ok := clockTimes[ts]; !ok {
		return "", apperr.New(apperr.CodeTimeslotNotFound, "%s - invalid time slot", name)
	}
	return ts, nil
}

// Clock renders the start time as H:MM, or "" when unscheduled.
func (t Timeslot) Clock() string {
	hm, ok := clockTimes[t]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d:%02d", hm[0], hm[1])
}

// SessionKey identifies a session. The timeslot is not part of it.
type SessionKey struct {
	ClassType  ClassType           `json:"class_type"`
	Instructor Instructor          `json:"instructor"`
	Location   membership.Location `json:"location"`
}

// AggregateID is the deterministic journal ID for the session.
func (k SessionKey) AggregateID() uuid.UUID {
	return uuid.NewSHA1(sessionNamespace, []byte(k.String()))
}

func (k SessionKey) String() string {
	return fmt.Sprintf("%s %s %s", k.ClassType, k.Instructor, k.Location)
}

// Session is a scheduled class with its participant and guest rosters.
// Participants are unique; a member may bring several guests.
type Session struct {
	SessionKey
	Timeslot     Timeslot              `json:"timeslot,omitempty"`
	Participants []membership.Identity `json:"participants"`
	Guests       []membership.Identity `json:"guests"`
	Version      int                   `json:"version"`
}

// NewSession creates a session with empty rosters.
func NewSession(key SessionKey, ts Timeslot) Session {
	return Session{
		SessionKey:   key,
		Timeslot:     ts,
		Participants: []membership.Identity{},
		Guests:       []membership.Identity{},
	}
}

func (s *Session) HasParticipant(id membership.Identity) bool {
	return indexOf(s.Participants, id) >= 0
}

func (s *Session) HasGuest(id membership.Identity) bool {
	return indexOf(s.Guests, id) >= 0
}

// CheckIn adds a participant. False if already present.
func (s *Session) CheckIn(id membership.Identity) bool {
	if s.HasParticipant(id) {
		return false
	}
	s.Participants = append(s.Participants, id)
	return true
}

// CheckOut removes the first matching participant.
func (s *Session) CheckOut(id membership.Identity) bool {
	var ok bool
	s.Participants, ok = removeFirst(s.Participants, id)
	return ok
}

// CheckInGuest records a guest brought by id.
func (s *Session) CheckInGuest(id membership.Identity) {
	s.Guests = append(s.Guests, id)
}

// CheckOutGuest removes one guest entry for id.
func (s *Session) CheckOutGuest(id membership.Identity) bool {
	var ok bool
	s.Guests, ok = removeFirst(s.Guests, id)
	return ok
}

// ConflictsWith reports whether other is a different session held at the
// same time. Unscheduled sessions never conflict.
func (s *Session) ConflictsWith(other *Session) bool {
	return s.SessionKey != other.SessionKey && s.Timeslot != "" && s.Timeslot == other.Timeslot
}

func (s *Session) clone() Session {
	c := *s
	c.Participants = append([]membership.Identity{}, s.Participants...)
	c.Guests = append([]membership.Identity{}, s.Guests...)
	return c
}

func indexOf(roster []membership.Identity, id membership.Identity) int {
	key := id.Key()
	for i := range roster {
		if roster[i].Key() == key {
			return i
		}
	}
	return -1
}

func removeFirst(roster []membership.Identity, id membership.Identity) ([]membership.Identity, bool) {
	i := indexOf(roster, id)
	if i < 0 {
		return roster, false
	}
	return append(roster[:i], roster[i+1:]...), true
}

// SessionScheduledEvent is recorded when a session is added to the schedule.
type SessionScheduledEvent struct {
	ClassType  ClassType           `json:"class_type"`
	Instructor Instructor          `json:"instructor"`
	Location   membership.Location `json:"location"`
	Timeslot   Timeslot            `json:"timeslot,omitempty"`
}

// RosterChangedEvent is recorded for every check-in or check-out.
type RosterChangedEvent struct {
	Session SessionKey          `json:"session"`
	Member  membership.Identity `json:"member"`
}
