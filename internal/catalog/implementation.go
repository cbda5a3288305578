// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"

	"fitnexus/internal/apperr"
	"fitnexus/internal/journal"
	"fitnexus/internal/membership"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const aggregateType = "session"

// service implements the Service interface.
type service struct {
	mu       sync.Mutex
	schedule *Schedule
	journal  journal.Recorder
	tracer   trace.Tracer
}

// NewService creates a new catalog service instance.
func NewService(schedule *Schedule, j journal.Recorder) Service {
	return &service{
		schedule: schedule,
		journal:  j,
		tracer:   otel.Tracer("fitnexus/catalog"),
	}
}

// AddSession validates the names and appends a session to the schedule.
func (s *service) AddSession(ctx context.Context, in AddSessionInput) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.add_session")
	defer span.End()

	classType, err := ParseClassType(in.ClassType)
	if err != nil {
		return nil, err
	}
	instructor, err := ParseInstructor(in.Instructor)
	if err != nil {
		return nil, err
	}
	ts, err := ParseTimeslot(in.Timeslot)
	if err != nil {
		return nil, err
	}
	loc, err := membership.ParseLocation(in.Location)
	if err != nil {
		return nil, err
	}

	key := SessionKey{ClassType: classType, Instructor: instructor, Location: loc}
	span.SetAttributes(attribute.String("session.key", key.String()))

	s.mu.Lock()
	defer s.mu.Unlock()

	version, err := s.journal.Record(ctx, key.AggregateID(), aggregateType, "SessionScheduled", SessionScheduledEvent{
		ClassType:  classType,
		Instructor: instructor,
		Location:   loc,
		Timeslot:   ts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	session := NewSession(key, ts)
	session.Version = version
	s.schedule.Add(session)
	return &session, nil
}

// GetSession retrieves a session by key.
func (s *service) GetSession(ctx context.Context, key SessionKey) (*Session, error) {
	_, span := s.tracer.Start(ctx, "catalog.get_session",
		trace.WithAttributes(attribute.String("session.key", key.String())),
	)
	defer span.End()

	session, ok := s.schedule.Find(key)
	if !ok {
		return nil, apperr.New(apperr.CodeSessionNotFound, "%s - class does not exist", key)
	}
	return &session, nil
}

// ListSessions returns the schedule with current rosters.
func (s *service) ListSessions(ctx context.Context) ([]Session, error) {
	_, span := s.tracer.Start(ctx, "catalog.list_sessions")
	defer span.End()

	return s.schedule.List(), nil
}

// FindSessionContaining returns the first session id participates in.
func (s *service) FindSessionContaining(ctx context.Context, id membership.Identity) (*Session, error) {
	_, span := s.tracer.Start(ctx, "catalog.find_containing")
	defer span.End()

	session, ok := s.schedule.FindContaining(id)
	if !ok {
		return nil, apperr.New(apperr.CodeNotEnrolled, "%s is not enrolled in any class", id)
	}
	return &session, nil
}

// SessionsContaining returns every session id participates in.
func (s *service) SessionsContaining(ctx context.Context, id membership.Identity) ([]Session, error) {
	_, span := s.tracer.Start(ctx, "catalog.sessions_containing")
	defer span.End()

	return s.schedule.Containing(id), nil
}

// CheckIn adds id to the participant roster.
func (s *service) CheckIn(ctx context.Context, key SessionKey, id membership.Identity) (*Session, error) {
	return s.modifyRoster(ctx, key, id, "MemberCheckedIn", func(sess *Session) error {
		if !sess.CheckIn(id) {
			return apperr.New(apperr.CodeAlreadyCheckedIn, "%s already checked in", id)
		}
		return nil
	})
}

// CheckOut removes id from the participant roster.
func (s *service) CheckOut(ctx context.Context, key SessionKey, id membership.Identity) (*Session, error) {
	return s.modifyRoster(ctx, key, id, "MemberCheckedOut", func(sess *Session) error {
		if !sess.CheckOut(id) {
			return apperr.New(apperr.CodeNotEnrolled, "%s is not a participant of %s", id, key)
		}
		return nil
	})
}

// CheckInGuest adds a guest of id to the guest roster.
func (s *service) CheckInGuest(ctx context.Context, key SessionKey, id membership.Identity) (*Session, error) {
	return s.modifyRoster(ctx, key, id, "GuestCheckedIn", func(sess *Session) error {
		sess.CheckInGuest(id)
		return nil
	})
}

// CheckOutGuest removes one guest of id from the guest roster.
func (s *service) CheckOutGuest(ctx context.Context, key SessionKey, id membership.Identity) (*Session, error) {
	return s.modifyRoster(ctx, key, id, "GuestCheckedOut", func(sess *Session) error {
		if !sess.CheckOutGuest(id) {
			return apperr.New(apperr.CodeGuestNotCheckedIn, "%s has no guest in %s", id, key)
		}
		return nil
	})
}

func (s *service) modifyRoster(ctx context.Context, key SessionKey, id membership.Identity, eventType string, apply func(*Session) error) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.roster",
		trace.WithAttributes(
			attribute.String("session.key", key.String()),
			attribute.String("event.type", eventType),
		),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	before, ok := s.schedule.Find(key)
	if !ok {
		return nil, apperr.New(apperr.CodeSessionNotFound, "%s - class does not exist", key)
	}

	if _, err := s.schedule.Modify(key, apply); err != nil {
		return nil, err
	}

	version, err := s.journal.Record(ctx, key.AggregateID(), aggregateType, eventType, RosterChangedEvent{Session: key, Member: id})
	if err != nil {
		log.Printf("Compensating for failed %s: restoring rosters of %s", eventType, key)
		if _, restoreErr := s.schedule.Modify(key, func(sess *Session) error {
			sess.Participants = before.Participants
			sess.Guests = before.Guests
			return nil
		}); restoreErr != nil {
			log.Printf("Failed to restore rosters of %s: %v", key, restoreErr)
		}
		return nil, fmt.Errorf("failed to record roster change: %w", err)
	}

	updated, err := s.schedule.Modify(key, func(sess *Session) error {
		sess.Version = version
		return nil
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("roster.participants", len(updated.Participants)),
		attribute.Int("roster.guests", len(updated.Guests)),
	)
	return &updated, nil
}
