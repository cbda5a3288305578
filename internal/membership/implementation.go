// internal/membership/implementation.go
package membership

import (
	"context"
	"fmt"
	"log"
	"sync"

	"fitnexus/internal/apperr"
	"fitnexus/internal/calendar"
	"fitnexus/internal/journal"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MinimumAge is the youngest a member may be on the day they join.
const MinimumAge = 18

const aggregateType = "member"

// service implements the Service interface.
type service struct {
	mu      sync.Mutex
	store   *Store
	journal journal.Recorder
	clock   calendar.Clock
	tracer  trace.Tracer
}

// NewService creates a new membership service instance.
func NewService(store *Store, j journal.Recorder, clock calendar.Clock) Service {
	return &service{
		store:   store,
		journal: j,
		clock:   clock,
		tracer:  otel.Tracer("fitnexus/membership"),
	}
}

// AddMember runs the eligibility checks and adds a new member.
func (s *service) AddMember(ctx context.Context, in AddMemberInput) (*Member, error) {
	ctx, span := s.tracer.Start(ctx, "membership.add",
		trace.WithAttributes(attribute.String("member.tier", string(in.Tier))),
	)
	defer span.End()

	if !in.Tier.Valid() {
		return nil, apperr.New(apperr.CodeInvalidTier, "%s - invalid membership tier", in.Tier)
	}
	if !in.DOB.IsValid() {
		return nil, apperr.New(apperr.CodeInvalidDate, "DOB %s: invalid calendar date", in.DOB)
	}
	today := calendar.Today(s.clock)
	if !in.DOB.Before(today) {
		return nil, apperr.New(apperr.CodeDateNotInPast, "DOB %s: cannot be today or a future date", in.DOB)
	}
	if !in.DOB.IsAtLeastYearsBefore(today, MinimumAge) {
		return nil, apperr.New(apperr.CodeUnderage, "DOB %s: must be %d or older to join", in.DOB, MinimumAge)
	}
	loc, err := ParseLocation(in.Location)
	if err != nil {
		return nil, err
	}

	policy := in.Tier.Policy()
	member := Member{
		ID:          in.Identity.AggregateID(),
		Identity:    in.Identity,
		Expiration:  policy.Expiration(today),
		Location:    loc,
		Tier:        in.Tier,
		GuestPasses: policy.GuestPassBudget,
	}
	return s.insert(ctx, member, "MemberAdded")
}

// ImportMember adds a bulk-loaded member as Standard with the given expiration.
func (s *service) ImportMember(ctx context.Context, in ImportMemberInput) (*Member, error) {
	ctx, span := s.tracer.Start(ctx, "membership.import")
	defer span.End()

	loc, err := ParseLocation(in.Location)
	if err != nil {
		return nil, err
	}
	member := Member{
		ID:          in.Identity.AggregateID(),
		Identity:    in.Identity,
		Expiration:  in.Expiration,
		Location:    loc,
		Tier:        TierStandard,
		GuestPasses: TierStandard.Policy().GuestPassBudget,
	}
	return s.insert(ctx, member, "MemberImported")
}

func (s *service) insert(ctx context.Context, member Member, eventType string) (*Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Add(member); err != nil {
		return nil, err
	}

	version, err := s.journal.Record(ctx, member.ID, aggregateType, eventType, MemberAddedEvent{
		ID:         member.ID,
		FirstName:  member.FirstName,
		LastName:   member.LastName,
		DOB:        member.DOB,
		Tier:       member.Tier,
		Location:   member.Location,
		Expiration: member.Expiration,
	})
	if err != nil {
		log.Printf("Compensating for failed %s: removing %s", eventType, member.Identity)
		if !s.store.Remove(member.Identity) {
			log.Printf("Failed to remove %s: already gone", member.Identity)
		}
		return nil, fmt.Errorf("failed to record member: %w", err)
	}

	return s.setVersion(member.Identity, version)
}

// RemoveMember cancels a membership.
func (s *service) RemoveMember(ctx context.Context, id Identity) error {
	ctx, span := s.tracer.Start(ctx, "membership.remove")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	member, ok := s.store.Find(id)
	if !ok {
		return apperr.New(apperr.CodeMemberNotFound, "%s is not in the member database", id)
	}
	s.store.Remove(id)

	if _, err := s.journal.Record(ctx, member.ID, aggregateType, "MemberRemoved", MemberRemovedEvent{ID: member.ID}); err != nil {
		log.Printf("Compensating for failed removal: restoring %s", id)
		if addErr := s.store.Add(member); addErr != nil {
			log.Printf("Failed to restore member %s: %v", id, addErr)
		}
		return fmt.Errorf("failed to record removal: %w", err)
	}
	return nil
}

// GetMember retrieves a member by identity.
func (s *service) GetMember(ctx context.Context, id Identity) (*Member, error) {
	_, span := s.tracer.Start(ctx, "membership.get")
	defer span.End()

	member, ok := s.store.Find(id)
	if !ok {
		return nil, apperr.New(apperr.CodeMemberNotFound, "%s is not in the member database", id)
	}
	return &member, nil
}

// ListMembers returns every member, ordered by key.
func (s *service) ListMembers(ctx context.Context, key SortKey) ([]Member, error) {
	_, span := s.tracer.Start(ctx, "membership.list",
		trace.WithAttributes(attribute.String("sort.key", string(key))),
	)
	defer span.End()

	switch key {
	case SortNone:
		return s.store.List(), nil
	case SortByCounty, SortByExpiration, SortByName:
		return s.store.Sorted(key), nil
	default:
		return nil, apperr.New(apperr.CodeInvalidArgument, "unknown sort key %q", key)
	}
}

func (s *service) IsEmpty(ctx context.Context) bool {
	return s.store.IsEmpty()
}

// UseGuestPass consumes one of the member's guest passes.
func (s *service) UseGuestPass(ctx context.Context, id Identity) (*Member, error) {
	return s.adjustGuestPasses(ctx, id, "GuestPassUsed", func(m *Member) error {
		if !m.UseGuestPass() {
			return apperr.New(apperr.CodeGuestPassExhausted, "%s has no guest passes left", m.Identity)
		}
		return nil
	}, (*Member).ReturnGuestPass)
}

// ReturnGuestPass credits one guest pass back to the member.
func (s *service) ReturnGuestPass(ctx context.Context, id Identity) (*Member, error) {
	return s.adjustGuestPasses(ctx, id, "GuestPassReturned", func(m *Member) error {
		if !m.ReturnGuestPass() {
			return apperr.New(apperr.CodeGuestPassAtCapacity, "%s already holds every guest pass", m.Identity)
		}
		return nil
	}, (*Member).UseGuestPass)
}

func (s *service) adjustGuestPasses(ctx context.Context, id Identity, eventType string, apply func(*Member) error, undo func(*Member) bool) (*Member, error) {
	ctx, span := s.tracer.Start(ctx, "membership.guest_pass",
		trace.WithAttributes(attribute.String("event.type", eventType)),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	member, err := s.store.Update(id, func(m *Member) error {
		if !m.Policy().AllowsGuests {
			return apperr.New(apperr.CodeTierForbidsGuests, "%s membership does not allow guests", m.Tier)
		}
		return apply(m)
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("guest_passes.balance", member.GuestPasses))

	version, err := s.journal.Record(ctx, member.ID, aggregateType, eventType, GuestPassEvent{ID: member.ID, Balance: member.GuestPasses})
	if err != nil {
		log.Printf("Compensating for failed %s: reverting guest passes for %s", eventType, id)
		if _, undoErr := s.store.Update(id, func(m *Member) error {
			undo(m)
			return nil
		}); undoErr != nil {
			log.Printf("Failed to revert guest passes for %s: %v", id, undoErr)
		}
		return nil, fmt.Errorf("failed to record guest pass change: %w", err)
	}

	return s.setVersion(id, version)
}

func (s *service) setVersion(id Identity, version int) (*Member, error) {
	member, err := s.store.Update(id, func(m *Member) error {
		m.Version = version
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}
