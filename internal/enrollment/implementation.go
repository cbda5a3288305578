// internal/enrollment/implementation.go
package enrollment

import (
	"context"
	"log"
	"sync"

	"fitnexus/internal/apperr"
	"fitnexus/internal/calendar"
	"fitnexus/internal/catalog"
	"fitnexus/internal/membership"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

// service implements the Service interface. Each action holds mu from the
// first check to the last mutation.
type service struct {
	mu       sync.Mutex
	members  membership.Service
	catalog  catalog.Service
	clock    calendar.Clock
	tracer   trace.Tracer
	outcomes metric.Int64Counter
}

// Option configures the enrollment service.
type Option func(*options)

type options struct {
	meterProvider metric.MeterProvider
}

// WithMeterProvider records outcomes on mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// NewService creates a new enrollment service instance.
func NewService(members membership.Service, sessions catalog.Service, clock calendar.Clock, opts ...Option) Service {
	o := options{meterProvider: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(&o)
	}

	outcomes, err := o.meterProvider.Meter("fitnexus/enrollment").Int64Counter("enrollment.outcomes",
		metric.WithDescription("Enrollment actions by action and result code"),
	)
	if err != nil {
		log.Printf("Failed to create enrollment outcome counter: %v", err)
		outcomes = noop.Int64Counter{}
	}
	return &service{
		members:  members,
		catalog:  sessions,
		clock:    clock,
		tracer:   otel.Tracer("fitnexus/enrollment"),
		outcomes: outcomes,
	}
}

type eligibility struct {
	member  *membership.Member
	session *catalog.Session
}

// validate runs the shared precondition protocol. The first failing check
// decides the error.
func (s *service) validate(ctx context.Context, req Request) (*eligibility, error) {
	if !req.Member.DOB.IsValid() {
		return nil, apperr.New(apperr.CodeInvalidDate, "DOB %s: invalid calendar date", req.Member.DOB)
	}
	instructor, err := catalog.ParseInstructor(req.Instructor)
	if err != nil {
		return nil, err
	}
	member, err := s.members.GetMember(ctx, req.Member)
	if err != nil {
		return nil, err
	}
	classType, err := catalog.ParseClassType(req.ClassType)
	if err != nil {
		return nil, err
	}
	if member.IsExpired(calendar.Today(s.clock)) {
		return nil, apperr.New(apperr.CodeMembershipExpired, "%s membership expired %s", member.Identity, member.Expiration)
	}
	loc, err := membership.ParseLocation(req.Location)
	if err != nil {
		return nil, err
	}
	session, err := s.catalog.GetSession(ctx, catalog.SessionKey{ClassType: classType, Instructor: instructor, Location: loc})
	if err != nil {
		return nil, err
	}
	return &eligibility{member: member, session: session}, nil
}

// CheckIn enrolls the member in a session.
func (s *service) CheckIn(ctx context.Context, req Request) (*Outcome, error) {
	return s.run(ctx, "check_in", req, func(ctx context.Context, e *eligibility) (*Outcome, error) {
		enrolled, err := s.catalog.SessionsContaining(ctx, e.member.Identity)
		if err != nil {
			return nil, err
		}
		for i := range enrolled {
			if e.session.ConflictsWith(&enrolled[i]) {
				return nil, apperr.New(apperr.CodeTimeConflict, "time conflict - %s is in %s at %s",
					e.member.Identity, enrolled[i].SessionKey, enrolled[i].Timeslot.Clock())
			}
		}
		if e.member.Policy().LocationRestricted && e.member.Location != e.session.Location {
			return nil, apperr.New(apperr.CodeLocationRestricted, "%s membership is restricted to %s",
				e.member.Tier, e.member.Location)
		}

		updated, err := s.catalog.CheckIn(ctx, e.session.SessionKey, e.member.Identity)
		if err != nil {
			return nil, err
		}
		return &Outcome{Kind: KindCheckedIn, Member: *e.member, Session: catalog.ViewOf(*updated)}, nil
	})
}

// CheckOut drops the member from a session.
func (s *service) CheckOut(ctx context.Context, req Request) (*Outcome, error) {
	return s.run(ctx, "check_out", req, func(ctx context.Context, e *eligibility) (*Outcome, error) {
		updated, err := s.catalog.CheckOut(ctx, e.session.SessionKey, e.member.Identity)
		if err != nil {
			return nil, err
		}
		return &Outcome{Kind: KindCheckedOut, Member: *e.member, Session: catalog.ViewOf(*updated)}, nil
	})
}

// CheckInGuest admits a guest of the member, spending one guest pass.
func (s *service) CheckInGuest(ctx context.Context, req Request) (*Outcome, error) {
	return s.run(ctx, "guest_check_in", req, func(ctx context.Context, e *eligibility) (*Outcome, error) {
		if !e.member.Policy().AllowsGuests {
			return nil, apperr.New(apperr.CodeTierForbidsGuests, "%s membership - guests not allowed", e.member.Tier)
		}
		if e.member.Location != e.session.Location {
			return nil, apperr.New(apperr.CodeLocationRestricted, "guests of %s must attend at %s",
				e.member.Identity, e.member.Location)
		}

		member, err := s.members.UseGuestPass(ctx, e.member.Identity)
		if err != nil {
			return nil, err
		}
		updated, err := s.catalog.CheckInGuest(ctx, e.session.SessionKey, e.member.Identity)
		if err != nil {
			log.Printf("Compensating for failed guest check-in: returning guest pass to %s", e.member.Identity)
			if _, returnErr := s.members.ReturnGuestPass(ctx, e.member.Identity); returnErr != nil {
				log.Printf("Failed to return guest pass: %v", returnErr)
			}
			return nil, err
		}
		return &Outcome{Kind: KindGuestCheckedIn, Member: *member, Session: catalog.ViewOf(*updated)}, nil
	})
}

// CheckOutGuest releases one of the member's guests and credits the pass back.
func (s *service) CheckOutGuest(ctx context.Context, req Request) (*Outcome, error) {
	return s.run(ctx, "guest_check_out", req, func(ctx context.Context, e *eligibility) (*Outcome, error) {
		if !e.session.HasGuest(e.member.Identity) {
			return nil, apperr.New(apperr.CodeGuestNotCheckedIn, "%s has no guest in %s", e.member.Identity, e.session.SessionKey)
		}
		updated, err := s.catalog.CheckOutGuest(ctx, e.session.SessionKey, e.member.Identity)
		if err != nil {
			return nil, err
		}

		member := e.member
		if credited, err := s.members.ReturnGuestPass(ctx, e.member.Identity); err != nil {
			log.Printf("Failed to credit guest pass to %s: %v", e.member.Identity, err)
		} else {
			member = credited
		}
		return &Outcome{Kind: KindGuestCheckedOut, Member: *member, Session: catalog.ViewOf(*updated)}, nil
	})
}

func (s *service) run(ctx context.Context, action string, req Request, apply func(context.Context, *eligibility) (*Outcome, error)) (*Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "enrollment."+action,
		trace.WithAttributes(
			attribute.String("class.type", req.ClassType),
			attribute.String("class.instructor", req.Instructor),
			attribute.String("class.location", req.Location),
		),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	outcome, err := s.attempt(ctx, req, apply)

	result := "OK"
	if err != nil {
		result = string(apperr.CodeOf(err))
	}
	span.SetAttributes(attribute.String("enrollment.result", result))
	s.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("result", result),
	))
	return outcome, err
}

func (s *service) attempt(ctx context.Context, req Request, apply func(context.Context, *eligibility) (*Outcome, error)) (*Outcome, error) {
	e, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	return apply(ctx, e)
}
