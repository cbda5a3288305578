// internal/catalog/service.go
package catalog

import (
	"context"

	"fitnexus/internal/membership"
)

// AddSessionInput names the parts of a new session. Timeslot may be empty.
type AddSessionInput struct {
	ClassType  string
	Instructor string
	Timeslot   string
	Location   string
}

// Service defines the interface for the catalog service.
type Service interface {
	AddSession(ctx context.Context, in AddSessionInput) (*Session, error)
	GetSession(ctx context.Context, key SessionKey) (*Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
	FindSessionContaining(ctx context.Context, id membership.Identity) (*Session, error)
	SessionsContaining(ctx context.Context, id membership.Identity) ([]Session, error)
	CheckIn(ctx context.Context, key SessionKey, id membership.Identity) (*Session, error)
	CheckOut(ctx context.Context, key SessionKey, id membership.Identity) (*Session, error)
	CheckInGuest(ctx context.Context, key SessionKey, id membership.Identity) (*Session, error)
	CheckOutGuest(ctx context.Context, key SessionKey, id membership.Identity) (*Session, error)
}
