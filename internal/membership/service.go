// internal/membership/service.go
package membership

import (
	"context"

	"fitnexus/internal/calendar"
)

// AddMemberInput carries the fields of a new membership.
type AddMemberInput struct {
	Tier Tier
	Identity
	Location string
}

// ImportMemberInput carries a member read from a bulk member list.
type ImportMemberInput struct {
	Identity
	Expiration calendar.Date
	Location   string
}

// Service defines the interface for the membership service.
type Service interface {
	AddMember(ctx context.Context, in AddMemberInput) (*Member, error)
	ImportMember(ctx context.Context, in ImportMemberInput) (*Member, error)
	RemoveMember(ctx context.Context, id Identity) error
	GetMember(ctx context.Context, id Identity) (*Member, error)
	ListMembers(ctx context.Context, key SortKey) ([]Member, error)
	IsEmpty(ctx context.Context) bool
	UseGuestPass(ctx context.Context, id Identity) (*Member, error)
	ReturnGuestPass(ctx context.Context, id Identity) (*Member, error)
}
