// internal/enrollment/service.go
package enrollment

import (
	"context"
)

// Service defines the interface for the enrollment service.
type Service interface {
	CheckIn(ctx context.Context, req Request) (*Outcome, error)
	CheckOut(ctx context.Context, req Request) (*Outcome, error)
	CheckInGuest(ctx context.Context, req Request) (*Outcome, error)
	CheckOutGuest(ctx context.Context, req Request) (*Outcome, error)
}
