package registration

import (
	"context"

	domain "ticclub/internal/domain/registration"
)

// Store persists Registration state.
// INVARIANT: List returns registrations in insertion order
type Store interface {
	Add(ctx context.Context, value domain.Registration) error
	List(ctx context.Context) ([]domain.Registration, error)
	Count(ctx context.Context) (int, error)
}
