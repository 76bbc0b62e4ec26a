package ports

import (
	"context"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates
// (merchants, couriers and admins).
type UserRepository interface {
	// Add persists a new user aggregate to storage.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing user aggregate.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user aggregate by its identifier.
	// Returns an ObjectNotFoundError when no such user exists.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByPhone retrieves the user registered under a phone number.
	// Returns an ObjectNotFoundError when no such user exists.
	GetByPhone(ctx context.Context, phone kernel.Phone) (*user.User, error)

	// GetAllByRole retrieves all users holding the given role,
	// sorted by name.
	GetAllByRole(ctx context.Context, role user.Role) ([]*user.User, error)
}
