package ports

import (
	"context"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
)

// UserRepository defines the read-mostly interface over the identity store.
// The core never writes users; seeding is owned by the infrastructure layer.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
