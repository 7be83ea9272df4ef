package repository

import (
	"context"

	"github.com/doselog/identity-service/internal/domain/entity"
)

// UserRepository defines persistence operations for user profiles.
// Find methods return (zero, false, nil) when no row matches; errors are
// reserved for infrastructure failures.
type UserRepository interface {
	Add(ctx context.Context, u entity.User) (entity.User, error)
	Update(ctx context.Context, u entity.User) (entity.User, error)
	FindByID(ctx context.Context, id string) (entity.User, bool, error)
	FindByEmail(ctx context.Context, email string) (entity.User, bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
