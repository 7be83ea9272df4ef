package repository

import (
	"context"

	"github.com/doselog/identity-service/internal/domain/entity"
)

// LocalAccountRepository defines persistence operations for password
// credentials. At most one LocalAccount exists per user.
type LocalAccountRepository interface {
	Add(ctx context.Context, a entity.LocalAccount) (entity.LocalAccount, error)
	Update(ctx context.Context, a entity.LocalAccount) (entity.LocalAccount, error)
	FindByEmail(ctx context.Context, email string) (entity.LocalAccount, bool, error)
	FindByUserID(ctx context.Context, userID string) (entity.LocalAccount, bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
