package repository

import (
	"context"

	"github.com/doselog/identity-service/internal/domain/entity"
)

// OAuthAccountRepository defines persistence operations for federated
// credentials keyed by (provider, provider user id).
type OAuthAccountRepository interface {
	Add(ctx context.Context, a entity.OAuthAccount) (entity.OAuthAccount, error)
	// AddPrimary clears the primary flag on every account owned by
	// a.UserID and inserts a as the new primary, atomically: a reader
	// must never observe zero or two primaries for the same user.
	AddPrimary(ctx context.Context, a entity.OAuthAccount) (entity.OAuthAccount, error)
	Update(ctx context.Context, a entity.OAuthAccount) (entity.OAuthAccount, error)
	FindByID(ctx context.Context, id string) (entity.OAuthAccount, bool, error)
	FindByProviderAndProviderUserID(ctx context.Context, provider entity.Provider, providerUserID string) (entity.OAuthAccount, bool, error)
	FindByUserID(ctx context.Context, userID string) ([]entity.OAuthAccount, error)
	FindPrimaryByUserID(ctx context.Context, userID string) (entity.OAuthAccount, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
