package repository

import (
	"context"

	"github.com/doselog/identity-service/internal/domain/entity"
)

// SocialAccountRepository defines persistence operations for the
// single-table social credential used by the explicit link flow.
type SocialAccountRepository interface {
	Add(ctx context.Context, a entity.SocialAccount) (entity.SocialAccount, error)
	Update(ctx context.Context, a entity.SocialAccount) (entity.SocialAccount, error)
	FindByID(ctx context.Context, id string) (entity.SocialAccount, bool, error)
	FindByUserAndProvider(ctx context.Context, userID string, provider entity.Provider) (entity.SocialAccount, bool, error)
	FindByProviderAndProviderUserID(ctx context.Context, provider entity.Provider, providerUserID string) (entity.SocialAccount, bool, error)
	FindByUserID(ctx context.Context, userID string) ([]entity.SocialAccount, error)
	FindPrimaryByUserID(ctx context.Context, userID string) (entity.SocialAccount, bool, error)
	// SetPrimary flags the given account primary and clears the flag on
	// every other account of the same user in one atomic step.
	SetPrimary(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) (bool, error)
}
