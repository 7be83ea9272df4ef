package application

import (
	"context"
	"time"

	"github.com/doselog/identity-service/internal/domain/entity"
)

type AuthResult struct {
	AccessToken string
	User        entity.User
}

// Authenticate validates an email/password pair and mints an access
// token over the owning user's id.
//
// An unknown email and a wrong password return the identical error, so a
// caller cannot probe which addresses have accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (AuthResult, error) {
	local, found, err := s.Locals.FindByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, Internal("local account lookup failed", err)
	}
	if !found {
		return AuthResult{}, Unauthorized(msgInvalidCredentials)
	}
	if !s.Comparer.Compare(password, local.PasswordHash) {
		return AuthResult{}, Unauthorized(msgInvalidCredentials)
	}

	user, found, err := s.Users.FindByID(ctx, local.UserID)
	if err != nil {
		return AuthResult{}, Internal("user lookup failed", err)
	}
	if !found {
		// Credential without an owner is corrupted state, not bad input.
		return AuthResult{}, Integrity("local account references a missing user", nil)
	}

	if _, err := s.Locals.Update(ctx, local.WithLastLoginAt(time.Now().UTC())); err != nil {
		return AuthResult{}, Internal("local account update failed", err)
	}

	token, err := s.Tokens.Encrypt(user.ID)
	if err != nil {
		return AuthResult{}, Internal("token generation failed", err)
	}
	return AuthResult{AccessToken: token, User: user}, nil
}

// OAuthAuthentication authenticates a federated identity that the caller
// already verified with the provider. The credential must have been
// linked beforehand.
func (s *Service) OAuthAuthentication(ctx context.Context, provider entity.Provider, providerUserID string) (AuthResult, error) {
	account, found, err := s.OAuths.FindByProviderAndProviderUserID(ctx, provider, providerUserID)
	if err != nil {
		return AuthResult{}, Internal("oauth account lookup failed", err)
	}
	if !found {
		return AuthResult{}, Unauthorized(msgNotLinked)
	}

	user, found, err := s.Users.FindByID(ctx, account.UserID)
	if err != nil {
		return AuthResult{}, Internal("user lookup failed", err)
	}
	if !found {
		return AuthResult{}, Integrity("oauth account references a missing user", nil)
	}

	if _, err := s.OAuths.Update(ctx, account.WithLastLoginAt(time.Now().UTC())); err != nil {
		return AuthResult{}, Internal("oauth account update failed", err)
	}

	token, err := s.Tokens.Encrypt(user.ID)
	if err != nil {
		return AuthResult{}, Internal("token generation failed", err)
	}
	return AuthResult{AccessToken: token, User: user}, nil
}
