package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/doselog/identity-service/internal/domain/entity"
	repo "github.com/doselog/identity-service/internal/domain/repository"
)

type LinkFederatedAccountParams struct {
	Provider       entity.Provider
	ProviderUserID string
	Email          string
	Name           string
	PictureURL     string
	DateOfBirth    *time.Time
	Gender         entity.Gender
	AccessToken    string
	RefreshToken   string
	TokenExpiry    *time.Time
}

type LinkFederatedAccountResult struct {
	User           entity.User
	OAuthAccountID string
	IsNewUser      bool
}

// LinkFederatedAccount resolves a verified federated identity to exactly
// one User and one OAuthAccount, creating whichever does not exist yet.
// The caller must have verified the identity token (including the
// email-verified assertion) before invoking this.
//
// A federated login matching an existing local-only user by email is
// deliberate consolidation: the user gains an OAuthAccount and keeps the
// LocalAccount untouched.
func (s *Service) LinkFederatedAccount(ctx context.Context, p LinkFederatedAccountParams) (LinkFederatedAccountResult, error) {
	if !p.Provider.Federated() || p.ProviderUserID == "" || p.Email == "" {
		return LinkFederatedAccountResult{}, Validation("provider, provider user id and email are required")
	}
	return s.linkFederated(ctx, p, true)
}

func (s *Service) linkFederated(ctx context.Context, p LinkFederatedAccountParams, retryOnRace bool) (LinkFederatedAccountResult, error) {
	existing, found, err := s.OAuths.FindByProviderAndProviderUserID(ctx, p.Provider, p.ProviderUserID)
	if err != nil {
		return LinkFederatedAccountResult{}, Internal("oauth account lookup failed", err)
	}
	if found {
		return s.refreshExistingLink(ctx, existing, p)
	}

	user, isNew, err := s.resolveUserByEmail(ctx, p)
	if err != nil {
		return LinkFederatedAccountResult{}, err
	}

	account := entity.NewOAuthAccount(uuid.NewString(), user.ID, p.Provider, p.ProviderUserID, p.Email, p.Name, p.PictureURL)
	if p.AccessToken != "" {
		account = account.WithTokens(p.AccessToken, p.RefreshToken, p.TokenExpiry)
	}
	// AddPrimary clears other primaries and inserts in one transaction,
	// so readers never observe zero or two primaries.
	account, err = s.OAuths.AddPrimary(ctx, account)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) && retryOnRace {
			// Lost a concurrent create for the same (provider,
			// providerUserId); re-read and fall into the found branch.
			return s.linkFederated(ctx, p, false)
		}
		return LinkFederatedAccountResult{}, Internal("oauth account insert failed", err)
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"provider": p.Provider.String(),
			"new_user": isNew,
		}).Info("federated account linked")
	}
	s.indexUser(ctx, user)

	return LinkFederatedAccountResult{User: user, OAuthAccountID: account.ID, IsNewUser: isNew}, nil
}

// refreshExistingLink handles a repeat federated login: the credential is
// known, so only cached profile fields, tokens and last-login move.
func (s *Service) refreshExistingLink(ctx context.Context, account entity.OAuthAccount, p LinkFederatedAccountParams) (LinkFederatedAccountResult, error) {
	updated := account.WithProviderData(p.Name, p.Email, p.PictureURL)
	if p.AccessToken != "" {
		updated = updated.WithTokens(p.AccessToken, p.RefreshToken, p.TokenExpiry)
	}
	updated = updated.WithLastLoginAt(time.Now().UTC())
	if _, err := s.OAuths.Update(ctx, updated); err != nil {
		return LinkFederatedAccountResult{}, Internal("oauth account update failed", err)
	}

	user, found, err := s.Users.FindByID(ctx, account.UserID)
	if err != nil {
		return LinkFederatedAccountResult{}, Internal("user lookup failed", err)
	}
	if !found {
		// The credential references a user that no longer exists.
		return LinkFederatedAccountResult{}, Integrity("oauth account references a missing user", nil)
	}

	if user.Name != p.Name || user.PictureURL != p.PictureURL {
		user = user.WithFederatedProfile(p.Name, p.PictureURL)
		if user, err = s.Users.Update(ctx, user); err != nil {
			return LinkFederatedAccountResult{}, Internal("user update failed", err)
		}
		s.indexUser(ctx, user)
	}

	return LinkFederatedAccountResult{User: user, OAuthAccountID: account.ID, IsNewUser: false}, nil
}

// resolveUserByEmail reuses an existing profile matched by email, with
// name/picture refreshed, or creates a new one from the federated claims.
func (s *Service) resolveUserByEmail(ctx context.Context, p LinkFederatedAccountParams) (entity.User, bool, error) {
	user, found, err := s.Users.FindByEmail(ctx, p.Email)
	if err != nil {
		return entity.User{}, false, Internal("user lookup failed", err)
	}
	if found {
		if user.Name != p.Name || user.PictureURL != p.PictureURL {
			user = user.WithFederatedProfile(p.Name, p.PictureURL)
			if user, err = s.Users.Update(ctx, user); err != nil {
				return entity.User{}, false, Internal("user update failed", err)
			}
		}
		return user, false, nil
	}

	user = entity.NewUser(uuid.NewString(), p.Name, p.Email, p.DateOfBirth, p.Gender, p.PictureURL)
	user, err = s.Users.Add(ctx, user)
	if err != nil {
		return entity.User{}, false, Internal("user insert failed", err)
	}
	return user, true, nil
}
