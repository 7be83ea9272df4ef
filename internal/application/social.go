package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/doselog/identity-service/internal/domain/entity"
)

type LinkSocialAccountParams struct {
	UserID          string
	Provider        entity.Provider
	ProviderUserID  string
	Email           string
	Name            string
	ProfileImageURL string
	AccessToken     string
	RefreshToken    string
	TokenExpiry     *time.Time
	MakePrimary     bool
}

type LinkSocialAccountResult struct {
	SocialAccountID string
	IsNewLink       bool
	Message         string
}

// LinkSocialAccount attaches a provider identity to an already-known
// user. The (provider, providerUserId) pair is globally unique: linking
// it to a second user is a conflict, never a silent re-parent.
func (s *Service) LinkSocialAccount(ctx context.Context, p LinkSocialAccountParams) (LinkSocialAccountResult, error) {
	if p.UserID == "" || p.Provider == "" || p.ProviderUserID == "" || p.Email == "" || p.Name == "" {
		return LinkSocialAccountResult{}, Validation("user id, provider, provider user id, email and name are required")
	}

	existing, found, err := s.Socials.FindByUserAndProvider(ctx, p.UserID, p.Provider)
	if err != nil {
		return LinkSocialAccountResult{}, Internal("social account lookup failed", err)
	}
	if found {
		updated := existing.
			WithProfile(p.Name, p.Email, p.ProfileImageURL).
			WithTokens(p.AccessToken, p.RefreshToken, p.TokenExpiry)
		if _, err := s.Socials.Update(ctx, updated); err != nil {
			return LinkSocialAccountResult{}, Internal("social account update failed", err)
		}
		if p.MakePrimary {
			if err := s.Socials.SetPrimary(ctx, updated.ID); err != nil {
				return LinkSocialAccountResult{}, Internal("primary swap failed", err)
			}
		}
		return LinkSocialAccountResult{SocialAccountID: updated.ID, IsNewLink: false, Message: "social account updated"}, nil
	}

	claimed, found, err := s.Socials.FindByProviderAndProviderUserID(ctx, p.Provider, p.ProviderUserID)
	if err != nil {
		return LinkSocialAccountResult{}, Internal("social account lookup failed", err)
	}
	if found && claimed.UserID != p.UserID {
		return LinkSocialAccountResult{}, Conflict("this provider account is already linked to another user")
	}

	account := entity.NewSocialAccount(uuid.NewString(), p.UserID, p.Provider, p.ProviderUserID, p.Email, p.Name, p.ProfileImageURL)
	account = account.WithTokens(p.AccessToken, p.RefreshToken, p.TokenExpiry)
	account, err = s.Socials.Add(ctx, account)
	if err != nil {
		return LinkSocialAccountResult{}, Internal("social account insert failed", err)
	}
	if p.MakePrimary {
		if err := s.Socials.SetPrimary(ctx, account.ID); err != nil {
			return LinkSocialAccountResult{}, Internal("primary swap failed", err)
		}
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"user_id":  p.UserID,
			"provider": p.Provider.String(),
		}).Info("social account linked")
	}
	return LinkSocialAccountResult{SocialAccountID: account.ID, IsNewLink: true, Message: "social account linked"}, nil
}

type SocialAccountsResult struct {
	Accounts []entity.SocialAccount
	Primary  *entity.SocialAccount
}

// LoadSocialAccountsByUser lists every linked social account plus the
// one flagged primary, if any.
func (s *Service) LoadSocialAccountsByUser(ctx context.Context, userID string) (SocialAccountsResult, error) {
	if userID == "" {
		return SocialAccountsResult{}, Validation("user id is required")
	}
	accounts, err := s.Socials.FindByUserID(ctx, userID)
	if err != nil {
		return SocialAccountsResult{}, Internal("social account lookup failed", err)
	}
	res := SocialAccountsResult{Accounts: accounts}
	primary, found, err := s.Socials.FindPrimaryByUserID(ctx, userID)
	if err != nil {
		return SocialAccountsResult{}, Internal("primary lookup failed", err)
	}
	if found {
		res.Primary = &primary
	}
	return res, nil
}
