package entity

import "time"

// SocialAccount is the single-table federated credential used by the
// explicit link flow: a caller that already owns a User attaches a
// provider identity to it. (Provider, ProviderUserID) stays globally
// unique across social accounts too.
type SocialAccount struct {
	ID              string
	UserID          string
	Provider        Provider
	ProviderUserID  string
	Email           string
	Name            string
	ProfileImageURL string
	AccessToken     string
	RefreshToken    string
	TokenExpiry     *time.Time
	LinkedAt        time.Time
	IsPrimary       bool
}

func NewSocialAccount(id, userID string, provider Provider, providerUserID, email, name, profileImageURL string) SocialAccount {
	return SocialAccount{
		ID:              id,
		UserID:          userID,
		Provider:        provider,
		ProviderUserID:  providerUserID,
		Email:           email,
		Name:            name,
		ProfileImageURL: profileImageURL,
		LinkedAt:        time.Now().UTC(),
	}
}

func (a SocialAccount) WithProfile(name, email, profileImageURL string) SocialAccount {
	a.Name = name
	a.Email = email
	a.ProfileImageURL = profileImageURL
	return a
}

func (a SocialAccount) WithTokens(accessToken, refreshToken string, expiry *time.Time) SocialAccount {
	a.AccessToken = accessToken
	a.RefreshToken = refreshToken
	a.TokenExpiry = expiry
	return a
}

func (a SocialAccount) WithPrimary(primary bool) SocialAccount {
	a.IsPrimary = primary
	return a
}

func (a SocialAccount) HasValidTokens() bool {
	return a.AccessToken != "" && (a.TokenExpiry == nil || a.TokenExpiry.After(time.Now()))
}
