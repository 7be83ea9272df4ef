package entity

import "time"

// OAuthAccount is a federated credential owned by one User. The pair
// (Provider, ProviderUserID) is globally unique and identifies exactly
// one account. At most one account per user may be primary.
type OAuthAccount struct {
	ID              string
	UserID          string
	Provider        Provider
	ProviderUserID  string
	Email           string
	DisplayName     string
	ProfileImageURL string
	AccessToken     string
	RefreshToken    string
	TokenExpiry     *time.Time
	LastLoginAt     *time.Time
	LinkedAt        time.Time
	IsPrimary       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewOAuthAccount(id, userID string, provider Provider, providerUserID, email, displayName, profileImageURL string) OAuthAccount {
	now := time.Now().UTC()
	return OAuthAccount{
		ID:              id,
		UserID:          userID,
		Provider:        provider,
		ProviderUserID:  providerUserID,
		Email:           email,
		DisplayName:     displayName,
		ProfileImageURL: profileImageURL,
		LinkedAt:        now,
		IsPrimary:       true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// WithProviderData refreshes the cached provider profile fields.
func (a OAuthAccount) WithProviderData(displayName, email, profileImageURL string) OAuthAccount {
	a.DisplayName = displayName
	a.Email = email
	a.ProfileImageURL = profileImageURL
	a.UpdatedAt = time.Now().UTC()
	return a
}

func (a OAuthAccount) WithTokens(accessToken, refreshToken string, expiry *time.Time) OAuthAccount {
	a.AccessToken = accessToken
	a.RefreshToken = refreshToken
	a.TokenExpiry = expiry
	a.UpdatedAt = time.Now().UTC()
	return a
}

func (a OAuthAccount) WithLastLoginAt(t time.Time) OAuthAccount {
	a.LastLoginAt = &t
	a.UpdatedAt = time.Now().UTC()
	return a
}

func (a OAuthAccount) WithPrimary(primary bool) OAuthAccount {
	a.IsPrimary = primary
	a.UpdatedAt = time.Now().UTC()
	return a
}

func (a OAuthAccount) TokenExpired() bool {
	return a.TokenExpiry != nil && time.Now().After(*a.TokenExpiry)
}

func (a OAuthAccount) HasValidTokens() bool {
	return a.AccessToken != "" && !a.TokenExpired()
}
