package entity

import "time"

// LocalAccount is an email/password credential owned by exactly one User.
// Email is duplicated from the User so the credential can be looked up
// without touching the users table.
type LocalAccount struct {
	ID           string
	UserID       string
	Email        string
	PasswordHash string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewLocalAccount(id, userID, email, passwordHash string) LocalAccount {
	now := time.Now().UTC()
	return LocalAccount{
		ID:           id,
		UserID:       userID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (a LocalAccount) WithLastLoginAt(t time.Time) LocalAccount {
	a.LastLoginAt = &t
	a.UpdatedAt = time.Now().UTC()
	return a
}

func (a LocalAccount) WithPasswordHash(hash string) LocalAccount {
	a.PasswordHash = hash
	a.UpdatedAt = time.Now().UTC()
	return a
}

// HasPassword reports whether a password hash is set. A stored
// LocalAccount must always satisfy this.
func (a LocalAccount) HasPassword() bool { return a.PasswordHash != "" }
