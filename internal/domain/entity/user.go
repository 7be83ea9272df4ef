package entity

import (
	"time"
)

// User is the provider-agnostic profile entity. Credentials live in
// LocalAccount and OAuthAccount; a User has no password of its own.
//
// Entities are value snapshots: mutation goes through With* transforms
// that return a new copy with UpdatedAt bumped. The persisted row is
// authoritative, not the in-memory value.
type User struct {
	ID            string
	Name          string
	Email         string
	DateOfBirth   *time.Time
	Gender        Gender
	PictureURL    string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser builds a fresh profile with generated timestamps.
func NewUser(id, name, email string, dateOfBirth *time.Time, gender Gender, pictureURL string) User {
	now := time.Now().UTC()
	return User{
		ID:          id,
		Name:        name,
		Email:       email,
		DateOfBirth: dateOfBirth,
		Gender:      gender,
		PictureURL:  pictureURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithProfile replaces all editable profile fields.
func (u User) WithProfile(name, email string, dateOfBirth *time.Time, gender Gender, pictureURL string) User {
	u.Name = name
	u.Email = email
	u.DateOfBirth = dateOfBirth
	u.Gender = gender
	u.PictureURL = pictureURL
	u.UpdatedAt = time.Now().UTC()
	return u
}

// WithFederatedProfile refreshes only name and picture, the two fields a
// federated login is allowed to overwrite.
func (u User) WithFederatedProfile(name, pictureURL string) User {
	u.Name = name
	u.PictureURL = pictureURL
	u.UpdatedAt = time.Now().UTC()
	return u
}

func (u User) WithEmailVerified(verified bool) User {
	u.EmailVerified = verified
	u.UpdatedAt = time.Now().UTC()
	return u
}

// ProfileComplete reports whether the basic profile fields are all filled in.
func (u User) ProfileComplete() bool {
	return u.Name != "" && u.Email != "" && u.DateOfBirth != nil && u.Gender != GenderUnknown
}
