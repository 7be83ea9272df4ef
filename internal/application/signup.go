package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/doselog/identity-service/internal/domain/entity"
)

type CreateLocalAccountParams struct {
	Name        string
	Email       string
	Password    string
	DateOfBirth *time.Time
	Gender      entity.Gender
	PictureURL  string
}

type CreateLocalAccountResult struct {
	User           entity.User
	LocalAccountID string
}

// CreateLocalAccount signs a user up with an email/password credential.
// It creates the User profile first and the LocalAccount second; a
// failure between the two writes is reported as an internal
// inconsistency, never as a validation error.
//
// The two email probes are a fast-path check only; the unique
// constraints in the store remain the true guard against a concurrent
// signup race.
func (s *Service) CreateLocalAccount(ctx context.Context, p CreateLocalAccountParams) (CreateLocalAccountResult, error) {
	if p.Name == "" || p.Email == "" || p.Password == "" {
		return CreateLocalAccountResult{}, Validation("name, email and password are required")
	}

	exists, err := s.Users.EmailExists(ctx, p.Email)
	if err != nil {
		return CreateLocalAccountResult{}, Internal("email lookup failed", err)
	}
	if exists {
		return CreateLocalAccountResult{}, Conflict("email is already in use")
	}
	exists, err = s.Locals.EmailExists(ctx, p.Email)
	if err != nil {
		return CreateLocalAccountResult{}, Internal("email lookup failed", err)
	}
	if exists {
		return CreateLocalAccountResult{}, Conflict("email is already in use")
	}

	hash, err := s.Hasher.Hash(p.Password)
	if err != nil {
		return CreateLocalAccountResult{}, Internal("password hashing failed", err)
	}

	user := entity.NewUser(uuid.NewString(), p.Name, p.Email, p.DateOfBirth, p.Gender, p.PictureURL)
	user, err = s.Users.Add(ctx, user)
	if err != nil {
		return CreateLocalAccountResult{}, Internal("user insert failed", err)
	}

	local := entity.NewLocalAccount(uuid.NewString(), user.ID, p.Email, hash)
	if _, err := s.Locals.Add(ctx, local); err != nil {
		// The user row exists without its credential; surface as an
		// inconsistency so operators notice, not as a user error.
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", user.ID).Error("local account insert failed after user insert")
		}
		return CreateLocalAccountResult{}, Integrity("account creation left an incomplete profile", err)
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": user.ID}).Info("local account created")
	}
	s.indexUser(ctx, user)

	return CreateLocalAccountResult{User: user, LocalAccountID: local.ID}, nil
}
