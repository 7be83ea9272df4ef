package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doselog/identity-service/internal/domain/entity"
	"github.com/doselog/identity-service/pkg/helpers"
)

const profileCacheTTL = 10 * time.Minute

func profileKey(userID string) string {
	return "user:profile:" + userID
}

// GetProfile loads a user profile, read-through cached in Redis. A user
// id decoded from a still-valid token whose row is gone maps to NotFound.
func (s *Service) GetProfile(ctx context.Context, userID string) (entity.User, error) {
	if s.Redis != nil {
		var cached entity.User
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileKey(userID), &cached); err == nil && ok {
			return cached, nil
		}
	}

	user, found, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return entity.User{}, Internal("user lookup failed", err)
	}
	if !found {
		return entity.User{}, NotFound("user not found")
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileKey(userID), user, profileCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("profile cache write failed")
		}
	}
	return user, nil
}

type UpdateUserProfileParams struct {
	UserID      string
	Name        string
	Email       string
	DateOfBirth *time.Time
	Gender      entity.Gender
	PictureURL  string
}

// UpdateUserProfile replaces the editable profile fields. Changing the
// email re-checks uniqueness against other users.
func (s *Service) UpdateUserProfile(ctx context.Context, p UpdateUserProfileParams) (entity.User, error) {
	if p.UserID == "" || p.Name == "" || p.Email == "" {
		return entity.User{}, Validation("user id, name and email are required")
	}

	user, found, err := s.Users.FindByID(ctx, p.UserID)
	if err != nil {
		return entity.User{}, Internal("user lookup failed", err)
	}
	if !found {
		return entity.User{}, NotFound("user not found")
	}

	if user.Email != p.Email {
		other, found, err := s.Users.FindByEmail(ctx, p.Email)
		if err != nil {
			return entity.User{}, Internal("email lookup failed", err)
		}
		if found && other.ID != p.UserID {
			return entity.User{}, Conflict("email is already in use by another user")
		}
	}

	user = user.WithProfile(p.Name, p.Email, p.DateOfBirth, p.Gender, p.PictureURL)
	user, err = s.Users.Update(ctx, user)
	if err != nil {
		return entity.User{}, Internal("user update failed", err)
	}

	s.invalidateProfile(ctx, user.ID)
	s.indexUser(ctx, user)
	return user, nil
}

// UploadPicture stores a profile image in GCS and points the user's
// picture URL at it.
func (s *Service) UploadPicture(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", Internal("object storage not configured", errors.New("gcs client or bucket missing"))
	}

	user, found, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return "", Internal("user lookup failed", err)
	}
	if !found {
		return "", NotFound("user not found")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("pictures", userID, uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", Internal("picture upload failed", err)
	}

	user = user.WithProfile(user.Name, user.Email, user.DateOfBirth, user.Gender, url)
	if user, err = s.Users.Update(ctx, user); err != nil {
		return "", Internal("user update failed", err)
	}

	s.invalidateProfile(ctx, user.ID)
	s.indexUser(ctx, user)
	return url, nil
}

func (s *Service) invalidateProfile(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, profileKey(userID)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("profile cache invalidation failed")
	}
}
