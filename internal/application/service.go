package application

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	repo "github.com/doselog/identity-service/internal/domain/repository"
)

// Service is the identity application service. It owns the account
// linking and authentication flows over the split User/LocalAccount/
// OAuthAccount model, plus profile management.
type Service struct {
	Users   repo.UserRepository
	Locals  repo.LocalAccountRepository
	OAuths  repo.OAuthAccountRepository
	Socials repo.SocialAccountRepository

	Hasher   Hasher
	Comparer HashComparer
	Tokens   Encrypter

	Logger *logrus.Logger

	// Optional infrastructure; every flow tolerates these being nil.
	Redis        *redis.Client
	ES           *elasticsearch.Client
	ESUsersIndex string
	GCS          *storage.Client
	GCSBucket    string
}

// Deps carries the collaborators required by NewService. Optional
// infrastructure (Redis, ES, GCS) is set on the returned Service
// directly by the composition root.
type Deps struct {
	Users    repo.UserRepository
	Locals   repo.LocalAccountRepository
	OAuths   repo.OAuthAccountRepository
	Socials  repo.SocialAccountRepository
	Hasher   Hasher
	Comparer HashComparer
	Tokens   Encrypter
	Logger   *logrus.Logger
}

func NewService(d Deps) *Service {
	return &Service{
		Users:    d.Users,
		Locals:   d.Locals,
		OAuths:   d.OAuths,
		Socials:  d.Socials,
		Hasher:   d.Hasher,
		Comparer: d.Comparer,
		Tokens:   d.Tokens,
		Logger:   d.Logger,
	}
}
