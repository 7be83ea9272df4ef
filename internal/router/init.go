package router

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/doselog/identity-service/config"
	"github.com/doselog/identity-service/internal/application"
	pginfra "github.com/doselog/identity-service/internal/infrastructure/postgres"
	handlers "github.com/doselog/identity-service/internal/interface/http"
	"github.com/doselog/identity-service/internal/router/modules"
	"github.com/doselog/identity-service/pkg/helpers"
)

// Infra carries the process-wide collaborators built by main. Every
// dependency is passed explicitly; there are no package-level
// singletons.
type Infra struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client
	JWT    *helpers.JWTManager
	Google application.FederatedVerifier
	Pub    *helpers.RabbitPublisher
}

// InitModules builds the repositories, the identity service and the
// HTTP modules, and registers everything with the router registry.
// Called once during startup.
func InitModules(r *Registry, infra Infra) {
	svc := application.NewService(application.Deps{
		Users:    pginfra.NewUserRepository(infra.Pool),
		Locals:   pginfra.NewLocalAccountRepository(infra.Pool),
		OAuths:   pginfra.NewOAuthAccountRepository(infra.Pool),
		Socials:  pginfra.NewSocialAccountRepository(infra.Pool),
		Hasher:   helpers.BcryptHasher{},
		Comparer: helpers.BcryptHasher{},
		Tokens:   infra.JWT,
		Logger:   infra.Logger,
	})
	svc.Redis = infra.Redis
	svc.ES = infra.ES
	svc.ESUsersIndex = infra.Cfg.ESUsersIndex
	svc.GCS = infra.GCS
	svc.GCSBucket = infra.Cfg.GCSBucket

	cookies := helpers.NewCookie(infra.Cfg.CookieDomain, infra.Cfg.CookieSecure)
	authHandler := handlers.NewAuthHandler(svc, infra.Google, infra.JWT, infra.Logger, cookies, infra.Pub, infra.Cfg.MailSendEnabled)
	userHandler := handlers.NewUserHandler(svc, infra.Logger)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, infra.JWT))
}
