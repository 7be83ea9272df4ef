package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/doselog/identity-service/config"
	"github.com/doselog/identity-service/internal/application"
	"github.com/doselog/identity-service/internal/domain/entity"
	"github.com/doselog/identity-service/internal/infrastructure/postgres"
	"github.com/doselog/identity-service/pkg/helpers"
)

// seed creates a demo local account so the API can be exercised right away.
func main() {
	name := flag.String("name", "Demo User", "display name")
	email := flag.String("email", "demo@example.com", "email address")
	password := flag.String("password", "demo1234", "password (min 8 chars)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	svc := application.NewService(application.Deps{
		Users:    postgres.NewUserRepository(pool),
		Locals:   postgres.NewLocalAccountRepository(pool),
		OAuths:   postgres.NewOAuthAccountRepository(pool),
		Socials:  postgres.NewSocialAccountRepository(pool),
		Hasher:   helpers.BcryptHasher{},
		Comparer: helpers.BcryptHasher{},
		Logger:   logger,
	})

	res, err := svc.CreateLocalAccount(ctx, application.CreateLocalAccountParams{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Gender:   entity.GenderNotDisclosed,
	})
	if err != nil {
		if application.KindOf(err) == application.KindConflict {
			log.Printf("seed user %s already exists", *email)
			return
		}
		log.Fatalf("seed: %v", err)
	}
	log.Printf("created user %s (id=%s, local account=%s)", *email, res.User.ID, res.LocalAccountID)
}
