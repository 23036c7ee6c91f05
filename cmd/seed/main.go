package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-session-auth/config"
	"github.com/oksasatya/go-session-auth/internal/domain/entity"
	pginfra "github.com/oksasatya/go-session-auth/internal/infrastructure/postgres"
	"github.com/oksasatya/go-session-auth/pkg/helpers"
)

// Seeds one confirmed local account for manual testing.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	repo := pginfra.NewUserRepository(pool)

	email := "bob5@bob.com"
	if existing, err := repo.GetByEmail(ctx, email); err != nil {
		log.Fatalf("lookup failed: %v", err)
	} else if existing != nil {
		log.Printf("seed user already exists: %s", existing.ID)
		return
	}

	hash, err := helpers.HashPassword("jlkajoioiqwe")
	if err != nil {
		log.Fatalf("hash failed: %v", err)
	}
	u := &entity.User{Email: &email, Password: &hash, Confirmed: true}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatalf("create failed: %v", err)
	}
	log.Printf("seeded user %s (%s)", u.ID, email)
}
