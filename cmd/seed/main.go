package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/joho/godotenv"

	"identity-api/config"
	"identity-api/internal/domain/entity"
	pginfra "identity-api/internal/infrastructure/postgres"
	"identity-api/pkg/helpers"
)

type seedUser struct {
	name       string
	email      string
	password   string
	telephones []entity.Telephone
}

// Seeds a handful of local development accounts. Existing emails are skipped
// so the command is safe to run repeatedly.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hasher := helpers.NewBcryptHasher(0)

	users := []seedUser{
		{
			name:     "Ada Lovelace",
			email:    "ada@example.com",
			password: "secret1",
			telephones: []entity.Telephone{
				{Number: 987654321, AreaCode: 11},
			},
		},
		{
			name:     "Grace Hopper",
			email:    "grace@example.com",
			password: "secret1",
			telephones: []entity.Telephone{
				{Number: 87654321, AreaCode: 21},
				{Number: 912345678, AreaCode: 31},
			},
		},
	}

	for _, u := range users {
		hash, err := hasher.Hash(u.password)
		if err != nil {
			log.Fatalf("hash %s: %v", u.email, err)
		}
		tels, err := json.Marshal(u.telephones)
		if err != nil {
			log.Fatalf("marshal telephones %s: %v", u.email, err)
		}

		tag, err := pool.Exec(ctx, `
			INSERT INTO users (name, email, password_hash, telephones)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO NOTHING`,
			u.name, u.email, hash, tels,
		)
		if err != nil {
			log.Fatalf("insert %s: %v", u.email, err)
		}
		if tag.RowsAffected() == 0 {
			log.Printf("skipped %s (already exists)", u.email)
			continue
		}
		log.Printf("seeded %s", u.email)
	}
}
