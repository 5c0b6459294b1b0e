package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/creamio/backoffice-api/config"
	"github.com/creamio/backoffice-api/pkg/helpers"
)

// Seeds the initial back-office administrator so the API is reachable before
// any user exists. Credentials come from SEED_ADMIN_USERNAME/SEED_ADMIN_PASSWORD.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := envOr("SEED_ADMIN_USERNAME", "admin")
	password := envOr("SEED_ADMIN_PASSWORD", "changeme1")
	email := envOr("SEED_ADMIN_EMAIL", "admin@localhost.localdomain")

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO busers (id, username, password, email, roles, first_name, last_name, creation_time)
		VALUES ($1, $2, $3, $4, '{ROLE_ADMIN,ROLE_USER}'::text[], 'Back', 'Office', now())
		ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password
		RETURNING id
	`, uuid.New(), username, hash, email).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	fmt.Printf("seeded admin user: id=%s username=%s\n", id, username)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
