package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	userspostgres "github.com/thinkfashz/Osart/internal/domains/users/adapters/persistence/postgres"
	verificationpostgres "github.com/thinkfashz/Osart/internal/domains/verification/adapters/persistence/postgres"
	platformpostgres "github.com/thinkfashz/Osart/internal/platform/postgres"
)

// Sweeps expired OTP challenges and user sessions. Meant to run on a cron
// schedule next to the API.
func main() {
	_ = godotenv.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge")
	}

	challenges, err := verificationpostgres.NewStore(db).PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("failed to purge verification challenges: %v", err)
	}
	sessions, err := userspostgres.NewSessionStore(db).PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("failed to purge user sessions: %v", err)
	}
	log.Printf("purge completed: %d challenges, %d sessions removed", challenges, sessions)
}
