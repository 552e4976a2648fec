// Package main applies the embedded schema migrations and exits. The
// server applies them on startup as well; this binary exists for
// running them separately, e.g. from a deploy pipeline.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"account-server/internal/store"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Info("No .env file found, using environment variables from system")
	}

	connString := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASS"), os.Getenv("DB_NAME"),
	)

	if err := store.RunMigrations(context.Background(), connString); err != nil {
		log.Fatal("error running migrations: ", err)
	}
	log.Info("Migrations applied")
}
