package main

import (
	"context"
	"flag"
	"log"

	"neighborhelp-backend/config"
	"neighborhelp-backend/repository"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of migrating up")
	flag.Parse()

	cfg := config.Load()

	ctx := context.Background()

	if *down {
		if err := repository.RollbackMigration(ctx, cfg.Database.URL); err != nil {
			log.Fatalf("Failed to roll back migration: %v", err)
		}
		log.Println("✓ Rolled back the most recent migration")
	} else {
		if err := repository.RunMigrations(ctx, cfg.Database.URL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("✓ Migrations applied")
	}

	version, err := repository.MigrationVersion(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to read schema version: %v", err)
	}
	log.Printf("Schema version: %d", version)
}
