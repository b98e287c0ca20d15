package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/vikramraju/customer-feedback/backend/internal/adapters/database"
	"github.com/vikramraju/customer-feedback/backend/internal/application/services"
	"github.com/vikramraju/customer-feedback/backend/internal/infrastructure/clients/postgres"
	"github.com/vikramraju/customer-feedback/backend/pkg/config"
)

// Rewrites questions whose product reference still holds a product name
// instead of a product id. Safe to run repeatedly.
func main() {
	var dryRun bool
	flag.BoolVar(&dryRun, "dry-run", false, "Report unresolved references without writing")
	flag.Parse()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Setup DB
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	questionRepo := database.NewQuestionAdapter(pgClient)
	productRepo := database.NewProductAdapter(pgClient)
	svc := services.NewQuestionService(questionRepo, productRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	start := time.Now()

	if dryRun {
		pending, err := svc.PendingLegacyRefs(ctx)
		if err != nil {
			log.Fatalf("Failed to inspect questions: %v", err)
		}
		for _, q := range pending {
			log.Printf("Would migrate question %s (ref %q)", q.ID, q.ProductRef)
		}
		log.Printf("%d question(s) pending migration", len(pending))
		return
	}

	migrated, err := svc.MigrateLegacyRefs(ctx)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Printf("Migrated %d question(s) in %s", migrated, time.Since(start))
}
