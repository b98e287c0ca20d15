package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vikramraju/customer-feedback/backend/internal/adapters/database"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	"github.com/vikramraju/customer-feedback/backend/internal/infrastructure/clients/postgres"
	"github.com/vikramraju/customer-feedback/backend/pkg/config"
)

func main() {
	var userID string
	var password string

	flag.StringVar(&userID, "user", "", "Admin login id")
	flag.StringVar(&password, "password", "", "Admin password")
	flag.Parse()

	if userID == "" || password == "" {
		log.Fatal("Both -user and -password are required")
	}

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

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	adminRepo := database.NewAdminAdapter(pgClient)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin := &entities.Admin{
		ID:           uuid.New().String(),
		UserID:       userID,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := adminRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin %q created with id %s", userID, admin.ID)
}
