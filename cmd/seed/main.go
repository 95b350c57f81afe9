package main

import (
	"context"
	"log"
	"time"

	"billchill/internal/models"
	"billchill/internal/repository"
	"billchill/pkg/config"
	"billchill/pkg/logger"
	"billchill/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const createProvidersTable = `
CREATE TABLE IF NOT EXISTS providers (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	policy_doc TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// seedProviders matches the policy documents bundled with the analysis
// backend. The policy_doc value is the backend's file name for the
// provider's financial assistance rules.
var seedProviders = []struct {
	name      string
	policyDoc string
}{
	{"United", "united_rules.pdf"},
	{"Providence", "providence_rules.pdf"},
	{"Molina", "molina_rules.pdf"},
	{"CMS", "cms_rules.pdf"},
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting provider registry seeding...")

	if _, err := db.Exec(ctx, createProvidersTable); err != nil {
		appLogger.Fatal("Failed to create providers table", zap.Error(err))
	}

	providerRepo := repository.NewProviderRepository(db, appLogger)

	now := time.Now().UTC()
	for _, p := range seedProviders {
		provider := &models.Provider{
			ID:        uuid.New(),
			Name:      p.name,
			PolicyDoc: p.policyDoc,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := providerRepo.Create(ctx, provider); err != nil {
			appLogger.Fatal("Failed to seed provider",
				zap.String("name", p.name),
				zap.Error(err),
			)
		}
		appLogger.Info("Seeded provider", zap.String("name", p.name))
	}

	appLogger.Info("Provider registry seeding completed successfully!")
}
