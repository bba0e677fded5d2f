package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"study-track/cmd/seed_badges/internal/seedmodels"
	"study-track/database"
	"study-track/internal/config"
	"study-track/internal/domain"
	"study-track/internal/logger"
	"study-track/internal/repository"

	"go.uber.org/zap"
)

const seedFilePath = "configs/seed_data/badges.json"

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		// If logger is not initialized yet, use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting badge catalog seeding process...")
	db, err := database.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", seedFilePath))
	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var seedBadges []seedmodels.SeedBadge
	if err := json.Unmarshal(byteValue, &seedBadges); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("badges_loaded", len(seedBadges)))

	badgeRepo := repository.NewSQLXBadgeRepository(db)

	existing, err := badgeRepo.GetAllBadges(ctx)
	if err != nil {
		log.Fatal("Failed to load existing badge catalog", zap.Error(err))
	}
	existingNames := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		existingNames[b.Name] = struct{}{}
	}

	created := 0
	for _, sb := range seedBadges {
		if _, ok := existingNames[sb.Name]; ok {
			log.Info("Badge already present, skipping", zap.String("name", sb.Name))
			continue
		}

		badge := &domain.BadgeDefinition{
			Name:        sb.Name,
			Description: sb.Description,
			ImageURL:    sb.ImageURL,
			Category:    sb.Category,
		}
		if err := badgeRepo.CreateBadge(ctx, badge); err != nil {
			log.Error("Failed to create badge", zap.String("name", sb.Name), zap.Error(err))
			continue
		}
		created++
		log.Info("Created badge", zap.String("name", sb.Name), zap.String("category", sb.Category))
	}

	log.Info("Badge catalog seeding completed", zap.Int("created", created), zap.Int("skipped", len(seedBadges)-created))
}
