package main

import (
	"context"
	"flag"
	"log"
	"os"

	"vehiql/internal/adapter/repository"
	"vehiql/internal/infrastructure/database"
	"vehiql/pkg/config"
	"vehiql/pkg/logger"
)

func main() {
	file := flag.String("file", "inventory.yaml", "YAML inventory fixture to load")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	cars, err := ParseInventory(raw)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", *file, err)
	}

	db, err := database.Open(ctx, cfg.DatabaseURL, database.Options{
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	carRepo := repository.NewGormCarRepository(db)
	for _, car := range cars {
		if err := carRepo.Create(ctx, car); err != nil {
			log.Fatalf("Failed to insert %s %s: %v", car.Make, car.Model, err)
		}
	}

	logger.Info("Seeded %d cars from %s", len(cars), *file)
}
