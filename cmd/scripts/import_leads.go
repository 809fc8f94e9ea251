package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/campaignhq/campaign-backend/internal/config"
	mongorepo "github.com/campaignhq/campaign-backend/internal/repositories/mongodb"
	"github.com/campaignhq/campaign-backend/internal/services"
	"github.com/campaignhq/campaign-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// One-off CSV lead import:
//
//	go run ./cmd/scripts -business <hex id> -file leads.csv
func main() {
	businessHex := flag.String("business", "", "business ID to import leads into")
	file := flag.String("file", "", "path to the CSV file")
	flag.Parse()

	if *businessHex == "" || *file == "" {
		log.Fatal("both -business and -file are required")
	}

	businessID, err := primitive.ObjectIDFromHex(*businessHex)
	if err != nil {
		log.Fatalf("invalid business ID: %v", err)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDB.Database)
	leadService := services.NewLeadService(mongorepo.NewLeadRepository(db))

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open CSV: %v", err)
	}
	defer f.Close()

	result, err := leadService.ImportCSV(context.Background(), businessID, f)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Imported %d leads, skipped %d", result.Imported, result.Skipped)
	for _, msg := range result.Errors {
		log.Printf("  %s", msg)
	}
}
