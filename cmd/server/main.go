package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/o1iviachen/my-protein-buddy/config"
	httpDelivery "github.com/o1iviachen/my-protein-buddy/internal/delivery/http"
	"github.com/o1iviachen/my-protein-buddy/internal/domain"
	"github.com/o1iviachen/my-protein-buddy/internal/infrastructure/cache"
	"github.com/o1iviachen/my-protein-buddy/internal/infrastructure/fatsecret"
	fsledger "github.com/o1iviachen/my-protein-buddy/internal/infrastructure/firestore"
	"github.com/o1iviachen/my-protein-buddy/internal/infrastructure/nutritionix"
	"github.com/o1iviachen/my-protein-buddy/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting my-protein-buddy Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Nutrition provider: %s", cfg.Provider.Name)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	var provider domain.NutritionClient
	switch cfg.Provider.Name {
	case "nutritionix":
		provider = nutritionix.NewClient(cfg.Nutritionix.AppID, cfg.Nutritionix.AppKey, cfg.Nutritionix.BaseURL)
	default:
		provider = fatsecret.NewClient(
			cfg.FatSecret.ClientID, cfg.FatSecret.ClientSecret,
			cfg.FatSecret.BaseURL, cfg.FatSecret.TokenURL,
		)
	}

	ctx := context.Background()
	fsClient, err := fsledger.NewClient(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
	if err != nil {
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer fsClient.Close()
	log.Printf("Firestore connected: project=%s collection=%s", cfg.Firestore.ProjectID, cfg.Firestore.UsersCollection)

	ledgerRepo := fsledger.NewLedger(fsClient, cfg.Firestore.UsersCollection)

	// Initialize usecase layer
	searchService := usecase.NewSearchService(provider, memoryCache, usecase.SearchServiceConfig{
		CacheTTL: cfg.Cache.TTL,
	})
	ledgerService := usecase.NewLedgerService(ledgerRepo)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, ledgerService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
