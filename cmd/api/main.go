package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hariomfashion/backend/internal/ai"
	"github.com/hariomfashion/backend/internal/cache"
	"github.com/hariomfashion/backend/internal/config"
	"github.com/hariomfashion/backend/internal/database"
	"github.com/hariomfashion/backend/internal/gateway"
	"github.com/hariomfashion/backend/internal/handlers"
	"github.com/hariomfashion/backend/internal/repository"
	"github.com/hariomfashion/backend/internal/routes"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 1. --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Client().Disconnect(context.Background())

	store := repository.NewStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// 2. --- Payment Gateway ---
	rzp := gateway.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.WebhookSecret)

	// 3. --- Optional Integrations (Redis cache, AI descriptions) ---
	// The Handlers fields stay nil interfaces when unconfigured, so the
	// assignments below must only happen on success.
	app := &handlers.Handlers{
		Store:   store,
		Gateway: rzp,
		Config:  cfg,
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("WARNING: Redis unreachable at %s, catalog cache disabled: %v", cfg.RedisAddr, err)
		} else {
			app.Cache = cache.NewRedisCache(client)
			log.Println("Catalog cache enabled")
		}
	}

	if cfg.GeminiAPIKey != "" {
		aiService, err := ai.NewService(cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("WARNING: AI description service unavailable: %v", err)
		} else {
			app.AI = aiService
			log.Println("AI description service enabled")
		}
	}

	// 4. --- Background Worker ---
	// Checkout tolerates a failed payments-ledger insert; this worker sweeps
	// for orders missing a ledger row and rebuilds them.
	go func() {
		ticker := time.NewTicker(cfg.ReconcileInterval)
		defer ticker.Stop()

		log.Println("Background worker started: reconciling the payments ledger")
		for range ticker.C {
			app.ReconcileLedger(context.Background())
		}
	}()

	// 5. --- Router Setup & Server Start ---
	router := routes.SetupRouter(app)

	log.Printf("Starting Hari-Om Fashion API server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
