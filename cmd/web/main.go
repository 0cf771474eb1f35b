/**
 * @description
 * Main entry point for the wEaTHer web frontend.
 * Initializes the Fiber server, loads configuration, connects Redis, builds
 * the identity verifier, starts the market watcher, and mounts the routes.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2: Web framework
 * - webapp/internal/config: Config loader
 * - webapp/internal/db: Redis connection
 * - webapp/internal/api: Route setup
 *
 * @notes
 * - Redis is optional: without it listings skip the cache and detail pages
 *   skip live pool updates, everything else works.
 */

package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/weather-project/webapp/internal/api"
	"github.com/weather-project/webapp/internal/config"
	"github.com/weather-project/webapp/internal/db"
	"github.com/weather-project/webapp/internal/identity"
	"github.com/weather-project/webapp/internal/logger"
	"github.com/weather-project/webapp/internal/services"
	"github.com/weather-project/webapp/internal/view"
	"github.com/weather-project/webapp/internal/weatherapi"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Connect Redis (optional)
	redisClient, err := db.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	if redisClient == nil {
		logger.Info("Redis not configured; listing cache and live pool updates disabled")
	}

	// 3. Identity verifier (Privy JWKS)
	verifier, err := identity.NewVerifier(cfg)
	if err != nil {
		log.Fatalf("Failed to init identity verifier: %v", err)
	}

	// 4. Templates
	renderer, err := view.New()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// 5. Market API client and watcher
	apiClient := weatherapi.NewClient(cfg.API.BaseURL)
	watcher := services.NewMarketWatcher(apiClient, redisClient, time.Duration(cfg.API.WatchInterval)*time.Second)
	go watcher.Run(context.Background())

	// 6. Initialize Fiber App
	app := fiber.New(fiber.Config{
		AppName:       "wEaTHer",
		CaseSensitive: true,
	})

	// 7. Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.PublicURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, OPTIONS",
		AllowCredentials: true,
	}))

	// 8. Routes
	api.SetupRoutes(app, api.Deps{
		Renderer: renderer,
		API:      apiClient,
		Redis:    redisClient,
		Verifier: verifier,
		Watcher:  watcher,
		Config:   cfg,
	})

	// 9. Start Server
	logger.Info("Starting wEaTHer web frontend on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
