/**
 * @description
 * Route definitions for the web frontend.
 * Builds services and handlers, then mounts pages, the JSON endpoints the
 * pages call, and the SSE stream.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - webapp/internal/api/handlers
 * - webapp/internal/api/middleware
 * - webapp/internal/services
 * - webapp/internal/view
 */

package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/weather-project/webapp/internal/api/handlers"
	"github.com/weather-project/webapp/internal/api/middleware"
	"github.com/weather-project/webapp/internal/config"
	"github.com/weather-project/webapp/internal/identity"
	"github.com/weather-project/webapp/internal/services"
	"github.com/weather-project/webapp/internal/view"
	"github.com/weather-project/webapp/internal/weatherapi"
)

// Deps carries the long-lived collaborators main constructs once.
type Deps struct {
	Renderer *view.Renderer
	API      *weatherapi.Client
	Redis    *redis.Client
	Verifier *identity.Verifier
	Watcher  *services.MarketWatcher
	Config   *config.Config
}

// SetupRoutes configures all routes and their handlers.
func SetupRoutes(app *fiber.App, deps Deps) {
	cfg := deps.Config

	// 1. Initialize Middleware
	middleware.InitSession(deps.Verifier, cfg.Identity.CookieName)
	app.Use(middleware.WithUser())

	// 2. Initialize Services
	directory := services.NewDirectoryService(deps.API, deps.Redis)
	history := services.NewHistoryService(deps.API)
	bets := services.NewBetService(deps.API)
	profile := services.NewProfileService(deps.API)

	// 3. Initialize Handlers
	pageHandler := handlers.NewPageHandler(deps.Renderer, directory, history, cfg.Server.PublicURL)
	marketHandler := handlers.NewMarketHandler(deps.Renderer, directory, deps.Watcher, deps.Redis, cfg.Server.PublicURL)
	betHandler := handlers.NewBetHandler(bets)
	predictionHandler := handlers.NewPredictionHandler(deps.Renderer, history)
	settingsHandler := handlers.NewSettingsHandler(deps.Renderer, profile)
	prefsHandler := handlers.NewPrefsHandler()

	// 4. Define Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Pages (public)
	app.Get("/", pageHandler.Landing)
	app.Get("/login", pageHandler.Login)
	app.Get("/open", pageHandler.OpenInBrowser)
	app.Get("/markets", marketHandler.GetMarketsPage)
	app.Get("/markets/:id", marketHandler.GetMarketDetail)
	app.Get("/predictions", predictionHandler.GetPredictionsPage)

	// Pages (protected)
	app.Get("/app", middleware.RequireUser(), pageHandler.Dashboard)
	app.Get("/settings", middleware.RequireUser(), settingsHandler.GetSettingsPage)
	app.Post("/settings/profile", middleware.RequireUserJSON(), settingsHandler.PostSettings)
	app.Post("/logout", pageHandler.Logout(cfg.Identity.CookieName))

	// JSON endpoints backing the pages
	apiGroup := app.Group("/api")
	apiGroup.Get("/markets/grid", marketHandler.GetMarketsGrid)
	apiGroup.Get("/markets/:id/share", marketHandler.GetShareURL)
	apiGroup.Get("/markets/:id/stream", marketHandler.StreamPoolUpdates)
	apiGroup.Post("/markets/:id/bet", middleware.RequireUserJSON(), betHandler.PostBet)
	apiGroup.Post("/prefs/sidebar", prefsHandler.PostSidebar)
}
