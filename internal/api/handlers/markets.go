/**
 * @description
 * Market directory and detail handlers.
 * The directory page renders server-side; filter changes hit a JSON endpoint
 * whose responses are sequenced per session so a slow stale response can
 * never overwrite a fresher one. Detail pages subscribe to live pool updates
 * over SSE fed by the market watcher's Redis channel.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - github.com/redis/go-redis/v9: SSE fan-in subscription
 * - webapp/internal/services
 */

package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/weather-project/webapp/internal/api/middleware"
	"github.com/weather-project/webapp/internal/services"
	"github.com/weather-project/webapp/internal/view"
)

type MarketHandler struct {
	Renderer  *view.Renderer
	Directory *services.DirectoryService
	Watcher   *services.MarketWatcher
	Redis     *redis.Client
	PublicURL string
}

func NewMarketHandler(renderer *view.Renderer, directory *services.DirectoryService, watcher *services.MarketWatcher, rdb *redis.Client, publicURL string) *MarketHandler {
	return &MarketHandler{
		Renderer:  renderer,
		Directory: directory,
		Watcher:   watcher,
		Redis:     rdb,
		PublicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func filterFromQuery(c *fiber.Ctx) services.Filter {
	prev := services.Filter{
		Country: c.Query("prev_country"),
		City:    c.Query("prev_city"),
	}
	next := services.Filter{
		Country: c.Query("country"),
		City:    c.Query("city"),
		Search:  c.Query("q"),
	}
	return services.ResolveFilter(prev, next)
}

// GetMarketsPage renders the market directory.
// GET /markets?country&city&q
func (h *MarketHandler) GetMarketsPage(c *fiber.Ctx) error {
	filter := filterFromQuery(c)
	markets, degraded := h.Directory.ListMarkets(c.Context(), filter)

	selectedCountry := filter.Country
	if selectedCountry == "" {
		selectedCountry = "all"
	}
	var cities []string
	if country, ok := services.CountryByCode(filter.Country); ok {
		cities = country.Cities
	}

	return h.Renderer.Render(c, "markets.html", fiber.Map{
		"Frame":           newFrame(c),
		"Markets":         markets,
		"Degraded":        degraded,
		"Countries":       services.Countries(),
		"SelectedCountry": selectedCountry,
		"Cities":          cities,
		"SelectedCity":    filter.City,
		"Search":          filter.Search,
	})
}

// GetMarketsGrid serves filter changes from the directory page as JSON.
// Responses are sequenced per session; a superseded request answers 204 and
// the page keeps whatever the fresher request rendered.
// GET /api/markets/grid?country&city&q&prev_country&prev_city
func (h *MarketHandler) GetMarketsGrid(c *fiber.Ctx) error {
	filter := filterFromQuery(c)

	markets, degraded, err := h.Directory.ListMarketsSequenced(c.Context(), middleware.SessionID(c), filter)
	if err == services.ErrSuperseded {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch markets",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"data":     markets,
		"degraded": degraded,
		"city":     filter.City,
	})
}

// GetMarketDetail renders a single market.
// GET /markets/:id
func (h *MarketHandler) GetMarketDetail(c *fiber.Ctx) error {
	id := c.Params("id")

	market, err := h.Directory.API.GetMarket(c.Context(), id)
	if err != nil {
		return h.Renderer.Render(c, "market_detail.html", fiber.Map{
			"Frame":     newFrame(c),
			"LoadError": true,
		})
	}
	if market == nil {
		c.Status(fiber.StatusNotFound)
		return h.Renderer.Render(c, "market_detail.html", fiber.Map{
			"Frame":    newFrame(c),
			"NotFound": true,
		})
	}

	user := middleware.CurrentUser(c)
	return h.Renderer.Render(c, "market_detail.html", fiber.Map{
		"Frame":    newFrame(c),
		"Market":   market,
		"CanBet":   user != nil && market.Status.Bettable(),
		"ShareURL": h.PublicURL + "/markets/" + market.ID,
	})
}

// GetShareURL returns the canonical share link for a market, used by the
// detail page's copy-to-clipboard control.
// GET /api/markets/:id/share
func (h *MarketHandler) GetShareURL(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"url":     h.PublicURL + "/markets/" + c.Params("id"),
	})
}

// StreamPoolUpdates streams live pool updates for one market over SSE.
// The subscription arms the watcher's lease for the market and re-arms it
// periodically while the client stays connected.
func (h *MarketHandler) StreamPoolUpdates(c *fiber.Ctx) error {
	marketID := c.Params("id")

	if h.Redis == nil {
		// No live updates without Redis; the page falls back to static data
		return c.SendStatus(fiber.StatusNoContent)
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	requestCtx := c.Context()

	ctx, cancel := context.WithCancel(context.Background())

	h.Watcher.Watch(ctx, marketID)
	pubsub := h.Redis.Subscribe(ctx, services.PoolUpdateChannel)
	ch := pubsub.Channel()

	rearm := time.NewTicker(services.WatchKeyTTL() / 2)

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			rearm.Stop()
			cancel()
			_ = pubsub.Close()
		}()

		requestDone := requestCtx.Done()

		for {
			select {
			case <-requestDone:
				return
			case <-ctx.Done():
				return
			case <-rearm.C:
				h.Watcher.Watch(ctx, marketID)
			case msg, ok := <-ch:
				if !ok {
					return
				}
				// The channel carries every watched market; forward only ours
				var update services.PoolUpdate
				if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil || update.MarketID != marketID {
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", msg.Payload)
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})

	return nil
}
