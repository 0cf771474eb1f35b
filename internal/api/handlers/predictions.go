/**
 * @description
 * Prediction history page handler.
 * Anonymous visitors get the login prompt without any backend call; an empty
 * history and a failed fetch render as distinct states.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - webapp/internal/services
 */

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weather-project/webapp/internal/api/middleware"
	"github.com/weather-project/webapp/internal/services"
	"github.com/weather-project/webapp/internal/view"
)

type PredictionHandler struct {
	Renderer *view.Renderer
	History  *services.HistoryService
}

func NewPredictionHandler(renderer *view.Renderer, history *services.HistoryService) *PredictionHandler {
	return &PredictionHandler{Renderer: renderer, History: history}
}

// GetPredictionsPage renders the signed-in user's bet history.
// GET /predictions
func (h *PredictionHandler) GetPredictionsPage(c *fiber.Ctx) error {
	// 1. Login gate short-circuits before any network access
	user := middleware.CurrentUser(c)
	if user == nil {
		return h.Renderer.Render(c, "predictions.html", fiber.Map{
			"Frame":         newFrame(c),
			"LoginRequired": true,
		})
	}

	// 2. Fetch history; failure is its own render state, not an empty list
	bets, err := h.History.ListBetsForUser(c.Context(), user.ID)
	if err != nil {
		return h.Renderer.Render(c, "predictions.html", fiber.Map{
			"Frame":     newFrame(c),
			"LoadError": true,
		})
	}

	return h.Renderer.Render(c, "predictions.html", fiber.Map{
		"Frame": newFrame(c),
		"Bets":  bets,
	})
}
