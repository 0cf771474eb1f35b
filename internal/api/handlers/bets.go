/**
 * @description
 * Bet submission handler.
 * The authentication precondition is checked before anything else: an
 * unauthenticated submission never reaches validation or the network, it is
 * answered with a login pointer. Validation failures and API rejections come
 * back as JSON the bet modal shows inline.
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
)

type BetHandler struct {
	Bets *services.BetService
}

func NewBetHandler(bets *services.BetService) *BetHandler {
	return &BetHandler{Bets: bets}
}

type betForm struct {
	Side   string `json:"side" form:"side"`
	Amount string `json:"amount" form:"amount"`
	Price  string `json:"price" form:"price"`
}

// PostBet places a bet on a market for the signed-in user.
// POST /api/markets/:id/bet
func (h *BetHandler) PostBet(c *fiber.Ctx) error {
	// 1. Authentication precedes validation; the route middleware already
	//    rejected anonymous calls, this is the local invariant.
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success":  false,
			"error":    "Login required",
			"redirect": "/login",
		})
	}

	// 2. Parse the modal's form values
	var form betForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Malformed bet submission",
		})
	}

	// 3. Validate and submit
	result, err := h.Bets.Submit(c.Context(), user, c.Params("id"), services.BetDraft{
		Side:   form.Side,
		Amount: form.Amount,
		Price:  form.Price,
	})
	if err != nil {
		switch e := err.(type) {
		case *services.ValidationError:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"field":   e.Field,
				"error":   e.Message,
			})
		case *services.SubmitError:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"error":   e.Message,
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   services.MsgBetFailed,
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"data":     result.Bet,
		"redirect": result.RedirectTo,
	})
}
