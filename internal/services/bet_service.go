/**
 * @description
 * Bet draft validation and submission.
 * Validation runs client-side as defense in depth before any network call;
 * the API remains the authority and its error messages are surfaced verbatim.
 *
 * @dependencies
 * - webapp/internal/weatherapi
 * - webapp/internal/identity
 *
 * @notes
 * - Rejected drafts never reach the network.
 * - A successful submission redirects to the prediction history view; the
 *   caller also re-fetches the market since pool and participant count may
 *   have changed.
 */

package services

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/weather-project/webapp/internal/identity"
	"github.com/weather-project/webapp/internal/logger"
	"github.com/weather-project/webapp/internal/models"
	"github.com/weather-project/webapp/internal/weatherapi"
)

const (
	MsgInvalidSide   = "Choose buy or sell."
	MsgInvalidAmount = "Please enter a valid amount greater than 0."
	MsgInvalidPrice  = "Price must be between 0.0 and 1.0."
	MsgBetFailed     = "Something went wrong while placing your bet. Please try again."
)

// ValidationError is a client-caught draft problem with a user-facing message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SubmitError is a failed submission; Message is shown to the user and the
// draft is preserved so they can retry.
type SubmitError struct {
	Message string
}

func (e *SubmitError) Error() string {
	return e.Message
}

// BetDraft holds the raw form values from the bet modal.
type BetDraft struct {
	Side   string
	Amount string
	Price  string
}

// ParseDraft validates a draft and converts it into an API request.
// amount must parse as a finite number > 0; price as a finite number in [0, 1].
func ParseDraft(draft BetDraft) (weatherapi.BetRequest, error) {
	side := models.BetSide(strings.ToLower(strings.TrimSpace(draft.Side)))
	if !side.Valid() {
		return weatherapi.BetRequest{}, &ValidationError{Field: "side", Message: MsgInvalidSide}
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(draft.Amount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return weatherapi.BetRequest{}, &ValidationError{Field: "amount", Message: MsgInvalidAmount}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(draft.Price), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 || price > 1 {
		return weatherapi.BetRequest{}, &ValidationError{Field: "price", Message: MsgInvalidPrice}
	}

	return weatherapi.BetRequest{
		Type:   string(side),
		Amount: amount,
		Price:  price,
	}, nil
}

// SubmitResult is a successful bet submission.
type SubmitResult struct {
	Bet *models.Bet
	// RedirectTo is where the UI navigates after success.
	RedirectTo string
}

// BetService handles bet submission against the weather-market API
type BetService struct {
	API *weatherapi.Client
}

// NewBetService creates a new BetService
func NewBetService(api *weatherapi.Client) *BetService {
	return &BetService{API: api}
}

// Submit validates the draft and places the bet for the authenticated user.
// Returns *ValidationError without touching the network for bad drafts, and
// *SubmitError for API or connectivity failures.
func (s *BetService) Submit(ctx context.Context, user *identity.User, marketID string, draft BetDraft) (*SubmitResult, error) {
	req, err := ParseDraft(draft)
	if err != nil {
		return nil, err
	}
	req.UserID = user.ID

	bet, err := s.API.PlaceBet(ctx, marketID, req)
	if err != nil {
		if apiErr, ok := err.(*weatherapi.APIError); ok && apiErr.Message != "" {
			return nil, &SubmitError{Message: apiErr.Message}
		}
		logger.Error("BetService: submission failed for market %s: %v", marketID, err)
		return nil, &SubmitError{Message: MsgBetFailed}
	}

	return &SubmitResult{Bet: bet, RedirectTo: "/predictions"}, nil
}
