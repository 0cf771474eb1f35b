/**
 * @description
 * Prediction history: a user's past bets joined with market summaries.
 * The join happens server-side at the API; this service is a thin pass-through
 * that pins the empty-but-valid distinction.
 */

package services

import (
	"context"

	"github.com/weather-project/webapp/internal/models"
	"github.com/weather-project/webapp/internal/weatherapi"
)

// HistoryService fetches a user's bets from the weather-market API
type HistoryService struct {
	API *weatherapi.Client
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(api *weatherapi.Client) *HistoryService {
	return &HistoryService{API: api}
}

// ListBetsForUser fetches all bets for the given user.
// An empty slice is a valid "no bets yet" state, distinct from an error.
// Callers must gate on authentication before calling; unauthenticated access
// never reaches the network.
func (s *HistoryService) ListBetsForUser(ctx context.Context, userID string) ([]models.Bet, error) {
	bets, err := s.API.ListUserBets(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bets == nil {
		bets = []models.Bet{}
	}
	return bets, nil
}
