/**
 * @description
 * Wire types and error taxonomy for the weather-market API.
 * Every response follows the {success, data|user|error} envelope.
 *
 * @notes
 * - Application failures (success:false) decode into *APIError so the
 *   server-provided message can be surfaced verbatim.
 * - Transport failures wrap ErrUnreachable so the settings page can show its
 *   dedicated "backend unreachable" notice.
 * - Not-found is a valid state, not an error: lookups return (nil, nil).
 */

package weatherapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnreachable marks connectivity failures to the backend, as opposed to
// application-level errors the backend reported itself.
var ErrUnreachable = errors.New("weather api unreachable")

// APIError is an application-level failure reported by the API (success:false).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("weather api error: status %d", e.StatusCode)
}

// IsUnreachable reports whether err represents a connectivity failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// envelope is the response wrapper used by every endpoint.
// Market/bet payloads arrive under "data", profile payloads under "user".
type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	User     json.RawMessage `json:"user"`
	ImageURL string          `json:"imageUrl"`
	Error    string          `json:"error"`
}

// MarketFilter holds the optional server-side listing filters.
type MarketFilter struct {
	Country string
	City    string
	Search  string
}

// BetRequest is the body of POST /api/markets/{id}/bet.
type BetRequest struct {
	UserID string  `json:"userId"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Price  float64 `json:"price"`
}

// ProfileUpdate is the body of PUT /api/user/profile/{id}.
// Pointer fields distinguish "clear" from "leave unset".
type ProfileUpdate struct {
	Nickname      *string `json:"nickname"`
	Email         *string `json:"email"`
	GoogleName    *string `json:"googleName"`
	GooglePicture *string `json:"googlePicture"`
}
