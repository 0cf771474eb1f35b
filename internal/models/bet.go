/**
 * @description
 * Bet model and the buy/sell side enum.
 * Invariants enforced client-side before submission: amount > 0 and
 * 0.0 <= price <= 1.0. The API remains the authority.
 */

package models

import "time"

// BetSide is the side of a bet: buy backs the prediction, sell fades it.
type BetSide string

const (
	SideBuy  BetSide = "buy"
	SideSell BetSide = "sell"
)

// Valid reports whether the side is one of the two closed variants.
func (s BetSide) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Label returns the user-facing side text.
func (s BetSide) Label() string {
	if s == SideBuy {
		return "Buy"
	}
	return "Sell"
}

// Bet represents a user's stake on one side of a market at a declared probability price
type Bet struct {
	ID        string        `json:"id"`
	MarketID  string        `json:"marketId"`
	UserID    string        `json:"userId"`
	Side      BetSide       `json:"type"`
	Amount    float64       `json:"amount"`
	Price     float64       `json:"price"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Market    MarketSummary `json:"market"`
}
