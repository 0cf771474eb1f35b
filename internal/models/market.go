/**
 * @description
 * Market model as served by the weather-market API.
 * The client holds transient, read-mostly copies scoped to a page view;
 * the remote API owns and persists every entity.
 *
 * @dependencies
 * - standard "time"
 */

package models

import (
	"fmt"
	"time"
)

// MarketStatus is the market lifecycle state.
// Transitions run active -> closed -> resolved, monotonically forward.
type MarketStatus string

const (
	StatusActive   MarketStatus = "active"
	StatusClosed   MarketStatus = "closed"
	StatusResolved MarketStatus = "resolved"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s MarketStatus) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusResolved:
		return true
	}
	return false
}

// Bettable reports whether the UI may offer betting on a market in this state.
func (s MarketStatus) Bettable() bool {
	return s == StatusActive
}

// Label returns the user-facing status text.
func (s MarketStatus) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusClosed:
		return "Closed"
	case StatusResolved:
		return "Resolved"
	}
	return string(s)
}

// Market represents a binary weather-prediction market
type Market struct {
	ID           string       `json:"id"`
	Country      string       `json:"country"`
	CountryName  string       `json:"countryName"`
	City         string       `json:"city"`
	Question     string       `json:"question"`
	Pool         float64      `json:"pool"`
	Participants int          `json:"participants"`
	EndDate      string       `json:"endDate"`
	Status       MarketStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// EndsAt parses the market end date. The API serves dates as "2006-01-02".
func (m *Market) EndsAt() (time.Time, error) {
	t, err := time.Parse("2006-01-02", m.EndDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid end date %q: %w", m.EndDate, err)
	}
	return t, nil
}

// MarketSummary is the denormalized slice of a market attached to bets
// for display on the prediction history view.
type MarketSummary struct {
	ID          string       `json:"id"`
	City        string       `json:"city"`
	CountryName string       `json:"countryName"`
	Question    string       `json:"question"`
	Status      MarketStatus `json:"status"`
	EndDate     string       `json:"endDate"`
}
