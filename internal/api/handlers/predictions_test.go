package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/weather-project/webapp/internal/api/middleware"
	"github.com/weather-project/webapp/internal/services"
	"github.com/weather-project/webapp/internal/weatherapi"
)

func TestPredictionsPageAnonymousSkipsBackend(t *testing.T) {
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer backend.Close()

	middleware.InitSession(nil, "privy-token")
	handler := NewPredictionHandler(newRenderer(t), services.NewHistoryService(weatherapi.NewClient(backend.URL)))
	app := fiber.New()
	app.Use(middleware.WithUser())
	app.Get("/predictions", handler.GetPredictionsPage)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/predictions", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Log in to see your prediction history") {
		t.Error("anonymous visit should render the login prompt")
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("anonymous visit must not call the market API")
	}
}

func TestPredictionsPageRendersHistory(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[
			{"id":"b1","marketId":"1","userId":"did:privy:abc","type":"buy","amount":50,"price":0.6,
			 "market":{"id":"1","city":"New York","countryName":"United States","question":"Will it rain tomorrow?","status":"active"}}
		]}`))
	}))
	defer backend.Close()

	handler := NewPredictionHandler(newRenderer(t), services.NewHistoryService(weatherapi.NewClient(backend.URL)))
	app := fiber.New()
	app.Get("/predictions", seedUser("did:privy:abc"), handler.GetPredictionsPage)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/predictions", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "Will it rain tomorrow?") || !strings.Contains(page, "New York") {
		t.Errorf("history row missing:\n%s", page)
	}
}

func TestPredictionsPageEmptyAndErrorAreDistinct(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer empty.Close()

	handler := NewPredictionHandler(newRenderer(t), services.NewHistoryService(weatherapi.NewClient(empty.URL)))
	app := fiber.New()
	app.Get("/predictions", seedUser("did:privy:abc"), handler.GetPredictionsPage)

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/predictions", nil))
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "No predictions yet") {
		t.Error("empty history should invite the user to find a market")
	}

	down := services.NewHistoryService(weatherapi.NewClient("http://localhost:0"))
	handler = NewPredictionHandler(newRenderer(t), down)
	app = fiber.New()
	app.Get("/predictions", seedUser("did:privy:abc"), handler.GetPredictionsPage)

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/predictions", nil), 5000)
	body, _ = io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "couldn&#39;t load your predictions") &&
		!strings.Contains(string(body), "couldn't load your predictions") {
		t.Error("fetch failure should render the error state, not an empty history")
	}
}
