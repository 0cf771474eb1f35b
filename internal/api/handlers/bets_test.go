package handlers

import (
	"encoding/json"
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

func newBetApp(t *testing.T, backend string) *fiber.App {
	t.Helper()
	middleware.InitSession(nil, "privy-token")

	app := fiber.New()
	app.Use(middleware.WithUser())
	handler := NewBetHandler(services.NewBetService(weatherapi.NewClient(backend)))
	app.Post("/api/markets/:id/bet", middleware.RequireUserJSON(), handler.PostBet)
	return app
}

func TestPostBetUnauthenticatedNeverTouchesBackend(t *testing.T) {
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer backend.Close()

	app := newBetApp(t, backend.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/markets/1/bet",
		strings.NewReader(`{"side":"buy","amount":"50","price":"0.5"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("anonymous submission must not reach the market API")
	}
}

func TestPostBetValidationErrorComesBackAsJSON(t *testing.T) {
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer backend.Close()

	handler := NewBetHandler(services.NewBetService(weatherapi.NewClient(backend.URL)))
	app := fiber.New()
	app.Post("/api/markets/:id/bet", seedUser("did:privy:abc"), handler.PostBet)

	req := httptest.NewRequest(http.MethodPost, "/api/markets/1/bet",
		strings.NewReader(`{"side":"buy","amount":"-5","price":"0.5"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var body struct {
		Success bool   `json:"success"`
		Field   string `json:"field"`
		Error   string `json:"error"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if body.Success || body.Field != "amount" || body.Error != services.MsgInvalidAmount {
		t.Errorf("body = %+v", body)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("invalid draft must not reach the market API")
	}
}

func TestPostBetSuccessRedirectsToPredictions(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":"b1","marketId":"1","userId":"did:privy:abc","type":"buy","amount":50,"price":0.5}}`))
	}))
	defer backend.Close()

	handler := NewBetHandler(services.NewBetService(weatherapi.NewClient(backend.URL)))
	app := fiber.New()
	app.Post("/api/markets/:id/bet", seedUser("did:privy:abc"), handler.PostBet)

	req := httptest.NewRequest(http.MethodPost, "/api/markets/1/bet",
		strings.NewReader(`{"side":"buy","amount":"50","price":"0.5"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	var body struct {
		Success  bool   `json:"success"`
		Redirect string `json:"redirect"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if !body.Success || body.Redirect != "/predictions" {
		t.Errorf("body = %+v", body)
	}
}
