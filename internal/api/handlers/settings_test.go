package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/weather-project/webapp/internal/services"
	"github.com/weather-project/webapp/internal/weatherapi"
)

func newSettingsApp(t *testing.T, backend string) *fiber.App {
	t.Helper()
	handler := NewSettingsHandler(newRenderer(t), services.NewProfileService(weatherapi.NewClient(backend)))
	app := fiber.New()
	app.Get("/settings", seedUser("did:privy:abc"), handler.GetSettingsPage)
	app.Post("/settings/profile", seedUser("did:privy:abc"), handler.PostSettings)
	return app
}

func TestSettingsPageShowsUnreachableNotice(t *testing.T) {
	app := newSettingsApp(t, "http://localhost:0")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/settings", nil), 5000)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "server is unreachable") {
		t.Error("unreachable backend should surface the dedicated notice")
	}
}

func TestPostSettingsReportsPartialImageFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPut {
			w.Write([]byte(`{"success":true,"user":{"id":"p1","privyId":"did:privy:abc","nickname":"storm"}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"image too large"}`))
	}))
	defer backend.Close()

	app := newSettingsApp(t, backend.URL)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("nickname", "storm")
	part, _ := mw.CreateFormFile("image", "avatar.png")
	part.Write([]byte("fake-png-bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/settings/profile", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("fields saved, so the response must not be an error: %d", resp.StatusCode)
	}

	var body struct {
		Success    bool   `json:"success"`
		ImageError string `json:"imageError"`
		User       struct {
			Nickname string `json:"nickname"`
		} `json:"user"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if !body.Success || body.User.Nickname != "storm" {
		t.Errorf("body = %+v", body)
	}
	if body.ImageError == "" {
		t.Error("partial image failure must be reported")
	}
}
