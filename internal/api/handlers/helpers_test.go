package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/weather-project/webapp/internal/api/middleware"
	"github.com/weather-project/webapp/internal/identity"
	"github.com/weather-project/webapp/internal/view"
)

// seedUser injects a fixed session user, standing in for verified login.
func seedUser(id string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		middleware.SetUser(c, &identity.User{ID: id, Email: id + "@example.com"})
		return c.Next()
	}
}

func newRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	renderer, err := view.New()
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}
	return renderer
}
