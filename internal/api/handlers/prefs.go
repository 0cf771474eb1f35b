/**
 * @description
 * UI preference handlers. Currently just the sidebar collapsed state,
 * persisted in a cookie so it survives reloads.
 */

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/weather-project/webapp/internal/api/middleware"
)

type PrefsHandler struct{}

func NewPrefsHandler() *PrefsHandler {
	return &PrefsHandler{}
}

type sidebarForm struct {
	Collapsed bool `json:"collapsed" form:"collapsed"`
}

// PostSidebar persists the sidebar collapsed preference.
// POST /api/prefs/sidebar
func (h *PrefsHandler) PostSidebar(c *fiber.Ctx) error {
	var form sidebarForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Malformed preference",
		})
	}

	value := "false"
	if form.Collapsed {
		value = "true"
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SidebarPrefCookie,
		Value:    value,
		Path:     "/",
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})

	return c.JSON(fiber.Map{"success": true, "collapsed": form.Collapsed})
}
