/**
 * @description
 * Profile settings handlers.
 * Loads the settings view (with the backend-unreachable notice when the
 * market API is down) and saves nickname plus optional profile image. A save
 * where fields persist but the image upload fails reports the partial
 * outcome instead of pretending either full success or full failure.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - webapp/internal/services
 * - webapp/internal/weatherapi: unreachable classification
 */

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weather-project/webapp/internal/api/middleware"
	"github.com/weather-project/webapp/internal/services"
	"github.com/weather-project/webapp/internal/view"
	"github.com/weather-project/webapp/internal/weatherapi"
)

type SettingsHandler struct {
	Renderer *view.Renderer
	Profile  *services.ProfileService
}

func NewSettingsHandler(renderer *view.Renderer, profile *services.ProfileService) *SettingsHandler {
	return &SettingsHandler{Renderer: renderer, Profile: profile}
}

// GetSettingsPage renders the profile settings form.
// GET /settings
func (h *SettingsHandler) GetSettingsPage(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	settings, err := h.Profile.Load(c.Context(), user)
	return h.Renderer.Render(c, "settings.html", fiber.Map{
		"Frame":       newFrame(c),
		"Settings":    settings,
		"BackendDown": weatherapi.IsUnreachable(err),
	})
}

// PostSettings saves profile fields and the optionally selected image.
// POST /settings/profile (multipart form: nickname, image?)
func (h *SettingsHandler) PostSettings(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	// 1. Assemble the save input from the multipart form
	in := services.SaveInput{
		Nickname: c.FormValue("nickname"),
	}
	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Could not read the selected image",
			})
		}
		defer file.Close()
		in.Image = &services.ImageUpload{Filename: fileHeader.Filename, Data: file}
	}

	// 2. Save; connectivity failure gets the dedicated notice
	result, err := h.Profile.Save(c.Context(), user, in)
	if err != nil {
		if weatherapi.IsUnreachable(err) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success":     false,
				"backendDown": true,
				"error":       "The server is unreachable right now. Please try again later.",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to save your profile. Please try again.",
		})
	}

	// 3. Report partial image failure alongside the saved fields
	resp := fiber.Map{
		"success": true,
		"user":    result.Profile,
	}
	if result.ImageURL != "" {
		resp["imageUrl"] = result.ImageURL
	}
	if result.ImageErr != nil {
		resp["imageError"] = "Your profile was saved, but the image upload failed."
	}
	return c.JSON(resp)
}
