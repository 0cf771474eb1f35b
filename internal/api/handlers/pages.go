/**
 * @description
 * Page Handlers for the outer surfaces: landing, login, dashboard, and the
 * system-browser escape endpoint for restricted in-app WebViews.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - golang.org/x/sync/errgroup: concurrent dashboard aggregation
 * - webapp/internal/browser: WebView classification and redirect planning
 *
 * @notes
 * - Third-party login does not work inside in-app browsers, so the landing
 *   and login pages carry the classification and the /open endpoint hands
 *   visitors off to the system browser.
 */

package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/weather-project/webapp/internal/api/middleware"
	"github.com/weather-project/webapp/internal/browser"
	"github.com/weather-project/webapp/internal/identity"
	"github.com/weather-project/webapp/internal/models"
	"github.com/weather-project/webapp/internal/services"
	"github.com/weather-project/webapp/internal/view"
)

// pageFrame carries the fields every page template shares.
type pageFrame struct {
	User             *identity.User
	SidebarCollapsed bool
	Path             string
}

func newFrame(c *fiber.Ctx) pageFrame {
	return pageFrame{
		User:             middleware.CurrentUser(c),
		SidebarCollapsed: middleware.SidebarCollapsed(c),
		Path:             c.Path(),
	}
}

type PageHandler struct {
	Renderer  *view.Renderer
	Directory *services.DirectoryService
	History   *services.HistoryService
	PublicURL string
}

func NewPageHandler(renderer *view.Renderer, directory *services.DirectoryService, history *services.HistoryService, publicURL string) *PageHandler {
	return &PageHandler{
		Renderer:  renderer,
		Directory: directory,
		History:   history,
		PublicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// Landing renders the public landing page.
// GET /
func (h *PageHandler) Landing(c *fiber.Ctx) error {
	env := browser.Detect(c.Get(fiber.HeaderUserAgent))
	return h.Renderer.Render(c, "landing.html", fiber.Map{
		"Frame": newFrame(c),
		"Env":   env,
	})
}

// Login renders the login page, or the WebView notice with a system-browser
// escape when the visit comes from an in-app browser.
// GET /login
func (h *PageHandler) Login(c *fiber.Ctx) error {
	// 1. Already signed in: straight to the app
	if middleware.CurrentUser(c) != nil {
		return c.Redirect("/markets", fiber.StatusFound)
	}

	// 2. Classify the browser; in-app WebViews get the escape affordance
	env := browser.Detect(c.Get(fiber.HeaderUserAgent))
	return h.Renderer.Render(c, "login.html", fiber.Map{
		"Frame":   newFrame(c),
		"Env":     env,
		"OpenURL": "/open?to=%2Flogin",
	})
}

// OpenInBrowser escapes an in-app WebView to the system browser.
// Direct environments are plainly redirected; Android WebViews get the
// intent page with its focus-check fallback.
// GET /open?to=/path
func (h *PageHandler) OpenInBrowser(c *fiber.Ctx) error {
	// 1. Only same-site paths may be targeted
	to := c.Query("to", "/login")
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		to = "/login"
	}
	target := h.PublicURL + to

	// 2. Plan per platform
	env := browser.Detect(c.Get(fiber.HeaderUserAgent))
	plan := browser.PlanRedirect(env, target)

	if plan.Mode == browser.RedirectDirect {
		return c.Redirect(plan.TargetURL, fiber.StatusFound)
	}

	// 3. Android intent hand-off with the delayed same-focus fallback
	return h.Renderer.Render(c, "redirect.html", fiber.Map{
		"Frame":      newFrame(c),
		"TargetURL":  plan.TargetURL,
		"IntentURL":  plan.IntentURL,
		"FallbackMS": plan.Fallback.Milliseconds(),
	})
}

// Dashboard renders the signed-in overview with directory and personal stats.
// GET /app
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	ctx := c.Context()

	// Fetch the directory and the user's history concurrently
	var (
		markets  []models.Market
		degraded bool
		bets     []models.Bet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, d := h.Directory.ListMarkets(gctx, services.Filter{})
		markets, degraded = m, d
		return nil
	})
	g.Go(func() error {
		b, err := h.History.ListBetsForUser(gctx, user.ID)
		if err != nil {
			// Dashboard stats degrade to zero instead of failing the page
			return nil
		}
		bets = b
		return nil
	})
	_ = g.Wait()

	var totalPool float64
	active := 0
	for _, m := range markets {
		totalPool += m.Pool
		if m.Status.Bettable() {
			active++
		}
	}
	var staked float64
	for _, b := range bets {
		staked += b.Amount
	}

	return h.Renderer.Render(c, "dashboard.html", fiber.Map{
		"Frame":         newFrame(c),
		"ActiveMarkets": active,
		"TotalPool":     totalPool,
		"BetCount":      len(bets),
		"TotalStaked":   staked,
		"Degraded":      degraded,
	})
}

// Logout clears the identity-provider session cookie.
// POST /logout
func (h *PageHandler) Logout(cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.ClearCookie(cookieName)
		return c.Redirect("/", fiber.StatusFound)
	}
}
