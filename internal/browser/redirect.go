/**
 * @description
 * System-browser redirect planning.
 * Restricted in-app browsers block third-party login, so the login flow must
 * escape to the platform's default browser. iOS and desktop navigate
 * directly; Android first tries an intent:// address that explicitly asks
 * for the browser app, falling back to the plain URL if the page still has
 * focus after a short delay (no app hand-off happened).
 *
 * @notes
 * - Best-effort UX affordance, not correctness-critical: every failure path
 *   degrades to a plain navigation.
 */

package browser

import (
	"strings"
	"time"
)

// FallbackDelay is how long the Android intent navigation gets to hand off
// to the browser app before the plain URL is used instead.
const FallbackDelay = 500 * time.Millisecond

// RedirectMode selects the navigation mechanism for a redirect plan.
type RedirectMode int

const (
	// RedirectDirect navigates straight to the target URL.
	RedirectDirect RedirectMode = iota
	// RedirectIntent tries an Android intent:// address first, then falls
	// back to the target URL after FallbackDelay if focus never left.
	RedirectIntent
)

// RedirectPlan describes how to get a target URL opened in the system browser.
type RedirectPlan struct {
	Mode      RedirectMode
	TargetURL string
	// IntentURL is populated only for RedirectIntent.
	IntentURL string
	Fallback  time.Duration
}

// PlanRedirect builds the redirect plan for the given environment and URL.
func PlanRedirect(env Environment, targetURL string) RedirectPlan {
	if env.IsAndroid && !env.IsIOS {
		return RedirectPlan{
			Mode:      RedirectIntent,
			TargetURL: targetURL,
			IntentURL: IntentURL(targetURL),
			Fallback:  FallbackDelay,
		}
	}
	// iOS hands browser choice to the OS; desktop just navigates.
	return RedirectPlan{Mode: RedirectDirect, TargetURL: targetURL}
}

// IntentURL rewrites an http(s) URL into an Android intent address that
// requests the default browser app.
func IntentURL(targetURL string) string {
	stripped := strings.TrimPrefix(targetURL, "https://")
	stripped = strings.TrimPrefix(stripped, "http://")
	return "intent://" + stripped +
		"#Intent;scheme=https;action=android.intent.action.VIEW;category=android.intent.category.BROWSABLE;end"
}
