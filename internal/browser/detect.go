/**
 * @description
 * Browser environment detection from the User-Agent string.
 * Classifies in-app WebViews vs. standard browsers, mobile vs. desktop,
 * iOS vs. Android. Pure functions: no network access, no side effects,
 * deterministic for a given user agent.
 *
 * @notes
 * - In-app browsers on iOS omit the "Safari" token that real Safari always
 *   carries; that absence is the embedded-browser heuristic there.
 * - Android WebViews advertise themselves with the "; wv" token.
 * - Third-party login flows are blocked inside these contexts, which is why
 *   the login page needs this classification at all.
 */

package browser

import "strings"

// Environment is the classification of the requesting browser.
// The booleans are independent; a KakaoTalk visit on an iPhone is
// simultaneously a WebView, mobile, and iOS.
type Environment struct {
	IsWebView bool
	IsMobile  bool
	IsIOS     bool
	IsAndroid bool
}

// inAppSignatures are user-agent markers of known in-app browsers.
var inAppSignatures = []string{
	"kakaotalk",
	"webview",
	"fban",
	"fbav",
	"instagram",
	"line/",
	"naver(inapp",
	"daumapps",
}

// Detect classifies the given User-Agent string.
func Detect(userAgent string) Environment {
	ua := strings.ToLower(userAgent)
	env := Environment{
		IsIOS:     isIOS(ua),
		IsAndroid: strings.Contains(ua, "android"),
	}
	env.IsMobile = isMobile(ua)
	env.IsWebView = isWebView(ua, env)
	return env
}

func isIOS(ua string) bool {
	return strings.Contains(ua, "iphone") ||
		strings.Contains(ua, "ipad") ||
		strings.Contains(ua, "ipod")
}

func isMobile(ua string) bool {
	for _, marker := range []string{
		"android", "webos", "iphone", "ipad", "ipod",
		"blackberry", "iemobile", "opera mini",
	} {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}

func isWebView(ua string, env Environment) bool {
	for _, sig := range inAppSignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	// Android WebViews carry the "; wv" chrome marker
	if env.IsAndroid && strings.Contains(ua, "; wv") {
		return true
	}
	// Embedded iOS browsers lack the Safari token that real Safari carries
	if env.IsIOS && !strings.Contains(ua, "safari") {
		return true
	}
	return false
}
