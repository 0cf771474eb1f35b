package browser

import (
	"strings"
	"testing"
)

func TestIntentURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{
			in:   "https://weather.example.com/login",
			want: "intent://weather.example.com/login#Intent;scheme=https;action=android.intent.action.VIEW;category=android.intent.category.BROWSABLE;end",
		},
		{
			in:   "http://weather.example.com/markets/1?ref=share",
			want: "intent://weather.example.com/markets/1?ref=share#Intent;scheme=https;action=android.intent.action.VIEW;category=android.intent.category.BROWSABLE;end",
		},
	}
	for _, tc := range cases {
		if got := IntentURL(tc.in); got != tc.want {
			t.Errorf("IntentURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPlanRedirect(t *testing.T) {
	target := "https://weather.example.com/login"

	android := PlanRedirect(Environment{IsAndroid: true, IsMobile: true}, target)
	if android.Mode != RedirectIntent {
		t.Fatalf("android plan mode = %v, want RedirectIntent", android.Mode)
	}
	if android.Fallback != FallbackDelay {
		t.Errorf("android fallback = %v, want %v", android.Fallback, FallbackDelay)
	}
	if !strings.HasPrefix(android.IntentURL, "intent://") {
		t.Errorf("android intent url = %q", android.IntentURL)
	}
	if android.TargetURL != target {
		t.Errorf("android target = %q, want %q", android.TargetURL, target)
	}

	ios := PlanRedirect(Environment{IsIOS: true, IsMobile: true}, target)
	if ios.Mode != RedirectDirect {
		t.Errorf("ios plan mode = %v, want RedirectDirect", ios.Mode)
	}
	if ios.IntentURL != "" {
		t.Errorf("ios plan should carry no intent url, got %q", ios.IntentURL)
	}

	desktop := PlanRedirect(Environment{}, target)
	if desktop.Mode != RedirectDirect {
		t.Errorf("desktop plan mode = %v, want RedirectDirect", desktop.Mode)
	}
}
