package browser

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		ua   string
		want Environment
	}{
		{
			name: "desktop chrome",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			want: Environment{},
		},
		{
			name: "desktop safari",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
			want: Environment{},
		},
		{
			name: "iphone safari",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
			want: Environment{IsMobile: true, IsIOS: true},
		},
		{
			name: "android chrome",
			ua:   "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			want: Environment{IsMobile: true, IsAndroid: true},
		},
		{
			name: "android webview",
			ua:   "Mozilla/5.0 (Linux; Android 13; SM-G991B; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/118.0.0.0 Mobile Safari/537.36",
			want: Environment{IsWebView: true, IsMobile: true, IsAndroid: true},
		},
		{
			name: "kakaotalk on iphone",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 KAKAOTALK 10.3.0",
			want: Environment{IsWebView: true, IsMobile: true, IsIOS: true},
		},
		{
			name: "kakaotalk on android",
			ua:   "Mozilla/5.0 (Linux; Android 13; SM-S908N Build/TP1A.220624.014; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/115.0.0.0 Mobile Safari/537.36;KAKAOTALK 2610420",
			want: Environment{IsWebView: true, IsMobile: true, IsAndroid: true},
		},
		{
			name: "instagram in-app on iphone",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/21A329 Instagram 302.0.0.23.114",
			want: Environment{IsWebView: true, IsMobile: true, IsIOS: true},
		},
		{
			name: "facebook in-app on android",
			ua:   "Mozilla/5.0 (Linux; Android 12; SM-A515F Build/SP1A.210812.016; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/117.0.0.0 Mobile Safari/537.36 [FB_IAB/FB4A;FBAV/437.0.0.29.116;]",
			want: Environment{IsWebView: true, IsMobile: true, IsAndroid: true},
		},
		{
			name: "line in-app on iphone",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 16_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 Line/13.10.0",
			want: Environment{IsWebView: true, IsMobile: true, IsIOS: true},
		},
		{
			name: "ios embedded browser without safari token",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148",
			want: Environment{IsWebView: true, IsMobile: true, IsIOS: true},
		},
		{
			name: "opera mini",
			ua:   "Opera/9.80 (Android; Opera Mini/36.2.2254/119.132; U; en) Presto/2.12.423 Version/12.16",
			want: Environment{IsMobile: true, IsAndroid: true},
		},
		{
			name: "empty user agent",
			ua:   "",
			want: Environment{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Detect(tc.ua)
			if got != tc.want {
				t.Errorf("Detect(%q) = %+v, want %+v", tc.ua, got, tc.want)
			}
		})
	}
}
