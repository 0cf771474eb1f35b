/**
 * @description
 * Server-side HTML rendering.
 * Templates are embedded at build time and parsed once at startup; pages are
 * rendered into a buffer first so a template error produces a clean 500
 * instead of a half-written response.
 *
 * @dependencies
 * - embed, html/template
 * - github.com/gofiber/fiber/v2: response writing
 * - webapp/internal/services: country catalog helpers exposed to templates
 */

package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/weather-project/webapp/internal/models"
	"github.com/weather-project/webapp/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes embedded page templates.
type Renderer struct {
	templates *template.Template
}

// New parses all embedded templates. Fails fast on malformed templates.
func New() (*Renderer, error) {
	t, err := template.New("").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render executes the named template and writes it as the HTML response.
func (r *Renderer) Render(c *fiber.Ctx, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"flag":       services.CountryFlag,
		"flagByName": services.FlagByName,
		"money":      Money,
		"betDate":    BetDate,
		"endDate":    EndDate,
		"statusLabel": func(s models.MarketStatus) string {
			return s.Label()
		},
		"sideLabel": func(s models.BetSide) string {
			return s.Label()
		},
		"price": func(p float64) string {
			return strconv.FormatFloat(p, 'f', 2, 64)
		},
		// cityIndex and flagIndex feed the directory page's filter script;
		// in a script context html/template serializes them as JSON.
		"cityIndex": func(countries []services.Country) map[string][]string {
			idx := make(map[string][]string, len(countries))
			for _, c := range countries {
				idx[c.Code] = c.Cities
			}
			return idx
		},
		"flagIndex": func(countries []services.Country) map[string]string {
			idx := make(map[string]string, len(countries))
			for _, c := range countries {
				idx[c.Code] = c.Flag
			}
			return idx
		},
	}
}

// Money formats a pool amount with thousands separators, e.g. "$1,234".
func Money(v float64) string {
	whole := int64(v)
	s := strconv.FormatInt(whole, 10)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := "$" + strings.Join(parts, ",")
	if negative {
		out = "-" + out
	}
	return out
}

// EndDate renders an ISO market end date as "Dec 15, 2024".
// Unparseable dates pass through untouched.
func EndDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("Jan 2, 2006")
}

// BetDate renders a bet timestamp as "Dec 15, 2024 14:03".
func BetDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04")
}
