// Package view renders the dashboard page from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// ChartColor is the fill colour of the quantity bars.
const ChartColor = "#FF4B4B"

// Page is what a handler hands to the renderer.
type Page struct {
	Dashboard        *model.Dashboard
	Notice           string
	Error            string
	SnapshotsEnabled bool
}

type pageData struct {
	Page
	Title      string
	Currency   string
	ChartColor string
}

// Renderer executes the parsed dashboard templates.
type Renderer struct {
	tpl      *template.Template
	title    string
	currency string
}

// New parses the embedded templates once.
func New(cfg config.DisplayConfig) (*Renderer, error) {
	currency := cfg.CurrencySymbol
	tpl, err := template.New("layout.html").
		Funcs(template.FuncMap{
			"money": func(d decimal.Decimal) string { return FormatMoney(d, currency) },
			"price": func(d decimal.Decimal) string { return d.StringFixed(2) },
			"width": func(percent float64) string { return fmt.Sprintf("%.1f%%", percent) },
		}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		tpl:      tpl,
		title:    cfg.Title,
		currency: currency,
	}, nil
}

// Render writes the dashboard with the given status. The page is executed
// into a buffer first so a template error never leaves a half-written body.
func (r *Renderer) Render(w http.ResponseWriter, status int, page Page) error {
	if page.Dashboard == nil {
		page.Dashboard = &model.Dashboard{}
	}

	var buf bytes.Buffer
	err := r.tpl.ExecuteTemplate(&buf, "layout", pageData{
		Page:       page,
		Title:      r.title,
		Currency:   r.currency,
		ChartColor: ChartColor,
	})
	if err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

// FormatMoney formats d with two decimals, comma thousands separators and
// a trailing currency symbol, e.g. "1,234.56 zł".
func FormatMoney(d decimal.Decimal, symbol string) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if d.IsNegative() && !d.Round(2).IsZero() {
		b.WriteByte('-')
	}
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)

	if symbol != "" {
		b.WriteByte(' ')
		b.WriteString(symbol)
	}
	return b.String()
}
