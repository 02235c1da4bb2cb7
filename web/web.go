// Package web holds the server-rendered pages of the site.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageLanding        = "landing.html"
	PageCheckout       = "checkout.html"
	PagePaymentSuccess = "payment_success.html"
	PageAdmin          = "admin.html"
)

// Renderer executes one page template at a time. Each page is parsed
// together with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageLanding, PageCheckout, PagePaymentSuccess, PageAdmin} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render writes page with data. Output is buffered so a template error
// never leaves a half-written page behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data interface{}) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, page, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
