// Package web renders the server-side HTML pages and formats stored values for display.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names understood by Renderer.Render.
const (
	PageHome          = "home"
	PageWorkouts      = "workouts"
	PageCreateWorkout = "create-workout"
	PageViewWorkout   = "view-workout"
	PageEditWorkout   = "edit-workout"
)

var pages = []string{PageHome, PageWorkouts, PageCreateWorkout, PageViewWorkout, PageEditWorkout}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(d civil.Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// FormatDuration renders minutes without trailing zeros.
func FormatDuration(minutes float64) string {
	return strconv.FormatFloat(minutes, 'f', -1, 64)
}

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"formatDate":     FormatDate,
		"formatDuration": FormatDuration,
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.templates[page] = tmpl
	}
	return r, nil
}

// Render executes page into a buffer first so a template failure never
// produces a half-written 200 response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
