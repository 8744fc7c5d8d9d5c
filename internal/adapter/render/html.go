package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	domain "user-page-service/internal/domain/user"
	"user-page-service/internal/usecase/page"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names understood by Renderer.
const (
	HomeTemplate  = "home.html"
	UsersTemplate = "users.html"
	ErrorTemplate = "error.html"
)

// HomePage is the view model of the home page.
type HomePage struct {
	Title   string
	Product page.Product
}

// UsersPage is the view model of the users page.
type UsersPage struct {
	Title      string
	Table      domain.Table
	RenderedAt time.Time
}

// ErrorPage is the view model shown when a render pass is aborted.
type ErrorPage struct {
	Title   string
	Status  int
	Message string
}

// Renderer executes the embedded HTML templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Templates returns the parsed template set, for engines that render by name.
func (r *Renderer) Templates() *template.Template {
	return r.tmpl
}

// Render executes the named template with data into w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
