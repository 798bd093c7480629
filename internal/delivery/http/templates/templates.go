// Package templates renders the HTML views through echo's Renderer hook.
package templates

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

//go:embed views/*.html
var viewFS embed.FS

// Renderer implements echo.Renderer over the embedded view templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded views once at startup.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(viewFS, "views/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse view templates")
	}

	return &Renderer{templates: tmpl}, nil
}

// Render writes the named view with the given data.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return errors.Wrapf(r.templates.ExecuteTemplate(w, name, data), "failed to render %s", name)
}
