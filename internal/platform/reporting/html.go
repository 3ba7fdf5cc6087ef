package reporting

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/hemmy/hemmy/internal/domain/hemo"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer implements echo.Renderer over the embedded report
// templates.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the embedded templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	t := template.New("").Funcs(template.FuncMap{
		// val renders a derived value with the given precision, or N/A.
		"val": func(decimals int, v hemo.Value) string {
			f, ok := v.Float64()
			if !ok {
				return "N/A"
			}
			return fmt.Sprintf("%.*f", decimals, f)
		},
		"num": func(decimals int, f float64) string {
			return fmt.Sprintf("%.*f", decimals, f)
		},
		"deref": func(p *float64) float64 {
			if p == nil {
				return 0
			}
			return *p
		},
	})
	t, err := t.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{templates: t}, nil
}

// Render implements echo.Renderer.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}
