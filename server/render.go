package server

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/fennwick/projectpilot/internal/model"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// renderer adapts html/template to echo's Renderer interface.
type renderer struct {
	templates *template.Template
}

func newRenderer() (*renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"dateformat": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format(model.DateFormat)
		},
		"datetimeformat": func(t time.Time) string {
			return t.UTC().Format("2006-01-02 15:04")
		},
		"durationformat": model.FormatMinutes,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &renderer{templates: t}, nil
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
