package frontend

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

const viewsPattern = "views/*.html"

//go:embed views/*.html
var templateFS embed.FS

//go:embed views/icon.svg
var assetsFS embed.FS

// Template implements echo.Renderer on top of the embedded views
type Template struct {
	templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func parseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, viewsPattern))
}

var templateFuncs = template.FuncMap{
	// pngDataURI inlines request-scoped images; nothing is stored server side
	"pngDataURI": func(data []byte) template.URL {
		return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
	},
	"optionalInt": func(v *int) string {
		if v == nil {
			return "unavailable"
		}
		return fmt.Sprintf("%d", *v)
	},
	"optionalFloat": func(v *float64) string {
		if v == nil {
			return "unavailable"
		}
		return fmt.Sprintf("%.1f", *v)
	},
}
