package handler

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

const pageTemplateName = "page"

const pageLayout = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} | School Records</title></head>
<body>
<main>
<h1>{{.Heading}}</h1>
<p>{{.Body}}</p>
{{with .Identity}}<p id="identity">Signed in as {{.Name}} ({{.Role}})</p>{{end}}
</main>
</body>
</html>
`

// TemplateRenderer is the echo.Renderer behind c.Render.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the page layout. It panics on a malformed
// template, which can only happen at build time.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{
		templates: template.Must(template.New(pageTemplateName).Parse(pageLayout)),
	}
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
