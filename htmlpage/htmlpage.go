// Package htmlpage renders the output screen of a workflow as a static HTML
// page. Texts are treated as Markdown and sanitized before they are
// embedded.
package htmlpage

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// Image is an image shown on the page.
type Image struct {
	URL     string
	AltText string
}

// Page is everything the output screen shows.
type Page struct {
	Title       string
	ButtonLabel string
	Scale       float64
	Color       string
	Transition  string
	Disabled    bool
	Texts       []string
	Images      []Image
	Status      string
}

type pageData struct {
	Page
	ScaleText string
	TextsHTML []template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
#workflow-button { padding: 0.75rem 1.5rem; border: 0; border-radius: 0.5rem; color: #fff; background-color: #3b82f6; }
#workflow-button:disabled { opacity: 0.5; }
.output-text { margin: 0.5rem 0; }
.output-image img { max-width: 100%; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<button id="workflow-button" type="button" style="transform: scale({{.ScaleText}});{{if .Transition}} transition: {{.Transition}};{{end}}{{if .Color}} background-color: {{.Color}};{{end}}"{{if .Disabled}} disabled{{end}}>{{.ButtonLabel}}</button>
{{if .Status}}<p id="status">{{.Status}}</p>{{end}}
<section id="texts">
{{range .TextsHTML}}<div class="output-text">{{.}}</div>
{{end}}</section>
<section id="images">
{{range .Images}}<figure class="output-image"><img src="{{.URL}}" alt="{{if .AltText}}{{.AltText}}{{else}}Action result{{end}}"></figure>
{{end}}</section>
</body>
</html>
`))

// Render writes p as an HTML document.
func Render(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Workflow Output"
	}
	if p.Scale <= 0 {
		p.Scale = 1
	}

	policy := bluemonday.UGCPolicy()
	data := pageData{
		Page:      p,
		ScaleText: strconv.FormatFloat(p.Scale, 'f', -1, 64),
		TextsHTML: make([]template.HTML, 0, len(p.Texts)),
	}
	for _, text := range p.Texts {
		data.TextsHTML = append(data.TextsHTML, template.HTML(policy.SanitizeBytes(markdownToHTML(text)))) // #nosec G203
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func markdownToHTML(text string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(text))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return markdown.Render(doc, renderer)
}
