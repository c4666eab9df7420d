package routes

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitJourney/internal/config"
	"gopkg.in/yaml.v3"
)

//go:embed docs_static/openapi.yaml
var docsStaticFS embed.FS

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 2rem; color: #132019; }
    code { background: #f1f3ef; padding: 0 .25rem; }
    li { margin: .25rem 0; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <p>Loaded {{ .LoadedAt }}. Raw document: <a href="/docs/openapi.yaml">openapi.yaml</a></p>
  <ul>
  {{- range .Operations }}
    <li><code>{{ .Method }} {{ .Path }}</code> {{ .Summary }}</li>
  {{- end }}
  </ul>
</body>
</html>
`

type docsOperation struct {
	Method  string
	Path    string
	Summary string
}

type docsPageData struct {
	Title      string
	LoadedAt   string
	Operations []docsOperation
}

type openAPIDocument struct {
	Info struct {
		Title string `yaml:"title"`
	} `yaml:"info"`
	Paths map[string]map[string]struct {
		Summary string `yaml:"summary"`
	} `yaml:"paths"`
}

func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	spec, err := docsStaticFS.ReadFile("docs_static/openapi.yaml")
	if err != nil {
		return fmt.Errorf("load openapi spec: %w", err)
	}
	operations, title, err := parseOpenAPI(spec)
	if err != nil {
		return fmt.Errorf("parse openapi spec: %w", err)
	}

	indexTemplate, err := template.New("docs-index").Parse(docsIndexHTML)
	if err != nil {
		return fmt.Errorf("parse docs template: %w", err)
	}

	pageData := docsPageData{
		Title:      title,
		LoadedAt:   time.Now().UTC().Format(time.RFC3339),
		Operations: operations,
	}

	indexHandler := func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMETextHTMLCharsetUTF8)
		c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; base-uri 'none'; form-action 'none'; frame-ancestors 'none'")

		var body bytes.Buffer
		if err := indexTemplate.Execute(&body, pageData); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render api docs")
		}

		return c.Status(fiber.StatusOK).Send(body.Bytes())
	}

	app.Get("/docs", indexHandler)
	app.Get("/docs/", indexHandler)
	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, "application/yaml; charset=utf-8")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="openapi.yaml"`)
		return c.Status(fiber.StatusOK).Send(spec)
	})

	return nil
}

// parseOpenAPI lists operations sorted by path then method.
func parseOpenAPI(spec []byte) ([]docsOperation, string, error) {
	var doc openAPIDocument
	if err := yaml.Unmarshal(spec, &doc); err != nil {
		return nil, "", err
	}
	if len(doc.Paths) == 0 {
		return nil, "", fmt.Errorf("document has no paths")
	}

	var operations []docsOperation
	for path, methods := range doc.Paths {
		for method, op := range methods {
			operations = append(operations, docsOperation{
				Method:  strings.ToUpper(method),
				Path:    path,
				Summary: op.Summary,
			})
		}
	}
	sort.Slice(operations, func(i, j int) bool {
		if operations[i].Path != operations[j].Path {
			return operations[i].Path < operations[j].Path
		}
		return operations[i].Method < operations[j].Method
	})
	return operations, doc.Info.Title, nil
}

func applyDocsBaseHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("Cross-Origin-Resource-Policy", "same-origin")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}
