// Package render turns drafted teams and catalogs into output: the static
// HTML team page, terminal tables and JSONL.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dyluth/dexteam/pkg/dex"
)

// DefaultTitle is used when a Page has no title.
const DefaultTitle = "Pokemon team"

// DefaultStylesheet is the catalog site's stylesheet, which provides the
// type-icon styling used by the page.
const DefaultStylesheet = "https://pokemondb.net/static/css/pokemondb-e614e67e0f.css"

//go:embed templates/team.html.tmpl
var templatesFS embed.FS

var teamTemplate = template.Must(
	template.New("team.html.tmpl").Funcs(template.FuncMap{
		"number": func(n int) string { return fmt.Sprintf("%03d", n) },
		"lower":  strings.ToLower,

		// Bound per page by WriteHTML
		"site":    func(string) string { return "" },
		"typeURL": func(string) string { return "" },
	}).ParseFS(templatesFS, "templates/team.html.tmpl"),
)

// Page is everything the team page shows.
type Page struct {
	Team        dex.Team
	BaseURL     string // Catalog site, detail and type links are resolved against it
	Title       string
	Stylesheet  string // Optional stylesheet URL
	RunID       string
	GeneratedAt time.Time
}

// WriteHTML renders page to w.
func WriteHTML(w io.Writer, page Page) error {
	if len(page.Team.Members) == 0 {
		return fmt.Errorf("cannot render an empty team")
	}
	if page.BaseURL == "" {
		return fmt.Errorf("base URL is required to link members")
	}
	if page.Title == "" {
		page.Title = DefaultTitle
	}
	if page.GeneratedAt.IsZero() {
		page.GeneratedAt = time.Now()
	}

	base := strings.TrimRight(page.BaseURL, "/")
	tmpl, err := teamTemplate.Clone()
	if err != nil {
		return fmt.Errorf("failed to prepare template: %w", err)
	}
	tmpl.Funcs(template.FuncMap{
		"site": func(path string) string {
			if path == "" {
				return base
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}
			return base + path
		},
		"typeURL": func(label string) string {
			return base + "/type/" + strings.ToLower(label)
		},
	})

	if err := tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render team page: %w", err)
	}
	return nil
}

// WriteFile renders page into path, creating parent directories. Nothing is
// written if rendering fails.
func WriteFile(path string, page Page) error {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, page); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
