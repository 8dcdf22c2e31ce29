package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/dyluth/dexteam/internal/config"
)

//go:embed templates/*
var templatesFS embed.FS

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// templateData holds the defaults substituted into dexteam.yml.tmpl
type templateData struct {
	BaseURL              string
	CatalogPath          string
	Timeout              string
	MaxRetries           int
	MaxSelectionAttempts int
	MaxDraftAttempts     int
	MaxRounds            int
	Namespace            string
	TTL                  string
	OutputPath           string
}

// Initialize writes a starter dexteam.yml into dir.
// If force is true, an existing dexteam.yml is replaced.
func Initialize(dir string, force bool) (string, error) {
	target := filepath.Join(dir, config.DefaultFileName)

	if force {
		if err := handleForce(target); err != nil {
			return "", err
		}
	} else if err := CheckExisting(dir); err != nil {
		return "", err
	}

	file, err := getTemplateFile(target)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(file.Path, file.Content, file.Permissions); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", file.Path, err)
	}

	// The starter file must load cleanly with the real config loader
	if _, err := config.Load(target); err != nil {
		return "", fmt.Errorf("created %s is invalid: %w", config.DefaultFileName, err)
	}

	return target, nil
}

// handleForce removes an existing config file if --force was specified
func handleForce(target string) error {
	if _, err := os.Stat(target); err == nil {
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("failed to remove %s: %w", target, err)
		}
	}
	return nil
}

// getTemplateFile renders dexteam.yml.tmpl with the built-in defaults
func getTemplateFile(target string) (FileInfo, error) {
	raw, err := templatesFS.ReadFile("templates/dexteam.yml.tmpl")
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to read dexteam.yml template: %w", err)
	}

	tmpl, err := template.New("dexteam.yml").Parse(string(raw))
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to parse dexteam.yml template: %w", err)
	}

	defaults := config.Default()
	data := templateData{
		BaseURL:              defaults.Source.BaseURL,
		CatalogPath:          defaults.Source.CatalogPath,
		Timeout:              defaults.Source.Timeout,
		MaxRetries:           *defaults.Source.MaxRetries,
		MaxSelectionAttempts: defaults.Draft.MaxSelectionAttempts,
		MaxDraftAttempts:     defaults.Draft.MaxDraftAttempts,
		MaxRounds:            defaults.Draft.MaxRounds,
		Namespace:            defaults.Cache.Namespace,
		TTL:                  defaults.Cache.TTL,
		OutputPath:           defaults.Output.Path,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return FileInfo{}, fmt.Errorf("failed to render dexteam.yml template: %w", err)
	}

	return FileInfo{Path: target, Content: buf.Bytes(), Permissions: 0644}, nil
}

// PrintSuccess prints the success message with the created file
func PrintSuccess(w io.Writer, path string) {
	fmt.Fprintln(w, "\n✅ Successfully initialized dexteam!")
	fmt.Fprintln(w, "\nCreated:")
	fmt.Fprintf(w, "  ✓ %s\n", path)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "  1. Set cache.redis_url to reuse fetched pages between runs")
	fmt.Fprintln(w, "  2. Run 'dexteam draft' to assemble a team")
}
