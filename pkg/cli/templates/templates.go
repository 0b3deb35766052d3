// Package templates provides embedded starter filter configurations for
// hartool init.
package templates

import (
	"embed"
	"fmt"
	"slices"
	"strings"
)

//go:embed *.yaml
var templateFS embed.FS

// Template represents a starter filter configuration.
type Template struct {
	ID          string
	Description string
	Filename    string
}

// AvailableTemplates returns all available starter templates.
var AvailableTemplates = []Template{
	{
		ID:          "default",
		Description: "Drop static assets, fonts and analytics beacons",
		Filename:    "default.yaml",
	},
	{
		ID:          "api-only",
		Description: "Keep only JSON API traffic of one host",
		Filename:    "api-only.yaml",
	},
	{
		ID:          "privacy",
		Description: "Drop trackers, ad networks and telemetry endpoints",
		Filename:    "privacy.yaml",
	},
}

// Get returns the template content by ID.
func Get(id string) ([]byte, error) {
	t, err := GetTemplate(id)
	if err != nil {
		return nil, err
	}
	return templateFS.ReadFile(t.Filename)
}

// GetTemplate returns the Template metadata by ID.
func GetTemplate(id string) (*Template, error) {
	for i := range AvailableTemplates {
		if strings.EqualFold(AvailableTemplates[i].ID, id) {
			return &AvailableTemplates[i], nil
		}
	}
	return nil, fmt.Errorf("unknown template: %s", id)
}

// List returns all template IDs sorted alphabetically.
func List() []string {
	ids := make([]string, len(AvailableTemplates))
	for i, t := range AvailableTemplates {
		ids[i] = t.ID
	}
	slices.Sort(ids)
	return ids
}

// FormatList returns a formatted string listing all available templates.
func FormatList() string {
	var sb strings.Builder
	sb.WriteString("Available templates:\n\n")

	maxLen := 0
	for _, t := range AvailableTemplates {
		maxLen = max(maxLen, len(t.ID))
	}
	for _, t := range AvailableTemplates {
		fmt.Fprintf(&sb, "  %-*s  %s\n", maxLen, t.ID, t.Description)
	}

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  hartool init --template <name>\n")
	sb.WriteString("  hartool init -t privacy -o filters.yaml\n")
	return sb.String()
}

// Exists checks if a template ID exists.
func Exists(id string) bool {
	_, err := GetTemplate(id)
	return err == nil
}
