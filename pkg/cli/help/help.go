// Package help provides embedded documentation for hartool help topics.
package help

import (
	"embed"
	"fmt"
	"slices"
	"strings"
)

//go:embed topics/*.txt
var topics embed.FS

// AvailableTopics lists all available help topics.
var AvailableTopics = []string{"filters", "patterns", "config", "environment"}

// TopicDescriptions provides short descriptions for each topic.
var TopicDescriptions = map[string]string{
	"filters":     "Include and ignore rules",
	"patterns":    "Glob and regex pattern syntax",
	"config":      "Configuration file discovery",
	"environment": "Environment variables",
}

// IsTopic reports whether name is a help topic.
func IsTopic(name string) bool {
	return slices.Contains(AvailableTopics, normalize(name))
}

// GetTopic retrieves the content of a help topic by name.
func GetTopic(name string) (string, error) {
	name = normalize(name)
	if !slices.Contains(AvailableTopics, name) {
		return "", fmt.Errorf("unknown help topic: %s\n\nAvailable topics:\n%s", name, ListTopics())
	}
	content, err := topics.ReadFile("topics/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("failed to read topic %s: %w", name, err)
	}
	return string(content), nil
}

// ListTopics returns a formatted list of available topics.
func ListTopics() string {
	var sb strings.Builder
	for _, topic := range AvailableTopics {
		fmt.Fprintf(&sb, "  %-15s %s\n", topic, TopicDescriptions[topic])
	}
	return sb.String()
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
