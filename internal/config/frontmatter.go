// ABOUTME: Generic YAML frontmatter parser with CRLF normalization
// ABOUTME: Extracts typed frontmatter from SKILL.md content with --- delimiters

package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// Frontmatter errors.
var (
	ErrNoFrontmatter           = errors.New("content must start with YAML frontmatter (---)")
	ErrUnterminatedFrontmatter = errors.New("unterminated frontmatter: missing closing ---")
)

// ParseFrontmatter extracts YAML frontmatter from Markdown content.
// It returns the parsed frontmatter as T, the remaining body, and any error.
// If no frontmatter is found, it returns (zero T, original content, nil).
// If the opening delimiter is present but the closing one is missing, it returns
// ErrUnterminatedFrontmatter.
func ParseFrontmatter[T any](content string) (T, string, error) {
	var zero T

	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, frontmatterDelimiter+"\n") {
		return zero, content, nil
	}

	yamlContent, body, err := splitFrontmatter(normalized[len(frontmatterDelimiter)+1:])
	if err != nil {
		return zero, "", err
	}

	var result T
	if err := yaml.Unmarshal([]byte(yamlContent), &result); err != nil {
		return zero, "", fmt.Errorf("parse frontmatter YAML: %w", err)
	}
	return result, body, nil
}

// ParseRequiredFrontmatter is ParseFrontmatter for documents that must carry
// frontmatter. Surrounding whitespace is ignored and the body is trimmed.
func ParseRequiredFrontmatter[T any](content string) (T, string, error) {
	var zero T

	trimmed := strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if !strings.HasPrefix(trimmed, frontmatterDelimiter+"\n") && trimmed != frontmatterDelimiter {
		return zero, "", ErrNoFrontmatter
	}

	fm, body, err := ParseFrontmatter[T](trimmed)
	if err != nil {
		return zero, "", err
	}
	return fm, strings.TrimSpace(body), nil
}

// splitFrontmatter splits the text after the opening delimiter into the YAML
// block and the body following the closing delimiter.
func splitFrontmatter(rest string) (string, string, error) {
	if strings.HasPrefix(rest, frontmatterDelimiter+"\n") || rest == frontmatterDelimiter {
		// Closing delimiter immediately follows the opening one.
		return "", strings.TrimPrefix(rest[len(frontmatterDelimiter):], "\n"), nil
	}
	yamlContent, after, ok := strings.Cut(rest, "\n"+frontmatterDelimiter)
	if !ok {
		return "", "", ErrUnterminatedFrontmatter
	}
	return yamlContent, strings.TrimPrefix(after, "\n"), nil
}
