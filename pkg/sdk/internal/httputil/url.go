// ABOUTME: Base URL validation and normalization for the parity API
// ABOUTME: Request paths carry their own /v1 prefix, so a trailing /v1 on the base is dropped

package httputil

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeBaseURL validates baseURL and strips trailing slashes and a
// trailing "/v1" segment so that "/v1/..." paths are not doubled.
func NormalizeBaseURL(baseURL string) (string, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return "", fmt.Errorf("base URL is empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL %q: missing host", baseURL)
	}

	u.Path = strings.TrimRight(u.Path, "/")
	u.Path = strings.TrimSuffix(u.Path, "/v1")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}
