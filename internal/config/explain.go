// ABOUTME: Human-readable rendering of the effective configuration
// ABOUTME: Used by the "config" CLI subcommand; secrets are masked

package config

import (
	"fmt"
	"slices"
	"strings"
)

// Explain renders the effective settings grouped by section.
// Secrets and DSN passwords are masked.
func Explain(s *Settings) string {
	if s == nil {
		s = &Settings{}
	}

	var b strings.Builder

	b.WriteString("=== Server ===\n")
	field(&b, "Addr", s.Addr)
	field(&b, "JWTSecret", mask(s.JWTSecret))
	if s.RateLimit != 0 {
		fmt.Fprintf(&b, "  %-12s %d/min\n", "RateLimit:", s.RateLimit)
	}
	field(&b, "CORSOrigin", s.CORSOrigin)
	if s.BodyLimit != 0 {
		fmt.Fprintf(&b, "  %-12s %d bytes\n", "BodyLimit:", s.BodyLimit)
	}
	field(&b, "LogLevel", s.LogLevel)
	b.WriteString("\n")

	b.WriteString("=== Registry ===\n")
	field(&b, "Driver", s.Registry.Driver)
	field(&b, "DSN", maskDSN(s.Registry.DSN))
	b.WriteString("\n")

	b.WriteString("=== Skills ===\n")
	if len(s.SkillDirs) > 0 {
		field(&b, "Dirs", strings.Join(s.SkillDirs, ", "))
	}
	b.WriteString("\n")

	b.WriteString("=== Client ===\n")
	field(&b, "BaseURL", s.BaseURL)
	field(&b, "APIKey", mask(s.APIKey))
	if s.Retries != 0 {
		fmt.Fprintf(&b, "  %-12s %d\n", "Retries:", s.Retries)
	}
	if s.RetryDelayMS != 0 {
		fmt.Fprintf(&b, "  %-12s %dms\n", "RetryDelay:", s.RetryDelayMS)
	}
	if s.TimeoutMS != 0 {
		fmt.Fprintf(&b, "  %-12s %dms\n", "Timeout:", s.TimeoutMS)
	}

	if len(s.Env) > 0 {
		b.WriteString("\n=== Env ===\n")
		for _, k := range sortedKeys(s.Env) {
			fmt.Fprintf(&b, "  %s=%s\n", k, mask(s.Env[k]))
		}
	}

	return b.String()
}

func field(b *strings.Builder, name, value string) {
	if value != "" {
		fmt.Fprintf(b, "  %-12s %s\n", name+":", value)
	}
}

// mask keeps the first four characters of a secret.
func mask(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 8:
		return "****"
	default:
		return secret[:4] + "****"
	}
}

// maskDSN hides the password of a URL-style or user:pass@ DSN.
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	creds := dsn[:at]
	colon := strings.LastIndex(creds, ":")
	if colon < 0 || strings.HasPrefix(creds[colon+1:], "//") {
		return dsn
	}
	return creds[:colon+1] + "****" + dsn[at:]
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
