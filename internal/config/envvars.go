// ABOUTME: Environment variable expansion in config string fields
// ABOUTME: Replaces ${VAR} patterns with os.Getenv values; unset vars become empty

package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in string fields of Settings.
func ResolveEnvVars(s *Settings) {
	s.Addr = expandEnv(s.Addr)
	s.JWTSecret = expandEnv(s.JWTSecret)
	s.Registry.DSN = expandEnv(s.Registry.DSN)
	s.APIKey = expandEnv(s.APIKey)
	s.BaseURL = expandEnv(s.BaseURL)

	for i, dir := range s.SkillDirs {
		s.SkillDirs[i] = expandEnv(dir)
	}

	for k, v := range s.Env {
		s.Env[k] = expandEnv(v)
	}
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
