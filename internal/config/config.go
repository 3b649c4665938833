// ABOUTME: Settings loading with global + project config merge, env expansion and overrides
// ABOUTME: JSON-based configuration; environment variables win over file values

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Defaults applied after files and environment are merged.
const (
	DefaultAddr         = ":3100"
	DefaultJWTSecret    = "parity-dev-secret"
	DefaultDriver       = "memory"
	DefaultRateLimit    = 100 // requests per minute per client
	DefaultCORSOrigin   = "*"
	DefaultBodyLimit    = 10 << 20
	DefaultBaseURL      = "https://api.parity.cx"
	DefaultRetries      = 3
	DefaultRetryDelayMS = 1000
	DefaultTimeoutMS    = 30000
)

// RegistrySettings selects the program registry backend.
type RegistrySettings struct {
	Driver string `json:"driver,omitempty"` // memory, postgres, mysql
	DSN    string `json:"dsn,omitempty"`
}

// Settings holds the merged configuration for both the server and the CLI client.
type Settings struct {
	// Server
	Addr       string           `json:"addr,omitempty"`
	JWTSecret  string           `json:"jwt_secret,omitempty"`
	RateLimit  int              `json:"rate_limit,omitempty"`
	CORSOrigin string           `json:"cors_origin,omitempty"`
	BodyLimit  int64            `json:"body_limit,omitempty"`
	Registry   RegistrySettings `json:"registry,omitempty"`
	SkillDirs  []string         `json:"skill_dirs,omitempty"`
	LogLevel   string           `json:"log_level,omitempty"`

	// Client
	APIKey       string `json:"api_key,omitempty"`
	BaseURL      string `json:"base_url,omitempty"`
	Retries      int    `json:"retries,omitempty"`
	RetryDelayMS int    `json:"retry_delay_ms,omitempty"`
	TimeoutMS    int    `json:"timeout_ms,omitempty"`

	Env map[string]string `json:"env,omitempty"`
}

// Load reads and merges global and project-local settings, expands ${VAR}
// references, applies environment overrides and fills defaults.
// Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	if err := applyEnv(merged, os.LookupEnv); err != nil {
		return nil, err
	}
	ApplyDefaults(merged)
	return merged, nil
}

// loadFile reads a Settings from a JSON file. Returns zero Settings if file
// does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	overrideString(&result.Addr, project.Addr)
	overrideString(&result.JWTSecret, project.JWTSecret)
	overrideString(&result.CORSOrigin, project.CORSOrigin)
	overrideString(&result.LogLevel, project.LogLevel)
	overrideString(&result.Registry.Driver, project.Registry.Driver)
	overrideString(&result.Registry.DSN, project.Registry.DSN)
	overrideString(&result.APIKey, project.APIKey)
	overrideString(&result.BaseURL, project.BaseURL)

	if project.RateLimit != 0 {
		result.RateLimit = project.RateLimit
	}
	if project.BodyLimit != 0 {
		result.BodyLimit = project.BodyLimit
	}
	if project.Retries != 0 {
		result.Retries = project.Retries
	}
	if project.RetryDelayMS != 0 {
		result.RetryDelayMS = project.RetryDelayMS
	}
	if project.TimeoutMS != 0 {
		result.TimeoutMS = project.TimeoutMS
	}
	if len(project.SkillDirs) > 0 {
		result.SkillDirs = append([]string(nil), project.SkillDirs...)
	}

	// Merge env maps
	if len(project.Env) > 0 {
		env := make(map[string]string, len(result.Env)+len(project.Env))
		for k, v := range result.Env {
			env[k] = v
		}
		for k, v := range project.Env {
			env[k] = v
		}
		result.Env = env
	}

	return &result
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// applyEnv copies recognized environment variables onto s.
// PORT is honored only when PARITY_ADDR is unset.
func applyEnv(s *Settings, lookup func(string) (string, bool)) error {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	if v := get("PARITY_ADDR"); v != "" {
		s.Addr = v
	} else if v := get("PORT"); v != "" {
		s.Addr = ":" + v
	}
	if v := get("JWT_SECRET"); v != "" {
		s.JWTSecret = v
	} else if v := get("PARITY_KEY"); v != "" {
		s.JWTSecret = v
	}
	overrideString(&s.Registry.Driver, get("PARITY_REGISTRY_DRIVER"))
	overrideString(&s.Registry.DSN, get("PARITY_REGISTRY_DSN"))
	overrideString(&s.LogLevel, get("LOG_LEVEL"))
	overrideString(&s.CORSOrigin, get("CORS_ORIGIN"))
	overrideString(&s.APIKey, get("PARITY_API_KEY"))
	overrideString(&s.BaseURL, get("PARITY_BASE_URL"))

	if v := get("PARITY_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("PARITY_RATE_LIMIT: invalid value %q", v)
		}
		s.RateLimit = n
	}
	return nil
}

// ApplyDefaults fills every unset field with its default.
func ApplyDefaults(s *Settings) {
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}
	if s.JWTSecret == "" {
		s.JWTSecret = DefaultJWTSecret
	}
	if s.RateLimit <= 0 {
		s.RateLimit = DefaultRateLimit
	}
	if s.CORSOrigin == "" {
		s.CORSOrigin = DefaultCORSOrigin
	}
	if s.BodyLimit <= 0 {
		s.BodyLimit = DefaultBodyLimit
	}
	if s.Registry.Driver == "" {
		s.Registry.Driver = DefaultDriver
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.Retries <= 0 {
		s.Retries = DefaultRetries
	}
	if s.RetryDelayMS <= 0 {
		s.RetryDelayMS = DefaultRetryDelayMS
	}
	if s.TimeoutMS <= 0 {
		s.TimeoutMS = DefaultTimeoutMS
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
}
