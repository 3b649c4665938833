// ABOUTME: Tests for config loading, merging, env expansion and env overrides
// ABOUTME: Uses temp directories and injected lookups for isolated tests

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	global := &Settings{Addr: ":8080", RateLimit: 50, BaseURL: "https://global"}
	project := &Settings{Addr: ":9090", Registry: RegistrySettings{Driver: "postgres"}}

	result := merge(global, project)

	if result.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", result.Addr, ":9090")
	}
	if result.RateLimit != 50 {
		t.Errorf("RateLimit = %d, want 50", result.RateLimit)
	}
	if result.BaseURL != "https://global" {
		t.Errorf("BaseURL = %q, want global", result.BaseURL)
	}
	if result.Registry.Driver != "postgres" {
		t.Errorf("Registry.Driver = %q, want postgres", result.Registry.Driver)
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	result := merge(nil, nil)
	if result == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
}

func TestMerge_EnvDoesNotAliasGlobal(t *testing.T) {
	t.Parallel()

	global := &Settings{Env: map[string]string{"A": "1", "B": "2"}}
	project := &Settings{Env: map[string]string{"B": "override", "C": "3"}}

	result := merge(global, project)

	if result.Env["A"] != "1" || result.Env["B"] != "override" || result.Env["C"] != "3" {
		t.Errorf("Env = %v", result.Env)
	}
	if global.Env["B"] != "2" {
		t.Error("merge mutated the global env map")
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"addr":":4000","registry":{"driver":"mysql","dsn":"root@/parity"},"skill_dirs":["/opt/skills"]}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile: %v", err)
	}
	if s.Addr != ":4000" || s.Registry.Driver != "mysql" || s.Registry.DSN != "root@/parity" {
		t.Errorf("loaded %+v", s)
	}
	if len(s.SkillDirs) != 1 || s.SkillDirs[0] != "/opt/skills" {
		t.Errorf("SkillDirs = %v", s.SkillDirs)
	}

	if _, err := loadFile(filepath.Join(dir, "missing.json")); !os.IsNotExist(err) {
		t.Errorf("missing file err = %v; want not-exist", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFile(bad); err == nil {
		t.Error("expected parse error")
	}
}

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, s *Settings)
	}{
		{
			name: "port fallback",
			env:  map[string]string{"PORT": "8081"},
			check: func(t *testing.T, s *Settings) {
				if s.Addr != ":8081" {
					t.Errorf("Addr = %q", s.Addr)
				}
			},
		},
		{
			name: "explicit addr beats port",
			env:  map[string]string{"PORT": "8081", "PARITY_ADDR": "127.0.0.1:9000"},
			check: func(t *testing.T, s *Settings) {
				if s.Addr != "127.0.0.1:9000" {
					t.Errorf("Addr = %q", s.Addr)
				}
			},
		},
		{
			name: "parity key as secret",
			env:  map[string]string{"PARITY_KEY": "k1"},
			check: func(t *testing.T, s *Settings) {
				if s.JWTSecret != "k1" {
					t.Errorf("JWTSecret = %q", s.JWTSecret)
				}
			},
		},
		{
			name: "registry and client",
			env: map[string]string{
				"PARITY_REGISTRY_DRIVER": "postgres",
				"PARITY_REGISTRY_DSN":    "postgres://localhost/parity",
				"PARITY_API_KEY":         "pk_alice_x",
				"PARITY_BASE_URL":        "http://localhost:3100",
				"LOG_LEVEL":              "debug",
				"CORS_ORIGIN":            "https://app.parity.cx",
			},
			check: func(t *testing.T, s *Settings) {
				if s.Registry.Driver != "postgres" || s.Registry.DSN != "postgres://localhost/parity" {
					t.Errorf("Registry = %+v", s.Registry)
				}
				if s.APIKey != "pk_alice_x" || s.BaseURL != "http://localhost:3100" {
					t.Errorf("client = %q %q", s.APIKey, s.BaseURL)
				}
				if s.LogLevel != "debug" || s.CORSOrigin != "https://app.parity.cx" {
					t.Errorf("LogLevel = %q CORSOrigin = %q", s.LogLevel, s.CORSOrigin)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := &Settings{}
			if err := applyEnv(s, lookupFrom(tt.env)); err != nil {
				t.Fatalf("applyEnv: %v", err)
			}
			tt.check(t, s)
		})
	}
}

func TestApplyEnv_InvalidRateLimit(t *testing.T) {
	t.Parallel()

	err := applyEnv(&Settings{}, lookupFrom(map[string]string{"PARITY_RATE_LIMIT": "lots"}))
	if err == nil {
		t.Error("expected error for invalid rate limit")
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	s := &Settings{RateLimit: 7}
	ApplyDefaults(s)

	if s.Addr != DefaultAddr || s.JWTSecret != DefaultJWTSecret || s.Registry.Driver != DefaultDriver {
		t.Errorf("defaults not applied: %+v", s)
	}
	if s.RateLimit != 7 {
		t.Errorf("RateLimit = %d; explicit value should survive", s.RateLimit)
	}
	if s.BodyLimit != 10<<20 || s.Retries != 3 || s.RetryDelayMS != 1000 {
		t.Errorf("limits = %d %d %d", s.BodyLimit, s.Retries, s.RetryDelayMS)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("PARITY_TEST_DB_PASS", "s3cret")

	s := &Settings{
		Registry:  RegistrySettings{DSN: "postgres://parity:${PARITY_TEST_DB_PASS}@db/parity"},
		SkillDirs: []string{"${PARITY_TEST_UNSET_VAR}/skills"},
	}
	ResolveEnvVars(s)

	if s.Registry.DSN != "postgres://parity:s3cret@db/parity" {
		t.Errorf("DSN = %q", s.Registry.DSN)
	}
	if s.SkillDirs[0] != "/skills" {
		t.Errorf("SkillDirs[0] = %q", s.SkillDirs[0])
	}
}

func TestSkillsDirs(t *testing.T) {
	t.Parallel()

	dirs := SkillsDirs("/work", "/extra")
	if len(dirs) != 3 {
		t.Fatalf("dirs = %v", dirs)
	}
	if dirs[0] != "/extra" || dirs[1] != filepath.Join("/work", ".parity", "skills") {
		t.Errorf("dirs = %v", dirs)
	}
}
