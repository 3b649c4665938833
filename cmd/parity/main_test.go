// ABOUTME: Tests for the parity CLI commands against an in-process API server
// ABOUTME: HOME is redirected so no user config leaks into the runs

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paritydotcx/paritycx/internal/config"
	"github.com/paritydotcx/paritycx/internal/server"
	"github.com/paritydotcx/paritycx/pkg/sdk"
)

const vulnerableProgram = `use anchor_lang::prelude::*;

declare_id!("Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS");

#[derive(Accounts)]
pub struct Withdraw<'info> {
    pub authority: AccountInfo<'info>,
}
`

// cliEnv is an isolated HOME plus a fresh API server.
type cliEnv struct {
	t   *testing.T
	url string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"PARITY_API_KEY", "PARITY_BASE_URL", "JWT_SECRET", "PARITY_KEY", "PARITY_RATE_LIMIT"} {
		t.Setenv(k, "")
	}

	srv := httptest.NewServer(server.New(config.Settings{}).Handler())
	t.Cleanup(srv.Close)
	return &cliEnv{t: t, url: srv.URL}
}

func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// runCLI executes the root command with args against a fresh server.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	e := newCLIEnv(t)
	return e.run(append([]string{"--api-key", "pk_cli_secret", "--base-url", e.url}, args...)...)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "parity dev") {
		t.Errorf("output = %q", out)
	}
}

func TestSkillsChainCommand(t *testing.T) {
	out, err := runCLI(t, "skills", "chain", "deep-audit")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "security-audit -> best-practices -> gas-optimization" {
		t.Errorf("output = %q", out)
	}
}

func TestSkillsListCommand(t *testing.T) {
	out, err := runCLI(t, "skills", "list")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 || !strings.HasPrefix(lines[0], "NAME") {
		t.Fatalf("output = %q", out)
	}
	col := strings.Index(lines[0], "VERSION")
	for _, l := range lines[1:] {
		if !strings.HasPrefix(l[col:], "1.") {
			t.Errorf("misaligned row %q", l)
		}
	}
}

func TestSkillsGetSuggests(t *testing.T) {
	_, err := runCLI(t, "skills", "get", "security-audi")
	if err == nil || !strings.Contains(err.Error(), "did you mean: security-audit") {
		t.Errorf("err = %v", err)
	}
}

func TestSkillsValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SKILL.md")
	if err := os.WriteFile(path, []byte("---\nname: custom\nversion: 1.0\n---\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "skills", "validate", path)
	var ee *exitError
	if !errors.As(err, &ee) || ee.code != 1 {
		t.Fatalf("err = %v; want exit code 1", err)
	}
	if !strings.Contains(out, "Version must follow semver format (x.y.z)") {
		t.Errorf("output = %q", out)
	}
}

func TestAnalyzeCommandJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.rs")
	if err := os.WriteFile(path, []byte(vulnerableProgram), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "analyze", "--json", path)
	if err != nil {
		t.Fatal(err)
	}
	var res sdk.AnalysisResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.Metadata.Framework != sdk.FrameworkAnchor {
		t.Errorf("framework = %q", res.Metadata.Framework)
	}
	if res.Score != sdk.CalculateScore(res.Findings) {
		t.Errorf("score %d does not match findings", res.Score)
	}
}

func TestAnalyzeCommandGateExitCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.rs")
	if err := os.WriteFile(path, []byte(vulnerableProgram), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "analyze", "--min-score", "100", "--format", "markdown", path)
	var ee *exitError
	if !errors.As(err, &ee) || ee.code != exitGate {
		t.Fatalf("err = %v; want gate exit", err)
	}
	var scoreErr *sdk.ScoreThresholdError
	if !errors.As(err, &scoreErr) {
		t.Errorf("err = %v; want wrapped *sdk.ScoreThresholdError", err)
	}
	if !strings.HasPrefix(out, "# Analysis Findings") {
		t.Errorf("report not printed before failing: %q", out)
	}
}

func TestAnalyzeCommandRejectsBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"analyze", "--format", "pdf", "x.rs"},
		{"analyze", "--fail-on", "severe", "x.rs"},
	} {
		if _, err := runCLI(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestProgramsStatsCommand(t *testing.T) {
	out, err := runCLI(t, "--json", "programs", "stats")
	if err != nil {
		t.Fatal(err)
	}
	var st sdk.RegistryStats
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatal(err)
	}
	if st.TotalSkills != 4 || st.TotalPrograms != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestTokenCommand(t *testing.T) {
	out, err := runCLI(t, "token", "alice")
	if err != nil {
		t.Fatal(err)
	}
	sub, err := server.NewAuthenticator(config.DefaultJWTSecret).Authenticate("Bearer " + strings.TrimSpace(out))
	if err != nil || sub != "alice" {
		t.Errorf("Authenticate = %q, %v", sub, err)
	}
}

func TestHealthCommand(t *testing.T) {
	out, err := runCLI(t, "health")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "healthy ") || !strings.Contains(out, "analysis") {
		t.Errorf("output = %q", out)
	}
}

func TestLoginLogout(t *testing.T) {
	e := newCLIEnv(t)

	if _, err := e.run("--base-url", e.url, "skills", "list"); err == nil || !strings.Contains(err.Error(), "API key is required") {
		t.Fatalf("before login: err = %v", err)
	}

	if _, err := e.run("--base-url", e.url+"/v1/", "login", "pk_saved_key"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(config.CredentialsFile())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("credentials mode = %o", perm)
	}

	if _, err := e.run("--base-url", e.url, "skills", "list"); err != nil {
		t.Fatalf("after login: %v", err)
	}

	out, err := e.run("--base-url", e.url, "logout")
	if err != nil || !strings.HasPrefix(out, "removed key") {
		t.Fatalf("logout = %q, %v", out, err)
	}
	if _, err := e.run("--base-url", e.url, "skills", "list"); err == nil {
		t.Error("key still used after logout")
	}
}

func TestConfigCommandMasksSecrets(t *testing.T) {
	e := newCLIEnv(t)
	t.Setenv("PARITY_API_KEY", "pk_live_0123456789")

	out, err := e.run("config")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"=== Server ===", "=== Client ===", "pk_l****"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "pk_live_0123456789") {
		t.Error("API key printed unmasked")
	}
}

func TestWriteTableAlignsWideRunes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writeTable(&buf, []string{"NAME", "V"}, [][]string{{"監査", "1"}, {"ab", "2"}})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"NAME  V", "監査  1", "ab    2"}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q; want %q", i, lines[i], w)
		}
	}
}
