// ABOUTME: End-to-end handler tests over httptest covering auth, analysis, skills, programs and context
// ABOUTME: A fixed clock keeps timestamps and rate-limit refills deterministic

package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/paritydotcx/paritycx/internal/config"
	"github.com/paritydotcx/paritycx/internal/registry"
	"github.com/paritydotcx/paritycx/internal/report"
	"github.com/paritydotcx/paritycx/internal/types"
)

const (
	testKey = "pk_alice_secret"

	signerProgram = "use anchor_lang::prelude::*;\n\n#[derive(Accounts)]\npub struct Withdraw<'info> {\n" +
		"    pub authority: AccountInfo<'info>,\n}\n"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, settings config.Settings, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	srv := New(settings, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func do(t *testing.T, ts *httptest.Server, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			if err != nil {
				t.Fatal(err)
			}
			rd = bytes.NewReader(data)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	return v
}

func TestHealth_NoAuth(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, config.Settings{})

	resp := do(t, ts, http.MethodGet, "/v1/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	h := decode[Health](t, resp)
	if h.Status != "healthy" || h.Version != report.ToolVersion || h.Services["analysis"] != "operational" {
		t.Errorf("health = %+v", h)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}

	ready := decode[Readiness](t, do(t, ts, http.MethodGet, "/v1/health/ready", "", nil))
	if !ready.Ready || !ready.Checks["registry"] {
		t.Errorf("ready = %+v", ready)
	}
}

func TestAuth(t *testing.T) {
	t.Parallel()

	srv, ts := newTestServer(t, config.Settings{JWTSecret: "s3cret"})
	valid, err := srv.Authenticator().IssueToken("bob", time.Hour, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := NewAuthenticator("other").IssueToken("bob", time.Hour, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	expired, err := srv.Authenticator().IssueToken("bob", time.Minute, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"extra parts", "Bearer a b", http.StatusUnauthorized},
		{"api key", "Bearer " + testKey, http.StatusOK},
		{"jwt", "Bearer " + valid, http.StatusOK},
		{"foreign jwt", "Bearer " + foreign, http.StatusUnauthorized},
		{"expired jwt", "Bearer " + expired, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/skills", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := ts.Client().Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d; want %d", resp.StatusCode, tt.want)
			}
			if tt.want == http.StatusUnauthorized {
				env := decode[Envelope](t, resp)
				if env.Status != 401 || env.Error != "Unauthorized" || env.Message == "" {
					t.Errorf("envelope = %+v", env)
				}
			}
		})
	}
}

func TestUserFromAPIKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"pk_alice_secret": "alice",
		"pk_bob_x_y":      "bob",
		"pk_short":        AnonymousUser,
		"pk_":             AnonymousUser,
	}
	for key, want := range tests {
		if got := userFromAPIKey(key); got != want {
			t.Errorf("userFromAPIKey(%q) = %q; want %q", key, got, want)
		}
	}
}

func TestAnalyze_JSON(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, config.Settings{})
	resp := do(t, ts, http.MethodPost, "/v1/analyze", testKey, map[string]any{"program": signerProgram})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	res := decode[types.AnalysisResult](t, resp)
	if len(res.Findings) == 0 || res.Findings[0].Pattern != "missing-signer-check" || res.Findings[0].Location.Line != 5 {
		t.Fatalf("findings = %+v", res.Findings)
	}
	if res.Score != types.Score(res.Findings) {
		t.Errorf("score = %d", res.Score)
	}
	if len(res.Skills) != 1 || res.Skills[0] != types.SkillSecurityAudit {
		t.Errorf("skills = %v; want default", res.Skills)
	}
	if res.Metadata.Framework != "anchor" {
		t.Errorf("framework = %q", res.Metadata.Framework)
	}
}

func TestAnalyze_Validation(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, config.Settings{})

	tests := []struct {
		name      string
		body      any
		wantPaths []string
	}{
		{"empty program", map[string]any{"program": ""}, []string{"program"}},
		{"bad framework", map[string]any{"program": "x", "framework": "solidity"}, []string{"framework"}},
		{"no skills", map[string]any{"program": "x", "skills": []string{}}, []string{"skills"}},
		{"too many skills", map[string]any{"program": "x", "skills": []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}}, []string{"skills"}},
		{"bad output", map[string]any{"program": "x", "output": "html"}, []string{"output"}},
		{"several", map[string]any{"framework": "evm", "output": "pdf"}, []string{"program", "framework", "output"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := do(t, ts, http.MethodPost, "/v1/analyze", testKey, tt.body)
			if resp.StatusCode != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			var env struct {
				Envelope
				Details []Issue `json:"details"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
				t.Fatal(err)
			}
			if env.Message != "Validation failed" || env.Error != "Unprocessable Entity" {
				t.Errorf("envelope = %+v", env.Envelope)
			}
			var paths []string
			for _, is := range env.Details {
				paths = append(paths, is.Path)
			}
			if strings.Join(paths, ",") != strings.Join(tt.wantPaths, ",") {
				t.Errorf("issue paths = %v; want %v", paths, tt.wantPaths)
			}
		})
	}
}

func TestAnalyze_BadJSON(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, config.Settings{})
	resp := do(t, ts, http.MethodPost, "/v1/analyze", testKey, "{not json")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", resp.StatusCode)
	}
}

func TestAnalyze_BodyLimit(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, config.Settings{BodyLimit: 64})
	resp := do(t, ts, http.MethodPost, "/v1/analyze", testKey, map[string]any{"program": strings.Repeat("x", 200)})
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d; want 413", resp.StatusCode)
	}
}

func TestAnalyze_Formats(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, config.Settings{})

	t.Run("sarif", func(t *testing.T) {
		t.Parallel()
		resp := do(t, ts, http.MethodPost, "/v1/analyze", testKey, map[string]any{"program": signerProgram, "output": "sarif"})
		l := decode[report.Log](t, resp)
		if l.Version != report.SARIFVersion || len(l.Runs) != 1 {
			t.Fatalf("sarif = %+v", l)
		}
		uri := l.Runs[0].Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI
		if uri != UploadedSource {
			t.Errorf("artifact uri = %q", uri)
		}
	})

	for _, tt := range []struct{ output, ctype, prefix string }{
		{"markdown", "text/markdown", "# Parity Analysis Report"},
		{"text", "text/plain", "Parity Analysis Report"},
	} {
		t.Run(tt.output, func(t *testing.T) {
			t.Parallel()
			resp := do(t, ts, http.MethodPost, "/v1/analyze", testKey, map[string]any{"program": signerProgram, "output": tt.output})
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tt.ctype) {
				t.Errorf("Content-Type = %q", ct)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.HasPrefix(string(body), tt.prefix) {
				t.Errorf("body starts %q", string(body[:min(len(body), 40)]))
			}
		})
	}
}

func TestAnalyze_RecordsRegisteredProgram(t *testing.T) {
	t.Parallel()

	store := registry.NewMemory()
	_, ts := newTestServer(t, config.Settings{}, WithStore(store))

	if resp := do(t, ts, http.MethodPost, "/v1/programs", testKey, map[string]any{"programHash": "h1", "framework": "anchor"}); resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	res := decode[types.AnalysisResult](t, do(t, ts, http.MethodPost, "/v1/analyze", testKey,
		map[string]any{"program": signerProgram, "programHash": "h1"}))
	if res.Metadata.ProgramID != "h1" {
		t.Errorf("programId = %q", res.Metadata.ProgramID)
	}

	p := decode[registry.Program](t, do(t, ts, http.MethodGet, "/v1/programs/h1", testKey, nil))
	if p.AnalysisCount != 1 || p.LatestScore != res.Score {
		t.Errorf("program = %+v; want 1 analysis with score %d", p, res.Score)
	}

	// Unregistered hashes are analyzed but not recorded.
	resp := do(t, ts, http.MethodPost, "/v1/analyze", testKey, map[string]any{"program": signerProgram, "programHash": "nope"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestSkills(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, config.Settings{})

	list := decode[[]types.SkillDefinition](t, do(t, ts, http.MethodGet, "/v1/skills", testKey, nil))
	if len(list) != 4 || list[0].Name != types.SkillSecurityAudit {
		t.Errorf("skills = %+v", list)
	}

	def := decode[types.SkillDefinition](t, do(t, ts, http.MethodGet, "/v1/skills/gas-optimization", testKey, nil))
	if def.Name != "gas-optimization" || def.Version == "" {
		t.Errorf("skill = %+v", def)
	}

	resp := do(t, ts, http.MethodGet, "/v1/skills/security-audt", testKey, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var nf struct {
		Envelope
		Details struct {
			Suggestions []string `json:"suggestions"`
		} `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&nf); err != nil {
		t.Fatal(err)
	}
	if nf.Message != "Skill 'security-audt' not found" {
		t.Errorf("message = %q", nf.Message)
	}
	if len(nf.Details.Suggestions) == 0 || nf.Details.Suggestions[0] != types.SkillSecurityAudit {
		t.Errorf("suggestions = %v", nf.Details.Suggestions)
	}

	chain := decode[struct {
		Skill string   `json:"skill"`
		Chain []string `json:"chain"`
	}](t, do(t, ts, http.MethodGet, "/v1/skills/deep-audit/chain", testKey, nil))
	if chain.Skill != "deep-audit" || strings.Join(chain.Chain, ",") != "security-audit,best-practices,gas-optimization" {
		t.Errorf("chain = %+v", chain)
	}
}

func TestPrograms(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, config.Settings{})

	tests := []struct {
		name string
		body any
		want int
	}{
		{"created", map[string]any{"programHash": "abc", "framework": "anchor", "metadataUri": "ipfs://x"}, http.StatusCreated},
		{"duplicate", map[string]any{"programHash": "abc", "framework": "anchor"}, http.StatusConflict},
		{"missing framework", map[string]any{"programHash": "def"}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		if resp := do(t, ts, http.MethodPost, "/v1/programs", testKey, tt.body); resp.StatusCode != tt.want {
			t.Errorf("%s: status = %d; want %d", tt.name, resp.StatusCode, tt.want)
		}
	}

	p := decode[registry.Program](t, do(t, ts, http.MethodGet, "/v1/programs/abc", testKey, nil))
	if p.Owner != "alice" || p.MetadataURI != "ipfs://x" || !p.RegisteredAt.Equal(testNow) {
		t.Errorf("program = %+v", p)
	}

	resp := do(t, ts, http.MethodGet, "/v1/programs/zzz", testKey, nil)
	if env := decode[Envelope](t, resp); resp.StatusCode != 404 || env.Message != "Program with hash 'zzz' not found" {
		t.Errorf("status = %d envelope = %+v", resp.StatusCode, env)
	}

	for _, h := range []string{"b", "c", "d", "e"} {
		do(t, ts, http.MethodPost, "/v1/programs", testKey, map[string]any{"programHash": h, "framework": "native"})
	}
	list := decode[ProgramList](t, do(t, ts, http.MethodGet, "/v1/programs?page=2&limit=2", testKey, nil))
	want := Pagination{Page: 2, Limit: 2, Total: 5, TotalPages: 3}
	if list.Pagination != want {
		t.Errorf("pagination = %+v; want %+v", list.Pagination, want)
	}
	if len(list.Data) != 2 || list.Data[0].ProgramHash != "c" {
		t.Errorf("data = %+v", list.Data)
	}

	capped := decode[ProgramList](t, do(t, ts, http.MethodGet, "/v1/programs?limit=500&page=x", testKey, nil))
	if capped.Pagination.Limit != MaxPageLimit || capped.Pagination.Page != 1 {
		t.Errorf("pagination = %+v", capped.Pagination)
	}

	for _, q := range []string{"limit=20&page=461168601842738792", "limit=20&page=922337203685477582", "limit=100&page=9223372036854775807"} {
		resp := do(t, ts, http.MethodGet, "/v1/programs?"+q, testKey, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status = %d", q, resp.StatusCode)
		}
		if far := decode[ProgramList](t, resp); len(far.Data) != 0 || far.Pagination.Total != 5 {
			t.Errorf("%s: list = %+v", q, far)
		}
	}

	st := decode[RegistryStats](t, do(t, ts, http.MethodGet, "/v1/programs/stats", testKey, nil))
	if st.TotalPrograms != 5 || st.TotalSkills != 4 || st.TotalPatterns != 10 || st.AverageScore != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, config.Settings{})

	cats := decode[[]string](t, do(t, ts, http.MethodGet, "/v1/context/categories", testKey, nil))
	if len(cats) != 10 {
		t.Errorf("categories = %v", cats)
	}

	patterns := decode[[]map[string]string](t, do(t, ts, http.MethodGet, "/v1/context/patterns", testKey, nil))
	if len(patterns) != 8 || patterns[0]["framework"] != "anchor" {
		t.Errorf("patterns = %d", len(patterns))
	}

	rules := decode[[]map[string]string](t, do(t, ts, http.MethodGet, "/v1/context/rules?pattern_type=close-account", testKey, nil))
	if len(rules) != 1 || rules[0]["id"] != "close-account-drain" {
		t.Errorf("rules = %v", rules)
	}

	findings := decode[[]map[string]string](t, do(t, ts, http.MethodGet, "/v1/context/findings?severity=high", testKey, nil))
	if len(findings) != 3 {
		t.Errorf("findings = %d", len(findings))
	}

	var q struct {
		Rules             []json.RawMessage `json:"rules"`
		AuditFindings     []json.RawMessage `json:"auditFindings"`
		FrameworkPatterns []json.RawMessage `json:"frameworkPatterns"`
	}
	resp := do(t, ts, http.MethodGet, "/v1/context?severity=medium&framework=native", testKey, nil)
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		t.Fatal(err)
	}
	if len(q.Rules) != 1 || len(q.AuditFindings) != 0 || len(q.FrameworkPatterns) != 2 {
		t.Errorf("query = %d/%d/%d", len(q.Rules), len(q.AuditFindings), len(q.FrameworkPatterns))
	}
}

func TestNotFoundFallback(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, config.Settings{})
	for _, path := range []string{"/", "/v2/analyze", "/v1/nothing"} {
		resp := do(t, ts, http.MethodGet, path, "", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status = %d", path, resp.StatusCode)
			continue
		}
		body := decode[map[string]string](t, resp)
		if body["message"] != "The requested endpoint does not exist" || body["docs"] != DocsURL {
			t.Errorf("%s: body = %v", path, body)
		}
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, config.Settings{RateLimit: 2})
	for i, want := range []int{200, 200, 429} {
		resp := do(t, ts, http.MethodGet, "/v1/health", "", nil)
		if resp.StatusCode != want {
			t.Errorf("request %d: status = %d; want %d", i, resp.StatusCode, want)
		}
		if resp.Header.Get("RateLimit-Limit") != "2" {
			t.Errorf("RateLimit-Limit = %q", resp.Header.Get("RateLimit-Limit"))
		}
	}
}

func TestRateLimiter_Refills(t *testing.T) {
	t.Parallel()

	now := testNow
	rl := NewRateLimiter(60)
	rl.now = func() time.Time { return now }

	for range 60 {
		if ok, _ := rl.Allow("a"); !ok {
			t.Fatal("burst exhausted early")
		}
	}
	if ok, _ := rl.Allow("a"); ok {
		t.Fatal("expected denial after burst")
	}
	if ok, _ := rl.Allow("b"); !ok {
		t.Error("clients must not share buckets")
	}
	now = now.Add(time.Second)
	if ok, _ := rl.Allow("a"); !ok {
		t.Error("expected one token after a second")
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, config.Settings{CORSOrigin: "https://app.parity.cx"})
	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/v1/analyze", nil)
	req.Header.Set("Origin", "https://app.parity.cx")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://app.parity.cx" {
		t.Errorf("allow origin = %q", got)
	}
	if !strings.Contains(resp.Header.Get("Access-Control-Allow-Headers"), "X-Parity-SDK-Version") {
		t.Errorf("allow headers = %q", resp.Header.Get("Access-Control-Allow-Headers"))
	}
}

func TestStatusName(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		400: "Bad Request",
		422: "Unprocessable Entity",
		429: "Too Many Requests",
		503: "Service Unavailable",
		418: "Error",
	}
	for code, want := range tests {
		if got := StatusName(code); got != want {
			t.Errorf("StatusName(%d) = %q; want %q", code, got, want)
		}
	}
}
