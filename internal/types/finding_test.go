// ABOUTME: Tests for severity weights, scoring, counting and summary text
// ABOUTME: Also pins the generated easyjson codec to the documented wire field names

package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mailru/easyjson"
)

func finding(sev Severity, pattern string) Finding {
	return Finding{
		Severity: sev,
		Title:    pattern + " title",
		Location: Location{File: "program.rs", Line: 1},
		Pattern:  pattern,
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		findings []Finding
		want     int
	}{
		{"empty", nil, 100},
		{"critical high medium", []Finding{
			finding(SeverityCritical, "a"),
			finding(SeverityHigh, "b"),
			finding(SeverityMedium, "c"),
		}, 52},
		{"pass weighs nothing", []Finding{finding(SeverityPass, "p")}, 100},
		{"info", []Finding{finding(SeverityInfo, "i")}, 97},
		{"unknown severity weighs nothing", []Finding{finding(Severity("bogus"), "x")}, 100},
		{"clamped at zero", []Finding{
			finding(SeverityCritical, "a"),
			finding(SeverityCritical, "a"),
			finding(SeverityCritical, "a"),
			finding(SeverityCritical, "a"),
			finding(SeverityCritical, "a"),
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Score(tt.findings); got != tt.want {
				t.Errorf("Score() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestScore_OrderIndependent(t *testing.T) {
	t.Parallel()

	a := []Finding{
		finding(SeverityMedium, "m"),
		finding(SeverityCritical, "c"),
		finding(SeverityInfo, "i"),
	}
	b := []Finding{a[2], a[0], a[1]}
	if Score(a) != Score(b) {
		t.Errorf("Score depends on order: %d vs %d", Score(a), Score(b))
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		findings []Finding
		want     string
	}{
		{
			name: "empty",
			want: "Analysis complete with a perfect score of 100. No issues found.",
		},
		{
			name:     "only pass",
			findings: []Finding{finding(SeverityPass, "p")},
			want:     "Analysis complete with a perfect score of 100. No issues found.",
		},
		{
			name: "mixed",
			findings: []Finding{
				finding(SeverityHigh, "h"),
				finding(SeverityCritical, "c"),
				finding(SeverityCritical, "c"),
				finding(SeverityInfo, "i"),
			},
			want: "Found 2 critical and 1 high and 1 info severity issues. Overall score: 32/100.",
		},
		{
			name:     "single medium",
			findings: []Finding{finding(SeverityMedium, "m")},
			want:     "Found 1 medium severity issues. Overall score: 92/100.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Summary(tt.findings, Score(tt.findings))
			if got != tt.want {
				t.Errorf("Summary() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	c := Count([]Finding{
		finding(SeverityCritical, "c"),
		finding(SeverityPass, "p"),
		finding(SeverityPass, "p"),
		finding(Severity("weird"), "w"),
	})
	want := FindingCounts{Critical: 1, Pass: 2, Total: 4}
	if c != want {
		t.Errorf("Count() = %+v; want %+v", c, want)
	}
}

func TestFilterBySeverity(t *testing.T) {
	t.Parallel()

	in := []Finding{
		finding(SeverityHigh, "h1"),
		finding(SeverityCritical, "c1"),
		finding(SeverityMedium, "m1"),
		finding(SeverityCritical, "c2"),
	}
	got := FilterBySeverity(in, []Severity{SeverityCritical})
	if len(got) != 2 || got[0].Pattern != "c1" || got[1].Pattern != "c2" {
		t.Errorf("FilterBySeverity() = %+v", got)
	}
	if got := FilterBySeverity(in, nil); got != nil {
		t.Errorf("FilterBySeverity(nil set) = %+v; want nil", got)
	}
}

func TestSeverity_IsError(t *testing.T) {
	t.Parallel()

	for sev, want := range map[Severity]bool{
		SeverityCritical: true,
		SeverityHigh:     true,
		SeverityMedium:   false,
		SeverityInfo:     false,
		SeverityPass:     false,
	} {
		if got := sev.IsError(); got != want {
			t.Errorf("%s.IsError() = %v; want %v", sev, got, want)
		}
	}
}

func TestAnalysisResult_EasyJSON(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	in := AnalysisResult{
		Score: 75,
		Findings: []Finding{{
			Severity:       SeverityCritical,
			Title:          "Missing signer check on authority account",
			Location:       Location{File: "program.rs", Line: 5, Instruction: "withdraw"},
			Description:    "desc \"quoted\"",
			Recommendation: "rec",
			Pattern:        "missing-signer-check",
		}},
		Summary:  "Found 1 critical severity issues. Overall score: 75/100.",
		Skills:   []string{"security-audit"},
		Metadata: Metadata{Framework: "anchor", AnalyzedAt: at, Duration: 4},
	}

	fast, err := easyjson.Marshal(in)
	if err != nil {
		t.Fatalf("easyjson.Marshal: %v", err)
	}
	want := `{"score":75,"findings":[{"severity":"critical","title":"Missing signer check on authority account",` +
		`"location":{"file":"program.rs","line":5,"instruction":"withdraw"},"description":"desc \"quoted\"",` +
		`"recommendation":"rec","pattern":"missing-signer-check"}],` +
		`"summary":"Found 1 critical severity issues. Overall score: 75/100.","skills":["security-audit"],` +
		`"metadata":{"framework":"anchor","analyzedAt":"2025-03-01T12:30:00Z","duration":4}}`
	if string(fast) != want {
		t.Errorf("easyjson output:\n got %s\nwant %s", fast, want)
	}

	// encoding/json goes through the generated MarshalJSON.
	std, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if string(std) != want {
		t.Errorf("json output:\n got %s\nwant %s", std, want)
	}

	var out AnalysisResult
	if err := easyjson.Unmarshal(fast, &out); err != nil {
		t.Fatalf("easyjson.Unmarshal: %v", err)
	}
	if out.Findings[0].Location.Instruction != "withdraw" {
		t.Errorf("instruction = %q", out.Findings[0].Location.Instruction)
	}
	if !out.Metadata.AnalyzedAt.Equal(at) {
		t.Errorf("analyzedAt = %v; want %v", out.Metadata.AnalyzedAt, at)
	}
}

func TestAnalysisResult_EasyJSONSkipsUnknown(t *testing.T) {
	t.Parallel()

	data := `{"score":90,"extra":{"nested":[1,2]},"findings":null,"summary":"s","skills":["a","b"],` +
		`"metadata":{"framework":"native","analyzedAt":"2025-01-02T03:04:05Z","duration":7,"programId":"abc"}}`
	var out AnalysisResult
	if err := easyjson.Unmarshal([]byte(data), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Score != 90 || out.Metadata.ProgramID != "abc" || strings.Join(out.Skills, ",") != "a,b" {
		t.Errorf("unexpected decode: %+v", out)
	}
}
