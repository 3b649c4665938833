// ABOUTME: Tests for knowledge base queries and filters
// ABOUTME: Empty filters return everything; non-matching filters return empty slices

package knowledge

import (
	"slices"
	"testing"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	b := New()
	tests := []struct {
		name         string
		q            Query
		wantRules    int
		wantFindings int
		wantPatterns int
	}{
		{"no filters", Query{}, len(staticRules), len(auditFindings), len(frameworkPatterns)},
		{"pattern by id", Query{Pattern: "close-account-drain"}, 1, len(auditFindings), len(frameworkPatterns)},
		{"pattern by type", Query{Pattern: "close-account"}, 1, len(auditFindings), len(frameworkPatterns)},
		{"severity", Query{Severity: "medium"}, 1, 0, len(frameworkPatterns)},
		{"critical", Query{Severity: "critical"}, 5, 5, len(frameworkPatterns)},
		{"framework", Query{Framework: "native"}, len(staticRules), len(auditFindings), 2},
		{"conflicting", Query{Pattern: "owner-check", Severity: "critical"}, 0, 5, len(frameworkPatterns)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := b.Query(tt.q)
			if len(r.Rules) != tt.wantRules {
				t.Errorf("rules = %d; want %d", len(r.Rules), tt.wantRules)
			}
			if len(r.AuditFindings) != tt.wantFindings {
				t.Errorf("findings = %d; want %d", len(r.AuditFindings), tt.wantFindings)
			}
			if len(r.FrameworkPatterns) != tt.wantPatterns {
				t.Errorf("patterns = %d; want %d", len(r.FrameworkPatterns), tt.wantPatterns)
			}
			if r.Rules == nil || r.AuditFindings == nil || r.FrameworkPatterns == nil {
				t.Error("result slices must be non-nil")
			}
		})
	}
}

func TestRules(t *testing.T) {
	t.Parallel()

	b := New()
	if got := b.Rules(""); len(got) != 10 {
		t.Errorf("Rules(\"\") = %d; want 10", len(got))
	}
	got := b.Rules("owner-check")
	if len(got) != 1 || got[0].ID != "owner-check" {
		t.Errorf("Rules(owner-check) = %+v", got)
	}
}

func TestAuditFindings(t *testing.T) {
	t.Parallel()

	b := New()
	if got := b.AuditFindings("high"); len(got) != 3 {
		t.Errorf("AuditFindings(high) = %d; want 3", len(got))
	}
	if got := b.AuditFindings("info"); len(got) != 0 {
		t.Errorf("AuditFindings(info) = %d; want 0", len(got))
	}
}

func TestFrameworkPatterns_DefaultsToAnchor(t *testing.T) {
	t.Parallel()

	b := New()
	if got, want := len(b.FrameworkPatterns("")), len(b.FrameworkPatterns("anchor")); got != want || got != 8 {
		t.Errorf("FrameworkPatterns(\"\") = %d; anchor = %d; want 8", got, want)
	}
	if got := b.FrameworkPatterns("steel"); len(got) != 0 {
		t.Errorf("FrameworkPatterns(steel) = %d; want 0", len(got))
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	b := New()
	got := b.Categories()
	if len(got) != 10 || got[0] != "missing-signer-check" || got[9] != "owner-check" {
		t.Errorf("Categories() = %v", got)
	}
	got[0] = "mutated"
	if slices.Contains(b.Categories(), "mutated") {
		t.Error("Categories exposes internal storage")
	}
}
