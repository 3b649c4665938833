// ABOUTME: Shared finding and analysis result types used by server, checks and SDK
// ABOUTME: Severity weights, deterministic scoring and the one-line summary live here

package types

import (
	"fmt"
	"strings"
)

// Severity classifies a finding. The set is closed.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityInfo     Severity = "info"
	SeverityPass     Severity = "pass"
)

// SeverityOrder is the fixed presentation order, most severe first.
var SeverityOrder = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityInfo,
	SeverityPass,
}

var severityWeights = map[Severity]int{
	SeverityCritical: 25,
	SeverityHigh:     15,
	SeverityMedium:   8,
	SeverityInfo:     3,
	SeverityPass:     0,
}

// Weight returns the score penalty for s. Unknown severities weigh 0.
func (s Severity) Weight() int {
	return severityWeights[s]
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	_, ok := severityWeights[s]
	return ok
}

// IsError reports whether s maps to a SARIF "error" level.
func (s Severity) IsError() bool {
	return s == SeverityCritical || s == SeverityHigh
}

// Score computes max(0, 100 - sum of weights). Empty input scores 100.
func Score(findings []Finding) int {
	penalty := 0
	for _, f := range findings {
		penalty += f.Severity.Weight()
	}
	return max(0, 100-penalty)
}

// FindingCounts tallies findings per severity.
type FindingCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Info     int `json:"info"`
	Pass     int `json:"pass"`
	Total    int `json:"total"`
}

// Count tallies findings by severity. Unknown severities only count toward Total.
func Count(findings []Finding) FindingCounts {
	var c FindingCounts
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			c.Critical++
		case SeverityHigh:
			c.High++
		case SeverityMedium:
			c.Medium++
		case SeverityInfo:
			c.Info++
		case SeverityPass:
			c.Pass++
		}
		c.Total++
	}
	return c
}

// Summary renders the one-line prose summary for findings and score.
// "pass" findings are not mentioned.
func Summary(findings []Finding, score int) string {
	c := Count(findings)

	var parts []string
	for _, p := range []struct {
		n   int
		sev Severity
	}{
		{c.Critical, SeverityCritical},
		{c.High, SeverityHigh},
		{c.Medium, SeverityMedium},
		{c.Info, SeverityInfo},
	} {
		if p.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", p.n, p.sev))
		}
	}

	if len(parts) == 0 {
		return fmt.Sprintf("Analysis complete with a perfect score of %d. No issues found.", score)
	}
	return fmt.Sprintf("Found %s severity issues. Overall score: %d/100.", strings.Join(parts, " and "), score)
}

// FilterBySeverity returns the findings whose severity is in set, preserving order.
func FilterBySeverity(findings []Finding, set []Severity) []Finding {
	if len(set) == 0 {
		return nil
	}
	want := make(map[Severity]bool, len(set))
	for _, s := range set {
		want[s] = true
	}
	var out []Finding
	for _, f := range findings {
		if want[f.Severity] {
			out = append(out, f)
		}
	}
	return out
}
