// ABOUTME: Offline helpers over findings: counts, score, summary, verification tier
// ABOUTME: Client-side Markdown (grouped by severity) and SARIF (with fixes and artifacts) renderers

package sdk

import (
	"fmt"
	"strings"

	"github.com/paritydotcx/paritycx/internal/report"
	"github.com/paritydotcx/paritycx/internal/types"
)

// CountFindings tallies findings by severity.
func CountFindings(findings []Finding) FindingCounts {
	return types.Count(findings)
}

// CalculateScore returns max(0, 100 - sum of severity weights).
func CalculateScore(findings []Finding) int {
	return types.Score(findings)
}

// GenerateSummary renders the one-line summary for findings and score.
func GenerateSummary(findings []Finding, score int) string {
	return types.Summary(findings, score)
}

// Tier is a verification level earned by a score.
type Tier string

const (
	TierNone     Tier = ""
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

var tierThresholds = []struct {
	tier  Tier
	score int
}{
	{TierPlatinum, 95},
	{TierGold, 85},
	{TierSilver, 70},
	{TierBronze, 50},
}

// TierForScore returns the highest tier whose threshold score meets.
func TierForScore(score int) Tier {
	for _, t := range tierThresholds {
		if score >= t.score {
			return t.tier
		}
	}
	return TierNone
}

// FormatFindingsAsMarkdown renders findings grouped by severity, most severe
// first. Empty groups are omitted.
func FormatFindingsAsMarkdown(findings []Finding) string {
	lines := []string{"# Analysis Findings\n"}

	for _, sev := range types.SeverityOrder {
		group := types.FilterBySeverity(findings, []Severity{sev})
		if len(group) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("## %s (%d)\n", strings.ToUpper(string(sev)), len(group)))
		for _, f := range group {
			lines = append(lines,
				"### "+f.Title,
				fmt.Sprintf("- **Location**: %s:%d", f.Location.File, f.Location.Line),
			)
			if f.Location.Instruction != "" {
				lines = append(lines, "- **Instruction**: "+f.Location.Instruction)
			}
			lines = append(lines,
				"- **Pattern**: "+f.Pattern,
				"\n"+f.Description+"\n",
				"**Recommendation**: "+f.Recommendation+"\n",
			)
		}
	}
	return strings.Join(lines, "\n")
}

// FormatFindingsAsSARIF renders findings as a SARIF log. Each result points
// at its finding's file and carries the recommendation as a fix; programPath
// is listed as the scanned artifact.
func FormatFindingsAsSARIF(findings []Finding, programPath string) *report.Log {
	results := make([]report.Result, 0, len(findings))
	for _, f := range findings {
		r := report.NewResult(f, f.Location.File)
		r.Fixes = []report.Fix{{Description: report.Message{Text: f.Recommendation}}}
		results = append(results, r)
	}
	return report.NewLog(report.Run{
		Tool:      report.Tool{Driver: report.NewDriver(report.Rules(findings, true))},
		Results:   results,
		Artifacts: []report.Artifact{{Location: report.ArtifactLocation{URI: programPath}}},
	})
}
