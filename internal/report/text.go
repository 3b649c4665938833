// ABOUTME: Markdown and plain-text renderings of an analysis result
// ABOUTME: Findings are listed ungrouped in the order the checks produced them

package report

import (
	"fmt"
	"strings"

	"github.com/paritydotcx/paritycx/internal/types"
)

// TimestampLayout is the millisecond UTC layout used in rendered reports.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Markdown renders result as a Markdown report.
func Markdown(result types.AnalysisResult) string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("# Parity Analysis Report\n")
	add("**Score**: %d/100\n", result.Score)
	add("**Skills**: %s\n", strings.Join(result.Skills, ", "))
	add("**Framework**: %s\n", result.Metadata.Framework)
	add("**Analyzed**: %s\n", result.Metadata.AnalyzedAt.UTC().Format(TimestampLayout))
	add("---\n")
	add("## Summary\n%s\n", result.Summary)
	add("## Findings (%d)\n", len(result.Findings))

	for _, f := range result.Findings {
		add("### [%s] %s", strings.ToUpper(string(f.Severity)), f.Title)
		add("- **Location**: %s:%d", f.Location.File, f.Location.Line)
		add("- **Pattern**: %s", f.Pattern)
		add("\n%s\n", f.Description)
		add("> %s\n", f.Recommendation)
	}

	return strings.Join(lines, "\n")
}

// Text renders result as an indented plain-text report.
func Text(result types.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("Parity Analysis Report\n")
	fmt.Fprintf(&b, "Score: %d/100\n", result.Score)
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(result.Skills, ", "))
	b.WriteString(result.Summary)
	b.WriteString("\n\nFindings:")

	for _, f := range result.Findings {
		fmt.Fprintf(&b, "\n  [%s] %s at %s:%d", strings.ToUpper(string(f.Severity)), f.Title, f.Location.File, f.Location.Line)
		fmt.Fprintf(&b, "\n    %s", f.Description)
		fmt.Fprintf(&b, "\n    Fix: %s", f.Recommendation)
	}

	return b.String()
}
