// ABOUTME: Terminal rendering helpers: glamour Markdown, lipgloss severity tags, aligned tables
// ABOUTME: Styling is skipped when stdout is not a terminal so piped output stays plain

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/paritydotcx/paritycx/pkg/sdk"
)

const defaultWrap = 100

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWrap
}

// renderMarkdown styles md through glamour on a terminal and returns it
// unchanged otherwise or on renderer failure.
func renderMarkdown(w io.Writer, md string) string {
	if !isTerminal(w) {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWidth(w)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, " \n") + "\n"
}

var severityColors = map[sdk.Severity]lipgloss.Color{
	sdk.SeverityCritical: lipgloss.Color("9"),
	sdk.SeverityHigh:     lipgloss.Color("208"),
	sdk.SeverityMedium:   lipgloss.Color("11"),
	sdk.SeverityInfo:     lipgloss.Color("12"),
	sdk.SeverityPass:     lipgloss.Color("10"),
}

// severityTag renders "[SEVERITY]", colored on a terminal.
func severityTag(w io.Writer, s sdk.Severity) string {
	tag := "[" + strings.ToUpper(string(s)) + "]"
	if !isTerminal(w) {
		return tag
	}
	return lipgloss.NewStyle().Bold(true).Foreground(severityColors[s]).Render(tag)
}

// writeFindingsText prints a score header and one block per finding.
func writeFindingsText(w io.Writer, res *sdk.AnalysisResult) {
	fmt.Fprintf(w, "Score: %d/100", res.Score)
	if tier := sdk.TierForScore(res.Score); tier != sdk.TierNone {
		fmt.Fprintf(w, " (%s)", tier)
	}
	fmt.Fprintf(w, "\n%s\n", res.Summary)
	for _, f := range res.Findings {
		fmt.Fprintf(w, "\n%s %s\n  %s:%d  %s\n  %s\n  fix: %s\n",
			severityTag(w, f.Severity), f.Title,
			f.Location.File, f.Location.Line, f.Pattern,
			f.Description, f.Recommendation)
	}
}

// writeTable prints rows padded to the widest cell of each column,
// measuring display width rather than bytes.
func writeTable(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	line := func(cells []string) {
		var b strings.Builder
		for i, cell := range cells {
			if i == len(cells)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	line(header)
	for _, row := range rows {
		line(row)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
