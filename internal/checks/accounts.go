// ABOUTME: Account validation checks: missing signer on authority and missing owner check
// ABOUTME: Both look at raw AccountInfo declarations and their surrounding lines

package checks

import (
	"strings"

	"github.com/paritydotcx/paritycx/internal/types"
)

const (
	PatternMissingSigner = "missing-signer-check"
	PatternOwnerCheck    = "owner-check"
)

func detectMissingSigner(src Source) []types.Finding {
	var out []types.Finding
	for i, line := range src.Lines {
		if !strings.Contains(line, "pub authority") ||
			!strings.Contains(line, "AccountInfo") ||
			strings.Contains(line, "Signer") {
			continue
		}
		f := newFinding(types.SeverityCritical, PatternMissingSigner,
			"Missing signer check on authority account", i+1,
			"The authority account is declared as AccountInfo without a Signer constraint. "+
				"Any user can impersonate the authority and execute privileged operations.",
			"Replace AccountInfo with Signer<'info> or add an is_signer check.")
		f.Location.Instruction = findInstruction(src.Lines, i)
		out = append(out, f)
	}
	return out
}

// Markers that show an AccountInfo is constrained somewhere nearby.
var ownerMarkers = []string{"owner", "has_one", "constraint", "Program<", "Signer<", "SystemAccount<"}

func detectOwnerCheck(src Source) []types.Finding {
	var out []types.Finding
	for i, line := range src.Lines {
		if !strings.Contains(line, "AccountInfo") ||
			!strings.Contains(line, "pub") ||
			strings.Contains(line, "///") {
			continue
		}
		if containsAny(window(src.Lines, i-10, i+3), ownerMarkers...) {
			continue
		}
		out = append(out, newFinding(types.SeverityHigh, PatternOwnerCheck,
			"Missing owner check on account", i+1,
			"An account is accessed via raw AccountInfo without verifying its owner program. "+
				"An attacker could pass an account owned by a different program with crafted data.",
			"Use typed Account<'info, T> wrappers which automatically verify the owner, or add explicit owner checks."))
	}
	return out
}
