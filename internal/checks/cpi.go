// ABOUTME: Cross-program invocation checks: raw invoke without program id and unsafe close
// ABOUTME: close-account-drain looks ahead for lamport transfers without data zeroing

package checks

import (
	"strings"

	"github.com/paritydotcx/paritycx/internal/types"
)

const (
	PatternInsecureCPI       = "insecure-cpi"
	PatternCloseAccountDrain = "close-account-drain"
)

func detectInsecureCPI(src Source) []types.Finding {
	var out []types.Finding
	for i, line := range src.Lines {
		if !strings.Contains(line, "invoke(") ||
			strings.Contains(line, "invoke_signed") ||
			strings.Contains(line, "CpiContext") {
			continue
		}
		if containsAny(window(src.Lines, i-5, i+5), "program_id", "Program<") {
			continue
		}
		out = append(out, newFinding(types.SeverityCritical, PatternInsecureCPI,
			"CPI invocation without program ID verification", i+1,
			"A cross-program invocation (CPI) is performed without verifying the target program's ID. "+
				"An attacker could substitute a malicious program.",
			"Use typed Program<'info, T> accounts and CpiContext for all CPI calls to ensure program ID verification."))
	}
	return out
}

// closeLookahead is the number of lines, starting at the fn line, scanned for zeroing.
const closeLookahead = 30

func detectCloseAccountDrain(src Source) []types.Finding {
	var out []types.Finding
	for i, line := range src.Lines {
		if !strings.Contains(line, "close") || !strings.Contains(line, "fn") {
			continue
		}
		block := window(src.Lines, i, i+closeLookahead)
		if !strings.Contains(block, "lamports") || containsAny(block, "sol_memset", "close =", "0u8") {
			continue
		}
		f := newFinding(types.SeverityHigh, PatternCloseAccountDrain,
			"Account close without data zeroing", i+1,
			"The close instruction transfers lamports but does not zero the account data. "+
				"Stale data remains readable and could be used in replay attacks.",
			"Zero all account data bytes after transferring lamports, or use Anchor's close = constraint.")
		f.Location.Instruction = "close"
		out = append(out, f)
	}
	return out
}
