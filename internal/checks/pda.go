// ABOUTME: PDA derivation check that looks for a bump near find_program_address
// ABOUTME: Uses a character window around the first occurrence of the matching line

package checks

import (
	"strings"
	"unicode/utf8"

	"github.com/paritydotcx/paritycx/internal/types"
)

const PatternUnvalidatedPDA = "unvalidated-pda"

// pdaWindow is the number of characters inspected on each side of the line.
const pdaWindow = 200

func detectUnvalidatedPDA(src Source) []types.Finding {
	var out []types.Finding
	for i, line := range src.Lines {
		if !strings.Contains(line, "find_program_address") {
			continue
		}
		// The first textual occurrence is used, so repeated identical lines
		// all share the window of the earliest one.
		at := strings.Index(src.Text, line)
		if at < 0 {
			continue
		}
		from := runesBefore(src.Text, at, pdaWindow)
		to := runesAfter(src.Text, at+len(line), pdaWindow)
		if strings.Contains(src.Text[from:to], "bump") {
			continue
		}
		out = append(out, newFinding(types.SeverityCritical, PatternUnvalidatedPDA,
			"PDA derivation without bump validation", i+1,
			"A PDA is derived using find_program_address but the bump seed is not stored or validated. "+
				"An attacker could use a different bump to derive a different address.",
			"Store the canonical bump in the PDA account data and validate it in subsequent instructions using seeds and bump constraints."))
	}
	return out
}

// runesBefore returns the byte offset n runes before i, or 0.
func runesBefore(s string, i, n int) int {
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}

// runesAfter returns the byte offset n runes after i, or len(s).
func runesAfter(s string, i, n int) int {
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
