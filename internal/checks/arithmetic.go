// ABOUTME: Unchecked arithmetic check for token amounts, balances and lamports
// ABOUTME: Flags +, -, * on value-bearing identifiers that skip checked_/saturating_ math

package checks

import (
	"regexp"
	"strings"

	"github.com/paritydotcx/paritycx/internal/types"
)

const PatternUncheckedArithmetic = "unchecked-arithmetic"

var (
	unsafeOpRe = regexp.MustCompile(`\b\w+\s*[+\-*]\s*\w+`)
	safeOpRe   = regexp.MustCompile(`checked_|saturating_|overflowing_`)
)

var valueWords = []string{"amount", "balance", "total", "supply", "lamports"}

func detectUncheckedArithmetic(src Source) []types.Finding {
	var out []types.Finding
	for i, raw := range src.Lines {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "//") || strings.HasPrefix(line, "*") {
			continue
		}
		if !unsafeOpRe.MatchString(line) || safeOpRe.MatchString(line) {
			continue
		}
		if !containsAny(line, valueWords...) {
			continue
		}
		out = append(out, newFinding(types.SeverityHigh, PatternUncheckedArithmetic,
			"Potential unchecked arithmetic in token-related operation", i+1,
			"An arithmetic operation involving token amounts or balances does not use checked math. "+
				"This could lead to overflow or underflow, resulting in incorrect balances or fund loss.",
			"Use checked_add(), checked_sub(), or checked_mul() for all arithmetic operations involving user-controlled values."))
	}
	return out
}
