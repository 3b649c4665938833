// ABOUTME: Optional best-practices and gas-optimization check groups
// ABOUTME: Best-practices findings are whole-program and always reported at line 1

package checks

import (
	"strings"

	"github.com/paritydotcx/paritycx/internal/types"
)

const (
	PatternInitSpace = "best-practices-init-space"
	PatternEvents    = "best-practices-events"
	PatternErrors    = "best-practices-errors"
	PatternGasString = "gas-optimization-string"
	PatternGasVec    = "gas-optimization-vec"
)

func detectBestPractices(src Source) []types.Finding {
	var out []types.Finding
	isProgram := strings.Contains(src.Text, "#[program]")

	if src.Framework == "anchor" && !strings.Contains(src.Text, "InitSpace") {
		out = append(out, newFinding(types.SeverityInfo, PatternInitSpace,
			"Missing InitSpace derive macro", 1,
			"Account structs do not use #[derive(InitSpace)] for automatic space calculation. "+
				"Manual space calculation is error-prone and can lead to account size mismatches.",
			"Add #[derive(InitSpace)] to all account structs and use T::INIT_SPACE in account initialization."))
	}

	hasEvents := false
	for _, line := range src.Lines {
		if strings.Contains(line, "emit!") {
			hasEvents = true
			break
		}
	}
	if !hasEvents && isProgram {
		out = append(out, newFinding(types.SeverityInfo, PatternEvents,
			"No event emissions detected", 1,
			"The program does not emit any events. Events are essential for off-chain indexing, monitoring, and debugging.",
			"Define events using #[event] and emit them in instruction handlers using emit!(MyEvent { ... })."))
	}

	if !strings.Contains(src.Text, "#[error_code]") && isProgram {
		out = append(out, newFinding(types.SeverityMedium, PatternErrors,
			"No custom error definitions found", 1,
			"The program does not define custom error codes. "+
				"Without descriptive errors, debugging failed transactions is significantly harder.",
			"Define a custom error enum with #[error_code] and descriptive #[msg()] attributes."))
	}

	return out
}

func detectGasOptimization(src Source) []types.Finding {
	var out []types.Finding
	for i, line := range src.Lines {
		if !strings.Contains(line, "pub") || strings.Contains(line, "//") {
			continue
		}
		if strings.Contains(line, "String") {
			out = append(out, newFinding(types.SeverityInfo, PatternGasString,
				"String field in account data increases rent cost", i+1,
				"String fields in account data require 4 bytes of length prefix plus the string content. "+
					"For fixed-length data, consider using fixed-size byte arrays to reduce rent costs.",
				"If the string has a known maximum length, consider using a fixed-size byte array [u8; N] instead."))
		}
		if strings.Contains(line, "Vec<") {
			out = append(out, newFinding(types.SeverityInfo, PatternGasVec,
				"Dynamic Vec allocation in account data", i+1,
				"Vec fields require dynamic space allocation and 4-byte length prefix. "+
					"For small, bounded collections, fixed-size arrays reduce compute and rent costs.",
				"If the maximum size is known and small, consider using a fixed-size array instead of Vec."))
		}
	}
	return out
}
