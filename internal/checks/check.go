// ABOUTME: Check registry for line/window pattern detectors over contract source
// ABOUTME: Built-in checks always run; optional groups are selected by skill name

package checks

import (
	"regexp"
	"strings"

	"github.com/paritydotcx/paritycx/internal/types"
)

// ProgramFile is the file name every built-in finding reports.
const ProgramFile = "program.rs"

// Source is the program text a check scans, pre-split into lines.
type Source struct {
	Text      string
	Lines     []string
	Framework string
}

// NewSource splits text on "\n" and records the declared framework.
func NewSource(text, framework string) Source {
	return Source{
		Text:      text,
		Lines:     strings.Split(text, "\n"),
		Framework: framework,
	}
}

// Check is a named detector. Detect must be pure and must not panic on any input.
type Check struct {
	Pattern string
	Detect  func(src Source) []types.Finding
}

// Builtin returns the checks that run on every analysis, in registration order.
func Builtin() []Check {
	return []Check{
		{Pattern: PatternMissingSigner, Detect: detectMissingSigner},
		{Pattern: PatternUncheckedArithmetic, Detect: detectUncheckedArithmetic},
		{Pattern: PatternUnvalidatedPDA, Detect: detectUnvalidatedPDA},
		{Pattern: PatternInsecureCPI, Detect: detectInsecureCPI},
		{Pattern: PatternCloseAccountDrain, Detect: detectCloseAccountDrain},
		{Pattern: PatternOwnerCheck, Detect: detectOwnerCheck},
	}
}

// Optional returns the check group a leaf skill enables, or false when the
// skill has no extra checks.
func Optional(skill string) (Check, bool) {
	switch skill {
	case types.SkillBestPractices:
		return Check{Pattern: types.SkillBestPractices, Detect: detectBestPractices}, true
	case types.SkillGasOptimization:
		return Check{Pattern: types.SkillGasOptimization, Detect: detectGasOptimization}, true
	default:
		return Check{}, false
	}
}

// ForSkills returns the built-in checks followed by every optional group the
// requested skills enable. Composite names are expanded first. Optional groups
// keep a fixed order regardless of the order skills were requested in.
func ForSkills(skills []string) []Check {
	requested := make(map[string]bool)
	for _, s := range types.ExpandChains(skills) {
		requested[s] = true
	}

	out := Builtin()
	for _, skill := range []string{types.SkillBestPractices, types.SkillGasOptimization} {
		if !requested[skill] {
			continue
		}
		if c, ok := Optional(skill); ok {
			out = append(out, c)
		}
	}
	return out
}

// AllPatterns lists every pattern id a built-in or optional check can emit.
func AllPatterns() []string {
	return []string{
		PatternMissingSigner,
		PatternUncheckedArithmetic,
		PatternUnvalidatedPDA,
		PatternInsecureCPI,
		PatternCloseAccountDrain,
		PatternOwnerCheck,
		PatternInitSpace,
		PatternEvents,
		PatternErrors,
		PatternGasString,
		PatternGasVec,
	}
}

// Run executes checks sequentially and concatenates their findings.
func Run(checks []Check, src Source) []types.Finding {
	var out []types.Finding
	for _, c := range checks {
		out = append(out, c.Detect(src)...)
	}
	return out
}

var instructionRe = regexp.MustCompile(`pub fn (\w+)`)

// instructionLookback bounds how far findInstruction walks backward.
const instructionLookback = 30

// findInstruction returns the name of the nearest `pub fn` at or above line i.
func findInstruction(lines []string, i int) string {
	for j := i; j >= max(0, i-instructionLookback); j-- {
		if m := instructionRe.FindStringSubmatch(lines[j]); m != nil {
			return m[1]
		}
	}
	return ""
}

// window joins lines[from:to] with "\n", clamping both bounds.
func window(lines []string, from, to int) string {
	from = max(0, from)
	to = min(len(lines), to)
	if from >= to {
		return ""
	}
	return strings.Join(lines[from:to], "\n")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func newFinding(sev types.Severity, pattern, title string, line int, description, recommendation string) types.Finding {
	return types.Finding{
		Severity:       sev,
		Title:          title,
		Location:       types.Location{File: ProgramFile, Line: line},
		Description:    description,
		Recommendation: recommendation,
		Pattern:        pattern,
	}
}
