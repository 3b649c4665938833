// ABOUTME: Static knowledge base of detection rules, audit findings and framework patterns
// ABOUTME: Query filters by pattern, severity, pattern type and framework; data is read-only

package knowledge

// Rule is a static detection rule.
type Rule struct {
	ID            string `json:"id"`
	Severity      string `json:"severity"`
	PatternType   string `json:"patternType"`
	Description   string `json:"description"`
	DetectionHint string `json:"detectionHint"`
}

// AuditFinding is a vulnerability class observed in a published audit.
type AuditFinding struct {
	Source             string `json:"source"`
	VulnerabilityClass string `json:"vulnerabilityClass"`
	Severity           string `json:"severity"`
	Description        string `json:"description"`
	FixPattern         string `json:"fixPattern"`
}

// FrameworkPattern is a known-good idiom for a framework.
type FrameworkPattern struct {
	Framework   string `json:"framework"`
	PatternName string `json:"patternName"`
	Description string `json:"description"`
	ExampleCode string `json:"exampleCode"`
}

// Query narrows a knowledge lookup. Empty fields do not filter.
type Query struct {
	Pattern     string
	Framework   string
	Severity    string
	PatternType string
}

// Result is the combined answer to a Query.
type Result struct {
	Rules             []Rule             `json:"rules"`
	AuditFindings     []AuditFinding     `json:"auditFindings"`
	FrameworkPatterns []FrameworkPattern `json:"frameworkPatterns"`
}

// DefaultFramework is used by FrameworkPatterns when none is given.
const DefaultFramework = "anchor"

// Base answers knowledge queries over a fixed data set.
type Base struct {
	rules    []Rule
	findings []AuditFinding
	patterns []FrameworkPattern
}

// New returns a Base over the built-in data.
func New() *Base {
	return &Base{rules: staticRules, findings: auditFindings, patterns: frameworkPatterns}
}

// Query filters rules by pattern (id or pattern type), severity and pattern
// type; audit findings by severity; framework patterns by framework.
func (b *Base) Query(q Query) Result {
	rules := filter(b.rules, func(r Rule) bool {
		if q.Pattern != "" && r.ID != q.Pattern && r.PatternType != q.Pattern {
			return false
		}
		if q.Severity != "" && r.Severity != q.Severity {
			return false
		}
		return q.PatternType == "" || r.PatternType == q.PatternType
	})
	findings := filter(b.findings, func(f AuditFinding) bool {
		return q.Severity == "" || f.Severity == q.Severity
	})
	patterns := filter(b.patterns, func(p FrameworkPattern) bool {
		return q.Framework == "" || p.Framework == q.Framework
	})
	return Result{Rules: rules, AuditFindings: findings, FrameworkPatterns: patterns}
}

// Rules returns every rule, or those of the given pattern type.
func (b *Base) Rules(patternType string) []Rule {
	return filter(b.rules, func(r Rule) bool {
		return patternType == "" || r.PatternType == patternType
	})
}

// AuditFindings returns every audit finding, or those of the given severity.
func (b *Base) AuditFindings(severity string) []AuditFinding {
	return filter(b.findings, func(f AuditFinding) bool {
		return severity == "" || f.Severity == severity
	})
}

// FrameworkPatterns returns the patterns for framework, defaulting to anchor.
func (b *Base) FrameworkPatterns(framework string) []FrameworkPattern {
	if framework == "" {
		framework = DefaultFramework
	}
	return filter(b.patterns, func(p FrameworkPattern) bool { return p.Framework == framework })
}

// Categories returns the vulnerability categories in canonical order.
func (b *Base) Categories() []string {
	return append([]string(nil), categories...)
}

// filter always returns a non-nil slice so empty results encode as [].
func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
