// ABOUTME: Skill definition types shared by the server catalog and the SDK resolver
// ABOUTME: Built-in skill names and the composite chain table are declared here

package types

// Built-in skill names.
const (
	SkillSecurityAudit   = "security-audit"
	SkillBestPractices   = "best-practices"
	SkillGasOptimization = "gas-optimization"
	SkillDeepAudit       = "deep-audit"
)

// BuiltinSkillNames lists the built-in skills in catalog order.
func BuiltinSkillNames() []string {
	return []string{SkillSecurityAudit, SkillBestPractices, SkillGasOptimization, SkillDeepAudit}
}

// IsBuiltinSkill reports whether name is a built-in skill.
func IsBuiltinSkill(name string) bool {
	for _, n := range BuiltinSkillNames() {
		if n == name {
			return true
		}
	}
	return false
}

// SkillInput declares one input accepted by a skill.
type SkillInput struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Required bool   `json:"required" yaml:"required"`
	Default  string `json:"default,omitempty" yaml:"default,omitempty"`
}

// SkillOutput declares one output produced by a skill.
type SkillOutput struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// SkillDefinition describes a named, versioned bundle of checks.
type SkillDefinition struct {
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	Description string        `json:"description"`
	Type        string        `json:"type,omitempty"`
	Inputs      []SkillInput  `json:"inputs"`
	Outputs     []SkillOutput `json:"outputs"`
	Steps       []string      `json:"steps,omitempty"`
}

// Chain expands a composite skill name into its leaf skills.
// Non-composite names expand to themselves. Expansion is one level deep.
func Chain(name string) []string {
	if name == SkillDeepAudit {
		return []string{SkillSecurityAudit, SkillBestPractices, SkillGasOptimization}
	}
	return []string{name}
}

// ExpandChains expands every name and deduplicates the result,
// keeping the first occurrence of each leaf.
func ExpandChains(names []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range names {
		for _, leaf := range Chain(name) {
			if seen[leaf] {
				continue
			}
			seen[leaf] = true
			out = append(out, leaf)
		}
	}
	return out
}
