// ABOUTME: SKILL.md parsing and validation for authoring custom skills offline
// ABOUTME: Thin wrappers over the shared skill parser with a structured validation result

package sdk

import "github.com/paritydotcx/paritycx/internal/skills"

// ValidationResult lists every problem found in a SKILL.md document.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ParseSkill parses SKILL.md content.
func ParseSkill(content string) (SkillDefinition, error) {
	return skills.Parse(content)
}

// ParseSkillFile parses the SKILL.md at path.
func ParseSkillFile(path string) (SkillDefinition, error) {
	return skills.ParseFile(path)
}

// SerializeSkill renders def as SKILL.md content that ParseSkill reads back.
func SerializeSkill(def SkillDefinition) (string, error) {
	return skills.Serialize(def)
}

// ValidateSkill checks SKILL.md content.
func ValidateSkill(content string) ValidationResult {
	errs := skills.Validate(content)
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
