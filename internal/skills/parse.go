// ABOUTME: SKILL.md parsing, serialization and validation
// ABOUTME: YAML frontmatter carries metadata; numbered items under "## Steps" become steps

package skills

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/paritydotcx/paritycx/internal/config"
	"github.com/paritydotcx/paritycx/internal/types"
)

// maxNameLength bounds skill names.
const maxNameLength = 64

// skillFrontmatter is the typed structure for YAML frontmatter in skill files.
type skillFrontmatter struct {
	Name        string              `yaml:"name"`
	Version     string              `yaml:"version"`
	Description string              `yaml:"description"`
	Type        string              `yaml:"type,omitempty"`
	Inputs      []types.SkillInput  `yaml:"inputs,omitempty"`
	Outputs     []types.SkillOutput `yaml:"outputs,omitempty"`
}

// Parse reads a SKILL.md document. Content must start with frontmatter.
func Parse(content string) (types.SkillDefinition, error) {
	fm, body, err := config.ParseRequiredFrontmatter[skillFrontmatter](content)
	if err != nil {
		return types.SkillDefinition{}, fmt.Errorf("parse SKILL.md: %w", err)
	}

	def := types.SkillDefinition{
		Name:        fm.Name,
		Version:     fm.Version,
		Description: fm.Description,
		Type:        fm.Type,
		Inputs:      fm.Inputs,
		Outputs:     fm.Outputs,
		Steps:       ExtractSteps(body),
	}
	if def.Inputs == nil {
		def.Inputs = []types.SkillInput{}
	}
	if def.Outputs == nil {
		def.Outputs = []types.SkillOutput{}
	}
	return def, nil
}

// ParseFile reads and parses the SKILL.md at path.
func ParseFile(path string) (types.SkillDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SkillDefinition{}, fmt.Errorf("reading skill %s: %w", path, err)
	}
	return Parse(string(data))
}

var stepRe = regexp.MustCompile(`^\d+\.\s+(.+)`)

// ExtractSteps collects numbered list items from the first "## Steps" or
// "## Analysis Steps" section, stopping at the next "## " heading.
func ExtractSteps(body string) []string {
	var steps []string
	inSteps := false
	for _, line := range strings.Split(body, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "## steps") || strings.Contains(lower, "## analysis steps") {
			inSteps = true
			continue
		}
		if !inSteps {
			continue
		}
		if strings.HasPrefix(line, "## ") {
			break
		}
		if m := stepRe.FindStringSubmatch(line); m != nil {
			steps = append(steps, strings.TrimSpace(m[1]))
		}
	}
	return steps
}

// Serialize renders def as a SKILL.md document that Parse reads back.
func Serialize(def types.SkillDefinition) (string, error) {
	fm := skillFrontmatter{
		Name:        def.Name,
		Version:     def.Version,
		Description: def.Description,
		Type:        def.Type,
		Inputs:      def.Inputs,
		Outputs:     def.Outputs,
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "# %s\n\n%s\n", def.Name, def.Description)
	if len(def.Steps) > 0 {
		body.WriteString("\n## Steps\n")
		for i, step := range def.Steps {
			body.WriteString(strconv.Itoa(i+1) + ". " + step + "\n")
		}
	}

	return "---\n" + buf.String() + "---\n\n" + body.String(), nil
}

var semverRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Validate checks a SKILL.md document and returns every problem found.
// An empty result means the document is valid.
func Validate(content string) []string {
	fm, _, err := config.ParseRequiredFrontmatter[skillFrontmatter](content)
	if err != nil {
		return []string{"Parse error: " + err.Error()}
	}

	var errs []string
	if fm.Name == "" {
		errs = append(errs, "Missing required field: name")
	}
	if fm.Version == "" {
		errs = append(errs, "Missing required field: version")
	}
	if fm.Description == "" {
		errs = append(errs, "Missing required field: description")
	}
	if len(fm.Name) > maxNameLength {
		errs = append(errs, fmt.Sprintf("Skill name exceeds %d characters", maxNameLength))
	}
	if fm.Version != "" && !semverRe.MatchString(fm.Version) {
		errs = append(errs, "Version must follow semver format (x.y.z)")
	}
	for _, in := range fm.Inputs {
		if in.Name == "" {
			errs = append(errs, "Input missing name")
		}
		if in.Type == "" {
			errs = append(errs, fmt.Sprintf("Input '%s' missing type", in.Name))
		}
	}
	for _, out := range fm.Outputs {
		if out.Name == "" {
			errs = append(errs, "Output missing name")
		}
		if out.Type == "" {
			errs = append(errs, fmt.Sprintf("Output '%s' missing type", out.Name))
		}
	}
	return errs
}
