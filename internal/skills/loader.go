// ABOUTME: Custom skill discovery from SKILL.md files in skill directories
// ABOUTME: Earlier directories take priority; invalid skills are skipped with a warning

package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/paritydotcx/paritycx/internal/log"
	"github.com/paritydotcx/paritycx/internal/types"
)

// Loaded is a custom skill together with the file it came from.
type Loaded struct {
	Definition types.SkillDefinition
	SourcePath string
}

// LoadDirs loads skills from dirs, merging by name. dirs[0] has the highest
// priority. Missing or unreadable directories are skipped.
func LoadDirs(dirs []string) []Loaded {
	byName := make(map[string]Loaded)

	// Load in reverse order so higher-priority dirs override
	for i := len(dirs) - 1; i >= 0; i-- {
		loaded, err := loadDir(dirs[i])
		if err != nil {
			continue
		}
		for _, l := range loaded {
			byName[l.Definition.Name] = l
		}
	}

	out := make([]Loaded, 0, len(byName))
	for _, l := range byName {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Definition.Name < out[j].Definition.Name })
	return out
}

// LoadInto loads skills from dirs and adds them to c. It returns the number
// added; skills that fail validation are logged and skipped.
func LoadInto(c *Catalog, dirs []string) int {
	n := 0
	for _, l := range LoadDirs(dirs) {
		if err := c.Add(l.Definition); err != nil {
			log.Warn("skipping skill %s: %v", l.SourcePath, err)
			continue
		}
		n++
	}
	return n
}

func loadDir(dir string) ([]Loaded, error) {
	paths, err := skillFiles(dir)
	if err != nil {
		return nil, err
	}

	var out []Loaded
	for _, path := range paths {
		def, err := ParseFile(path)
		if err != nil {
			log.Warn("skipping skill %s: %v", path, err)
			continue
		}
		if def.Name == "" {
			def.Name = defaultName(path)
		}
		if problems := validateDefinition(def); len(problems) > 0 {
			log.Warn("skipping skill %s: %s", path, strings.Join(problems, "; "))
			continue
		}
		out = append(out, Loaded{Definition: def, SourcePath: path})
	}
	return out, nil
}

// skillFiles lists the skill documents in dir: <name>/SKILL.md for
// subdirectories and flat *.md files.
func skillFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading skills dir %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		var path string
		switch {
		case entry.IsDir():
			path = filepath.Join(dir, entry.Name(), "SKILL.md")
		case strings.HasSuffix(entry.Name(), ".md"):
			path = filepath.Join(dir, entry.Name())
		default:
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// defaultName derives a skill name from its directory, or from the file name
// for flat .md files.
func defaultName(path string) string {
	if filepath.Base(path) == "SKILL.md" {
		return filepath.Base(filepath.Dir(path))
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func validateDefinition(def types.SkillDefinition) []string {
	errs := ValidateName(def.Name)
	if def.Version != "" && !semverRe.MatchString(def.Version) {
		errs = append(errs, "version must follow semver format (x.y.z)")
	}
	return errs
}

// skillNameRe matches valid skill names: lowercase alphanumeric with single hyphens.
var skillNameRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateName checks a skill name against naming rules.
// Returns a list of validation error messages (empty = valid).
func ValidateName(name string) []string {
	if name == "" {
		return []string{"skill name is required"}
	}
	var errs []string
	if len(name) > maxNameLength {
		errs = append(errs, fmt.Sprintf("skill name %q exceeds %d characters", name, maxNameLength))
	}
	if !skillNameRe.MatchString(name) {
		errs = append(errs, fmt.Sprintf("skill name %q must match ^[a-z0-9]+(-[a-z0-9]+)*$", name))
	}
	return errs
}

// DetectCollisions returns warnings for custom skills defined in more than one
// of dirs. Only the highest-priority definition is loaded by LoadDirs.
func DetectCollisions(dirs []string) []string {
	byName := make(map[string][]string)
	for _, dir := range dirs {
		loaded, err := loadDir(dir)
		if err != nil {
			continue
		}
		for _, l := range loaded {
			byName[l.Definition.Name] = append(byName[l.Definition.Name], l.SourcePath)
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	var warnings []string
	for _, name := range names {
		if paths := byName[name]; len(paths) > 1 {
			warnings = append(warnings, fmt.Sprintf("skill %q loaded from multiple sources: %v", name, paths))
		}
	}
	return warnings
}
