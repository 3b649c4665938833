// ABOUTME: Tests for custom skill discovery from directories
// ABOUTME: Covers directory and flat layouts, priority merging, collisions and invalid files

package skills

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSkill(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func skillDoc(name, version, desc string) string {
	return "---\nname: " + name + "\nversion: " + version + "\ndescription: " + desc + "\n---\n## Steps\n1. look\n"
}

func TestLoadDirs(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	global := t.TempDir()

	writeSkill(t, filepath.Join(project, "reentrancy", "SKILL.md"), skillDoc("reentrancy", "2.0.0", "project"))
	writeSkill(t, filepath.Join(global, "reentrancy", "SKILL.md"), skillDoc("reentrancy", "1.0.0", "global"))
	writeSkill(t, filepath.Join(global, "oracle-check.md"), "---\nversion: 1.0.0\ndescription: flat file\n---\n")
	writeSkill(t, filepath.Join(global, "notes.txt"), "ignored")
	writeSkill(t, filepath.Join(global, "Bad_Name", "SKILL.md"), skillDoc("Bad_Name", "1.0.0", "invalid"))
	writeSkill(t, filepath.Join(global, "broken", "SKILL.md"), "no frontmatter")

	loaded := LoadDirs([]string{project, global, filepath.Join(project, "missing")})
	if len(loaded) != 2 {
		t.Fatalf("loaded %d skills: %+v", len(loaded), loaded)
	}
	if loaded[0].Definition.Name != "oracle-check" {
		t.Errorf("flat skill name = %q; want oracle-check", loaded[0].Definition.Name)
	}
	re := loaded[1]
	if re.Definition.Name != "reentrancy" || re.Definition.Description != "project" {
		t.Errorf("priority: got %+v", re.Definition)
	}
	if re.SourcePath != filepath.Join(project, "reentrancy", "SKILL.md") {
		t.Errorf("SourcePath = %q", re.SourcePath)
	}
	if len(re.Definition.Steps) != 1 {
		t.Errorf("steps = %v", re.Definition.Steps)
	}

	warnings := DetectCollisions([]string{project, global})
	if len(warnings) != 1 {
		t.Errorf("collisions = %v; want 1", warnings)
	}
}

func TestLoadInto(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSkill(t, filepath.Join(dir, "oracle-check", "SKILL.md"), skillDoc("oracle-check", "1.0.0", "oracle"))
	writeSkill(t, filepath.Join(dir, "security-audit", "SKILL.md"), skillDoc("security-audit", "9.9.9", "override"))

	c := NewCatalog()
	if n := LoadInto(c, []string{dir}); n != 1 {
		t.Errorf("LoadInto() = %d; want 1", n)
	}
	if _, ok := c.Get("oracle-check"); !ok {
		t.Error("oracle-check not added")
	}
	if def, _ := c.Get("security-audit"); def.Version != "1.0.0" {
		t.Errorf("built-in was overridden: %+v", def)
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"reentrancy", false},
		{"oracle-check-2", false},
		{"", true},
		{"Upper", true},
		{"double--hyphen", true},
		{"-leading", true},
		{string(make([]byte, 65)), true},
	}
	for _, tt := range tests {
		if got := len(ValidateName(tt.name)) > 0; got != tt.wantErr {
			t.Errorf("ValidateName(%q) error = %v; want %v", tt.name, got, tt.wantErr)
		}
	}
}
