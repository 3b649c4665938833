// ABOUTME: Skill catalog holding the built-in skills plus custom skills loaded from disk
// ABOUTME: Lookup, chain expansion and fuzzy suggestions for unknown names

package skills

import (
	"fmt"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/paritydotcx/paritycx/internal/log"
	"github.com/paritydotcx/paritycx/internal/types"
)

// Skill types.
const (
	TypeSecurity     = "security"
	TypeQuality      = "quality"
	TypeOptimization = "optimization"
	TypeComposite    = "composite"
	TypeCustom       = "custom"
)

func standardInputs() []types.SkillInput {
	return []types.SkillInput{
		{Name: "program", Type: "file", Required: true},
		{Name: "framework", Type: "string", Required: false, Default: "anchor"},
	}
}

func standardOutputs() []types.SkillOutput {
	return []types.SkillOutput{
		{Name: "findings", Type: "Finding[]"},
		{Name: "score", Type: "number"},
	}
}

// Builtin returns fresh copies of the built-in skill definitions in catalog order.
func Builtin() []types.SkillDefinition {
	return []types.SkillDefinition{
		{
			Name:    types.SkillSecurityAudit,
			Version: "1.0.0",
			Description: "Comprehensive Solana program security analysis covering signer checks, arithmetic safety, " +
				"PDA validation, CPI security, and account constraints",
			Type:    TypeSecurity,
			Inputs:  standardInputs(),
			Outputs: standardOutputs(),
			Steps: []string{
				"Parse the program source and resolve all account structures",
				"Check for missing signer validations on privileged instructions",
				"Verify arithmetic operations use checked math or overflow protection",
				"Validate CPI calls have correct program ID checks",
				"Ensure PDA seeds are deterministic and not attacker-controlled",
				"Check account constraints (has_one, constraint, seeds)",
				"Verify close account logic drains lamports and zeros data",
				"Score the program 0-100 based on finding severity",
			},
		},
		{
			Name:    types.SkillBestPractices,
			Version: "1.0.0",
			Description: "Solana and Anchor best practices analysis covering code organization, error handling, " +
				"event emission, and documentation",
			Type:    TypeQuality,
			Inputs:  standardInputs(),
			Outputs: standardOutputs(),
			Steps: []string{
				"Verify program uses InitSpace derive for automatic space calculation",
				"Check error definitions provide descriptive messages",
				"Validate event emissions for critical state changes",
				"Ensure account constraints use typed wrappers over raw AccountInfo",
				"Verify instruction handlers follow single-responsibility principle",
				"Check for proper use of msg! logging in instruction handlers",
			},
		},
		{
			Name:    types.SkillGasOptimization,
			Version: "1.0.0",
			Description: "Compute unit optimization analysis for Solana programs targeting reduced transaction costs " +
				"and improved throughput",
			Type:    TypeOptimization,
			Inputs:  standardInputs(),
			Outputs: standardOutputs(),
			Steps: []string{
				"Identify String fields in account data that could be fixed-size byte arrays",
				"Identify Vec fields with a small known bound that could be fixed-size arrays",
				"Flag redundant account deserialization within a single instruction",
				"Check for unnecessary msg! calls in hot paths",
				"Estimate rent savings from tighter account layouts",
			},
		},
		{
			Name:    types.SkillDeepAudit,
			Version: "1.0.0",
			Description: "Composite audit chaining security-audit, best-practices, and gas-optimization " +
				"into a single pass",
			Type:    TypeComposite,
			Inputs:  standardInputs(),
			Outputs: []types.SkillOutput{
				{Name: "findings", Type: "Finding[]"},
				{Name: "score", Type: "number"},
				{Name: "summary", Type: "string"},
			},
			Steps: []string{
				"Run security-audit",
				"Run best-practices",
				"Run gas-optimization",
				"Merge findings and compute a single score",
			},
		},
	}
}

// Catalog is a read-mostly set of skill definitions. It is safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	byName map[string]types.SkillDefinition
	order  []string
}

// NewCatalog returns a catalog containing only the built-in skills.
func NewCatalog() *Catalog {
	c := &Catalog{byName: make(map[string]types.SkillDefinition)}
	for _, def := range Builtin() {
		c.byName[def.Name] = def
		c.order = append(c.order, def.Name)
	}
	return c
}

// Add registers a custom skill. Built-in names cannot be replaced; a custom
// skill with an existing custom name replaces it in place.
func (c *Catalog) Add(def types.SkillDefinition) error {
	if types.IsBuiltinSkill(def.Name) {
		return fmt.Errorf("skill %q is built in and cannot be overridden", def.Name)
	}
	if errs := ValidateName(def.Name); len(errs) > 0 {
		return fmt.Errorf("invalid skill %q: %s", def.Name, errs[0])
	}
	if def.Type == "" {
		def.Type = TypeCustom
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byName[def.Name]; !ok {
		c.order = append(c.order, def.Name)
	}
	c.byName[def.Name] = def
	return nil
}

// ReplaceCustom drops every custom skill and adds defs in order. It returns
// the number added; invalid definitions are skipped.
func (c *Catalog) ReplaceCustom(defs []types.SkillDefinition) int {
	c.mu.Lock()
	order := c.order[:0:0]
	for _, name := range c.order {
		if types.IsBuiltinSkill(name) {
			order = append(order, name)
			continue
		}
		delete(c.byName, name)
	}
	c.order = order
	c.mu.Unlock()

	n := 0
	for _, def := range defs {
		if err := c.Add(def); err != nil {
			log.Warn("skipping skill %s: %v", def.Name, err)
			continue
		}
		n++
	}
	return n
}

// List returns every skill, built-ins first, then custom skills in the order added.
func (c *Catalog) List() []types.SkillDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]types.SkillDefinition, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// Get returns the named skill.
func (c *Catalog) Get(name string) (types.SkillDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.byName[name]
	return def, ok
}

// Names returns every skill name in listing order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// Chain returns the leaf skills name expands to.
func (c *Catalog) Chain(name string) []string {
	return types.Chain(name)
}

// maxSuggestions caps the names returned by Suggest.
const maxSuggestions = 3

// Suggest returns up to three known names that fuzzy-match name, best first.
func (c *Catalog) Suggest(name string) []string {
	if name == "" {
		return nil
	}
	matches := fuzzy.Find(name, c.Names())
	out := make([]string, 0, min(len(matches), maxSuggestions))
	for i, m := range matches {
		if i == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
