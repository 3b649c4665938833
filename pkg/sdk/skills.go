// ABOUTME: Skill registry client with a read-through cache and composite chain expansion
// ABOUTME: The cache lives for the SkillsAPI instance; ClearCache is the only invalidation

package sdk

import (
	"context"
	"net/url"
	"sync"

	"github.com/paritydotcx/paritycx/internal/types"
)

// Built-in skill names.
const (
	SkillSecurityAudit   = types.SkillSecurityAudit
	SkillBestPractices   = types.SkillBestPractices
	SkillGasOptimization = types.SkillGasOptimization
	SkillDeepAudit       = types.SkillDeepAudit
)

// SkillsAPI lists, fetches and resolves skill definitions.
type SkillsAPI struct {
	client *Client

	mu    sync.Mutex
	cache map[string]SkillDefinition
}

func newSkillsAPI(c *Client) *SkillsAPI {
	return &SkillsAPI{client: c, cache: make(map[string]SkillDefinition)}
}

// List fetches every skill and caches each definition by name.
func (s *SkillsAPI) List(ctx context.Context) ([]SkillDefinition, error) {
	var defs []SkillDefinition
	if err := s.client.getJSON(ctx, EndpointSkills, nil, &defs); err != nil {
		return nil, err
	}
	s.mu.Lock()
	for _, d := range defs {
		s.cache[d.Name] = d
	}
	s.mu.Unlock()
	return defs, nil
}

// Get returns the named skill, from cache when present. An unknown name
// yields an *APIError with status 404.
func (s *SkillsAPI) Get(ctx context.Context, name string) (SkillDefinition, error) {
	if def, ok := s.cached(name); ok {
		return def, nil
	}

	var def SkillDefinition
	if err := s.client.getJSON(ctx, EndpointSkills+"/"+url.PathEscape(name), nil, &def); err != nil {
		return SkillDefinition{}, err
	}
	s.mu.Lock()
	s.cache[name] = def
	s.mu.Unlock()
	return def, nil
}

func (s *SkillsAPI) cached(name string) (SkillDefinition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, ok := s.cache[name]
	return def, ok
}

// Validate reports whether name is a built-in skill or resolvable through
// Get. Only a 404 counts as invalid; other failures are returned.
func (s *SkillsAPI) Validate(ctx context.Context, name string) (bool, error) {
	if types.IsBuiltinSkill(name) {
		return true, nil
	}
	if _, err := s.Get(ctx, name); err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Chain expands a composite skill into its leaves. It needs no network.
func (s *SkillsAPI) Chain(name string) []string {
	return types.Chain(name)
}

// ResolveSkills expands every name, deduplicates the leaves keeping first
// occurrence and fetches each definition in that order.
func (s *SkillsAPI) ResolveSkills(ctx context.Context, names []string) ([]SkillDefinition, error) {
	leaves := types.ExpandChains(names)
	out := make([]SkillDefinition, 0, len(leaves))
	for _, name := range leaves {
		def, err := s.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}

// ClearCache drops every cached definition.
func (s *SkillsAPI) ClearCache() {
	s.mu.Lock()
	s.cache = make(map[string]SkillDefinition)
	s.mu.Unlock()
}

// BuiltinSkills returns the built-in skill names.
func (s *SkillsAPI) BuiltinSkills() []string {
	return types.BuiltinSkillNames()
}
