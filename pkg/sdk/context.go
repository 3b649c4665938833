// ABOUTME: Knowledge-base client: rules, audit findings, framework patterns and categories
// ABOUTME: The unfiltered rule list is cached until ClearCache

package sdk

import (
	"context"
	"net/url"
	"sync"

	"github.com/paritydotcx/paritycx/internal/knowledge"
)

// ContextQuery narrows a knowledge lookup. Empty fields do not filter.
type ContextQuery struct {
	Pattern     string
	Framework   string
	Severity    Severity
	PatternType string
}

func (q ContextQuery) values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("pattern", q.Pattern)
	set("framework", q.Framework)
	set("severity", string(q.Severity))
	set("pattern_type", q.PatternType)
	return v
}

// ContextAPI queries the vulnerability knowledge base.
type ContextAPI struct {
	client *Client

	mu    sync.Mutex
	rules []StaticRule
}

func newContextAPI(c *Client) *ContextAPI {
	return &ContextAPI{client: c}
}

// Query runs a combined knowledge lookup.
func (c *ContextAPI) Query(ctx context.Context, q ContextQuery) (*ContextResult, error) {
	var res ContextResult
	if err := c.client.getJSON(ctx, EndpointContext, q.values(), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Rules returns the static rules, optionally narrowed by pattern type.
// Only the unfiltered list is cached.
func (c *ContextAPI) Rules(ctx context.Context, patternType string) ([]StaticRule, error) {
	if patternType == "" {
		c.mu.Lock()
		cached := c.rules
		c.mu.Unlock()
		if cached != nil {
			return cached, nil
		}
	}

	res, err := c.Query(ctx, ContextQuery{PatternType: patternType})
	if err != nil {
		return nil, err
	}
	if patternType == "" {
		c.mu.Lock()
		c.rules = res.Rules
		c.mu.Unlock()
	}
	return res.Rules, nil
}

// AuditFindings returns historical audit findings, optionally by severity.
func (c *ContextAPI) AuditFindings(ctx context.Context, severity Severity) ([]AuditFinding, error) {
	res, err := c.Query(ctx, ContextQuery{Severity: severity})
	if err != nil {
		return nil, err
	}
	return res.AuditFindings, nil
}

// FrameworkPatterns returns the idiomatic patterns for framework.
func (c *ContextAPI) FrameworkPatterns(ctx context.Context, framework string) ([]FrameworkPattern, error) {
	res, err := c.Query(ctx, ContextQuery{Framework: framework})
	if err != nil {
		return nil, err
	}
	return res.FrameworkPatterns, nil
}

// Categories returns the known vulnerability categories without a request.
func (c *ContextAPI) Categories() []string {
	return knowledge.New().Categories()
}

// CalculateRiskScore scores audit findings with the finding severity weights.
func (c *ContextAPI) CalculateRiskScore(findings []AuditFinding) int {
	penalty := 0
	for _, f := range findings {
		penalty += Severity(f.Severity).Weight()
	}
	return max(0, 100-penalty)
}

// CategorizeBySeverity buckets audit findings by severity. Every known
// severity has an entry, possibly empty; unknown severities are dropped.
func (c *ContextAPI) CategorizeBySeverity(findings []AuditFinding) map[Severity][]AuditFinding {
	out := make(map[Severity][]AuditFinding, 5)
	for _, s := range []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityInfo, SeverityPass} {
		out[s] = []AuditFinding{}
	}
	for _, f := range findings {
		sev := Severity(f.Severity)
		if _, ok := out[sev]; ok {
			out[sev] = append(out[sev], f)
		}
	}
	return out
}

// ClearCache drops the cached rule list.
func (c *ContextAPI) ClearCache() {
	c.mu.Lock()
	c.rules = nil
	c.mu.Unlock()
}
