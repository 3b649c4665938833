// ABOUTME: Analysis engine orchestrating check selection, parallel execution and scoring
// ABOUTME: Source is normalized to NFC with LF line endings before any check runs

package analysis

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/paritydotcx/paritycx/internal/checks"
	"github.com/paritydotcx/paritycx/internal/log"
	"github.com/paritydotcx/paritycx/internal/types"
)

// DefaultFramework is assumed when a request does not name one.
const DefaultFramework = "anchor"

// Request is one analysis job.
type Request struct {
	Program   string
	Framework string
	Skills    []string
	ProgramID string
}

// Engine runs checks against program source. It holds no per-request state
// and is safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for analyzedAt and duration.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Normalize converts CRLF to LF and composes the text to NFC.
func Normalize(program string) string {
	program = strings.ReplaceAll(program, "\r\n", "\n")
	return norm.NFC.String(program)
}

// Analyze runs the built-in checks plus the optional groups selected by
// req.Skills, then scores the findings. The only error is ctx's, returned
// when ctx is done before checks start; once started, checks run to completion.
func (e *Engine) Analyze(ctx context.Context, req Request) (types.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return types.AnalysisResult{}, err
	}

	start := e.now()
	framework := req.Framework
	if framework == "" {
		framework = DefaultFramework
	}

	src := checks.NewSource(Normalize(req.Program), framework)
	selected := checks.ForSkills(req.Skills)
	findings := runParallel(selected, src)

	score := types.Score(findings)
	end := e.now()

	log.Debug("analysis: %d checks, %d findings, score %d", len(selected), len(findings), score)

	return types.AnalysisResult{
		Score:    score,
		Findings: findings,
		Summary:  types.Summary(findings, score),
		Skills:   append([]string{}, req.Skills...),
		Metadata: types.Metadata{
			Framework:  framework,
			ProgramID:  req.ProgramID,
			AnalyzedAt: start.UTC(),
			Duration:   end.Sub(start).Milliseconds(),
		},
	}, nil
}

// runParallel runs each check in its own goroutine. Every check writes only
// its own slot, so merging the slots in order reproduces registration order.
func runParallel(cs []checks.Check, src checks.Source) []types.Finding {
	slots := make([][]types.Finding, len(cs))

	var g errgroup.Group
	for i, c := range cs {
		g.Go(func() error {
			slots[i] = c.Detect(src)
			return nil
		})
	}
	_ = g.Wait()

	findings := make([]types.Finding, 0)
	for _, s := range slots {
		findings = append(findings, s...)
	}
	return findings
}
