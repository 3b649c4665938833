// ABOUTME: Client-side analysis orchestration: option validation, file loading, framework detection
// ABOUTME: Submits to /v1/analyze and applies the min-score and fail-on gates to the result

package sdk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/paritydotcx/paritycx/internal/types"
)

// Limits enforced before a program is submitted.
const (
	MaxProgramSize       = 10 * 1024 * 1024
	MaxSkillsPerAnalysis = 8
)

// Supported frameworks.
const (
	FrameworkAnchor   = "anchor"
	FrameworkNative   = "native"
	FrameworkSeahorse = "seahorse"
	FrameworkSteel    = "steel"
)

// SupportedFrameworks lists the frameworks the API accepts.
var SupportedFrameworks = []string{FrameworkAnchor, FrameworkNative, FrameworkSeahorse, FrameworkSteel}

// AnalyzeOptions configures one analysis.
type AnalyzeOptions struct {
	// Program is the path of the source file to analyze.
	Program string
	// Framework overrides detection when set.
	Framework string
	// Skills defaults to security-audit.
	Skills []string
	// MinScore, when set, fails the analysis below this score (0-100).
	MinScore *int
	// FailOn fails the analysis when any finding has one of these severities.
	FailOn []Severity
	// ProgramHash links the analysis to a registered program.
	ProgramHash string
}

// Engine runs analyses through the API.
type Engine struct {
	client *Client
}

type analyzeRequest struct {
	Program     string   `json:"program"`
	Framework   string   `json:"framework"`
	Skills      []string `json:"skills"`
	Output      string   `json:"output"`
	ProgramHash string   `json:"programHash,omitempty"`
}

// Analyze validates opts, submits the program and returns the result.
// A result that trips a gate is returned inside *ScoreThresholdError or
// *SeverityGateError; the min-score gate is checked first.
func (e *Engine) Analyze(ctx context.Context, opts AnalyzeOptions) (*AnalysisResult, error) {
	req, err := e.prepare(ctx, opts, "json")
	if err != nil {
		return nil, err
	}

	var result AnalysisResult
	if err := e.client.postJSON(ctx, EndpointAnalyze, req, &result); err != nil {
		return nil, err
	}

	if err := checkGates(&result, opts); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeReport submits the program and returns the server-rendered report
// in format (sarif, markdown or text). Gates do not apply.
func (e *Engine) AnalyzeReport(ctx context.Context, opts AnalyzeOptions, format string) ([]byte, error) {
	switch format {
	case "sarif", "markdown", "text", "json":
	default:
		return nil, &ValidationError{Message: fmt.Sprintf("Unsupported output format: %s", format)}
	}
	req, err := e.prepare(ctx, opts, format)
	if err != nil {
		return nil, err
	}
	data, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	return e.client.send(ctx, http.MethodPost, EndpointAnalyze, data)
}

func (e *Engine) prepare(ctx context.Context, opts AnalyzeOptions, output string) (analyzeRequest, error) {
	if err := validateOptions(opts); err != nil {
		return analyzeRequest{}, err
	}

	source, err := readProgram(opts.Program)
	if err != nil {
		return analyzeRequest{}, err
	}

	skills := opts.Skills
	if len(skills) == 0 {
		skills = []string{SkillSecurityAudit}
	}
	framework := opts.Framework
	if framework == "" {
		framework = DetectFramework(source)
	}

	for _, name := range skills {
		ok, err := e.client.Skills.Validate(ctx, name)
		if err != nil {
			return analyzeRequest{}, err
		}
		if !ok {
			return analyzeRequest{}, &ValidationError{Message: "Unknown skill: " + name}
		}
	}

	return analyzeRequest{
		Program:     source,
		Framework:   framework,
		Skills:      skills,
		Output:      output,
		ProgramHash: opts.ProgramHash,
	}, nil
}

func validateOptions(opts AnalyzeOptions) error {
	if opts.Program == "" {
		return &ValidationError{Message: "Program path is required"}
	}
	if len(opts.Skills) > MaxSkillsPerAnalysis {
		return &ValidationError{Message: fmt.Sprintf("Maximum %d skills per analysis, got %d", MaxSkillsPerAnalysis, len(opts.Skills))}
	}
	if opts.MinScore != nil && (*opts.MinScore < 0 || *opts.MinScore > 100) {
		return &ValidationError{Message: "minScore must be between 0 and 100"}
	}
	return nil
}

func readProgram(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &ValidationError{Message: "Program file not found: " + abs}
	}
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", abs, err)
	}
	if info.Size() > MaxProgramSize {
		return "", &ValidationError{Message: fmt.Sprintf("Program file exceeds maximum size of %d bytes", MaxProgramSize)}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", abs, err)
	}
	return string(data), nil
}

// DetectFramework guesses the framework from source markers, defaulting to anchor.
func DetectFramework(source string) string {
	switch {
	case strings.Contains(source, "#[program]") || strings.Contains(source, "declare_id!"):
		return FrameworkAnchor
	case strings.Contains(source, "entrypoint!"):
		return FrameworkNative
	case strings.Contains(source, "@instruction") || strings.Contains(source, "seahorse"):
		return FrameworkSeahorse
	default:
		return FrameworkAnchor
	}
}

func checkGates(result *AnalysisResult, opts AnalyzeOptions) error {
	if opts.MinScore != nil && result.Score < *opts.MinScore {
		return &ScoreThresholdError{Actual: result.Score, Required: *opts.MinScore, Result: result}
	}
	if len(opts.FailOn) > 0 {
		if failing := types.FilterBySeverity(result.Findings, opts.FailOn); len(failing) > 0 {
			return &SeverityGateError{Severities: slices.Clone(opts.FailOn), Findings: failing, Result: result}
		}
	}
	return nil
}
