// ABOUTME: POST /v1/analyze: validates the request, runs the engine and renders the chosen format
// ABOUTME: Analyses of registered program hashes are recorded in the registry

package server

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/paritydotcx/paritycx/internal/analysis"
	"github.com/paritydotcx/paritycx/internal/log"
	"github.com/paritydotcx/paritycx/internal/registry"
	"github.com/paritydotcx/paritycx/internal/report"
	"github.com/paritydotcx/paritycx/internal/types"
)

// Request limits and enumerations for /v1/analyze.
const (
	MaxSkills      = 8
	UploadedSource = "uploaded-program.rs"
)

// Output formats.
const (
	OutputJSON     = "json"
	OutputSARIF    = "sarif"
	OutputMarkdown = "markdown"
	OutputText     = "text"
)

var (
	// Frameworks lists the accepted framework values.
	Frameworks    = []string{"anchor", "native", "seahorse", "steel"}
	outputFormats = []string{OutputJSON, OutputSARIF, OutputMarkdown, OutputText}
	defaultSkills = []string{types.SkillSecurityAudit}
)

// AnalyzeRequest is the /v1/analyze body. Pointer and nil fields take defaults.
type AnalyzeRequest struct {
	Program     string   `json:"program"`
	Framework   *string  `json:"framework"`
	Skills      []string `json:"skills"`
	Output      *string  `json:"output"`
	ProgramHash string   `json:"programHash,omitempty"`
}

// normalized is a validated AnalyzeRequest with defaults applied.
type normalized struct {
	program     string
	framework   string
	skills      []string
	output      string
	programHash string
}

func (req AnalyzeRequest) validate() (normalized, []Issue) {
	var issues []Issue
	n := normalized{
		program:     req.Program,
		framework:   analysis.DefaultFramework,
		skills:      defaultSkills,
		output:      OutputJSON,
		programHash: req.ProgramHash,
	}

	if req.Program == "" {
		issues = append(issues, Issue{Path: "program", Message: "Program source is required"})
	}
	if req.Framework != nil {
		if !slices.Contains(Frameworks, *req.Framework) {
			issues = append(issues, Issue{Path: "framework", Message: enumMessage(Frameworks, *req.Framework)})
		}
		n.framework = *req.Framework
	}
	if req.Skills != nil {
		if len(req.Skills) < 1 || len(req.Skills) > MaxSkills {
			issues = append(issues, Issue{
				Path:    "skills",
				Message: fmt.Sprintf("Expected between 1 and %d skills, received %d", MaxSkills, len(req.Skills)),
			})
		}
		for i, s := range req.Skills {
			if strings.TrimSpace(s) == "" {
				issues = append(issues, Issue{Path: fmt.Sprintf("skills.%d", i), Message: "Skill name must not be empty"})
			}
		}
		n.skills = req.Skills
	}
	if req.Output != nil {
		if !slices.Contains(outputFormats, *req.Output) {
			issues = append(issues, Issue{Path: "output", Message: enumMessage(outputFormats, *req.Output)})
		}
		n.output = *req.Output
	}
	return n, issues
}

func enumMessage(allowed []string, got string) string {
	return fmt.Sprintf("Invalid enum value. Expected '%s', received '%s'", strings.Join(allowed, "' | '"), got)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	n, issues := req.validate()
	if len(issues) > 0 {
		writeError(w, r, NewValidationError("Validation failed", issues))
		return
	}

	result, err := s.engine.Analyze(r.Context(), analysis.Request{
		Program:   n.program,
		Framework: n.framework,
		Skills:    n.skills,
		ProgramID: n.programHash,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if n.programHash != "" {
		err := s.store.RecordAnalysis(r.Context(), n.programHash, result.Score)
		switch {
		case errors.Is(err, registry.ErrNotFound):
			log.Debug("analysis of unregistered program %s", n.programHash)
		case err != nil:
			log.Warn("recording analysis for %s: %v", n.programHash, err)
		}
	}

	switch n.output {
	case OutputSARIF:
		writeJSON(w, http.StatusOK, report.SARIF(result, UploadedSource))
	case OutputMarkdown:
		writeText(w, "text/markdown", report.Markdown(result))
	case OutputText:
		writeText(w, "text/plain", report.Text(result))
	default:
		writeJSON(w, http.StatusOK, result)
	}
}
