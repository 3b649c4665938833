// ABOUTME: Handlers for skills, context, programs and health endpoints
// ABOUTME: Each handler maps collaborator errors onto the API error envelope

package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/paritydotcx/paritycx/internal/knowledge"
	"github.com/paritydotcx/paritycx/internal/registry"
	"github.com/paritydotcx/paritycx/internal/report"
)

// Pagination bounds for GET /v1/programs.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

func (s *Server) handleListSkills(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.List())
}

func (s *Server) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	def, ok := s.catalog.Get(name)
	if !ok {
		var details any
		if sugg := s.catalog.Suggest(name); len(sugg) > 0 {
			details = map[string][]string{"suggestions": sugg}
		}
		writeError(w, r, NewNotFoundError(fmt.Sprintf("Skill '%s' not found", name), details))
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (s *Server) handleSkillChain(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	writeJSON(w, http.StatusOK, map[string]any{
		"skill": name,
		"chain": s.catalog.Chain(name),
	})
}

func (s *Server) handleContextQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.knowledge.Query(knowledge.Query{
		Pattern:     q.Get("pattern"),
		Framework:   q.Get("framework"),
		Severity:    q.Get("severity"),
		PatternType: q.Get("pattern_type"),
	}))
}

func (s *Server) handleContextRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.knowledge.Rules(r.URL.Query().Get("pattern_type")))
}

func (s *Server) handleContextFindings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.knowledge.AuditFindings(r.URL.Query().Get("severity")))
}

func (s *Server) handleContextPatterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.knowledge.FrameworkPatterns(r.URL.Query().Get("framework")))
}

func (s *Server) handleContextCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.knowledge.Categories())
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ProgramList is the GET /v1/programs body.
type ProgramList struct {
	Data       []registry.Program `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// RegistryStats is the GET /v1/programs/stats body.
type RegistryStats struct {
	TotalPrograms int     `json:"totalPrograms"`
	TotalAnalyses int     `json:"totalAnalyses"`
	TotalSkills   int     `json:"totalSkills"`
	TotalAuditors int     `json:"totalAuditors"`
	TotalPatterns int     `json:"totalPatterns"`
	VerifiedCount int     `json:"verifiedCount"`
	AverageScore  float64 `json:"averageScore"`
}

// CreateProgramRequest is the POST /v1/programs body.
type CreateProgramRequest struct {
	ProgramHash string `json:"programHash"`
	Framework   string `json:"framework"`
	MetadataURI string `json:"metadataUri"`
}

// queryInt parses a positive integer parameter, returning def otherwise.
func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := min(queryInt(r, "limit", DefaultPageLimit), MaxPageLimit)

	res, err := s.store.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProgramList{
		Data: res.Programs,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      res.Total,
			TotalPages: int(math.Ceil(float64(res.Total) / float64(limit))),
		},
	})
}

func (s *Server) handleProgramStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RegistryStats{
		TotalPrograms: st.TotalPrograms,
		TotalAnalyses: st.TotalAnalyses,
		TotalSkills:   len(s.catalog.Names()),
		TotalAuditors: 0,
		TotalPatterns: len(s.knowledge.Rules("")),
		VerifiedCount: st.VerifiedCount,
		AverageScore:  st.AverageScore,
	})
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	hash := r.PathValue("hash")
	p, err := s.store.Get(r.Context(), hash)
	if errors.Is(err, registry.ErrNotFound) {
		writeError(w, r, NewNotFoundError(fmt.Sprintf("Program with hash '%s' not found", hash), nil))
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req CreateProgramRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.ProgramHash == "" || req.Framework == "" {
		writeError(w, r, NewValidationError("programHash and framework are required", nil))
		return
	}

	p := registry.NewProgram(req.ProgramHash, req.Framework, req.MetadataURI, UserFromContext(r.Context()), s.now())
	created, err := s.store.Create(r.Context(), p)
	if errors.Is(err, registry.ErrDuplicate) {
		writeError(w, r, NewConflictError("Program already registered"))
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Health is the GET /v1/health body.
type Health struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    int64             `json:"uptime"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Readiness is the GET /v1/health/ready body.
type Readiness struct {
	Ready  bool            `json:"ready"`
	Checks map[string]bool `json:"checks"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	now := s.now()
	writeJSON(w, http.StatusOK, Health{
		Status:    "healthy",
		Version:   report.ToolVersion,
		Uptime:    now.Sub(s.started).Milliseconds(),
		Timestamp: now.UTC().Format(report.TimestampLayout),
		Services: map[string]string{
			"api":      "operational",
			"analysis": "operational",
			"context":  "operational",
		},
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	_, err := s.store.Stats(r.Context())
	checks := map[string]bool{
		"api":      true,
		"skills":   len(s.catalog.Names()) > 0,
		"context":  true,
		"registry": err == nil,
	}
	ready := true
	for _, ok := range checks {
		ready = ready && ok
	}
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, Readiness{Ready: ready, Checks: checks})
}
