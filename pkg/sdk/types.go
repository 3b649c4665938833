// ABOUTME: Wire types returned by the parity API, re-exported for SDK callers
// ABOUTME: Analysis and skill types alias the shared definitions; registry types are SDK-local

package sdk

import (
	"time"

	"github.com/paritydotcx/paritycx/internal/knowledge"
	"github.com/paritydotcx/paritycx/internal/types"
)

type (
	Severity        = types.Severity
	Location        = types.Location
	Finding         = types.Finding
	Metadata        = types.Metadata
	AnalysisResult  = types.AnalysisResult
	FindingCounts   = types.FindingCounts
	SkillDefinition = types.SkillDefinition
	SkillInput      = types.SkillInput
	SkillOutput     = types.SkillOutput

	StaticRule       = knowledge.Rule
	AuditFinding     = knowledge.AuditFinding
	FrameworkPattern = knowledge.FrameworkPattern
	ContextResult    = knowledge.Result
)

const (
	SeverityCritical = types.SeverityCritical
	SeverityHigh     = types.SeverityHigh
	SeverityMedium   = types.SeverityMedium
	SeverityInfo     = types.SeverityInfo
	SeverityPass     = types.SeverityPass
)

// Program is a registered program as reported by the registry.
type Program struct {
	ID            string    `json:"id"`
	Owner         string    `json:"owner"`
	ProgramHash   string    `json:"programHash"`
	Framework     string    `json:"framework"`
	MetadataURI   string    `json:"metadataUri"`
	RegisteredAt  time.Time `json:"registeredAt"`
	AnalysisCount int       `json:"analysisCount"`
	LatestScore   int       `json:"latestScore"`
	IsVerified    bool      `json:"isVerified"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ProgramList struct {
	Data       []Program  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type RegistryStats struct {
	TotalPrograms int     `json:"totalPrograms"`
	TotalAnalyses int     `json:"totalAnalyses"`
	TotalSkills   int     `json:"totalSkills"`
	TotalAuditors int     `json:"totalAuditors"`
	TotalPatterns int     `json:"totalPatterns"`
	VerifiedCount int     `json:"verifiedCount"`
	AverageScore  float64 `json:"averageScore"`
}

// Health is the service health report.
type Health struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    int64             `json:"uptime"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
