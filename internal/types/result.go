// ABOUTME: Wire types for findings and analysis results shared by server, checks and SDK
// ABOUTME: Kept apart from the scoring helpers for easyjson codegen (zero-reflection encoding)

//go:generate easyjson -all result.go

package types

import "time"

// Location pins a finding to a line of a file.
type Location struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Instruction string `json:"instruction,omitempty"`
}

// Finding is one detected issue instance.
type Finding struct {
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Location       Location `json:"location"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
	Pattern        string   `json:"pattern"`
}

// Metadata describes how an analysis was produced.
type Metadata struct {
	Framework  string    `json:"framework"`
	ProgramID  string    `json:"programId,omitempty"`
	AnalyzedAt time.Time `json:"analyzedAt"`
	Duration   int64     `json:"duration"` // milliseconds
}

// AnalysisResult is the output of one analysis call.
type AnalysisResult struct {
	Score    int       `json:"score"`
	Findings []Finding `json:"findings"`
	Summary  string    `json:"summary"`
	Skills   []string  `json:"skills"`
	Metadata Metadata  `json:"metadata"`
}
