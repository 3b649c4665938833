// ABOUTME: Typed SDK errors: validation, score threshold, severity gate and API failures
// ABOUTME: Use errors.As to recover the details each error carries

package sdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError reports invalid caller input detected before any request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ScoreThresholdError reports a successful analysis scoring below the floor.
type ScoreThresholdError struct {
	Actual   int
	Required int
	Result   *AnalysisResult
}

func (e *ScoreThresholdError) Error() string {
	return fmt.Sprintf("Analysis score %d is below the minimum threshold %d", e.Actual, e.Required)
}

// SeverityGateError reports findings at severities the caller refused.
type SeverityGateError struct {
	Severities []Severity
	Findings   []Finding
	Result     *AnalysisResult
}

func (e *SeverityGateError) Error() string {
	names := make([]string, len(e.Severities))
	for i, s := range e.Severities {
		names[i] = string(s)
	}
	return fmt.Sprintf("Found %d findings with severity: %s", len(e.Findings), strings.Join(names, ", "))
}

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int             `json:"status"`
	Name    string          `json:"error"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("parity API: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("parity API: %d %s: %s", e.Status, e.Name, e.Message)
}

// newAPIError decodes an error envelope, falling back to the raw body.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{}
	if err := json.Unmarshal(body, e); err != nil || (e.Message == "" && e.Name == "") {
		e = &APIError{Message: strings.TrimSpace(string(body))}
	}
	e.Status = status
	if e.Name == "" {
		e.Name = http.StatusText(status)
	}
	return e
}

// Suggestions returns the "did you mean" names attached to a 404, if any.
func (e *APIError) Suggestions() []string {
	var d struct {
		Suggestions []string `json:"suggestions"`
	}
	if len(e.Details) == 0 || json.Unmarshal(e.Details, &d) != nil {
		return nil
	}
	return d.Suggestions
}
