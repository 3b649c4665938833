// ABOUTME: SARIF 2.1.0 document model and the server-side SARIF rendering of an analysis
// ABOUTME: Rules are deduplicated by pattern; the first finding of a pattern supplies its text

package report

import "github.com/paritydotcx/paritycx/internal/types"

// SARIF constants for the parity tool driver.
const (
	SARIFSchema    = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"
	SARIFVersion   = "2.1.0"
	ToolName       = "parity"
	ToolVersion    = "0.3.0"
	InformationURI = "https://parity.cx"
)

// Log is a SARIF log with one or more runs.
type Log struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run is a single tool invocation.
type Run struct {
	Tool      Tool       `json:"tool"`
	Results   []Result   `json:"results"`
	Artifacts []Artifact `json:"artifacts,omitempty"`
}

// Tool wraps the driver description.
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver identifies the analyzer and the rules it can report.
type Driver struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	InformationURI string `json:"informationUri"`
	Rules          []Rule `json:"rules"`
}

// Rule describes one pattern.
type Rule struct {
	ID                   string         `json:"id"`
	ShortDescription     Message        `json:"shortDescription"`
	FullDescription      Message        `json:"fullDescription"`
	DefaultConfiguration *Configuration `json:"defaultConfiguration,omitempty"`
}

// Configuration holds a rule's default reporting level.
type Configuration struct {
	Level string `json:"level"`
}

// Message is a SARIF text message.
type Message struct {
	Text string `json:"text"`
}

// Result is one reported finding.
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
	Fixes     []Fix      `json:"fixes,omitempty"`
}

// Location points at a region of an artifact.
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation combines an artifact and a region.
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation names a file.
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region is a line span; only the start line is reported.
type Region struct {
	StartLine int `json:"startLine"`
}

// Fix is a textual remediation.
type Fix struct {
	Description Message `json:"description"`
}

// Artifact lists a scanned file.
type Artifact struct {
	Location ArtifactLocation `json:"location"`
}

// Level maps a severity to a SARIF level.
func Level(s types.Severity) string {
	if s.IsError() {
		return "error"
	}
	return "warning"
}

// NewLog wraps a single run in a SARIF log.
func NewLog(run Run) *Log {
	return &Log{
		Schema:  SARIFSchema,
		Version: SARIFVersion,
		Runs:    []Run{run},
	}
}

// Rules returns one rule per distinct pattern in first-occurrence order.
// withDefaults attaches defaultConfiguration.level from the first finding.
func Rules(findings []types.Finding, withDefaults bool) []Rule {
	seen := make(map[string]bool)
	rules := make([]Rule, 0)
	for _, f := range findings {
		if seen[f.Pattern] {
			continue
		}
		seen[f.Pattern] = true
		r := Rule{
			ID:               f.Pattern,
			ShortDescription: Message{Text: f.Title},
			FullDescription:  Message{Text: f.Description},
		}
		if withDefaults {
			r.DefaultConfiguration = &Configuration{Level: Level(f.Severity)}
		}
		rules = append(rules, r)
	}
	return rules
}

// NewResult builds a SARIF result for f reported against uri.
func NewResult(f types.Finding, uri string) Result {
	return Result{
		RuleID:  f.Pattern,
		Level:   Level(f.Severity),
		Message: Message{Text: f.Description},
		Locations: []Location{{
			PhysicalLocation: PhysicalLocation{
				ArtifactLocation: ArtifactLocation{URI: uri},
				Region:           Region{StartLine: f.Location.Line},
			},
		}},
	}
}

// NewDriver returns the parity driver with the given rules.
func NewDriver(rules []Rule) Driver {
	return Driver{
		Name:           ToolName,
		Version:        ToolVersion,
		InformationURI: InformationURI,
		Rules:          rules,
	}
}

// SARIF renders result as a SARIF log, reporting every finding against programPath.
func SARIF(result types.AnalysisResult, programPath string) *Log {
	results := make([]Result, 0, len(result.Findings))
	for _, f := range result.Findings {
		results = append(results, NewResult(f, programPath))
	}
	return NewLog(Run{
		Tool:    Tool{Driver: NewDriver(Rules(result.Findings, false))},
		Results: results,
	})
}
