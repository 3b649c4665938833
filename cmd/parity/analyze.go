// ABOUTME: analyze subcommand: submits a program file and renders the result
// ABOUTME: Gate violations (--min-score, --fail-on) exit with status 2 after printing the report

package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paritydotcx/paritycx/pkg/sdk"
)

const exitGate = 2

type analyzeFlags struct {
	framework   string
	skills      []string
	minScore    int
	failOn      []string
	format      string
	programHash string
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var f analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze <program.rs>",
		Short: "Analyze a program for vulnerability patterns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd, args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			res, err := client.Analyze(cmd.Context(), opts)
			var scoreErr *sdk.ScoreThresholdError
			var gateErr *sdk.SeverityGateError
			switch {
			case errors.As(err, &scoreErr):
				res = scoreErr.Result
			case errors.As(err, &gateErr):
				res = gateErr.Result
			case err != nil:
				return err
			}

			format := f.format
			if a.flags.asJSON {
				format = "json"
			}
			if rerr := writeResult(cmd, res, format, args[0]); rerr != nil {
				return rerr
			}
			if err != nil {
				return &exitError{code: exitGate, err: err}
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.framework, "framework", "", "framework (anchor, native, seahorse, steel); detected when empty")
	fl.StringSliceVar(&f.skills, "skills", nil, "skills to run (default security-audit)")
	fl.IntVar(&f.minScore, "min-score", 0, "fail when the score is below this value")
	fl.StringSliceVar(&f.failOn, "fail-on", nil, "fail when findings have any of these severities")
	fl.StringVar(&f.format, "format", "text", "output format: text, markdown, sarif, json")
	fl.StringVar(&f.programHash, "program-hash", "", "record the analysis against a registered program")
	return cmd
}

var outputFormats = []string{"text", "markdown", "md", "sarif", "json"}

func (f analyzeFlags) options(cmd *cobra.Command, path string) (sdk.AnalyzeOptions, error) {
	if !slices.Contains(outputFormats, f.format) {
		return sdk.AnalyzeOptions{}, fmt.Errorf("--format: unknown format %q", f.format)
	}
	opts := sdk.AnalyzeOptions{
		Program:     path,
		Framework:   f.framework,
		Skills:      f.skills,
		ProgramHash: f.programHash,
	}
	if cmd.Flags().Changed("min-score") {
		n := f.minScore
		opts.MinScore = &n
	}
	for _, s := range f.failOn {
		sev := sdk.Severity(strings.ToLower(strings.TrimSpace(s)))
		if !sev.Valid() {
			return opts, fmt.Errorf("--fail-on: unknown severity %q", s)
		}
		opts.FailOn = append(opts.FailOn, sev)
	}
	return opts, nil
}

func writeResult(cmd *cobra.Command, res *sdk.AnalysisResult, format, programPath string) error {
	w := cmd.OutOrStdout()
	switch format {
	case "json":
		return writeJSON(w, res)
	case "sarif":
		return writeJSON(w, sdk.FormatFindingsAsSARIF(res.Findings, programPath))
	case "markdown", "md":
		_, err := fmt.Fprint(w, renderMarkdown(w, sdk.FormatFindingsAsMarkdown(res.Findings)))
		return err
	case "text":
		writeFindingsText(w, res)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
