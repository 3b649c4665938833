// ABOUTME: programs subcommands: list, get, register and registry stats
// ABOUTME: Output is an aligned table by default, raw JSON with --json

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/paritydotcx/paritycx/pkg/sdk"
)

func newProgramsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "programs",
		Short: "Query the program registry",
	}

	var page, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List registered programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			res, err := client.ListPrograms(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			if a.flags.asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			rows := make([][]string, 0, len(res.Data))
			for _, p := range res.Data {
				rows = append(rows, programRow(p))
			}
			w := cmd.OutOrStdout()
			writeTable(w, programHeader, rows)
			fmt.Fprintf(w, "\npage %d of %d (%d programs)\n", res.Pagination.Page, res.Pagination.TotalPages, res.Pagination.Total)
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&limit, "limit", 20, "programs per page (max 100)")

	get := &cobra.Command{
		Use:   "get <hash>",
		Short: "Show one registered program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			p, err := client.GetProgram(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.flags.asJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			writeTable(cmd.OutOrStdout(), programHeader, [][]string{programRow(*p)})
			return nil
		},
	}

	var framework, metadataURI string
	register := &cobra.Command{
		Use:   "register <hash>",
		Short: "Register a program hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			p, err := client.RegisterProgram(cmd.Context(), args[0], framework, metadataURI)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), p)
		},
	}
	register.Flags().StringVar(&framework, "framework", sdk.FrameworkAnchor, "program framework")
	register.Flags().StringVar(&metadataURI, "metadata-uri", "", "metadata URI")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show registry statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			st, err := client.RegistryStats(cmd.Context())
			if err != nil {
				return err
			}
			if a.flags.asJSON {
				return writeJSON(cmd.OutOrStdout(), st)
			}
			writeTable(cmd.OutOrStdout(), []string{"METRIC", "VALUE"}, [][]string{
				{"programs", strconv.Itoa(st.TotalPrograms)},
				{"analyses", strconv.Itoa(st.TotalAnalyses)},
				{"verified", strconv.Itoa(st.VerifiedCount)},
				{"average score", strconv.FormatFloat(st.AverageScore, 'f', 2, 64)},
				{"skills", strconv.Itoa(st.TotalSkills)},
				{"patterns", strconv.Itoa(st.TotalPatterns)},
			})
			return nil
		},
	}

	cmd.AddCommand(list, get, register, stats)
	return cmd
}

var programHeader = []string{"HASH", "FRAMEWORK", "OWNER", "ANALYSES", "SCORE", "TIER"}

func programRow(p sdk.Program) []string {
	tier := string(sdk.TierForScore(p.LatestScore))
	if p.AnalysisCount == 0 || tier == "" {
		tier = "-"
	}
	return []string{
		p.ProgramHash,
		p.Framework,
		p.Owner,
		strconv.Itoa(p.AnalysisCount),
		strconv.Itoa(p.LatestScore),
		tier,
	}
}
