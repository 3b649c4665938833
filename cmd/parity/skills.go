// ABOUTME: skills subcommands: list, get, chain and offline SKILL.md validation
// ABOUTME: Unknown skill lookups print the server's closest-name suggestions

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paritydotcx/paritycx/pkg/sdk"
)

func newSkillsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Inspect and validate analysis skills",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List available skills",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				client, err := a.client()
				if err != nil {
					return err
				}
				defs, err := client.Skills.List(cmd.Context())
				if err != nil {
					return err
				}
				if a.flags.asJSON {
					return writeJSON(cmd.OutOrStdout(), defs)
				}
				rows := make([][]string, 0, len(defs))
				for _, d := range defs {
					rows = append(rows, []string{d.Name, d.Version, d.Description})
				}
				writeTable(cmd.OutOrStdout(), []string{"NAME", "VERSION", "DESCRIPTION"}, rows)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <name>",
			Short: "Show one skill definition",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.client()
				if err != nil {
					return err
				}
				def, err := client.Skills.Get(cmd.Context(), args[0])
				var apiErr *sdk.APIError
				if errors.As(err, &apiErr) && len(apiErr.Suggestions()) > 0 {
					return fmt.Errorf("%w (did you mean: %s?)", err, strings.Join(apiErr.Suggestions(), ", "))
				}
				if err != nil {
					return err
				}
				if a.flags.asJSON {
					return writeJSON(cmd.OutOrStdout(), def)
				}
				md, err := sdk.SerializeSkill(def)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(cmd.OutOrStdout(), md))
				return nil
			},
		},
		&cobra.Command{
			Use:   "chain <name>",
			Short: "Expand a composite skill into its leaf skills",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.client()
				if err != nil {
					return err
				}
				chain := client.Skills.Chain(args[0])
				if a.flags.asJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"skill": args[0], "chain": chain})
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(chain, " -> "))
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate <SKILL.md>",
			Short: "Validate a SKILL.md file without contacting the server",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("reading %s: %w", args[0], err)
				}
				res := sdk.ValidateSkill(string(data))
				if a.flags.asJSON {
					if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
						return err
					}
				} else if res.Valid {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", args[0])
				} else {
					for _, e := range res.Errors {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], e)
					}
				}
				if !res.Valid {
					return &exitError{code: 1, err: fmt.Errorf("%s has %d problems", args[0], len(res.Errors))}
				}
				return nil
			},
		},
	)
	return cmd
}
