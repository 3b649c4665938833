// ABOUTME: health subcommand: pings the API and reports status, version and latency class
// ABOUTME: Exits non-zero when the server is unreachable or not healthy

package main

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API health and round-trip latency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			res, err := client.Ping(cmd.Context())
			if err != nil {
				return err
			}
			if a.flags.asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"health":  res.Health,
					"rtt_ms":  res.RTT.Milliseconds(),
					"latency": res.Latency.String(),
				})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s (%s, %s)\n", res.Health.Status, res.Health.Version, res.RTT.Round(time.Millisecond), res.Latency)
			for _, name := range slices.Sorted(maps.Keys(res.Health.Services)) {
				fmt.Fprintf(w, "  %-10s %s\n", name, res.Health.Services[name])
			}
			if res.Health.Status != "healthy" {
				return &exitError{code: 1, err: fmt.Errorf("server is %s", res.Health.Status)}
			}
			return nil
		},
	}
}
