// ABOUTME: token subcommand: issues an HS256 bearer token signed with the configured secret
// ABOUTME: Intended for local development against a server sharing the same JWT secret

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/paritydotcx/paritycx/internal/server"
)

func newTokenCmd(a *app) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue a signed API token for subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth := server.NewAuthenticator(a.settings.JWTSecret)
			tok, err := auth.IssueToken(args[0], ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
