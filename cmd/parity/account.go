// ABOUTME: login, logout and config subcommands
// ABOUTME: Keys are stored per API base URL in the credentials file

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paritydotcx/paritycx/internal/config"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <api-key>",
		Short: "Save an API key for the current base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := config.LoadCredentials("")
			if err != nil {
				return err
			}
			base := a.baseURL()
			creds.SetKey(base, args[0])
			if err := creds.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved key for %s\n", base)
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved API key for the current base URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds, err := config.LoadCredentials("")
			if err != nil {
				return err
			}
			base := a.baseURL()
			if !creds.Remove(base) {
				fmt.Fprintf(cmd.OutOrStdout(), "no key saved for %s\n", base)
				return nil
			}
			if err := creds.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed key for %s\n", base)
			return nil
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.Explain(a.settings))
		},
	}
}
