// ABOUTME: CLI entry point for parity: API server, analysis client and registry tools
// ABOUTME: Loads layered config, initializes logging, dispatches cobra subcommands

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/paritydotcx/paritycx/internal/config"
	pxlog "github.com/paritydotcx/paritycx/internal/log"
	"github.com/paritydotcx/paritycx/pkg/sdk"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// exitError carries a process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// cliFlags are the persistent flags shared by every subcommand.
type cliFlags struct {
	debug   bool
	apiKey  string
	baseURL string
	asJSON  bool
}

// app bundles settings and flags resolved before a subcommand runs.
type app struct {
	flags    cliFlags
	settings *config.Settings
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	pxlog.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "parity",
		Short:         "Pattern scanner for Solana programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&a.flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&a.flags.apiKey, "api-key", "", "API key (overrides PARITY_API_KEY)")
	pf.StringVar(&a.flags.baseURL, "base-url", "", "API base URL (overrides PARITY_BASE_URL)")
	pf.BoolVar(&a.flags.asJSON, "json", false, "print raw JSON")

	root.AddCommand(
		newServeCmd(a),
		newAnalyzeCmd(a),
		newSkillsCmd(a),
		newProgramsCmd(a),
		newHealthCmd(a),
		newTokenCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	settings, err := config.Load(cwd)
	if err != nil {
		return err
	}
	a.settings = settings

	if err := pxlog.Init(a.flags.debug); err != nil {
		return err
	}
	if !a.flags.debug {
		pxlog.SetLevel(pxlog.ParseLevel(settings.LogLevel))
	}
	return nil
}

func (a *app) baseURL() string {
	if a.flags.baseURL != "" {
		return a.flags.baseURL
	}
	return a.settings.BaseURL
}

// client builds an SDK client from settings and flag overrides. Without a
// configured key it falls back to the key saved by "parity login".
func (a *app) client() (*sdk.Client, error) {
	base := a.baseURL()
	key := a.settings.APIKey
	if a.flags.apiKey != "" {
		key = a.flags.apiKey
	}
	if key == "" {
		creds, err := config.LoadCredentials("")
		if err != nil {
			return nil, err
		}
		key = creds.Key(base)
	}
	return sdk.New(
		sdk.WithAPIKey(key),
		sdk.WithBaseURL(base),
		sdk.WithRetries(a.settings.Retries),
		sdk.WithRetryDelay(time.Duration(a.settings.RetryDelayMS)*time.Millisecond),
		sdk.WithTimeout(time.Duration(a.settings.TimeoutMS)*time.Millisecond),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "parity %s (%s) built %s\n", version, commit, date)
		},
	}
}
