// ABOUTME: serve subcommand: opens the registry, loads custom skills and runs the HTTP API
// ABOUTME: Custom skill directories are watched for changes; shuts down on SIGINT/SIGTERM

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/paritydotcx/paritycx/internal/config"
	pxlog "github.com/paritydotcx/paritycx/internal/log"
	"github.com/paritydotcx/paritycx/internal/registry"
	"github.com/paritydotcx/paritycx/internal/server"
	"github.com/paritydotcx/paritycx/internal/skills"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the parity API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := *a.settings
			if addr != "" {
				settings.Addr = addr
			}

			store, err := registry.Open(cmd.Context(), settings.Registry.Driver, settings.Registry.DSN)
			if err != nil {
				return err
			}
			defer store.Close()

			cwd, _ := os.Getwd()
			dirs := config.SkillsDirs(cwd, settings.SkillDirs...)
			catalog := skills.NewCatalog()
			if n := skills.LoadInto(catalog, dirs); n > 0 {
				pxlog.Info("loaded %d custom skills", n)
			}
			for _, c := range skills.DetectCollisions(dirs) {
				pxlog.Warn("skill collision: %s", c)
			}
			if watch {
				go skills.NewWatcher(catalog, dirs).Run(cmd.Context())
			}

			pxlog.With("driver", settings.Registry.Driver, "rate_limit", settings.RateLimit).
				Infow("starting server", "addr", settings.Addr)

			srv := server.New(settings, server.WithStore(store), server.WithCatalog(catalog))
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides PARITY_ADDR/PORT)")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload custom skills when SKILL.md files change")
	return cmd
}
