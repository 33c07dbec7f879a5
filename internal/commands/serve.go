package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcode/internal/server"
	"github.com/goliatone/go-formcode/internal/version"
	"github.com/goliatone/go-formcode/pkg/definition"
	"github.com/goliatone/go-formcode/pkg/stepper"
	"github.com/goliatone/go-formcode/pkg/stepper/boltstore"
)

func newServeCmd() *cobra.Command {
	var (
		addr       string
		formsDir   string
		progressDB string
		preset     string
		debug      bool
	)
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the generation and multi-step progress API",
		Example: `  formcode serve --forms forms/ --progress-db progress.db`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("progress-db") {
				cfg.Server.ProgressDB = progressDB
			}
			maxAge, err := cfg.MaxAge()
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			var forms *definition.Catalog
			if formsDir != "" {
				forms, err = definition.LoadFS(os.DirFS(formsDir))
				if err != nil {
					return err
				}
				logger.Info("loaded form definitions", "dir", formsDir, "count", forms.Len())
			}

			var store stepper.Store = stepper.NewMemoryStore()
			if cfg.Server.ProgressDB != "" {
				bolt, err := boltstore.Open(cfg.Server.ProgressDB)
				if err != nil {
					return fmt.Errorf("open progress store: %w", err)
				}
				defer func() {
					if err := bolt.Close(); err != nil {
						logger.Error("close progress store", "error", err)
					}
				}()
				store = bolt
			}

			orch, err := newOrchestrator(cfg, preset)
			if err != nil {
				return err
			}

			srv := server.New(
				server.WithLogger(logger),
				server.WithOrchestrator(orch),
				server.WithForms(forms),
				server.WithStore(store),
				server.WithKeyPrefix(cfg.Server.KeyPrefix),
				server.WithMaxAge(maxAge),
				server.WithVersion(version.Short()),
			)
			return srv.Run(cmd.Context(), cfg.Server.Addr)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", ":8080", "listen address")
	flags.StringVar(&formsDir, "forms", "", "directory of definitions served by the steps endpoints")
	flags.StringVar(&progressDB, "progress-db", "", "bbolt file for multi-step progress (in memory when empty)")
	flags.StringVar(&preset, "preset", "", "JSON preset applied to every generated form")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}
