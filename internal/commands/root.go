// Package commands contains all CLI command definitions.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcode/internal/config"
	"github.com/goliatone/go-formcode/internal/version"
	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/orchestrator"
)

const configFlag = "config"

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "formcode",
		Short:         "Generate React form code from form definitions",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String(configFlag, config.FileName, "path to the configuration file")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newSchemaCmd(),
		newJSONSchemaCmd(),
		newLibrariesCmd(),
		newNewCmd(nil),
		newImportOpenAPICmd(),
		newLintCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Info())
			return err
		},
	}
}

// loadConfig reads the file named by --config. A missing file yields the
// defaults unless the flag was set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString(configFlag)
	if cmd.Flags().Changed(configFlag) {
		return config.Load(path)
	}
	return config.LoadOrDefault(path)
}

// newOrchestrator builds the pipeline from configuration. preset, when set,
// names a JSON preset file applied to every form.
func newOrchestrator(cfg *config.Config, preset string) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{orchestrator.WithTokens(cfg.CodegenTokens())}

	if cfg.Library != "" {
		lib, err := codegen.ParseLibrary(cfg.Library)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithDefaultLibrary(lib))
	}

	selector, err := cfg.ThemeSelector()
	if err != nil {
		return nil, fmt.Errorf("load themes: %w", err)
	}
	if selector != nil {
		options = append(options, orchestrator.WithThemeSelector(selector))
	}

	if preset != "" {
		data, err := os.ReadFile(preset) //nolint:gosec // path is provided by caller
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		transformer, err := orchestrator.NewJSONPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(transformer))
	}
	return orchestrator.New(options...), nil
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // generated source is not secret
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func ensureNewline(s string) []byte {
	if strings.HasSuffix(s, "\n") {
		return []byte(s)
	}
	return []byte(s + "\n")
}
