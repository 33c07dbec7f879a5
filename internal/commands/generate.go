package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcode/pkg/orchestrator"
)

type generateOptions struct {
	library       string
	output        string
	openAPI       string
	operation     string
	theme         string
	variant       string
	preset        string
	schemaOut     string
	jsonSchemaOut string
	actionOut     string
	componentName string
	submitLabel   string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate [definition]",
		Short: "Generate a form component from a definition",
		Long: `Generate a React form component from a YAML or JSON form definition, or
from the request body of an OpenAPI operation.`,
		Example: `  # Generate a react-hook-form component
  formcode generate contact.yaml -o ContactForm.tsx

  # Target TanStack Form with a theme variant
  formcode generate contact.yaml --library tanstack --theme acme --variant compact

  # Emit a server action module next to a client component
  formcode generate contact.yaml --library server-action -o ContactForm.tsx --action-out actions.ts

  # Import an OpenAPI operation and emit the JSON Schema alongside
  formcode generate --openapi api.json --operation createAccount --jsonschema-out account.schema.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.library, "library", "l", "", "target library (diy, react-hook-form, tanstack-form, server-action)")
	flags.StringVarP(&opts.output, "output", "o", "", "write the component to this file instead of stdout")
	flags.StringVar(&opts.openAPI, "openapi", "", "OpenAPI document to import instead of a definition")
	flags.StringVar(&opts.operation, "operation", "", "operation id to import from --openapi")
	flags.StringVar(&opts.theme, "theme", "", "theme name from the configuration")
	flags.StringVar(&opts.variant, "variant", "", "theme variant")
	flags.StringVar(&opts.preset, "preset", "", "JSON preset applied to the form before generation")
	flags.StringVar(&opts.schemaOut, "schema-out", "", "also write the zod schema source to this file")
	flags.StringVar(&opts.jsonSchemaOut, "jsonschema-out", "", "also write the JSON Schema document to this file")
	flags.StringVar(&opts.actionOut, "action-out", "", "write the server action to this module and import it from the component")
	flags.StringVar(&opts.componentName, "component-name", "", "override the generated component name")
	flags.StringVar(&opts.submitLabel, "submit-label", "", "override the submit button label")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions, args []string) error {
	req := orchestrator.Request{
		Library:      opts.library,
		ThemeName:    opts.theme,
		ThemeVariant: opts.variant,
	}
	switch {
	case len(args) == 1 && opts.openAPI != "":
		return errors.New("pass either a definition or --openapi, not both")
	case len(args) == 1:
		req.DefinitionPath = args[0]
	case opts.openAPI != "":
		if opts.operation == "" {
			return errors.New("--operation is required with --openapi")
		}
		data, err := os.ReadFile(opts.openAPI)
		if err != nil {
			return fmt.Errorf("read openapi document: %w", err)
		}
		req.OpenAPI = data
		req.OperationID = opts.operation
	default:
		return errors.New("a definition file or --openapi is required")
	}

	if opts.actionOut != "" {
		module, err := actionImportPath(opts.output, opts.actionOut)
		if err != nil {
			return err
		}
		req.ActionModule = module
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if opts.componentName != "" || opts.submitLabel != "" {
		tokens := cfg.CodegenTokens()
		if opts.componentName != "" {
			tokens.ComponentName = opts.componentName
		}
		if opts.submitLabel != "" {
			tokens.SubmitLabel = opts.submitLabel
		}
		req.Tokens = &tokens
	}

	orch, err := newOrchestrator(cfg, opts.preset)
	if err != nil {
		return err
	}
	res, err := orch.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	if opts.actionOut != "" && res.Action == nil {
		return fmt.Errorf("library %s does not emit a server action", res.Library)
	}

	if err := writeOutput(cmd.OutOrStdout(), opts.output, res.Code); err != nil {
		return err
	}
	if opts.actionOut != "" {
		if err := writeOutput(cmd.OutOrStdout(), opts.actionOut, res.Action); err != nil {
			return err
		}
	}
	if opts.schemaOut != "" {
		if err := writeOutput(cmd.OutOrStdout(), opts.schemaOut, ensureNewline(res.SchemaSource)); err != nil {
			return err
		}
	}
	if opts.jsonSchemaOut != "" {
		if err := writeOutput(cmd.OutOrStdout(), opts.jsonSchemaOut, res.Interchange); err != nil {
			return err
		}
	}
	if opts.output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s component to %s\n", res.Library, opts.output)
	}
	return nil
}

// actionImportPath returns the module specifier the component at output uses
// to import the action written to actionOut.
func actionImportPath(output, actionOut string) (string, error) {
	if actionOut == "-" {
		return "", errors.New("--action-out needs a file path")
	}
	base := "."
	if output != "" && output != "-" {
		base = filepath.Dir(output)
	}
	rel, err := filepath.Rel(base, actionOut)
	if err != nil {
		return "", fmt.Errorf("resolve --action-out: %w", err)
	}
	rel = filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel, nil
}
