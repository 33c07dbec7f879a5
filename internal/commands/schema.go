package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcode/pkg/definition"
	"github.com/goliatone/go-formcode/pkg/jsonschema"
	"github.com/goliatone/go-formcode/pkg/schema"
)

func newSchemaCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "schema <definition>",
		Short: "Print the zod validation schema of a definition",
		Example: `  formcode schema contact.yaml
  formcode schema contact.yaml -o contact.schema.ts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := definition.Load(args[0])
			if err != nil {
				return err
			}
			source := schema.Source(schema.Infer(form.AllEntries()))
			return writeOutput(cmd.OutOrStdout(), output, []byte(source))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func newJSONSchemaCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "jsonschema <definition>",
		Short:   "Export a definition as a JSON Schema document",
		Example: `  formcode jsonschema contact.yaml -o contact.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := definition.Load(args[0])
			if err != nil {
				return err
			}
			data, err := jsonschema.ExportForm(form).Indent()
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
