package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcode/pkg/definition"
	"github.com/goliatone/go-formcode/pkg/openapi"
)

func newImportOpenAPICmd() *cobra.Command {
	var (
		operation    string
		output       string
		externalRefs bool
	)
	cmd := &cobra.Command{
		Use:   "import-openapi <document>",
		Short: "Convert an OpenAPI request body into a form definition",
		Long: `Convert the request body schema of an OpenAPI 3 operation into a form
definition. Without --operation the available operation ids are listed.`,
		Example: `  # List operations
  formcode import-openapi api.json

  # Write a definition for one operation
  formcode import-openapi api.json --operation createAccount -o account.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read openapi document: %w", err)
			}
			importer := openapi.NewImporter(openapi.WithExternalRefs(externalRefs))

			if operation == "" {
				ids, err := importer.Operations(cmd.Context(), data)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No operations with an operationId.")
					return nil
				}
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}

			form, err := importer.Import(cmd.Context(), data, operation)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return definition.Write(cmd.OutOrStdout(), form)
			}
			if err := definition.WriteFile(output, form); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Imported %s into %s\n", operation, output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&operation, "operation", "", "operation id whose request body becomes the form")
	flags.StringVarP(&output, "output", "o", "", "definition file to write (stdout when empty)")
	flags.BoolVar(&externalRefs, "external-refs", false, "allow $ref to other files")
	return cmd
}
