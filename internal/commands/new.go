package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcode/pkg/builder"
	"github.com/goliatone/go-formcode/pkg/definition"
)

// newNewCmd builds the interactive definition command. A nil driver prompts
// on the terminal.
func newNewCmd(driver builder.PromptDriver) *cobra.Command {
	var (
		output     string
		title      string
		maxEntries int
		force      bool
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build a form definition interactively",
		Example: `  formcode new -o signup.yaml
  formcode new --title "Newsletter" -o newsletter.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", output)
				}
			}

			d := driver
			if d == nil {
				d = builder.NewSurveyDriver(cmd.OutOrStdout())
			}
			b := builder.New(
				builder.WithDriver(d),
				builder.WithTitle(title),
				builder.WithMaxEntries(maxEntries),
			)
			form, err := b.Build(cmd.Context())
			if errors.Is(err, builder.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
				return nil
			}
			if err != nil {
				return err
			}
			if err := definition.WriteFile(output, form); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved definition to %s\n", output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "form.yaml", "definition file to write (.yaml or .json)")
	flags.StringVar(&title, "title", "My Form", "default form title")
	flags.IntVar(&maxEntries, "max-entries", 0, "stop after this many entries (0 for no limit)")
	flags.BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
