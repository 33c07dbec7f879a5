package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/generators"
)

var libraryDescriptions = map[codegen.Library]string{
	codegen.LibraryDIY:          "plain React state with manual zod checks",
	codegen.LibraryHookForm:     "react-hook-form with the zod resolver",
	codegen.LibraryTanStack:     "TanStack Form field accessors",
	codegen.LibraryServerAction: "server action bound through useActionState",
}

func newLibrariesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "libraries",
		Short: "List the supported target libraries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := generators.NewRegistry()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "LIBRARY\tDESCRIPTION")
			for _, lib := range registry.List() {
				desc := libraryDescriptions[lib]
				if desc == "" {
					desc = "-"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\n", lib, desc)
			}
			return w.Flush()
		},
	}
}
