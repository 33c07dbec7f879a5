package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcode/pkg/definition"
	"github.com/goliatone/go-formcode/pkg/openapi"
)

type violation struct {
	file    string
	message string
}

func newLintCmd() *cobra.Command {
	var openAPI bool
	cmd := &cobra.Command{
		Use:   "lint <path>...",
		Short: "Check definitions or OpenAPI extensions",
		Long: `Parse and validate every definition file under the given paths. With
--openapi the paths are OpenAPI documents and their x-formcode extensions are
checked instead.`,
		Example: `  formcode lint forms/
  formcode lint --openapi api.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				violations []violation
				checked    int
				err        error
			)
			if openAPI {
				violations, checked, err = lintOpenAPI(cmd, args)
			} else {
				violations, checked, err = lintDefinitions(args)
			}
			if err != nil {
				return err
			}

			if len(violations) > 0 {
				sort.SliceStable(violations, func(i, j int) bool {
					return violations[i].file < violations[j].file
				})
				for _, v := range violations {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", v.file, v.message)
				}
				return fmt.Errorf("lint found %d problem(s) in %d file(s)", len(violations), checked)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) ok\n", checked)
			return nil
		},
	}
	cmd.Flags().BoolVar(&openAPI, "openapi", false, "treat paths as OpenAPI documents")
	return cmd
}

func lintDefinitions(paths []string) ([]violation, int, error) {
	files, err := collectDefinitions(paths)
	if err != nil {
		return nil, 0, err
	}
	var out []violation
	for _, file := range files {
		if _, err := definition.Load(file); err != nil {
			out = append(out, violation{file: file, message: err.Error()})
		}
	}
	return out, len(files), nil
}

func lintOpenAPI(cmd *cobra.Command, paths []string) ([]violation, int, error) {
	importer := openapi.NewImporter()
	var out []violation
	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
		if err != nil {
			return nil, 0, fmt.Errorf("lint %s: %w", path, err)
		}
		found, err := importer.Lint(cmd.Context(), data)
		if err != nil {
			return nil, 0, fmt.Errorf("lint %s: %w", path, err)
		}
		for _, v := range found {
			out = append(out, violation{file: path, message: v.String()})
		}
	}
	return out, len(paths), nil
}

// collectDefinitions expands directories into the definition files they hold.
func collectDefinitions(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !entry.IsDir() && definition.IsDefinitionFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
