// Package formcode generates copy-pasteable React form components from a
// field definition. It targets four form libraries (DIY, react-hook-form,
// TanStack Form and server actions) and derives the matching zod schema,
// default values and a JSON Schema interchange document.
//
// Quick start:
//
//	src, err := formcode.Generate(ctx, entries, codegen.LibraryHookForm)
//
// For definition files, OpenAPI import and themes use NewOrchestrator.
package formcode

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/generators"
	"github.com/goliatone/go-formcode/pkg/jsonschema"
	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/orchestrator"
	"github.com/goliatone/go-formcode/pkg/schema"
)

// Request aliases orchestrator.Request for callers using the root package.
type Request = orchestrator.Request

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// Generate renders entries as a component for library with default tokens.
// The output is deterministic for a given entry list and library.
func Generate(ctx context.Context, entries []model.Entry, library codegen.Library) (string, error) {
	registry, err := generators.NewRegistry()
	if err != nil {
		return "", err
	}
	generator, err := registry.Get(library)
	if err != nil {
		return "", err
	}
	out, err := generator.Generate(ctx, model.Form{Entries: entries}, codegen.Options{})
	if err != nil {
		return "", fmt.Errorf("formcode: %w", err)
	}
	return string(out), nil
}

// ValidationSchema infers the runtime validation schema for entries.
func ValidationSchema(entries []model.Entry) schema.Object {
	return schema.Infer(entries)
}

// SchemaSource renders the zod declaration for entries.
func SchemaSource(entries []model.Entry) string {
	return schema.Source(schema.Infer(entries))
}

// InterchangeSchema builds the JSON Schema document for entries.
func InterchangeSchema(entries []model.Entry, title, description string) jsonschema.Document {
	return jsonschema.Export(entries, jsonschema.Meta{Title: title, Description: description})
}
