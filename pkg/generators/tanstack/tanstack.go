// Package tanstack generates TanStack Form components. Every primitive reads
// through form.getFieldValue and writes through form.setFieldValue. The error
// slot is rendered empty: these components carry no per-field error wiring.
package tanstack

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/codegen/template"
	"github.com/goliatone/go-formcode/pkg/model"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in templates so callers can copy or extend
// them before passing a replacement through WithTemplates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

const componentTemplate = "component.tsx"

// Option configures the generator.
type Option func(*Generator)

// WithTemplates replaces the embedded templates.
func WithTemplates(files fs.FS) Option {
	return func(g *Generator) {
		if files != nil {
			g.templates = files
		}
	}
}

// Generator emits TanStack Form components.
type Generator struct {
	templates fs.FS
	engine    *template.Engine
}

var _ codegen.Generator = (*Generator)(nil)

// New constructs the generator.
func New(options ...Option) (*Generator, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("tanstack: templates: %w", err)
	}
	g := &Generator{templates: sub}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	engine, err := template.New(template.WithFS(g.templates))
	if err != nil {
		return nil, fmt.Errorf("tanstack: %w", err)
	}
	g.engine = engine
	return g, nil
}

// Library implements codegen.Generator.
func (g *Generator) Library() codegen.Library {
	return codegen.LibraryTanStack
}

// Generate implements codegen.Generator.
func (g *Generator) Generate(ctx context.Context, form model.Form, opts codegen.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := codegen.Prepare(form, Binding{}, opts,
		codegen.Import{Module: "@tanstack/react-form", Names: []string{"useForm"}},
		codegen.Import{Module: "zod", Names: []string{"z"}},
	)
	if err != nil {
		return nil, fmt.Errorf("tanstack: %w", err)
	}
	out, err := g.engine.RenderTemplate(componentTemplate, file.Context())
	if err != nil {
		return nil, fmt.Errorf("tanstack: %w", err)
	}
	return []byte(out), nil
}
