// Package diy generates unmanaged forms: native inputs carry plain name
// attributes, controlled primitives read and write a local values state, and
// errors live in local component state filled from the schema on submit.
package diy

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

// WithTemplates replaces the embedded templates. The FS must provide
// component.tsx.tpl.
func WithTemplates(files fs.FS) Option {
	return func(g *Generator) {
		if files != nil {
			g.templates = files
		}
	}
}

// Generator emits DIY components.
type Generator struct {
	templates fs.FS
	engine    *template.Engine
}

var _ codegen.Generator = (*Generator)(nil)

// New constructs the generator.
func New(options ...Option) (*Generator, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("diy: templates: %w", err)
	}
	g := &Generator{templates: sub}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	engine, err := template.New(template.WithFS(g.templates))
	if err != nil {
		return nil, fmt.Errorf("diy: %w", err)
	}
	g.engine = engine
	return g, nil
}

// Library implements codegen.Generator.
func (g *Generator) Library() codegen.Library {
	return codegen.LibraryDIY
}

// Generate implements codegen.Generator.
func (g *Generator) Generate(ctx context.Context, form model.Form, opts codegen.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := codegen.Prepare(form, Binding{}, opts,
		codegen.Import{Module: "react", Names: []string{"useState"}},
		codegen.Import{Module: "zod", Names: []string{"z"}},
	)
	if err != nil {
		return nil, fmt.Errorf("diy: %w", err)
	}
	out, err := g.engine.RenderTemplate(componentTemplate, file.Context())
	if err != nil {
		return nil, fmt.Errorf("diy: %w", err)
	}
	return []byte(out), nil
}
