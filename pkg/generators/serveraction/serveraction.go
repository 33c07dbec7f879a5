// Package serveraction generates forms posted to a server action. Inputs are
// uncontrolled: they carry name and id attributes and are seeded from
// defaultValues. A "use server" function reads every field from the submitted
// FormData by name, validates it against the schema and returns errors through
// the action state.
//
// By default the action is declared inline in the component module. Next.js
// rejects inline server functions in a module that also uses client hooks, so
// setting codegen.Options.ActionModule switches to two modules: GenerateAction
// renders the action behind a file-level "use server" directive and Generate
// renders a "use client" component importing it.
package serveraction

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/codegen/template"
	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/schema"
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

const (
	componentTemplate = "component.tsx"
	clientTemplate    = "client.tsx"
	actionTemplate    = "actions.ts"
)

// ActionName is the identifier of the emitted server action.
const ActionName = "submitForm"

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

// Generator emits server action forms.
type Generator struct {
	templates fs.FS
	engine    *template.Engine
}

var _ codegen.ActionGenerator = (*Generator)(nil)

// New constructs the generator.
func New(options ...Option) (*Generator, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("serveraction: templates: %w", err)
	}
	g := &Generator{templates: sub}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	engine, err := template.New(template.WithFS(g.templates))
	if err != nil {
		return nil, fmt.Errorf("serveraction: %w", err)
	}
	g.engine = engine
	return g, nil
}

// Library implements codegen.Generator.
func (g *Generator) Library() codegen.Library {
	return codegen.LibraryServerAction
}

// Generate implements codegen.Generator.
func (g *Generator) Generate(ctx context.Context, form model.Form, opts codegen.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := componentTemplate
	lead := []codegen.Import{
		{Module: "react", Names: []string{"useActionState"}},
		{Module: "zod", Names: []string{"z"}},
	}
	if opts.ActionModule != "" {
		name = clientTemplate
		lead = []codegen.Import{
			{Module: "react", Names: []string{"useActionState"}},
			{Module: opts.ActionModule, Names: []string{ActionName}},
		}
	}
	file, err := codegen.Prepare(form, Binding{}, opts, lead...)
	if err != nil {
		return nil, fmt.Errorf("serveraction: %w", err)
	}
	return g.render(name, file)
}

// GenerateAction implements codegen.ActionGenerator. The module holds the
// schema and the action, and exports nothing else at runtime.
func (g *Generator) GenerateAction(ctx context.Context, form model.Form, opts codegen.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := codegen.Prepare(form, Binding{}, opts)
	if err != nil {
		return nil, fmt.Errorf("serveraction: %w", err)
	}
	return g.render(actionTemplate, file)
}

func (g *Generator) render(name string, file *codegen.File) ([]byte, error) {
	data := file.Context()
	data["action"] = ActionName
	data["reads"] = ReadSource(model.Flatten(file.Entries))

	out, err := g.engine.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("serveraction: %w", err)
	}
	return []byte(out), nil
}

// ReadSource renders the object literal the action builds from FormData, one
// property per field in order.
func ReadSource(fields []model.Field) string {
	if len(fields) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, field := range fields {
		b.WriteString("  ")
		b.WriteString(schema.PropertyKey(field.Name))
		b.WriteString(": ")
		b.WriteString(ReadExpr(field))
		b.WriteString(",\n")
	}
	b.WriteString("}")
	return b.String()
}

// ReadExpr returns the expression reading field from formData. Checkbox and
// Switch submit "on" when set; list-valued variants submit repeated entries.
func ReadExpr(field model.Field) string {
	name := codegen.JSString(field.Name)
	switch field.Variant {
	case model.VariantCheckbox, model.VariantSwitch:
		return "formData.get(" + name + `) === "on"`
	case model.VariantMultiSelect, model.VariantTagsInput, model.VariantLocationInput:
		return "formData.getAll(" + name + ")"
	case model.VariantCombobox, model.VariantCreditCard, model.VariantDatePicker,
		model.VariantDatetimePicker, model.VariantFileInput, model.VariantInput,
		model.VariantInputOTP, model.VariantPassword, model.VariantPhoneInput,
		model.VariantRadioGroup, model.VariantRating, model.VariantSelect,
		model.VariantSignatureInput, model.VariantSlider, model.VariantSmartDatetimeInput,
		model.VariantTextarea:
		return "formData.get(" + name + ") ?? undefined"
	default:
		return "formData.get(" + name + ") ?? undefined"
	}
}
