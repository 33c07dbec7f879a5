package diy

import (
	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/schema"
)

// Binding wires fields to local component state.
type Binding struct{}

var _ codegen.Binding = Binding{}

// Native implements codegen.Binding. Native inputs start from defaultValues
// and report their edits through the submitted form data.
func (Binding) Native(field model.Field) []string {
	return []string{
		codegen.NameAttr(field),
		codegen.ExprAttr("defaultValue", schema.Accessor("defaultValues", field.Name)),
	}
}

// Controlled implements codegen.Binding.
func (b Binding) Controlled(field model.Field, control codegen.Control) []string {
	return codegen.ControlAttrs(control, schema.Accessor("values", field.Name), func(arg string) string {
		return b.Setter(field, arg)
	})
}

// Setter implements codegen.Binding.
func (Binding) Setter(field model.Field, arg string) string {
	return "setValue(" + codegen.JSString(field.Name) + ", " + arg + ")"
}

// Wrap implements codegen.Binding.
func (Binding) Wrap(_ model.Field, primitive string, _ bool) string {
	return primitive
}

// ErrorSlot implements codegen.Binding.
func (Binding) ErrorSlot(field model.Field, tokens codegen.Tokens) string {
	expr := schema.Accessor("errors", field.Name)
	return codegen.ErrorParagraph(expr, expr, tokens)
}
