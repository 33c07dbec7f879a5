package serveraction

import (
	"strings"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/schema"
)

// Binding leaves values to the submitted form data.
type Binding struct{}

var _ codegen.Binding = Binding{}

// Native implements codegen.Binding. The input is seeded from defaultValues.
func (Binding) Native(field model.Field) []string {
	return []string{
		codegen.NameAttr(field),
		codegen.ExprAttr("defaultValue", schema.Accessor("defaultValues", field.Name)),
	}
}

// Controlled implements codegen.Binding. Primitives stay uncontrolled: they get
// a name and, when they expose a value prop, its default counterpart seeded
// from defaultValues.
func (Binding) Controlled(field model.Field, control codegen.Control) []string {
	attrs := []string{codegen.NameAttr(field)}
	if control.Value != "" {
		prop := "default" + strings.ToUpper(control.Value[:1]) + control.Value[1:]
		attrs = append(attrs, codegen.ExprAttr(prop, control.ValueExpr(schema.Accessor("defaultValues", field.Name))))
	}
	return attrs
}

// Setter implements codegen.Binding. Values travel through form data, so there
// is no setter.
func (Binding) Setter(model.Field, string) string {
	return ""
}

// Wrap implements codegen.Binding.
func (Binding) Wrap(_ model.Field, primitive string, _ bool) string {
	return primitive
}

// ErrorSlot implements codegen.Binding.
func (Binding) ErrorSlot(field model.Field, tokens codegen.Tokens) string {
	cond := codegen.OptionalAccessor("state.errors", field.Name)
	expr := schema.Accessor("state.errors", field.Name) + "[0]"
	return codegen.ErrorParagraph(cond, expr, tokens)
}
