package tanstack

import (
	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/model"
)

// Binding wires fields through the form accessor pair.
type Binding struct{}

var _ codegen.Binding = Binding{}

// Native implements codegen.Binding.
func (b Binding) Native(field model.Field) []string {
	return []string{
		codegen.ExprAttr("value", getter(field)),
		codegen.ExprAttr("onChange", "(event) => "+b.Setter(field, "event.target.value")),
	}
}

// Controlled implements codegen.Binding.
func (b Binding) Controlled(field model.Field, control codegen.Control) []string {
	return codegen.ControlAttrs(control, getter(field), func(arg string) string {
		return b.Setter(field, arg)
	})
}

// Setter implements codegen.Binding.
func (Binding) Setter(field model.Field, arg string) string {
	return "form.setFieldValue(" + codegen.JSString(field.Name) + ", " + arg + ")"
}

// Wrap implements codegen.Binding.
func (Binding) Wrap(_ model.Field, primitive string, _ bool) string {
	return primitive
}

// ErrorSlot implements codegen.Binding with an always-empty slot.
func (Binding) ErrorSlot(_ model.Field, tokens codegen.Tokens) string {
	return "<p " + codegen.StringAttr("className", tokens.ErrorClass) + "></p>"
}

func getter(field model.Field) string {
	return "form.getFieldValue(" + codegen.JSString(field.Name) + ")"
}
