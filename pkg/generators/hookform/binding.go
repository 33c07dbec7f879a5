package hookform

import (
	"strings"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/schema"
)

// Binding wires fields through register and Controller.
type Binding struct{}

var _ codegen.Binding = Binding{}

// Native implements codegen.Binding.
func (Binding) Native(field model.Field) []string {
	return []string{"{...register(" + codegen.JSString(field.Name) + ")}"}
}

// Controlled implements codegen.Binding. Values come from the Controller render
// prop; a change prop without conversion is handed field.onChange directly.
func (b Binding) Controlled(field model.Field, control codegen.Control) []string {
	if control.Out == "" {
		var attrs []string
		if control.Value != "" {
			attrs = append(attrs, codegen.ExprAttr(control.Value, control.ValueExpr("field.value")))
		}
		if control.Change != "" {
			attrs = append(attrs, codegen.ExprAttr(control.Change, "field.onChange"))
		}
		return attrs
	}
	return codegen.ControlAttrs(control, "field.value", func(arg string) string {
		return b.Setter(field, arg)
	})
}

// Setter implements codegen.Binding.
func (Binding) Setter(_ model.Field, arg string) string {
	return "field.onChange(" + arg + ")"
}

// Wrap implements codegen.Binding. Controlled primitives render inside a
// Controller bound to the form control.
func (Binding) Wrap(field model.Field, primitive string, controlled bool) string {
	if !controlled {
		return primitive
	}
	lines := []string{
		"<Controller",
		"  control={control}",
		"  " + codegen.StringAttr("name", field.Name),
		"  render={({ field }) => (",
		codegen.Indent(primitive, 4),
		"  )}",
		"/>",
	}
	return strings.Join(lines, "\n")
}

// ErrorSlot implements codegen.Binding.
func (Binding) ErrorSlot(field model.Field, tokens codegen.Tokens) string {
	expr := schema.Accessor("errors", field.Name)
	return codegen.ErrorParagraph(expr, expr+"?.message", tokens)
}
