package codegen

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formcode/pkg/model"
)

// Binding supplies the library specific syntax that connects a primitive to
// form state. RenderField calls it for every field.
type Binding interface {
	// Native returns the attributes binding a native input (Input, Textarea,
	// Password) to form state.
	Native(field model.Field) []string
	// Controlled returns the attributes binding a controlled primitive whose
	// value and change props are described by control.
	Controlled(field model.Field, control Control) []string
	// Setter returns a statement storing arg as the field value, or "" when the
	// binding leaves the value to the submitted form data.
	Setter(field model.Field, arg string) string
	// Wrap surrounds the primitive markup. controlled reports whether the
	// primitive was bound through Controlled or Setter.
	Wrap(field model.Field, primitive string, controlled bool) string
	// ErrorSlot returns the markup that displays the field error.
	ErrorSlot(field model.Field, tokens Tokens) string
}

// Control describes how a controlled primitive exchanges its value.
type Control struct {
	// Value is the prop receiving the current value ("checked", "value").
	// Empty for write-only primitives.
	Value string
	// Change is the callback prop reporting a new value.
	Change string
	// In formats the value expression before it reaches the prop; %s is the
	// expression. Empty means pass through.
	In string
	// Out formats the callback argument before it is stored.
	Out string
}

// ValueExpr applies In to expr.
func (c Control) ValueExpr(expr string) string {
	if c.In == "" {
		return expr
	}
	return fmt.Sprintf(c.In, expr)
}

// StoredExpr applies Out to arg.
func (c Control) StoredExpr(arg string) string {
	if c.Out == "" {
		return arg
	}
	return fmt.Sprintf(c.Out, arg)
}

// ControlAttrs renders the value and change props for control given the
// binding's value expression and setter. set receives the stored expression
// and returns the statement writing it.
func ControlAttrs(control Control, value string, set func(arg string) string) []string {
	var attrs []string
	if control.Value != "" && value != "" {
		attrs = append(attrs, ExprAttr(control.Value, control.ValueExpr(value)))
	}
	if control.Change != "" && set != nil {
		attrs = append(attrs, ExprAttr(control.Change, "(value) => "+set(control.StoredExpr("value"))))
	}
	return attrs
}

// NameAttr renders name="..." for the field.
func NameAttr(field model.Field) string {
	return StringAttr("name", field.Name)
}

// ErrorParagraph renders the conditional error paragraph most bindings use:
// {cond && <p className="...">{expr}</p>}.
func ErrorParagraph(cond, expr string, tokens Tokens) string {
	return "{" + cond + " && <p " + StringAttr("className", tokens.ErrorClass) + ">{" + expr + "}</p>}"
}

// Indent prefixes every non-empty line of block with n spaces.
func Indent(block string, n int) string {
	if n <= 0 || block == "" {
		return block
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
