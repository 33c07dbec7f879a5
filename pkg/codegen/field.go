package codegen

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formcode/pkg/model"
)

// RenderField renders the markup block of one field: a label bound to the
// field id, the variant primitive, an optional description and the binding's
// error slot. Unknown variants render as a text Input.
func RenderField(field model.Field, b Binding, tokens Tokens) string {
	tokens = tokens.WithDefaults()

	primitive, controlled := renderPrimitive(field, b)
	primitive = b.Wrap(field, primitive, controlled)
	label := textElement("Label", []string{StringAttr("htmlFor", field.Name)}, Text(field.DisplayLabel()))

	var children []string
	if isInline(field.Variant) {
		children = append(children, element("div", []string{StringAttr("className", tokens.InlineClass)}, primitive, label))
	} else {
		children = append(children, label, primitive)
	}
	if desc := Text(field.Description); desc != "" {
		children = append(children, textElement("p", []string{StringAttr("className", tokens.DescriptionClass)}, desc))
	}
	if slot := b.ErrorSlot(field, tokens); slot != "" {
		children = append(children, slot)
	}
	return element("div", []string{StringAttr("className", tokens.FieldClass)}, children...)
}

// RenderEntries renders entries in order. Rows are wrapped in a 12 column grid
// whose children span 12/len(row) columns; single fields render at full width
// without a grid. Blocks are separated by a blank line.
func RenderEntries(entries []model.Entry, b Binding, tokens Tokens) string {
	tokens = tokens.WithDefaults()
	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsRow() {
			blocks = append(blocks, renderRow(entry, b, tokens))
			continue
		}
		if field, ok := entry.Field(); ok {
			blocks = append(blocks, RenderField(field, b, tokens))
		}
	}
	return strings.Join(blocks, "\n\n")
}

func renderRow(entry model.Entry, b Binding, tokens Tokens) string {
	span := "col-span-" + strconv.Itoa(entry.Span())
	fields := entry.Fields()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = element("div", []string{StringAttr("className", span)}, RenderField(field, b, tokens))
	}
	return element("div", []string{StringAttr("className", tokens.GridClass)}, columns...)
}

// CollectImports records the primitive imports of every field in first
// encounter order, followed by the field Label.
func CollectImports(set *ImportSet, entries []model.Entry, tokens Tokens) {
	tokens = tokens.WithDefaults()
	for _, field := range model.Flatten(entries) {
		set.AddImports(PrimitiveImports(field.Variant, tokens)...)
		set.Add(tokens.UIModule("label"), "Label")
	}
}

// AnyControlled reports whether any field binds through the controlled path.
func AnyControlled(entries []model.Entry) bool {
	for _, field := range model.Flatten(entries) {
		if IsControlled(field.Variant) {
			return true
		}
	}
	return false
}
