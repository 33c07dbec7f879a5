package schema

import (
	"github.com/goliatone/go-formcode/pkg/model"
)

// Kind is the base validation primitive of a node.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindDate    Kind = "date"
	KindArray   Kind = "array"
	KindTuple   Kind = "tuple"
)

// Format refines string nodes.
type Format string

const (
	FormatNone  Format = ""
	FormatEmail Format = "email"
	FormatURL   Format = "url"
)

// CreditCardKeys lists the sub-fields a credit card payload must carry, in the
// order they are checked and emitted.
var CreditCardKeys = []string{"cardholderName", "cardNumber", "expiryMonth", "expiryYear", "cvv"}

// Node describes the validation rule for one value. Min/Max bound numbers by
// value; MinLength/MaxLength bound strings by length.
type Node struct {
	Kind       Kind
	Format     Format
	Coerce     bool
	Min        *float64
	Max        *float64
	MinLength  *int
	MaxLength  *int
	Nonempty   bool
	Items      *Node
	Elements   []Node
	MustBeTrue bool
	CreditCard bool
	Default    any
	Optional   bool
}

// Property binds a node to a field name.
type Property struct {
	Name    string
	Variant model.Variant
	Node    Node
}

// Object is the ordered schema for a whole form. Property order matches the
// flattened field order of the definition it was inferred from.
type Object struct {
	Properties []Property
}

// Infer derives the validation schema for entries, expanding rows in order.
func Infer(entries []model.Entry) Object {
	return InferFields(model.Flatten(entries))
}

// InferFields derives the validation schema for an already flattened list.
func InferFields(fields []model.Field) Object {
	props := make([]Property, 0, len(fields))
	for _, field := range fields {
		props = append(props, Property{
			Name:    field.Name,
			Variant: field.Variant,
			Node:    FieldNode(field),
		})
	}
	return Object{Properties: props}
}

// FieldNode maps one field onto its validation node. Unknown variants degrade
// to a plain string.
func FieldNode(field model.Field) Node {
	node := baseNode(field)
	applyBounds(&node, field)
	if !field.Required {
		node.Optional = true
	}
	return node
}

func baseNode(field model.Field) Node {
	switch field.Variant {
	case model.VariantCheckbox:
		node := Node{Kind: KindBoolean}
		if field.Required {
			node.MustBeTrue = true
		} else {
			node.Default = false
		}
		return node
	case model.VariantDatePicker, model.VariantDatetimePicker, model.VariantSmartDatetimeInput:
		return Node{Kind: KindDate, Coerce: true}
	case model.VariantInput:
		return inputNode(field)
	case model.VariantLocationInput:
		return Node{
			Kind: KindTuple,
			Elements: []Node{
				{Kind: KindString, MinLength: intPtr(1)},
				{Kind: KindString, Optional: true},
			},
		}
	case model.VariantSlider:
		return Node{Kind: KindNumber, Coerce: true}
	case model.VariantSignatureInput:
		return Node{Kind: KindString, MinLength: intPtr(1)}
	case model.VariantSwitch:
		return Node{Kind: KindBoolean}
	case model.VariantTagsInput, model.VariantMultiSelect:
		return Node{Kind: KindArray, Items: &Node{Kind: KindString}, Nonempty: true}
	case model.VariantRating:
		return Node{Kind: KindNumber, Coerce: true, Min: floatPtr(1)}
	case model.VariantCreditCard:
		return Node{Kind: KindString, CreditCard: true}
	case model.VariantCombobox, model.VariantFileInput, model.VariantInputOTP,
		model.VariantPassword, model.VariantPhoneInput, model.VariantRadioGroup,
		model.VariantSelect, model.VariantTextarea:
		return Node{Kind: KindString}
	default:
		return Node{Kind: KindString}
	}
}

func inputNode(field model.Field) Node {
	switch field.Type {
	case model.InputTypeEmail:
		return Node{Kind: KindString, Format: FormatEmail}
	case model.InputTypeNumber:
		return Node{Kind: KindNumber, Coerce: true}
	case model.InputTypeURL:
		return Node{Kind: KindString, Format: FormatURL}
	default:
		node := Node{Kind: KindString}
		if field.Required {
			node.MinLength = intPtr(1)
		}
		return node
	}
}

func applyBounds(node *Node, field model.Field) {
	switch node.Kind {
	case KindNumber:
		if field.Min != nil && (node.Min == nil || *field.Min > *node.Min) {
			node.Min = floatPtr(*field.Min)
		}
		if field.Max != nil {
			node.Max = floatPtr(*field.Max)
		}
	case KindString:
		if node.CreditCard {
			return
		}
		if field.Min != nil && *field.Min >= 0 {
			length := int(*field.Min)
			if node.MinLength == nil || length > *node.MinLength {
				node.MinLength = intPtr(length)
			}
		}
		if field.Max != nil && *field.Max >= 0 {
			node.MaxLength = intPtr(int(*field.Max))
		}
	}
}

// Names returns the property names in order.
func (o Object) Names() []string {
	out := make([]string, len(o.Properties))
	for i, prop := range o.Properties {
		out[i] = prop.Name
	}
	return out
}

// Lookup returns the property with the given name.
func (o Object) Lookup(name string) (Property, bool) {
	for _, prop := range o.Properties {
		if prop.Name == name {
			return prop, true
		}
	}
	return Property{}, false
}

// Pick returns a schema restricted to names, keeping the object's own order.
// Unknown names are ignored.
func (o Object) Pick(names ...string) Object {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}
	out := Object{}
	for _, prop := range o.Properties {
		if _, ok := wanted[prop.Name]; ok {
			out.Properties = append(out.Properties, prop)
		}
	}
	return out
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
