package jsonschema

import (
	"encoding/json"

	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/schema"
)

// JSON Schema type names.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Schema is the JSON Schema of one value. Tuples list one schema per position
// in TupleItems and serialise as an items array.
type Schema struct {
	Type             string
	Title            string
	Description      string
	Format           string
	ContentMediaType string
	Const            any
	Default          any
	Minimum          *float64
	Maximum          *float64
	MinLength        *int
	MaxLength        *int
	MinItems         *int
	MaxItems         *int
	Items            *Schema
	TupleItems       []*Schema
}

type wireSchema struct {
	Type             string   `json:"type,omitempty"`
	Title            string   `json:"title,omitempty"`
	Description      string   `json:"description,omitempty"`
	Format           string   `json:"format,omitempty"`
	ContentMediaType string   `json:"contentMediaType,omitempty"`
	Const            any      `json:"const,omitempty"`
	Default          any      `json:"default,omitempty"`
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	MinLength        *int     `json:"minLength,omitempty"`
	MaxLength        *int     `json:"maxLength,omitempty"`
	MinItems         *int     `json:"minItems,omitempty"`
	MaxItems         *int     `json:"maxItems,omitempty"`
	Items            any      `json:"items,omitempty"`
	AdditionalItems  *bool    `json:"additionalItems,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	wire := wireSchema{
		Type:             s.Type,
		Title:            s.Title,
		Description:      s.Description,
		Format:           s.Format,
		ContentMediaType: s.ContentMediaType,
		Const:            s.Const,
		Default:          s.Default,
		Minimum:          s.Minimum,
		Maximum:          s.Maximum,
		MinLength:        s.MinLength,
		MaxLength:        s.MaxLength,
		MinItems:         s.MinItems,
		MaxItems:         s.MaxItems,
	}
	switch {
	case len(s.TupleItems) > 0:
		wire.Items = s.TupleItems
		closed := false
		wire.AdditionalItems = &closed
	case s.Items != nil:
		wire.Items = s.Items
	}
	return json.Marshal(wire)
}

// FromNode converts an inferred validation node. variant picks the date
// format: Date Picker values are calendar dates, the datetime variants carry a
// time of day.
func FromNode(node schema.Node, variant model.Variant) *Schema {
	out := &Schema{}
	switch node.Kind {
	case schema.KindBoolean:
		out.Type = TypeBoolean
		if node.MustBeTrue {
			out.Const = true
		}
	case schema.KindNumber:
		out.Type = TypeNumber
		out.Minimum = copyFloat(node.Min)
		out.Maximum = copyFloat(node.Max)
	case schema.KindDate:
		out.Type = TypeString
		out.Format = "date-time"
		if variant == model.VariantDatePicker {
			out.Format = "date"
		}
	case schema.KindArray:
		out.Type = TypeArray
		items := schema.Node{Kind: schema.KindString}
		if node.Items != nil {
			items = *node.Items
		}
		out.Items = FromNode(items, "")
		if node.Nonempty {
			out.MinItems = intPtr(1)
		}
	case schema.KindTuple:
		out.Type = TypeArray
		required := 0
		for i, element := range node.Elements {
			out.TupleItems = append(out.TupleItems, FromNode(element, ""))
			if !element.Optional {
				required = i + 1
			}
		}
		out.MinItems = intPtr(required)
		out.MaxItems = intPtr(len(node.Elements))
	default:
		out.Type = TypeString
		switch node.Format {
		case schema.FormatEmail:
			out.Format = "email"
		case schema.FormatURL:
			out.Format = "uri"
		}
		out.MinLength = copyInt(node.MinLength)
		out.MaxLength = copyInt(node.MaxLength)
		if node.CreditCard {
			out.ContentMediaType = "application/json"
		}
	}
	if node.Default != nil {
		out.Default = node.Default
	}
	return out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func intPtr(v int) *int {
	return &v
}
