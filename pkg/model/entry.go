package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// GridColumns is the width of the layout grid rows are rendered into.
const GridColumns = 12

// MaxRowFields caps how many fields can share a row.
const MaxRowFields = 3

// Entry is one top-level item of a form: either a single full-width field or a
// row of two or three fields rendered side by side. Construct values with
// Single or Row; the zero value is an empty entry.
type Entry struct {
	fields []Field
	row    bool
}

// Single wraps a field that renders at full width.
func Single(field Field) Entry {
	return Entry{fields: []Field{field}}
}

// Row groups fields into one grid row.
func Row(fields ...Field) Entry {
	cloned := make([]Field, len(fields))
	copy(cloned, fields)
	return Entry{fields: cloned, row: true}
}

// IsRow reports whether the entry was declared as a row.
func (e Entry) IsRow() bool {
	return e.row
}

// Fields returns the fields held by the entry in column order.
func (e Entry) Fields() []Field {
	out := make([]Field, len(e.fields))
	copy(out, e.fields)
	return out
}

// Field returns the wrapped field of a single entry.
func (e Entry) Field() (Field, bool) {
	if e.row || len(e.fields) != 1 {
		return Field{}, false
	}
	return e.fields[0], true
}

// Len reports how many fields the entry holds.
func (e Entry) Len() int {
	return len(e.fields)
}

// Span returns the column span each field of the entry occupies.
func (e Entry) Span() int {
	if !e.row {
		return GridColumns
	}
	return SpanFor(len(e.fields))
}

// SpanFor derives a column span from a row length: 2 -> 6, 3 -> 4, anything
// else -> full width.
func SpanFor(count int) int {
	switch count {
	case 2:
		return 6
	case 3:
		return 4
	default:
		return GridColumns
	}
}

// Flatten expands rows and returns every field in render order.
func Flatten(entries []Entry) []Field {
	var out []Field
	for _, entry := range entries {
		out = append(out, entry.fields...)
	}
	return out
}

// Names returns the field names of entries in render order.
func Names(entries []Entry) []string {
	fields := Flatten(entries)
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = field.Name
	}
	return out
}

type rowEnvelope struct {
	Row []Field `json:"row" yaml:"row"`
}

// MarshalJSON encodes single entries as a field object and rows as
// {"row": [...]}.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.row {
		return json.Marshal(rowEnvelope{Row: e.fields})
	}
	if len(e.fields) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(e.fields[0])
}

// UnmarshalJSON accepts a field object, a {"row": [...]} object or a bare array
// of fields.
func (e *Entry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*e = Entry{}
		return nil
	}

	if trimmed[0] == '[' {
		var fields []Field
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return fmt.Errorf("model: decode row: %w", err)
		}
		*e = Row(normalizeFields(fields)...)
		return nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return fmt.Errorf("model: decode entry: %w", err)
	}
	if raw, ok := probe["row"]; ok {
		var fields []Field
		if err := json.Unmarshal(raw, &fields); err != nil {
			return fmt.Errorf("model: decode row: %w", err)
		}
		*e = Row(normalizeFields(fields)...)
		return nil
	}

	var field Field
	if err := json.Unmarshal(trimmed, &field); err != nil {
		return fmt.Errorf("model: decode field: %w", err)
	}
	*e = Single(NormalizeField(field))
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (e Entry) MarshalYAML() (any, error) {
	if e.row {
		return rowEnvelope{Row: e.fields}, nil
	}
	if len(e.fields) == 0 {
		return nil, nil
	}
	return e.fields[0], nil
}

// UnmarshalYAML mirrors UnmarshalJSON.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var fields []Field
		if err := node.Decode(&fields); err != nil {
			return fmt.Errorf("model: decode row: %w", err)
		}
		*e = Row(normalizeFields(fields)...)
		return nil
	case yaml.MappingNode:
		if hasMappingKey(node, "row") {
			var env rowEnvelope
			if err := node.Decode(&env); err != nil {
				return fmt.Errorf("model: decode row: %w", err)
			}
			*e = Row(normalizeFields(env.Row)...)
			return nil
		}
		var field Field
		if err := node.Decode(&field); err != nil {
			return fmt.Errorf("model: decode field: %w", err)
		}
		*e = Single(NormalizeField(field))
		return nil
	default:
		return fmt.Errorf("model: line %d: entry must be a field mapping or a row", node.Line)
	}
}

func hasMappingKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

func normalizeFields(fields []Field) []Field {
	for i := range fields {
		fields[i] = NormalizeField(fields[i])
	}
	return fields
}

// NormalizeField canonicalises the variant spelling and maps the legacy
// "Number" variant onto a numeric Input.
func NormalizeField(field Field) Field {
	field.Name = strings.TrimSpace(field.Name)
	raw := strings.TrimSpace(string(field.Variant))
	if strings.EqualFold(raw, "number") {
		field.Variant = VariantInput
		field.Type = InputTypeNumber
		return field
	}
	if raw == "" {
		field.Variant = VariantInput
		return field
	}
	variant, _ := ParseVariant(raw)
	field.Variant = variant
	if field.Variant == VariantPassword && field.Type == "" {
		field.Type = InputTypePassword
	}
	return field
}
