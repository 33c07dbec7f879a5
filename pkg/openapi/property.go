package openapi

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Property is the slice of a body schema property the importer reads.
type Property struct {
	Name        string
	Type        string
	Format      string
	Title       string
	Description string
	Example     any
	Default     any
	Enum        []any
	Items       *Property
	Required    bool
	Minimum     *float64
	Maximum     *float64
	MinLength   *int
	MaxLength   *int
	Extensions  map[string]any
}

// HasType reports whether the property type is t.
func (p Property) HasType(t string) bool {
	return p.Type == t
}

// Extension returns a string extension value, trimmed.
func (p Property) Extension(key string) string {
	if p.Extensions == nil {
		return ""
	}
	value, ok := p.Extensions[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func convertProperty(name string, ref *openapi3.SchemaRef, required bool) Property {
	prop := Property{Name: name, Required: required}
	if ref == nil || ref.Value == nil {
		return prop
	}
	src := ref.Value
	prop.Type = firstSchemaType(src.Type)
	prop.Format = strings.ToLower(strings.TrimSpace(src.Format))
	prop.Title = src.Title
	prop.Description = src.Description
	prop.Example = src.Example
	prop.Default = src.Default
	if len(src.Enum) > 0 {
		prop.Enum = append([]any(nil), src.Enum...)
	}
	if src.Min != nil {
		value := *src.Min
		prop.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		prop.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		prop.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		prop.MaxLength = &value
	}
	if src.Items != nil {
		items := convertProperty(name, src.Items, false)
		prop.Items = &items
	}
	if len(src.Extensions) > 0 {
		prop.Extensions = make(map[string]any, len(src.Extensions))
		for key, value := range src.Extensions {
			prop.Extensions[key] = value
		}
	}
	return prop
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}
