package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formcode/pkg/schema"
)

// OpenAPI converts the document into an OpenAPI 3 object schema. Tuples become
// bounded string arrays and const values become single-value enums, since
// OpenAPI 3.0 has neither.
func (d Document) OpenAPI() *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	out.Title = d.Title
	out.Description = d.Description
	for _, prop := range d.Properties {
		out.Properties[prop.Name] = openapi3.NewSchemaRef("", prop.Schema.OpenAPI())
	}
	if len(d.Required) > 0 {
		out.Required = append([]string(nil), d.Required...)
	}
	return out
}

// OpenAPI converts a single property schema.
func (s *Schema) OpenAPI() *openapi3.Schema {
	if s == nil {
		return openapi3.NewSchema()
	}
	var out *openapi3.Schema
	switch s.Type {
	case TypeBoolean:
		out = openapi3.NewBoolSchema()
	case TypeNumber:
		out = openapi3.NewFloat64Schema()
		if s.Minimum != nil {
			out.Min = copyFloat(s.Minimum)
		}
		if s.Maximum != nil {
			out.Max = copyFloat(s.Maximum)
		}
	case TypeArray:
		out = openapi3.NewArraySchema()
		items := s.Items
		if items == nil && len(s.TupleItems) > 0 {
			items = s.TupleItems[0]
		}
		if items != nil {
			out.Items = openapi3.NewSchemaRef("", items.OpenAPI())
		}
		if s.MinItems != nil {
			out.MinItems = uint64(*s.MinItems)
		}
		if s.MaxItems != nil {
			out.MaxItems = openapi3.Uint64Ptr(uint64(*s.MaxItems))
		}
	default:
		out = openapi3.NewStringSchema()
		if s.MinLength != nil {
			out.MinLength = uint64(*s.MinLength)
		}
		if s.MaxLength != nil {
			out.MaxLength = openapi3.Uint64Ptr(uint64(*s.MaxLength))
		}
	}
	out.Title = s.Title
	out.Description = s.Description
	out.Format = s.Format
	out.Default = s.Default
	if s.Const != nil {
		out.Enum = []any{s.Const}
	}
	return out
}

// ValidateValues checks values against the OpenAPI form of the document and
// reports every failure keyed by field path. Values are normalised through
// encoding/json first, so Go ints and typed slices validate like decoded JSON.
func (d Document) ValidateValues(values map[string]any) (schema.Issues, error) {
	normalized, err := normalize(values)
	if err != nil {
		return nil, err
	}
	verr := d.OpenAPI().VisitJSON(normalized, openapi3.MultiErrors())
	if verr == nil {
		return nil, nil
	}
	var issues schema.Issues
	collectIssues(verr, &issues)
	return issues, nil
}

func normalize(values map[string]any) (any, error) {
	if values == nil {
		values = map[string]any{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: encode values: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("jsonschema: decode values: %w", err)
	}
	return out, nil
}

func collectIssues(err error, issues *schema.Issues) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			collectIssues(inner, issues)
		}
		return
	}
	var serr *openapi3.SchemaError
	if errors.As(err, &serr) {
		pointer := serr.JSONPointer()
		issue := schema.Issue{
			Path:    strings.Join(pointer, "."),
			Code:    serr.SchemaField,
			Message: serr.Reason,
		}
		if len(pointer) > 0 {
			issue.Field = pointer[0]
		}
		*issues = append(*issues, issue)
		return
	}
	*issues = append(*issues, schema.Issue{Code: "invalid", Message: err.Error()})
}
