package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formcode/pkg/model"
)

var (
	// ErrOperationNotFound is returned when no operation carries the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no usable body schema.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
)

var mediaTypePreference = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Option configures an Importer.
type Option func(*Importer)

// WithRegistry swaps the variant registry.
func WithRegistry(reg *VariantRegistry) Option {
	return func(i *Importer) {
		if reg != nil {
			i.registry = reg
		}
	}
}

// WithExternalRefs allows the loader to follow external $ref values.
func WithExternalRefs(allow bool) Option {
	return func(i *Importer) {
		i.externalRefs = allow
	}
}

// Importer maps OpenAPI operations onto form definitions.
type Importer struct {
	registry     *VariantRegistry
	externalRefs bool
}

// NewImporter constructs an Importer with the built-in variant registry.
func NewImporter(opts ...Option) *Importer {
	imp := &Importer{registry: NewVariantRegistry()}
	for _, opt := range opts {
		if opt != nil {
			opt(imp)
		}
	}
	return imp
}

// Import is a convenience wrapper around NewImporter().Import.
func Import(ctx context.Context, data []byte, operationID string) (model.Form, error) {
	return NewImporter().Import(ctx, data, operationID)
}

// Operations lists the operation ids in the document, sorted.
func (i *Importer) Operations(ctx context.Context, data []byte) ([]string, error) {
	doc, err := i.load(ctx, data)
	if err != nil {
		return nil, err
	}
	var ids []string
	eachOperation(doc, func(op *openapi3.Operation) {
		if op.OperationID != "" {
			ids = append(ids, op.OperationID)
		}
	})
	sort.Strings(ids)
	return ids, nil
}

// Import loads data and converts the request body of operationID into a form.
func (i *Importer) Import(ctx context.Context, data []byte, operationID string) (model.Form, error) {
	doc, err := i.load(ctx, data)
	if err != nil {
		return model.Form{}, err
	}

	var target *openapi3.Operation
	eachOperation(doc, func(op *openapi3.Operation) {
		if target == nil && op.OperationID == operationID {
			target = op
		}
	})
	if target == nil {
		return model.Form{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(target)
	if body == nil || body.Value == nil || len(body.Value.Properties) == 0 {
		return model.Form{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	form := model.Form{
		Title:       firstNonEmpty(body.Value.Title, target.Summary, model.DefaultLabel(operationID)),
		Description: firstNonEmpty(body.Value.Description, target.Description),
		Entries:     i.entries(body.Value),
	}
	if err := model.ValidateForm(form); err != nil {
		return model.Form{}, fmt.Errorf("openapi: %w", err)
	}
	return form, nil
}

// ImportSchema converts an object schema directly.
func (i *Importer) ImportSchema(schema *openapi3.Schema) []model.Entry {
	if schema == nil {
		return nil
	}
	return i.entries(schema)
}

func (i *Importer) load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.externalRefs,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return doc, nil
}

func (i *Importer) entries(schema *openapi3.Schema) []model.Entry {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool {
		if required[names[a]] != required[names[b]] {
			return required[names[a]]
		}
		return names[a] < names[b]
	})

	entries := make([]model.Entry, 0, len(names))
	for _, name := range names {
		prop := convertProperty(name, schema.Properties[name], required[name])
		entries = append(entries, model.Single(i.field(prop)))
	}
	return entries
}

func (i *Importer) field(prop Property) model.Field {
	variant := i.registry.Resolve(prop)
	field := model.Field{
		Name:        prop.Name,
		Variant:     variant,
		Label:       prop.Title,
		Description: prop.Description,
		Required:    prop.Required,
	}
	if example, ok := prop.Example.(string); ok {
		field.Placeholder = example
	}

	switch variant {
	case model.VariantInput:
		field.Type = inputType(prop)
	case model.VariantSelect, model.VariantRadioGroup, model.VariantCombobox:
		field.Options = enumOptions(prop.Enum)
	case model.VariantMultiSelect:
		if prop.Items != nil {
			field.Options = enumOptions(prop.Items.Enum)
		}
	}

	switch {
	case prop.HasType("number") || prop.HasType("integer"):
		field.Min = prop.Minimum
		field.Max = prop.Maximum
		if prop.HasType("integer") && (variant == model.VariantInput || variant == model.VariantSlider) {
			field.Step = model.Float(1)
		}
	case prop.HasType("string"):
		if prop.MinLength != nil {
			field.Min = model.Float(float64(*prop.MinLength))
		}
		if prop.MaxLength != nil {
			field.Max = model.Float(float64(*prop.MaxLength))
		}
	}

	field.Default = defaultValue(prop, variant)
	return field
}

func inputType(prop Property) model.InputType {
	if prop.HasType("number") || prop.HasType("integer") {
		return model.InputTypeNumber
	}
	switch prop.Format {
	case "email":
		return model.InputTypeEmail
	case "uri", "url":
		return model.InputTypeURL
	default:
		return model.InputTypeText
	}
}

func enumOptions(values []any) []model.Option {
	if len(values) == 0 {
		return nil
	}
	out := make([]model.Option, 0, len(values))
	for _, value := range values {
		text := fmt.Sprint(value)
		out = append(out, model.Option{Label: model.DefaultLabel(text), Value: text})
	}
	return out
}

func defaultValue(prop Property, variant model.Variant) any {
	switch value := prop.Default.(type) {
	case nil:
		return nil
	case bool:
		if variant == model.VariantCheckbox || variant == model.VariantSwitch {
			return value
		}
	case float64:
		return value
	case string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.SchemaRef {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range mediaTypePreference {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mt.Schema
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}

func eachOperation(doc *openapi3.T, fn func(op *openapi3.Operation)) {
	if doc.Paths == nil {
		return
	}
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for key := range paths {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		item := paths[key]
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete,
			item.Patch, item.Head, item.Options, item.Trace,
		} {
			if op != nil {
				fn(op)
			}
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
