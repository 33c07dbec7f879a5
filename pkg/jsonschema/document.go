package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/schema"
)

// SchemaURI is the dialect declared by exported documents.
const SchemaURI = "http://json-schema.org/draft-07/schema#"

// Meta carries the document level title and description.
type Meta struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Property is one named entry of the document, kept in field order.
type Property struct {
	Name   string
	Schema *Schema
}

// Document is the interchange schema of a whole form.
type Document struct {
	Title       string
	Description string
	Properties  []Property
	Required    []string
}

// Export builds the interchange document for entries. Rows are flattened in
// order; labels and descriptions become property titles and descriptions.
func Export(entries []model.Entry, meta Meta) Document {
	fields := model.Flatten(entries)
	obj := schema.InferFields(fields)

	doc := Document{
		Title:       meta.Title,
		Description: meta.Description,
		Properties:  make([]Property, 0, len(obj.Properties)),
	}
	for i, prop := range obj.Properties {
		node := FromNode(prop.Node, prop.Variant)
		field := fields[i]
		node.Title = field.DisplayLabel()
		node.Description = field.Description
		doc.Properties = append(doc.Properties, Property{Name: prop.Name, Schema: node})
		if !prop.Node.Optional {
			doc.Required = append(doc.Required, prop.Name)
		}
	}
	return doc
}

// ExportForm exports a form definition, including every step's fields, using
// the form title and description.
func ExportForm(form model.Form) Document {
	return Export(form.AllEntries(), Meta{Title: form.Title, Description: form.Description})
}

// Lookup returns the property schema for name.
func (d Document) Lookup(name string) (*Schema, bool) {
	for _, prop := range d.Properties {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// Names returns the property names in order.
func (d Document) Names() []string {
	out := make([]string, len(d.Properties))
	for i, prop := range d.Properties {
		out[i] = prop.Name
	}
	return out
}

// MarshalJSON writes the document with a stable key order and properties in
// field order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeKey(&buf, "$schema", true)
	writeValue(&buf, SchemaURI)
	if d.Title != "" {
		writeKey(&buf, "title", false)
		writeValue(&buf, d.Title)
	}
	if d.Description != "" {
		writeKey(&buf, "description", false)
		writeValue(&buf, d.Description)
	}
	writeKey(&buf, "type", false)
	writeValue(&buf, TypeObject)

	writeKey(&buf, "properties", false)
	buf.WriteByte('{')
	for i, prop := range d.Properties {
		writeKey(&buf, prop.Name, i == 0)
		encoded, err := json.Marshal(prop.Schema)
		if err != nil {
			return nil, fmt.Errorf("jsonschema: property %q: %w", prop.Name, err)
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')

	if len(d.Required) > 0 {
		writeKey(&buf, "required", false)
		writeValue(&buf, d.Required)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Indent renders the document as indented JSON, the shape written to exported
// .json files.
func (d Document) Indent() ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("jsonschema: indent: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string, first bool) {
	if !first {
		buf.WriteByte(',')
	}
	encoded, _ := json.Marshal(key)
	buf.Write(encoded)
	buf.WriteByte(':')
}

func writeValue(buf *bytes.Buffer, value any) {
	encoded, _ := json.Marshal(value)
	buf.Write(encoded)
}
