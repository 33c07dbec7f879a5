// Package jsonschema exports a form as a JSON Schema interchange document.
//
// The document is derived from the same inference table as the zod schema in
// package schema, so both always agree on types, bounds and optionality. It
// serialises with properties in field order and converts to an OpenAPI schema
// (kin-openapi) for server side value checks.
package jsonschema
