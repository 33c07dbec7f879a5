// Package openapi turns the request body of an OpenAPI 3 operation into a form
// definition. Documents are loaded with kin-openapi; each body property is
// mapped onto a field variant by a VariantRegistry of prioritised matchers,
// and the resulting fields are ordered required first, then by name.
package openapi
