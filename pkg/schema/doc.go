// Package schema infers validation rules from form fields. One table maps each
// field variant onto a Node; the same Object then renders as zod source text
// (Source) for the generated client code and validates submitted values in Go
// (Object.Parse / Object.Validate) with zod-compatible coercion. Property order
// always follows the flattened field order, because generated default values and
// markup are emitted positionally alongside the schema.
package schema
