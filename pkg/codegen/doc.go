// Package codegen holds the pieces every target library shares when turning a
// form definition into a component file: the library selector and generator
// registry, per-variant primitive markup, import and local state aggregation,
// text sanitising and theme tokens. Library specific binding syntax is
// supplied through the Binding interface by the packages under
// pkg/generators.
package codegen
