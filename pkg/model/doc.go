// Package model defines the form definition consumed by the code generators,
// schema inference and the multi-step runtime. A form is an ordered list of
// entries; each entry is either a single full-width Field or a Row of two or
// three fields rendered as grid columns. Field variants form a closed set
// (see Variants) so every consumer can switch over them exhaustively. Entries
// decode from JSON and YAML as a field mapping, a {row: [...]} mapping, or a
// bare sequence of fields.
package model
