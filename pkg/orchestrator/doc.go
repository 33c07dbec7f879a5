// Package orchestrator wires definition loading, OpenAPI import, validation,
// theme selection and the generator registry behind a single Generate call.
package orchestrator
