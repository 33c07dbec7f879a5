// Package defaults synthesizes the initial values a generated form starts
// with. Only variants with a meaningful seed get one; caller supplied values
// and field defaults always win over synthesized ones.
package defaults
