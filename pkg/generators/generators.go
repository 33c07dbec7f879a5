// Package generators wires the built-in target libraries into a codegen
// registry.
package generators

import (
	"fmt"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/generators/diy"
	"github.com/goliatone/go-formcode/pkg/generators/hookform"
	"github.com/goliatone/go-formcode/pkg/generators/serveraction"
	"github.com/goliatone/go-formcode/pkg/generators/tanstack"
)

// Builtin constructs one generator per supported library.
func Builtin() ([]codegen.Generator, error) {
	d, err := diy.New()
	if err != nil {
		return nil, err
	}
	h, err := hookform.New()
	if err != nil {
		return nil, err
	}
	t, err := tanstack.New()
	if err != nil {
		return nil, err
	}
	s, err := serveraction.New()
	if err != nil {
		return nil, err
	}
	return []codegen.Generator{d, h, t, s}, nil
}

// Register adds the built-in generators to reg.
func Register(reg *codegen.Registry) error {
	if reg == nil {
		return fmt.Errorf("generators: registry is required")
	}
	builtin, err := Builtin()
	if err != nil {
		return fmt.Errorf("generators: %w", err)
	}
	for _, generator := range builtin {
		if err := reg.Register(generator); err != nil {
			return fmt.Errorf("generators: %w", err)
		}
	}
	return nil
}

// NewRegistry returns a registry holding every built-in generator.
func NewRegistry() (*codegen.Registry, error) {
	reg := codegen.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
