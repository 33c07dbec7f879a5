package codegen

import (
	"context"

	"github.com/goliatone/go-formcode/pkg/model"
)

// Generator turns a form definition into the source of one component file.
// Output must be a pure function of the form and options.
type Generator interface {
	Library() Library
	Generate(ctx context.Context, form model.Form, opts Options) ([]byte, error)
}

// ActionGenerator is implemented by generators whose output can move its
// server action into a module of its own. GenerateAction renders that module;
// Generate then imports the action from Options.ActionModule.
type ActionGenerator interface {
	Generator
	GenerateAction(ctx context.Context, form model.Form, opts Options) ([]byte, error)
}

// Options carries per-call generation settings.
type Options struct {
	// Tokens controls import paths, class names and labels. Zero fields fall
	// back to DefaultTokens.
	Tokens Tokens
	// Defaults are caller supplied initial values; they take precedence over
	// field defaults and synthesized seeds.
	Defaults map[string]any
	// ActionModule is the import path of a separate server action module.
	// Empty keeps the action inline. Generators without a server action
	// ignore it.
	ActionModule string
}
