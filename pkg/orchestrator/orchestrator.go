package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/defaults"
	"github.com/goliatone/go-formcode/pkg/definition"
	"github.com/goliatone/go-formcode/pkg/generators"
	"github.com/goliatone/go-formcode/pkg/jsonschema"
	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/openapi"
	"github.com/goliatone/go-formcode/pkg/schema"
)

const defaultLibrary = codegen.LibraryHookForm

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a generator registry.
func WithRegistry(registry *codegen.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultLibrary overrides the library used when a request omits one.
func WithDefaultLibrary(lib codegen.Library) Option {
	return func(o *Orchestrator) {
		o.defaultLibrary = lib
	}
}

// WithThemeSelector resolves ThemeName/ThemeVariant into generation tokens.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithTokens sets the tokens used when no theme is selected.
func WithTokens(tokens codegen.Tokens) Option {
	return func(o *Orchestrator) {
		o.tokens = tokens
	}
}

// WithTransformer registers a Transformer that runs after the form is resolved
// and before it is validated.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithImporter swaps the OpenAPI importer.
func WithImporter(importer *openapi.Importer) Option {
	return func(o *Orchestrator) {
		o.importer = importer
	}
}

// WithClock sets the clock used to resolve date defaults.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// Orchestrator coordinates the pipeline from form definition to generated
// component, schema and interchange document.
type Orchestrator struct {
	registry       *codegen.Registry
	defaultLibrary codegen.Library
	themeSelector  theme.ThemeSelector
	tokens         codegen.Tokens
	transformer    Transformer
	importer       *openapi.Importer
	now            func() time.Time
	initialiseErr  error
}

// New constructs an Orchestrator. Missing dependencies fall back to the
// built-in generators, the default OpenAPI importer and time.Now.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultLibrary: defaultLibrary}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation. Exactly one of Form, Entries,
// DefinitionPath or OpenAPI is used, in that order of preference.
type Request struct {
	Form           *model.Form
	Entries        []model.Entry
	DefinitionPath string

	// OpenAPI holds a raw OpenAPI 3 document; OperationID picks the operation
	// whose request body becomes the form.
	OpenAPI     []byte
	OperationID string

	// Library names the target library. Empty uses the default.
	Library string

	// Tokens overrides the resolved tokens when non-nil.
	Tokens *codegen.Tokens

	ThemeName    string
	ThemeVariant string

	// Defaults are caller supplied initial values.
	Defaults map[string]any

	// ActionModule moves the server action of libraries that emit one into a
	// separate module imported from this path. See Result.Action.
	ActionModule string
}

// Result is everything one generation produces.
type Result struct {
	Library      codegen.Library
	Form         model.Form
	Code         []byte
	SchemaSource string
	Interchange  []byte
	Defaults     map[string]any

	// Action is the separate server action module, set only when
	// Request.ActionModule is set and the library emits a server action.
	Action []byte
}

// Libraries lists the registered libraries.
func (o *Orchestrator) Libraries() []codegen.Library {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

// Generate resolves the form, validates it and runs the selected generator.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	form, err := o.resolveForm(ctx, req)
	if err != nil {
		return Result{}, err
	}
	if err := o.applyTransformer(ctx, &form); err != nil {
		return Result{}, err
	}
	if err := model.ValidateForm(form); err != nil {
		return Result{}, fmt.Errorf("orchestrator: %w", err)
	}

	generator, err := o.generatorFor(req.Library)
	if err != nil {
		return Result{}, err
	}
	tokens, err := o.resolveTokens(req)
	if err != nil {
		return Result{}, err
	}

	opts := codegen.Options{Tokens: tokens, Defaults: req.Defaults}
	var action []byte
	if actions, ok := generator.(codegen.ActionGenerator); ok && req.ActionModule != "" {
		opts.ActionModule = req.ActionModule
		action, err = actions.GenerateAction(ctx, form, opts)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: generate %s action: %w", generator.Library(), err)
		}
	}
	code, err := generator.Generate(ctx, form, opts)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: generate %s: %w", generator.Library(), err)
	}

	entries := form.AllEntries()
	interchange, err := jsonschema.ExportForm(form).Indent()
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: interchange schema: %w", err)
	}

	return Result{
		Library:      generator.Library(),
		Form:         form,
		Code:         code,
		Action:       action,
		SchemaSource: schema.Source(schema.Infer(entries)),
		Interchange:  interchange,
		Defaults:     defaults.Synthesize(entries, req.Defaults).Map(o.now()),
	}, nil
}

func (o *Orchestrator) resolveForm(ctx context.Context, req Request) (model.Form, error) {
	switch {
	case req.Form != nil:
		return *req.Form, nil
	case len(req.Entries) > 0:
		return model.Form{Entries: req.Entries}, nil
	case req.DefinitionPath != "":
		form, err := definition.Load(req.DefinitionPath)
		if err != nil {
			return model.Form{}, fmt.Errorf("orchestrator: load definition: %w", err)
		}
		return form, nil
	case len(req.OpenAPI) > 0:
		if req.OperationID == "" {
			return model.Form{}, errors.New("orchestrator: operation id is required")
		}
		form, err := o.importer.Import(ctx, req.OpenAPI, req.OperationID)
		if err != nil {
			return model.Form{}, fmt.Errorf("orchestrator: import openapi: %w", err)
		}
		return form, nil
	default:
		return model.Form{}, errors.New("orchestrator: form, entries, definition or openapi document is required")
	}
}

func (o *Orchestrator) generatorFor(raw string) (codegen.Generator, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: generator registry is nil")
	}
	if raw == "" {
		raw = string(o.defaultLibrary)
	}
	generator, err := o.registry.Lookup(raw)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: library %q: %w", raw, err)
	}
	return generator, nil
}

func (o *Orchestrator) resolveTokens(req Request) (codegen.Tokens, error) {
	if req.Tokens != nil {
		return req.Tokens.WithDefaults(), nil
	}
	if o.themeSelector == nil || (req.ThemeName == "" && req.ThemeVariant == "") {
		return o.tokens.WithDefaults(), nil
	}
	selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return codegen.Tokens{}, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return codegen.TokensFromTheme(codegen.ThemeConfig(selection)), nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *model.Form) error {
	if o.transformer == nil || form == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		registry, err := generators.NewRegistry()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default generators: %w", err)
		}
		o.registry = registry
	}
	if o.importer == nil {
		o.importer = openapi.NewImporter()
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.defaultLibrary == "" {
		o.defaultLibrary = defaultLibrary
	}
}
