package codegen

import (
	"fmt"

	"github.com/goliatone/go-formcode/pkg/defaults"
	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/schema"
)

// File gathers the library independent parts of a generated component file.
type File struct {
	Entries  []model.Entry
	Imports  *ImportSet
	State    *StateSet
	Schema   schema.Object
	Defaults defaults.Values
	Fields   string
	Tokens   Tokens
}

// Prepare validates the form and assembles imports, local state, schema,
// initial values and field markup. Imports are ordered: react hooks needed by
// local state, then lead, then every field primitive, then the submit Button.
func Prepare(form model.Form, b Binding, opts Options, lead ...Import) (*File, error) {
	if b == nil {
		return nil, fmt.Errorf("codegen: binding is required")
	}
	if err := model.ValidateForm(form); err != nil {
		return nil, err
	}

	tokens := opts.Tokens.WithDefaults()
	entries := form.AllEntries()

	state := CollectState(entries)
	imports := NewImportSet()
	if hooks := state.Hooks(); len(hooks) > 0 {
		imports.Add("react", hooks...)
	}
	imports.AddImports(lead...)
	CollectImports(imports, entries, tokens)
	imports.Add(tokens.UIModule("button"), "Button")

	return &File{
		Entries:  entries,
		Imports:  imports,
		State:    state,
		Schema:   schema.Infer(entries),
		Defaults: defaults.Synthesize(entries, opts.Defaults),
		Fields:   RenderEntries(entries, b, tokens),
		Tokens:   tokens,
	}, nil
}

// Context returns the template data shared by every generator. Multi-line
// blocks are rendered unindented; templates place them with the indent and
// nest filters.
func (f *File) Context() map[string]any {
	stateBlock := ""
	if !f.State.Empty() {
		stateBlock = "\n\n" + Indent(f.State.Source(""), 2)
	}
	return map[string]any{
		"imports":       f.Imports.Source(),
		"schema":        schema.Source(f.Schema),
		"schemaVar":     schema.SchemaVariable,
		"defaults":      f.Defaults.Source(""),
		"state":         f.State.Source(""),
		"hasState":      !f.State.Empty(),
		"stateBlock":    stateBlock,
		"fields":        f.Fields,
		"componentName": f.Tokens.ComponentName,
		"formClass":     f.Tokens.FormClass,
		"submitLabel":   Text(f.Tokens.SubmitLabel),
		"fieldNames":    model.Names(f.Entries),
		"hasControlled": AnyControlled(f.Entries),
	}
}
