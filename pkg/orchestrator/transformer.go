package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formcode/pkg/model"
)

// Transformer mutates a form after it is resolved and before it is validated.
type Transformer interface {
	Transform(ctx context.Context, form *model.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// Chain runs transformers in order, stopping at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, form *model.Form) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, form); err != nil {
				return err
			}
		}
		return nil
	})
}

// JSONPresetTransformer applies declarative overrides loaded from JSON:
//
//	{
//	  "title": "Create account",
//	  "fields": {
//	    "email": {"label": "Work email", "placeholder": "you@company.com", "required": true},
//	    "nick": {"rename": "nickname"}
//	  }
//	}
type JSONPresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Fields      map[string]fieldPatch `json:"fields"`
}

type fieldPatch struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Placeholder string `json:"placeholder"`
	Variant     string `json:"variant"`
	Rename      string `json:"rename"`
	Required    *bool  `json:"required"`
	Disabled    *bool  `json:"disabled"`
	Default     any    `json:"default"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a preset document from fsys.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the patches. Naming a field the form does not declare is
// an error.
func (t *JSONPresetTransformer) Transform(ctx context.Context, form *model.Form) error {
	if form == nil {
		return errors.New("json preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.document.Title != "" {
		form.Title = t.document.Title
	}
	if t.document.Description != "" {
		form.Description = t.document.Description
	}

	applied := make(map[string]bool, len(t.document.Fields))
	patchEntries := func(entries []model.Entry) []model.Entry {
		out := make([]model.Entry, len(entries))
		for i, entry := range entries {
			fields := entry.Fields()
			for j := range fields {
				if patch, ok := t.document.Fields[fields[j].Name]; ok {
					applied[fields[j].Name] = true
					applyFieldPatch(&fields[j], patch)
				}
			}
			if entry.IsRow() {
				out[i] = model.Row(fields...)
			} else if len(fields) == 1 {
				out[i] = model.Single(fields[0])
			}
		}
		return out
	}

	form.Entries = patchEntries(form.Entries)
	for i := range form.Steps {
		form.Steps[i].Entries = patchEntries(form.Steps[i].Entries)
	}

	for name := range t.document.Fields {
		if !applied[name] {
			return fmt.Errorf("json preset transformer: field %q not found", name)
		}
	}
	return nil
}

func applyFieldPatch(field *model.Field, patch fieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Description != "" {
		field.Description = patch.Description
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.Variant != "" {
		field.Variant, _ = model.ParseVariant(patch.Variant)
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Disabled != nil {
		field.Disabled = *patch.Disabled
	}
	if patch.Default != nil {
		field.Default = patch.Default
	}
	if name := strings.TrimSpace(patch.Rename); name != "" {
		field.Name = name
	}
}
