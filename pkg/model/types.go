package model

// Option is a selectable choice for Select, Radio Group, Combobox and Multi
// Select fields.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Field describes a single form input. Name doubles as lookup key and as the
// identifier emitted in generated code, so it must be unique across a form.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Variant     Variant   `json:"variant" yaml:"variant"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Type        InputType `json:"type,omitempty" yaml:"type,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Disabled    bool      `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Min         *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64  `json:"max,omitempty" yaml:"max,omitempty"`
	Step        *float64  `json:"step,omitempty" yaml:"step,omitempty"`
	Locale      string    `json:"locale,omitempty" yaml:"locale,omitempty"`
	Hour12      bool      `json:"hour12,omitempty" yaml:"hour12,omitempty"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
}

// DisplayLabel returns the configured label or a humanised version of Name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return DefaultLabel(f.Name)
}

// ChoiceOptions returns the configured options, falling back to the preset list
// used by the builder when a choice field has none.
func (f Field) ChoiceOptions() []Option {
	if len(f.Options) > 0 {
		out := make([]Option, len(f.Options))
		copy(out, f.Options)
		return out
	}
	switch f.Variant {
	case VariantMultiSelect:
		return []Option{
			{Label: "React", Value: "React"},
			{Label: "Vue", Value: "Vue"},
			{Label: "Svelte", Value: "Svelte"},
		}
	case VariantRadioGroup:
		return []Option{
			{Label: "All new messages", Value: "all"},
			{Label: "Direct messages and mentions", Value: "mentions"},
			{Label: "Nothing", Value: "none"},
		}
	default:
		return []Option{
			{Label: "m@example.com", Value: "m@example.com"},
			{Label: "m@google.com", Value: "m@google.com"},
			{Label: "m@support.com", Value: "m@support.com"},
		}
	}
}

// Float returns a pointer to v; handy when declaring Min/Max/Step literals.
func Float(v float64) *float64 {
	return &v
}

// Form is the top-level definition consumed by the generators.
type Form struct {
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Entries     []Entry `json:"fields" yaml:"fields"`
	Steps       []Step  `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Step groups entries for multi-step forms.
type Step struct {
	ID          string  `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Validation  string  `json:"validation,omitempty" yaml:"validation,omitempty"`
	Entries     []Entry `json:"fields" yaml:"fields"`
}

// AllEntries returns the form entries followed by every step's entries, which
// is the list schema inference runs over for multi-step forms.
func (f Form) AllEntries() []Entry {
	out := make([]Entry, 0, len(f.Entries))
	out = append(out, f.Entries...)
	for _, step := range f.Steps {
		out = append(out, step.Entries...)
	}
	return out
}

// Flatten returns every field in render order, expanding rows.
func (f Form) Flatten() []Field {
	return Flatten(f.AllEntries())
}

// Names returns the field names in render order.
func (f Form) Names() []string {
	return Names(f.AllEntries())
}
