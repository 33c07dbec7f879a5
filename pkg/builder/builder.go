// Package builder walks a user through assembling a form definition one entry
// at a time. Prompts go through a PromptDriver so the flow can run on a
// terminal (survey) or be scripted.
package builder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/schema"
)

var (
	// ErrAborted signals the user aborted input (for example Ctrl+C).
	ErrAborted = errors.New("builder: aborted")
	// ErrEmptyForm is returned when the user finishes without adding a field.
	ErrEmptyForm = errors.New("builder: form has no fields")
)

const (
	layoutSingle = "Single field"
	layoutRow2   = "Row of 2 fields"
	layoutRow3   = "Row of 3 fields"

	flagRequired = "required"
	flagDisabled = "disabled"
)

var inputTypes = []model.InputType{
	model.InputTypeText,
	model.InputTypeEmail,
	model.InputTypeNumber,
	model.InputTypePassword,
	model.InputTypeTel,
	model.InputTypeURL,
}

// Option configures a Builder.
type Option func(*Builder)

// WithDriver swaps the prompt driver.
func WithDriver(driver PromptDriver) Option {
	return func(b *Builder) {
		if driver != nil {
			b.driver = driver
		}
	}
}

// WithTitle sets the title offered as default.
func WithTitle(title string) Option {
	return func(b *Builder) {
		b.title = title
	}
}

// WithMaxEntries caps how many entries the flow accepts. Zero means unlimited.
func WithMaxEntries(n int) Option {
	return func(b *Builder) {
		if n >= 0 {
			b.maxEntries = n
		}
	}
}

// Builder assembles a model.Form interactively.
type Builder struct {
	driver     PromptDriver
	title      string
	maxEntries int
}

// New constructs a Builder backed by the survey driver unless overridden.
func New(opts ...Option) *Builder {
	b := &Builder{title: "My Form"}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.driver == nil {
		b.driver = NewSurveyDriver(nil)
	}
	return b
}

// Build runs the prompt flow and returns a validated form.
func (b *Builder) Build(ctx context.Context) (model.Form, error) {
	var form model.Form

	title, err := b.driver.Input(ctx, InputConfig{
		Message: "Form title",
		Default: b.title,
	})
	if err != nil {
		return model.Form{}, err
	}
	form.Title = strings.TrimSpace(title)

	description, err := b.driver.TextArea(ctx, TextAreaConfig{
		Message: "Form description (optional)",
	})
	if err != nil {
		return model.Form{}, err
	}
	form.Description = strings.TrimSpace(description)

	used := make(map[string]struct{})
	for {
		if b.maxEntries > 0 && len(form.Entries) >= b.maxEntries {
			break
		}
		more, err := b.driver.Confirm(ctx, ConfirmConfig{
			Message: addMessage(len(form.Entries)),
			Default: len(form.Entries) == 0,
		})
		if err != nil {
			return model.Form{}, err
		}
		if !more {
			break
		}
		entry, err := b.promptEntry(ctx, used)
		if err != nil {
			return model.Form{}, err
		}
		form.Entries = append(form.Entries, entry)
	}

	if len(form.Entries) == 0 {
		return model.Form{}, ErrEmptyForm
	}
	if err := model.ValidateForm(form); err != nil {
		return model.Form{}, fmt.Errorf("builder: %w", err)
	}
	if err := b.driver.Info(ctx, summary(form)); err != nil {
		return model.Form{}, err
	}
	return form, nil
}

func addMessage(count int) string {
	if count == 0 {
		return "Add a field?"
	}
	return "Add another entry?"
}

func (b *Builder) promptEntry(ctx context.Context, used map[string]struct{}) (model.Entry, error) {
	layouts := []string{layoutSingle, layoutRow2, layoutRow3}
	idx, err := b.driver.Select(ctx, SelectConfig{
		Message: "Layout",
		Options: layouts,
	})
	if err != nil {
		return model.Entry{}, err
	}
	count := 1
	switch idx {
	case 1:
		count = 2
	case 2:
		count = 3
	}

	fields := make([]model.Field, 0, count)
	for i := 0; i < count; i++ {
		field, err := b.promptField(ctx, used)
		if err != nil {
			return model.Entry{}, err
		}
		fields = append(fields, field)
	}
	if count == 1 {
		return model.Single(fields[0]), nil
	}
	return model.Row(fields...), nil
}

func (b *Builder) promptField(ctx context.Context, used map[string]struct{}) (model.Field, error) {
	name, err := b.driver.Input(ctx, InputConfig{
		Message: "Field name",
		Help:    "Used as the form key; letters, digits, '_' and '$'.",
		Validator: func(value string) error {
			return validateName(strings.TrimSpace(value), used)
		},
	})
	if err != nil {
		return model.Field{}, err
	}
	name = strings.TrimSpace(name)
	if err := validateName(name, used); err != nil {
		return model.Field{}, err
	}
	used[name] = struct{}{}

	variants := model.Variants()
	options := make([]string, len(variants))
	defaultIdx := 0
	for i, v := range variants {
		options[i] = v.String()
		if v == model.VariantInput {
			defaultIdx = i
		}
	}
	idx, err := b.driver.Select(ctx, SelectConfig{
		Message:      "Variant for " + name,
		Options:      options,
		DefaultIndex: defaultIdx,
		PageSize:     10,
	})
	if err != nil {
		return model.Field{}, err
	}
	if idx < 0 || idx >= len(variants) {
		idx = defaultIdx
	}
	field := model.Field{Name: name, Variant: variants[idx]}

	label, err := b.driver.Input(ctx, InputConfig{
		Message: "Label",
		Default: model.DefaultLabel(name),
	})
	if err != nil {
		return model.Field{}, err
	}
	if label = strings.TrimSpace(label); label != model.DefaultLabel(name) {
		field.Label = label
	}

	description, err := b.driver.Input(ctx, InputConfig{Message: "Description (optional)"})
	if err != nil {
		return model.Field{}, err
	}
	field.Description = strings.TrimSpace(description)

	flags := []string{flagRequired, flagDisabled}
	picked, err := b.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Flags",
		Options:  flags,
		Defaults: []int{0},
	})
	if err != nil {
		return model.Field{}, err
	}
	for _, i := range picked {
		switch flags[i] {
		case flagRequired:
			field.Required = true
		case flagDisabled:
			field.Disabled = true
		}
	}

	if err := b.promptVariantDetails(ctx, &field); err != nil {
		return model.Field{}, err
	}
	return field, nil
}

func (b *Builder) promptVariantDetails(ctx context.Context, field *model.Field) error {
	switch field.Variant {
	case model.VariantInput:
		names := make([]string, len(inputTypes))
		for i, t := range inputTypes {
			names[i] = string(t)
		}
		idx, err := b.driver.Select(ctx, SelectConfig{Message: "Input type", Options: names})
		if err != nil {
			return err
		}
		if idx > 0 && idx < len(inputTypes) {
			field.Type = inputTypes[idx]
		}
		if field.Type == model.InputTypeNumber {
			return b.promptBounds(ctx, field)
		}
	case model.VariantSelect, model.VariantRadioGroup, model.VariantCombobox, model.VariantMultiSelect:
		raw, err := b.driver.Input(ctx, InputConfig{
			Message: "Options (comma separated, empty for presets)",
		})
		if err != nil {
			return err
		}
		field.Options = parseOptions(raw)
	case model.VariantSlider:
		return b.promptBounds(ctx, field)
	case model.VariantCheckbox, model.VariantCreditCard, model.VariantDatePicker,
		model.VariantDatetimePicker, model.VariantFileInput, model.VariantInputOTP,
		model.VariantLocationInput, model.VariantPassword, model.VariantPhoneInput,
		model.VariantRating, model.VariantSignatureInput, model.VariantSmartDatetimeInput,
		model.VariantSwitch, model.VariantTagsInput, model.VariantTextarea:
	}
	return nil
}

func (b *Builder) promptBounds(ctx context.Context, field *model.Field) error {
	for _, bound := range []struct {
		label  string
		target **float64
	}{
		{label: "Minimum (optional)", target: &field.Min},
		{label: "Maximum (optional)", target: &field.Max},
	} {
		raw, err := b.driver.Input(ctx, InputConfig{
			Message:   bound.label,
			Validator: validateNumber,
		})
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("builder: %s: %w", bound.label, err)
		}
		*bound.target = model.Float(value)
	}
	return nil
}

func validateName(name string, used map[string]struct{}) error {
	if name == "" {
		return errors.New("name is required")
	}
	if !schema.IsIdentifier(name) && strings.ContainsAny(name, " \t\"'") {
		return fmt.Errorf("name %q contains whitespace or quotes", name)
	}
	if _, ok := used[name]; ok {
		return fmt.Errorf("name %q is already used", name)
	}
	return nil
}

func validateNumber(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return fmt.Errorf("%q is not a number", value)
	}
	return nil
}

func parseOptions(raw string) []model.Option {
	var out []model.Option
	for _, part := range strings.Split(raw, ",") {
		value := strings.TrimSpace(part)
		if value == "" {
			continue
		}
		out = append(out, model.Option{Label: value, Value: value})
	}
	return out
}

func summary(form model.Form) string {
	names := form.Names()
	return fmt.Sprintf("Built %q with %d field(s): %s", form.Title, len(names), strings.Join(names, ", "))
}
