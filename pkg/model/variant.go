package model

import "strings"

// Variant identifies the UI primitive a field renders as. The set is closed:
// every consumer (schema inference, default synthesis, snippet generation and
// import aggregation) switches over the constants below. Values decoded from
// user input may still carry an unknown tag; consumers degrade those to a plain
// text input backed by a string schema.
type Variant string

const (
	VariantCheckbox           Variant = "Checkbox"
	VariantCombobox           Variant = "Combobox"
	VariantCreditCard         Variant = "Credit Card"
	VariantDatePicker         Variant = "Date Picker"
	VariantDatetimePicker     Variant = "Datetime Picker"
	VariantFileInput          Variant = "File Input"
	VariantInput              Variant = "Input"
	VariantInputOTP           Variant = "Input OTP"
	VariantLocationInput      Variant = "Location Input"
	VariantMultiSelect        Variant = "Multi Select"
	VariantPassword           Variant = "Password"
	VariantPhoneInput         Variant = "Phone"
	VariantRadioGroup         Variant = "Radio Group"
	VariantRating             Variant = "Rating"
	VariantSelect             Variant = "Select"
	VariantSignatureInput     Variant = "Signature Input"
	VariantSlider             Variant = "Slider"
	VariantSmartDatetimeInput Variant = "Smart Datetime Input"
	VariantSwitch             Variant = "Switch"
	VariantTagsInput          Variant = "Tags Input"
	VariantTextarea           Variant = "Textarea"
)

var knownVariants = []Variant{
	VariantCheckbox,
	VariantCombobox,
	VariantCreditCard,
	VariantDatePicker,
	VariantDatetimePicker,
	VariantFileInput,
	VariantInput,
	VariantInputOTP,
	VariantLocationInput,
	VariantMultiSelect,
	VariantPassword,
	VariantPhoneInput,
	VariantRadioGroup,
	VariantRating,
	VariantSelect,
	VariantSignatureInput,
	VariantSlider,
	VariantSmartDatetimeInput,
	VariantSwitch,
	VariantTagsInput,
	VariantTextarea,
}

var variantAliases = map[string]Variant{
	"radio":       VariantRadioGroup,
	"phoneinput":  VariantPhoneInput,
	"telephone":   VariantPhoneInput,
	"datetime":    VariantDatetimePicker,
	"date":        VariantDatePicker,
	"file":        VariantFileInput,
	"otp":         VariantInputOTP,
	"tags":        VariantTagsInput,
	"location":    VariantLocationInput,
	"signature":   VariantSignatureInput,
	"multiselect": VariantMultiSelect,
	"creditcard":  VariantCreditCard,
	"toggle":      VariantSwitch,
}

// Variants returns the closed set of supported variants in declaration order.
func Variants() []Variant {
	out := make([]Variant, len(knownVariants))
	copy(out, knownVariants)
	return out
}

// Known reports whether v belongs to the closed variant set.
func (v Variant) Known() bool {
	for _, candidate := range knownVariants {
		if candidate == v {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (v Variant) String() string {
	return string(v)
}

// ParseVariant resolves loose spellings ("radio", "DatePicker", "tags input")
// onto the canonical variant. The second return value is false when nothing
// matched; the raw value is still returned so callers can keep it and let the
// permissive fallbacks apply.
func ParseVariant(raw string) (Variant, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	key := compactKey(trimmed)
	for _, candidate := range knownVariants {
		if compactKey(string(candidate)) == key {
			return candidate, true
		}
	}
	if alias, ok := variantAliases[key]; ok {
		return alias, true
	}
	return Variant(trimmed), false
}

func compactKey(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		switch r {
		case ' ', '-', '_':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// InputType refines the Input variant.
type InputType string

const (
	InputTypeText     InputType = "text"
	InputTypeEmail    InputType = "email"
	InputTypeNumber   InputType = "number"
	InputTypePassword InputType = "password"
	InputTypeTel      InputType = "tel"
	InputTypeURL      InputType = "url"
)
