package openapi

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formcode/pkg/model"
)

// VariantExtension names the schema extension that pins a property's variant.
const VariantExtension = "x-formcode-variant"

// Matcher decides whether a variant should render the property.
type Matcher func(prop Property) bool

type rule struct {
	variant  model.Variant
	priority int
	match    Matcher
	order    int
}

// VariantRegistry picks field variants for schema properties. Higher priority
// wins; ties fall back to registration order.
type VariantRegistry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewVariantRegistry constructs a registry with the built-in matchers.
func NewVariantRegistry() *VariantRegistry {
	reg := &VariantRegistry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for variant.
func (r *VariantRegistry) Register(variant model.Variant, priority int, matcher Matcher) {
	if r == nil || matcher == nil || strings.TrimSpace(string(variant)) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{
		variant:  variant,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the variant for prop. The x-formcode-variant extension is
// honoured before any matcher. Properties nothing matches render as Input.
func (r *VariantRegistry) Resolve(prop Property) model.Variant {
	if explicit := prop.Extension(VariantExtension); explicit != "" {
		if variant, ok := model.ParseVariant(explicit); ok {
			return variant
		}
	}
	if r == nil {
		return model.VariantInput
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(prop) {
			return entry.variant
		}
	}
	return model.VariantInput
}

func (r *VariantRegistry) registerBuiltins() {
	r.Register(model.VariantCheckbox, 95, func(prop Property) bool {
		return prop.HasType("boolean") && len(prop.Enum) == 1 && prop.Enum[0] == true
	})
	r.Register(model.VariantSwitch, 90, func(prop Property) bool {
		return prop.HasType("boolean")
	})
	r.Register(model.VariantMultiSelect, 85, func(prop Property) bool {
		return prop.HasType("array") && prop.Items != nil && len(prop.Items.Enum) > 0
	})
	r.Register(model.VariantTagsInput, 80, func(prop Property) bool {
		return prop.HasType("array")
	})
	r.Register(model.VariantRadioGroup, 75, func(prop Property) bool {
		return len(prop.Enum) > 0 && len(prop.Enum) <= 3
	})
	r.Register(model.VariantSelect, 70, func(prop Property) bool {
		return len(prop.Enum) > 3
	})
	r.Register(model.VariantDatePicker, 65, func(prop Property) bool {
		return prop.Format == "date"
	})
	r.Register(model.VariantDatetimePicker, 65, func(prop Property) bool {
		return prop.Format == "date-time"
	})
	r.Register(model.VariantPassword, 60, func(prop Property) bool {
		return prop.Format == "password"
	})
	r.Register(model.VariantPhoneInput, 60, func(prop Property) bool {
		return prop.Format == "tel" || prop.Format == "phone"
	})
	r.Register(model.VariantTextarea, 55, func(prop Property) bool {
		if !prop.HasType("string") {
			return false
		}
		if prop.Format == "textarea" || prop.Format == "multiline" {
			return true
		}
		return prop.MaxLength != nil && *prop.MaxLength > 255
	})
}
