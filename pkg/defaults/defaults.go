package defaults

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/schema"
)

// Now marks a value that resolves to the current time when the form mounts.
// Source renders it as `new Date()`; Map replaces it with the supplied clock.
type Now struct{}

// Value is one initial value keyed by field name.
type Value struct {
	Name  string
	Value any
	// Origin records where the value came from.
	Origin Origin
}

// Origin describes which layer produced a value.
type Origin string

const (
	OriginSupplied    Origin = "supplied"
	OriginField       Origin = "field"
	OriginSynthesized Origin = "synthesized"
)

// Values is the ordered set of initial values for a form.
type Values struct {
	items []Value
}

// Synthesize derives initial values for entries. Precedence is supplied map,
// then Field.Default, then the per-variant seed. Variants without a seed are
// left absent so the consuming library keeps its uncontrolled default. Supplied
// keys that match no field are kept after the field values, sorted by name.
func Synthesize(entries []model.Entry, supplied map[string]any) Values {
	fields := model.Flatten(entries)
	out := Values{items: make([]Value, 0, len(fields))}
	declared := make(map[string]struct{}, len(fields))

	for _, field := range fields {
		declared[field.Name] = struct{}{}
		if value, ok := supplied[field.Name]; ok {
			out.items = append(out.items, Value{Name: field.Name, Value: value, Origin: OriginSupplied})
			continue
		}
		if field.Default != nil {
			out.items = append(out.items, Value{Name: field.Name, Value: field.Default, Origin: OriginField})
			continue
		}
		if value, ok := Seed(field); ok {
			out.items = append(out.items, Value{Name: field.Name, Value: value, Origin: OriginSynthesized})
		}
	}

	var extra []string
	for name := range supplied {
		if _, ok := declared[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out.items = append(out.items, Value{Name: name, Value: supplied[name], Origin: OriginSupplied})
	}
	return out
}

// Seed returns the synthesized initial value for a field variant.
func Seed(field model.Field) (any, bool) {
	switch field.Variant {
	case model.VariantCheckbox, model.VariantSwitch:
		return true, true
	case model.VariantMultiSelect:
		options := field.ChoiceOptions()
		if len(options) == 0 {
			return []any{}, true
		}
		return []any{options[0].Value}, true
	case model.VariantTagsInput:
		return []any{}, true
	case model.VariantDatePicker, model.VariantDatetimePicker, model.VariantSmartDatetimeInput:
		return Now{}, true
	case model.VariantRating:
		return "0", true
	case model.VariantSlider:
		return 5, true
	case model.VariantCreditCard:
		return EmptyCreditCard(), true
	case model.VariantCombobox, model.VariantFileInput, model.VariantInput,
		model.VariantInputOTP, model.VariantLocationInput, model.VariantPassword,
		model.VariantPhoneInput, model.VariantRadioGroup, model.VariantSelect,
		model.VariantSignatureInput, model.VariantTextarea:
		return nil, false
	default:
		return nil, false
	}
}

// EmptyCreditCard returns the JSON payload a credit card field starts with.
func EmptyCreditCard() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, key := range schema.CreditCardKeys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(key))
		b.WriteString(`:""`)
	}
	b.WriteByte('}')
	return b.String()
}

// Len reports how many values are set.
func (v Values) Len() int {
	return len(v.items)
}

// Items returns the values in order.
func (v Values) Items() []Value {
	out := make([]Value, len(v.items))
	copy(out, v.items)
	return out
}

// Names returns the keys in order.
func (v Values) Names() []string {
	out := make([]string, len(v.items))
	for i, item := range v.items {
		out[i] = item.Name
	}
	return out
}

// Get returns the value for name.
func (v Values) Get(name string) (any, bool) {
	for _, item := range v.items {
		if item.Name == name {
			return item.Value, true
		}
	}
	return nil, false
}

// Map materialises the values as plain Go data, resolving Now against now.
func (v Values) Map(now time.Time) map[string]any {
	out := make(map[string]any, len(v.items))
	for _, item := range v.items {
		out[item.Name] = resolve(item.Value, now)
	}
	return out
}

func resolve(value any, now time.Time) any {
	switch v := value.(type) {
	case Now:
		return now
	case *Now:
		return now
	default:
		return value
	}
}

// Source renders the values as a JavaScript object literal. Property lines are
// indented with indent plus two spaces.
func (v Values) Source(indent string) string {
	if len(v.items) == 0 {
		return "{}"
	}
	inner := indent + "  "
	var b strings.Builder
	b.WriteString("{\n")
	for _, item := range v.items {
		b.WriteString(inner)
		b.WriteString(schema.PropertyKey(item.Name))
		b.WriteString(": ")
		b.WriteString(Literal(item.Value))
		b.WriteString(",\n")
	}
	b.WriteString(indent)
	b.WriteString("}")
	return b.String()
}

// Literal renders a Go value as a JavaScript expression.
func Literal(value any) string {
	switch v := value.(type) {
	case nil:
		return "undefined"
	case Now, *Now:
		return "new Date()"
	case time.Time:
		return "new Date(" + strconv.Quote(v.UTC().Format(time.RFC3339)) + ")"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return jsString(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = jsString(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = Literal(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, key := range keys {
			parts[i] = schema.PropertyKey(key) + ": " + Literal(v[key])
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "undefined"
		}
		return string(encoded)
	}
}

// jsString quotes s as a JSON string, which is also a valid JS string literal.
func jsString(s string) string {
	encoded, err := json.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(encoded)
}
