package codegen

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formcode/pkg/schema"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// Attr sanitises user text for a quoted JSX attribute value. Markup is
// stripped and quotes come back as entities, which JSX string attributes decode.
func Attr(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(textSanitizer().Sanitize(trimmed))
}

// Text sanitises user text for a JSX text node. On top of Attr, braces are
// escaped so they cannot open an expression container.
func Text(raw string) string {
	cleaned := Attr(raw)
	if !strings.ContainsAny(cleaned, "{}") {
		return cleaned
	}
	var b strings.Builder
	for _, r := range cleaned {
		switch r {
		case '{':
			b.WriteString(`{"{"}`)
		case '}':
			b.WriteString(`{"}"}`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// JSString quotes s as a JavaScript string literal.
func JSString(s string) string {
	encoded, err := json.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(encoded)
}

// StringAttr renders name="value" with value sanitised.
func StringAttr(name, value string) string {
	return name + `="` + Attr(value) + `"`
}

// ExprAttr renders name={expr}.
func ExprAttr(name, expr string) string {
	return name + "={" + expr + "}"
}

// OptionalAccessor renders base?.name, falling back to base?.["first-name"].
func OptionalAccessor(base, name string) string {
	if schema.IsIdentifier(name) {
		return base + "?." + name
	}
	return base + "?.[" + JSString(name) + "]"
}
