package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Issue codes mirror the zod vocabulary so messages line up with what the
// generated client code reports.
const (
	CodeRequired      = "required"
	CodeInvalidType   = "invalid_type"
	CodeInvalidString = "invalid_string"
	CodeInvalidDate   = "invalid_date"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeCustom        = "custom"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Parse validates values against the object and returns the coerced output:
// numbers as float64, dates as time.Time, defaults applied. Keys not declared
// by the schema are dropped, matching z.object's strip behaviour.
func (o Object) Parse(values map[string]any) (map[string]any, Issues) {
	out := make(map[string]any, len(o.Properties))
	var issues Issues
	for _, prop := range o.Properties {
		raw, present := values[prop.Name]
		if present && raw == nil {
			present = false
		}
		value, propIssues := prop.Node.parse(prop.Name, raw, present)
		for i := range propIssues {
			propIssues[i].Field = prop.Name
		}
		issues = append(issues, propIssues...)
		if len(propIssues) == 0 && value != nil {
			out[prop.Name] = value
		}
	}
	return out, issues.normalize()
}

// Validate reports every issue found in values.
func (o Object) Validate(values map[string]any) Issues {
	_, issues := o.Parse(values)
	return issues
}

// Validate checks a single value; path labels the resulting issues.
func (n Node) Validate(path string, value any) Issues {
	_, issues := n.parse(path, value, value != nil)
	return issues
}

func (n Node) parse(path string, raw any, present bool) (any, Issues) {
	if !present {
		if n.Default != nil {
			return n.Default, nil
		}
		if n.Optional {
			return nil, nil
		}
		return nil, Issues{{Path: path, Code: CodeRequired, Message: "Required"}}
	}

	switch n.Kind {
	case KindBoolean:
		return n.parseBoolean(path, raw)
	case KindDate:
		return n.parseDate(path, raw)
	case KindNumber:
		return n.parseNumber(path, raw)
	case KindArray:
		return n.parseArray(path, raw)
	case KindTuple:
		return n.parseTuple(path, raw)
	default:
		return n.parseString(path, raw)
	}
}

func (n Node) parseBoolean(path string, raw any) (any, Issues) {
	value, ok := raw.(bool)
	if !ok {
		return nil, Issues{invalidType(path, "boolean", raw)}
	}
	if n.MustBeTrue && !value {
		return nil, Issues{{Path: path, Code: CodeCustom, Message: "This field must be checked."}}
	}
	return value, nil
}

func (n Node) parseDate(path string, raw any) (any, Issues) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		if n.Coerce {
			trimmed := strings.TrimSpace(v)
			for _, layout := range dateLayouts {
				if parsed, err := time.Parse(layout, trimmed); err == nil {
					return parsed, nil
				}
			}
		}
	case float64:
		if n.Coerce && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return time.UnixMilli(int64(v)).UTC(), nil
		}
	case int64:
		if n.Coerce {
			return time.UnixMilli(v).UTC(), nil
		}
	case int:
		if n.Coerce {
			return time.UnixMilli(int64(v)).UTC(), nil
		}
	}
	return nil, Issues{{Path: path, Code: CodeInvalidDate, Message: "Invalid date"}}
}

func (n Node) parseNumber(path string, raw any) (any, Issues) {
	value, ok := toNumber(raw, n.Coerce)
	if !ok {
		return nil, Issues{invalidType(path, "number", raw)}
	}
	var issues Issues
	if n.Min != nil && value < *n.Min {
		issues = append(issues, Issue{
			Path:    path,
			Code:    CodeTooSmall,
			Message: fmt.Sprintf("Number must be greater than or equal to %s", formatFloat(*n.Min)),
		})
	}
	if n.Max != nil && value > *n.Max {
		issues = append(issues, Issue{
			Path:    path,
			Code:    CodeTooBig,
			Message: fmt.Sprintf("Number must be less than or equal to %s", formatFloat(*n.Max)),
		})
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return value, nil
}

func toNumber(raw any, coerce bool) (float64, bool) {
	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case float32:
		value = float64(v)
	case int:
		value = float64(v)
	case int32:
		value = float64(v)
	case int64:
		value = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		value = parsed
	case string:
		if !coerce {
			return 0, false
		}
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			// Number("") is 0 in JavaScript; z.coerce.number() follows it.
			return 0, true
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		value = parsed
	case bool:
		if !coerce {
			return 0, false
		}
		if v {
			value = 1
		}
	default:
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func (n Node) parseString(path string, raw any) (any, Issues) {
	value, ok := raw.(string)
	if !ok {
		return nil, Issues{invalidType(path, "string", raw)}
	}

	var issues Issues
	switch n.Format {
	case FormatEmail:
		if !isEmail(value) {
			issues = append(issues, Issue{Path: path, Code: CodeInvalidString, Message: "Invalid email"})
		}
	case FormatURL:
		if !isURL(value) {
			issues = append(issues, Issue{Path: path, Code: CodeInvalidString, Message: "Invalid url"})
		}
	}

	length := utf8.RuneCountInString(value)
	if n.MinLength != nil && length < *n.MinLength {
		issues = append(issues, Issue{
			Path:    path,
			Code:    CodeTooSmall,
			Message: fmt.Sprintf("String must contain at least %d character(s)", *n.MinLength),
		})
	}
	if n.MaxLength != nil && length > *n.MaxLength {
		issues = append(issues, Issue{
			Path:    path,
			Code:    CodeTooBig,
			Message: fmt.Sprintf("String must contain at most %d character(s)", *n.MaxLength),
		})
	}
	if n.CreditCard && !validCreditCard(value) {
		issues = append(issues, Issue{Path: path, Code: CodeCustom, Message: creditCardMessage})
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return value, nil
}

func (n Node) parseArray(path string, raw any) (any, Issues) {
	items, ok := toSlice(raw)
	if !ok {
		return nil, Issues{invalidType(path, "array", raw)}
	}
	element := Node{Kind: KindString}
	if n.Items != nil {
		element = *n.Items
	}

	var issues Issues
	out := make([]any, 0, len(items))
	for i, item := range items {
		value, itemIssues := element.parse(path+"."+strconv.Itoa(i), item, item != nil)
		issues = append(issues, itemIssues...)
		out = append(out, value)
	}
	if n.Nonempty && len(items) == 0 {
		issues = append(issues, Issue{Path: path, Code: CodeTooSmall, Message: "Please select at least one item"})
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

func (n Node) parseTuple(path string, raw any) (any, Issues) {
	items, ok := toSlice(raw)
	if !ok {
		return nil, Issues{invalidType(path, "array", raw)}
	}

	required := 0
	for i, element := range n.Elements {
		if !element.Optional {
			required = i + 1
		}
	}
	if len(items) < required {
		return nil, Issues{{
			Path:    path,
			Code:    CodeTooSmall,
			Message: fmt.Sprintf("Array must contain at least %d element(s)", required),
		}}
	}
	if len(items) > len(n.Elements) {
		return nil, Issues{{
			Path:    path,
			Code:    CodeTooBig,
			Message: fmt.Sprintf("Array must contain at most %d element(s)", len(n.Elements)),
		}}
	}

	var issues Issues
	out := make([]any, len(items))
	for i, element := range n.Elements {
		var item any
		present := i < len(items)
		if present {
			item = items[i]
			present = item != nil
		}
		value, itemIssues := element.parse(path+"."+strconv.Itoa(i), item, present)
		issues = append(issues, itemIssues...)
		if i < len(out) {
			out[i] = value
		}
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

func toSlice(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}

func validCreditCard(value string) bool {
	var card map[string]any
	if err := json.Unmarshal([]byte(value), &card); err != nil {
		return false
	}
	for _, key := range CreditCardKeys {
		text, ok := card[key].(string)
		if !ok || strings.TrimSpace(text) == "" {
			return false
		}
	}
	return true
}

func isEmail(value string) bool {
	if value == "" || strings.ContainsAny(value, " \t\r\n") {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	at := strings.LastIndex(value, "@")
	return at > 0 && strings.Contains(value[at+1:], ".")
}

func isURL(value string) bool {
	parsed, err := url.ParseRequestURI(value)
	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}

func invalidType(path, expected string, raw any) Issue {
	return Issue{
		Path:    path,
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("Expected %s, received %s", expected, typeName(raw)),
	}
}

func typeName(raw any) string {
	switch raw.(type) {
	case nil:
		return "undefined"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, float32, int, int32, int64, json.Number:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
