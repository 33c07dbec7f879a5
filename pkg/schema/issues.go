package schema

import (
	"strings"
)

// Issue is a single validation failure. Path is the dotted field path
// ("tags.0" for array members). Field names the top-level property the issue
// belongs to; names may themselves contain dots, so Field is authoritative
// over Path when set.
type Issue struct {
	Path    string `json:"path"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldName returns the top-level property of the issue, falling back to the
// first Path segment when Field is unset.
func (i Issue) FieldName() string {
	if i.Field != "" {
		return i.Field
	}
	name, _, _ := strings.Cut(i.Path, ".")
	return name
}

// Issues collects validation failures in schema order.
type Issues []Issue

// Error implements error so callers can return Issues directly.
func (is Issues) Error() string {
	if len(is) == 0 {
		return "schema: no issues"
	}
	parts := make([]string, len(is))
	for i, issue := range is {
		parts[i] = issue.Path + ": " + issue.Message
	}
	return "schema: " + strings.Join(parts, "; ")
}

// Err returns nil when there are no issues.
func (is Issues) Err() error {
	if len(is) == 0 {
		return nil
	}
	return is
}

// Field returns the messages reported for the top-level field name, including
// issues on nested members (tags.0).
func (is Issues) Field(name string) []string {
	var out []string
	for _, issue := range is {
		if issue.FieldName() == name {
			out = append(out, issue.Message)
		}
	}
	return out
}

// ByField groups messages by top-level field name, the shape client code reads
// from state.errors.
func (is Issues) ByField() map[string][]string {
	if len(is) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range is {
		name := issue.FieldName()
		out[name] = appendUnique(out[name], issue.Message)
	}
	return out
}

func (is Issues) normalize() Issues {
	if len(is) == 0 {
		return nil
	}
	out := make(Issues, 0, len(is))
	seen := make(map[Issue]struct{}, len(is))
	for _, issue := range is {
		issue.Message = strings.TrimSpace(issue.Message)
		if issue.Message == "" {
			continue
		}
		if _, exists := seen[issue]; exists {
			continue
		}
		seen[issue] = struct{}{}
		out = append(out, issue)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
