package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyName reports a field without a name.
	ErrEmptyName = errors.New("model: field name is required")
	// ErrDuplicateName reports two fields sharing a name.
	ErrDuplicateName = errors.New("model: duplicate field name")
	// ErrRowSize reports a row outside the supported 1..3 field range.
	ErrRowSize = errors.New("model: row must hold between 1 and 3 fields")
)

// Issue locates a single definition problem.
type Issue struct {
	Path  string
	Field string
	Err   error
}

func (i Issue) Error() string {
	if i.Field != "" {
		return fmt.Sprintf("%s (%s): %v", i.Path, i.Field, i.Err)
	}
	return fmt.Sprintf("%s: %v", i.Path, i.Err)
}

// ValidationError aggregates every issue found in a definition.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "model: invalid form definition"
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.Error()
	}
	return "model: invalid form definition: " + strings.Join(parts, "; ")
}

// Unwrap exposes the underlying sentinel errors to errors.Is.
func (e *ValidationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := make([]error, len(e.Issues))
	for i, issue := range e.Issues {
		out[i] = issue.Err
	}
	return out
}

// Validate checks that names are present and unique across entries and that
// rows stay within the supported size. Generated code uses the name as both a
// lookup key and an identifier, so collisions are rejected instead of being
// silently overwritten.
func Validate(entries []Entry) error {
	var issues []Issue
	seen := make(map[string]string)

	for i, entry := range entries {
		if entry.IsRow() && (entry.Len() == 0 || entry.Len() > MaxRowFields) {
			issues = append(issues, Issue{Path: fmt.Sprintf("fields[%d]", i), Err: ErrRowSize})
		}
		for j, field := range entry.fields {
			path := fmt.Sprintf("fields[%d]", i)
			if entry.IsRow() {
				path = fmt.Sprintf("fields[%d].row[%d]", i, j)
			}
			name := strings.TrimSpace(field.Name)
			if name == "" {
				issues = append(issues, Issue{Path: path, Err: ErrEmptyName})
				continue
			}
			if first, exists := seen[name]; exists {
				issues = append(issues, Issue{
					Path:  path,
					Field: name,
					Err:   fmt.Errorf("%w: also declared at %s", ErrDuplicateName, first),
				})
				continue
			}
			seen[name] = path
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

// ValidateForm validates every entry of a form, steps included.
func ValidateForm(form Form) error {
	return Validate(form.AllEntries())
}
