package stepper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formcode/pkg/model"
)

// Policy controls when a step's fields are validated.
type Policy string

const (
	// ValidateOnNext checks the step before moving past it, and again on
	// submit.
	ValidateOnNext Policy = "validate-on-next"
	// ValidateOnSubmit defers the step's checks to Submit.
	ValidateOnSubmit Policy = "validate-on-submit"
	// NoValidation never checks the step.
	NoValidation Policy = "none"
)

// ErrUnknownPolicy reports a validation value that names no Policy.
var ErrUnknownPolicy = errors.New("stepper: unknown validation policy")

// ParsePolicy maps a definition value onto a Policy. Empty and unknown values
// fall back to ValidateOnNext; use LookupPolicy to reject unknown values.
func ParsePolicy(raw string) Policy {
	policy, err := LookupPolicy(raw)
	if err != nil {
		return ValidateOnNext
	}
	return policy
}

// LookupPolicy maps a definition value onto a Policy, accepting a few common
// spellings. Empty resolves to ValidateOnNext.
func LookupPolicy(raw string) (Policy, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case "", "validate-on-next", "on-next", "next":
		return ValidateOnNext, nil
	case "validate-on-submit", "on-submit", "submit":
		return ValidateOnSubmit, nil
	case "none", "no-validation", "off", "skip":
		return NoValidation, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownPolicy, raw)
	}
}

// PolicyIssues reports every step of form whose validation value is not a
// known policy.
func PolicyIssues(form model.Form) []model.Issue {
	var issues []model.Issue
	for i, step := range form.Steps {
		if _, err := LookupPolicy(step.Validation); err != nil {
			issues = append(issues, model.Issue{Path: fmt.Sprintf("steps[%d].validation", i), Err: err})
		}
	}
	return issues
}

// Step is one page of a multi-step form.
type Step struct {
	ID          string
	Title       string
	Description string
	Entries     []model.Entry
	Policy      Policy
}

// Names returns the field names of the step in order.
func (s Step) Names() []string {
	return model.Names(s.Entries)
}

// StepsFromForm converts the steps of a form definition. A form without steps
// yields a single step holding its top-level entries; top-level entries of a
// stepped form are prepended to the first step.
func StepsFromForm(form model.Form) []Step {
	if len(form.Steps) == 0 {
		return []Step{{
			ID:      "step-1",
			Title:   form.Title,
			Entries: append([]model.Entry(nil), form.Entries...),
			Policy:  ValidateOnNext,
		}}
	}
	steps := make([]Step, 0, len(form.Steps))
	for i, def := range form.Steps {
		step := Step{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Entries:     append([]model.Entry(nil), def.Entries...),
			Policy:      ParsePolicy(def.Validation),
		}
		if step.ID == "" {
			step.ID = "step-" + strconv.Itoa(i+1)
		}
		if i == 0 && len(form.Entries) > 0 {
			step.Entries = append(append([]model.Entry(nil), form.Entries...), step.Entries...)
		}
		steps = append(steps, step)
	}
	return steps
}
