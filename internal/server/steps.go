package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/schema"
	"github.com/goliatone/go-formcode/pkg/stepper"
)

// StepView describes one step of a form.
type StepView struct {
	Index       int      `json:"index"`
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Policy      string   `json:"policy"`
	Fields      []string `json:"fields"`
}

// StepState is the progress of one form as returned by the steps endpoints.
type StepState struct {
	Form      string         `json:"form"`
	Current   int            `json:"currentStep"`
	Completed []int          `json:"completedSteps"`
	Total     int            `json:"total"`
	IsFirst   bool           `json:"isFirst"`
	IsLast    bool           `json:"isLast"`
	Step      StepView       `json:"step"`
	Issues    schema.Issues  `json:"issues,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// ValuesRequest carries the form values for next and submit.
type ValuesRequest struct {
	Values map[string]any `json:"values"`
}

type formSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title,omitempty"`
	Source string `json:"source"`
	Steps  int    `json:"steps"`
}

func (s *Server) listForms(w http.ResponseWriter, _ *http.Request) {
	ids := s.forms.IDs()
	out := make([]formSummary, 0, len(ids))
	for _, id := range ids {
		form, _ := s.forms.Get(id)
		out = append(out, formSummary{
			ID:     id,
			Title:  form.Title,
			Source: s.forms.Source(id),
			Steps:  len(stepper.StepsFromForm(form)),
		})
	}
	writeJSON(w, http.StatusOK, map[string][]formSummary{"forms": out})
}

// machine restores the stored progress of the form named in the route. It
// writes the error response itself and returns nil when the form is unusable.
func (s *Server) machine(w http.ResponseWriter, r *http.Request) (*stepper.Machine, string) {
	id, err := url.PathUnescape(chi.URLParam(r, "formID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM_ID", err.Error())
		return nil, ""
	}
	form, ok := s.forms.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "FORM_NOT_FOUND", "unknown form: "+id)
		return nil, ""
	}

	requestID := RequestIDFrom(r.Context())
	m, err := stepper.NewFromForm(form,
		stepper.WithStore(s.store),
		stepper.WithFormID(id),
		stepper.WithKeyPrefix(s.keyPrefix),
		stepper.WithMaxAge(s.maxAge),
		stepper.WithErrorHandler(func(err error) {
			s.logger.Warn("progress store failure", "request_id", requestID, "form", id, "error", err)
		}),
	)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_FORM", err.Error())
		return nil, ""
	}
	m.Restore(r.Context())
	return m, id
}

func (s *Server) stepState(w http.ResponseWriter, r *http.Request) {
	m, id := s.machine(w, r)
	if m == nil {
		return
	}
	writeJSON(w, http.StatusOK, stateOf(id, m))
}

func (s *Server) stepNext(w http.ResponseWriter, r *http.Request) {
	var req ValuesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	m, id := s.machine(w, r)
	if m == nil {
		return
	}
	issues, err := m.Next(r.Context(), valuesOrEmpty(req.Values))
	s.respondStep(w, r.Context(), id, m, issues, nil, err)
}

func (s *Server) stepPrev(w http.ResponseWriter, r *http.Request) {
	m, id := s.machine(w, r)
	if m == nil {
		return
	}
	s.respondStep(w, r.Context(), id, m, nil, nil, m.Prev(r.Context()))
}

func (s *Server) stepJump(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INDEX", "step index must be an integer")
		return
	}
	m, id := s.machine(w, r)
	if m == nil {
		return
	}
	s.respondStep(w, r.Context(), id, m, nil, nil, m.JumpTo(r.Context(), index))
}

func (s *Server) stepSubmit(w http.ResponseWriter, r *http.Request) {
	var req ValuesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	m, id := s.machine(w, r)
	if m == nil {
		return
	}
	data, issues, err := m.Submit(r.Context(), valuesOrEmpty(req.Values))
	s.respondStep(w, r.Context(), id, m, issues, data, err)
}

func (s *Server) stepReset(w http.ResponseWriter, r *http.Request) {
	m, id := s.machine(w, r)
	if m == nil {
		return
	}
	m.Reset(r.Context())
	writeJSON(w, http.StatusOK, stateOf(id, m))
}

func (s *Server) respondStep(w http.ResponseWriter, ctx context.Context, id string, m *stepper.Machine, issues schema.Issues, data map[string]any, err error) {
	state := stateOf(id, m)
	switch {
	case err == nil:
		state.Data = data
		writeJSON(w, http.StatusOK, state)
	case errors.Is(err, stepper.ErrInvalidStep):
		state.Issues = issues
		writeJSON(w, http.StatusUnprocessableEntity, state)
	case errors.Is(err, stepper.ErrFirstStep), errors.Is(err, stepper.ErrLastStep), errors.Is(err, stepper.ErrStepLocked):
		writeError(w, http.StatusConflict, "STEP_CONFLICT", err.Error())
	case errors.Is(err, stepper.ErrOutOfRange):
		writeError(w, http.StatusBadRequest, "INVALID_INDEX", err.Error())
	default:
		s.logger.Error("step transition failed", "request_id", RequestIDFrom(ctx), "form", id, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

func stateOf(id string, m *stepper.Machine) StepState {
	progress := m.Snapshot()
	step := m.Current()
	return StepState{
		Form:      id,
		Current:   progress.Current,
		Completed: progress.Completed,
		Total:     m.Len(),
		IsFirst:   progress.Current == 0,
		IsLast:    progress.Current == m.Len()-1,
		Step: StepView{
			Index:       progress.Current,
			ID:          step.ID,
			Title:       step.Title,
			Description: step.Description,
			Policy:      string(step.Policy),
			Fields:      nonNil(model.Names(step.Entries)),
		},
	}
}

func valuesOrEmpty(values map[string]any) map[string]any {
	if values == nil {
		return map[string]any{}
	}
	return values
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
