package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/jsonschema"
	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/orchestrator"
	"github.com/goliatone/go-formcode/pkg/schema"
)

const maxBodyBytes = 1 << 20

// Validation engines accepted by /v1/validate.
const (
	EngineZod        = "zod"
	EngineJSONSchema = "jsonschema"
)

type tokensPayload struct {
	ImportBase       string `json:"importBase,omitempty"`
	UtilsModule      string `json:"utilsModule,omitempty"`
	FormClass        string `json:"formClass,omitempty"`
	FieldClass       string `json:"fieldClass,omitempty"`
	InlineClass      string `json:"inlineClass,omitempty"`
	GridClass        string `json:"gridClass,omitempty"`
	DescriptionClass string `json:"descriptionClass,omitempty"`
	ErrorClass       string `json:"errorClass,omitempty"`
	SubmitLabel      string `json:"submitLabel,omitempty"`
	ComponentName    string `json:"componentName,omitempty"`
}

func (t *tokensPayload) toTokens() *codegen.Tokens {
	if t == nil {
		return nil
	}
	return &codegen.Tokens{
		ImportBase:       t.ImportBase,
		UtilsModule:      t.UtilsModule,
		FormClass:        t.FormClass,
		FieldClass:       t.FieldClass,
		InlineClass:      t.InlineClass,
		GridClass:        t.GridClass,
		DescriptionClass: t.DescriptionClass,
		ErrorClass:       t.ErrorClass,
		SubmitLabel:      t.SubmitLabel,
		ComponentName:    t.ComponentName,
	}
}

// GenerateRequest is the body of POST /v1/generate.
type GenerateRequest struct {
	Form     model.Form     `json:"form"`
	Library  string         `json:"library,omitempty"`
	Tokens   *tokensPayload `json:"tokens,omitempty"`
	Theme    string         `json:"theme,omitempty"`
	Variant  string         `json:"variant,omitempty"`
	Defaults map[string]any `json:"defaults,omitempty"`
	// ActionModule asks server action output for a separate action module,
	// imported by the component from this path.
	ActionModule string `json:"actionModule,omitempty"`
}

// GenerateResponse is the body returned by POST /v1/generate.
type GenerateResponse struct {
	Library     string          `json:"library"`
	Code        string          `json:"code"`
	Schema      string          `json:"schema"`
	Interchange json.RawMessage `json:"interchange"`
	Defaults    map[string]any  `json:"defaults"`
	Action      string          `json:"action,omitempty"`
}

// FormRequest is the body of the schema and jsonschema endpoints.
type FormRequest struct {
	Form model.Form `json:"form"`
}

// SchemaResponse is the body returned by POST /v1/schema.
type SchemaResponse struct {
	Source string   `json:"source"`
	Fields []string `json:"fields"`
}

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	Form   model.Form     `json:"form"`
	Values map[string]any `json:"values"`
	Engine string         `json:"engine,omitempty"`
}

// ValidateResponse is the body returned by POST /v1/validate.
type ValidateResponse struct {
	Valid  bool                `json:"valid"`
	Issues schema.Issues       `json:"issues"`
	Fields map[string][]string `json:"fields,omitempty"`
	Data   map[string]any      `json:"data,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: s.version})
}

func (s *Server) libraries(w http.ResponseWriter, _ *http.Request) {
	libs := s.orch.Libraries()
	names := make([]string, len(libs))
	for i, lib := range libs {
		names[i] = lib.String()
	}
	writeJSON(w, http.StatusOK, map[string][]string{"libraries": names})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := s.orch.Generate(r.Context(), orchestrator.Request{
		Form:         &req.Form,
		Library:      req.Library,
		Tokens:       req.Tokens.toTokens(),
		ThemeName:    req.Theme,
		ThemeVariant: req.Variant,
		Defaults:     req.Defaults,
		ActionModule: req.ActionModule,
	})
	if err != nil {
		s.writeGenerationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GenerateResponse{
		Library:     res.Library.String(),
		Code:        string(res.Code),
		Schema:      res.SchemaSource,
		Interchange: json.RawMessage(res.Interchange),
		Defaults:    res.Defaults,
		Action:      string(res.Action),
	})
}

func (s *Server) schemaSource(w http.ResponseWriter, r *http.Request) {
	var req FormRequest
	if !decodeBody(w, r, &req) || !validForm(w, req.Form) {
		return
	}
	obj := schema.Infer(req.Form.AllEntries())
	writeJSON(w, http.StatusOK, SchemaResponse{Source: schema.Source(obj), Fields: obj.Names()})
}

func (s *Server) interchange(w http.ResponseWriter, r *http.Request) {
	var req FormRequest
	if !decodeBody(w, r, &req) || !validForm(w, req.Form) {
		return
	}
	writeJSON(w, http.StatusOK, jsonschema.ExportForm(req.Form))
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !decodeBody(w, r, &req) || !validForm(w, req.Form) {
		return
	}
	if req.Values == nil {
		req.Values = map[string]any{}
	}

	var resp ValidateResponse
	switch req.Engine {
	case "", EngineZod:
		resp.Data, resp.Issues = schema.Infer(req.Form.AllEntries()).Parse(req.Values)
	case EngineJSONSchema:
		issues, err := jsonschema.ExportForm(req.Form).ValidateValues(req.Values)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_VALUES", err.Error())
			return
		}
		resp.Issues = issues
	default:
		writeError(w, http.StatusBadRequest, "UNKNOWN_ENGINE", "unknown validation engine: "+req.Engine)
		return
	}

	resp.Valid = len(resp.Issues) == 0
	if resp.Valid {
		resp.Issues = schema.Issues{}
	} else {
		resp.Fields = resp.Issues.ByField()
		resp.Data = nil
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *model.ValidationError
	switch {
	case errors.Is(err, codegen.ErrUnknownLibrary):
		writeError(w, http.StatusBadRequest, "UNKNOWN_LIBRARY", err.Error())
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_FORM", err.Error())
	case r.Context().Err() != nil:
		writeError(w, http.StatusServiceUnavailable, "CANCELLED", err.Error())
	default:
		s.logger.Warn("generation failed", "request_id", RequestIDFrom(r.Context()), "error", err)
		writeError(w, http.StatusBadRequest, "GENERATION_FAILED", err.Error())
	}
}

func validForm(w http.ResponseWriter, form model.Form) bool {
	if err := model.ValidateForm(form); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_FORM", err.Error())
		return false
	}
	return true
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON encode error: %v", err)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body: "+err.Error())
		return false
	}
	return true
}
