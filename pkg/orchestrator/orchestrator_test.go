package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/model"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func contactEntries() []model.Entry {
	return []model.Entry{
		model.Single(model.Field{Name: "email", Variant: model.VariantInput, Type: model.InputTypeEmail, Required: true}),
		model.Row(
			model.Field{Name: "subscribe", Variant: model.VariantSwitch},
			model.Field{Name: "when", Variant: model.VariantDatePicker},
		),
	}
}

const accountsDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "Accounts", "version": "1.0.0"},
  "paths": {
    "/accounts": {
      "post": {
        "operationId": "createAccount",
        "requestBody": {"content": {"application/json": {"schema": {
          "type": "object",
          "required": ["email"],
          "properties": {
            "nickname": {"type": "string"},
            "email": {"type": "string", "format": "email"}
          }
        }}}},
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func TestGenerateDefaultLibrary(t *testing.T) {
	orch := New(WithClock(func() time.Time { return fixedNow }))

	res, err := orch.Generate(context.Background(), Request{
		Entries:  contactEntries(),
		Defaults: map[string]any{"email": "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Library != codegen.LibraryHookForm {
		t.Fatalf("expected default library, got %q", res.Library)
	}
	if !strings.Contains(string(res.Code), "useForm") {
		t.Fatalf("expected hook form output:\n%s", res.Code)
	}
	if !strings.HasPrefix(res.SchemaSource, "const formSchema = z.object({\n  email: z.string().email(),") {
		t.Fatalf("unexpected schema source:\n%s", res.SchemaSource)
	}
	if !strings.Contains(string(res.Interchange), `"$schema": "http://json-schema.org/draft-07/schema#"`) {
		t.Fatalf("unexpected interchange:\n%s", res.Interchange)
	}

	want := map[string]any{"email": "ada@example.com", "subscribe": true, "when": fixedNow}
	if diff := cmp.Diff(want, res.Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateSelectsLibrary(t *testing.T) {
	orch := New()
	res, err := orch.Generate(context.Background(), Request{Entries: contactEntries(), Library: "tanstack"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Library != codegen.LibraryTanStack {
		t.Fatalf("expected tanstack, got %q", res.Library)
	}

	_, err = orch.Generate(context.Background(), Request{Entries: contactEntries(), Library: "angular"})
	if !errors.Is(err, codegen.ErrUnknownLibrary) {
		t.Fatalf("expected ErrUnknownLibrary, got %v", err)
	}
}

func TestGenerateSeparateActionModule(t *testing.T) {
	orch := New()
	res, err := orch.Generate(context.Background(), Request{
		Entries:      contactEntries(),
		Library:      "server-action",
		ActionModule: "./contact-actions",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(string(res.Action), `"use server";`) {
		t.Fatalf("expected server module:\n%s", res.Action)
	}
	if !strings.HasPrefix(string(res.Code), `"use client";`) {
		t.Fatalf("expected client component:\n%s", res.Code)
	}
	if !strings.Contains(string(res.Code), `import { submitForm } from "./contact-actions";`) {
		t.Fatalf("expected action import:\n%s", res.Code)
	}

	res, err = orch.Generate(context.Background(), Request{
		Entries:      contactEntries(),
		Library:      "tanstack",
		ActionModule: "./contact-actions",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Action != nil {
		t.Fatalf("tanstack has no server action, got:\n%s", res.Action)
	}
}

func TestGenerateThemeTokens(t *testing.T) {
	selector, err := codegen.NewManifestSelector(&theme.Manifest{
		Name: "acme",
		Tokens: map[string]string{
			codegen.TokenSubmitLabel:   "Send",
			codegen.TokenComponentName: "AcmeForm",
		},
		Variants: map[string]theme.Variant{
			"short": {Tokens: map[string]string{codegen.TokenSubmitLabel: "Go"}},
		},
	})
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	orch := New(WithThemeSelector(selector))

	res, err := orch.Generate(context.Background(), Request{Entries: contactEntries(), Library: "diy", ThemeName: "acme"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	code := string(res.Code)
	if !strings.Contains(code, "export default function AcmeForm() {") || !strings.Contains(code, ">Send</Button>") {
		t.Fatalf("expected theme tokens in output:\n%s", code)
	}

	res, err = orch.Generate(context.Background(), Request{Entries: contactEntries(), Library: "diy", ThemeName: "acme", ThemeVariant: "short"})
	if err != nil {
		t.Fatalf("generate variant: %v", err)
	}
	if !strings.Contains(string(res.Code), ">Go</Button>") {
		t.Fatalf("expected variant token in output:\n%s", res.Code)
	}

	res, err = orch.Generate(context.Background(), Request{
		Entries:   contactEntries(),
		Library:   "diy",
		ThemeName: "acme",
		Tokens:    &codegen.Tokens{SubmitLabel: "Override"},
	})
	if err != nil {
		t.Fatalf("generate override: %v", err)
	}
	if !strings.Contains(string(res.Code), ">Override</Button>") {
		t.Fatalf("expected explicit tokens to win:\n%s", res.Code)
	}

	if _, err := orch.Generate(context.Background(), Request{Entries: contactEntries(), ThemeName: "missing"}); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}

func TestGenerateFromOpenAPI(t *testing.T) {
	orch := New()
	res, err := orch.Generate(context.Background(), Request{
		OpenAPI:     []byte(accountsDoc),
		OperationID: "createAccount",
		Library:     "server-action",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "nickname"}, res.Form.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	if _, err := orch.Generate(context.Background(), Request{OpenAPI: []byte(accountsDoc)}); err == nil {
		t.Fatalf("expected missing operation id error")
	}
}

func TestGenerateFromDefinitionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.yaml")
	source := "title: Contact\nfields:\n  - name: message\n    variant: Textarea\n    required: true\n"
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := New().Generate(context.Background(), Request{DefinitionPath: path})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Form.Title != "Contact" || !strings.Contains(res.SchemaSource, "message: z.string()") {
		t.Fatalf("unexpected result: %q\n%s", res.Form.Title, res.SchemaSource)
	}
}

func TestGenerateAppliesTransformer(t *testing.T) {
	preset, err := NewJSONPresetTransformer([]byte(`{
		"title": "Newsletter",
		"fields": {"email": {"label": "Work email", "rename": "workEmail"}}
	}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	var seen []string
	record := TransformerFunc(func(_ context.Context, form *model.Form) error {
		seen = form.Names()
		return nil
	})

	res, err := New(WithTransformer(Chain(preset, record))).Generate(context.Background(), Request{Entries: contactEntries()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Form.Title != "Newsletter" {
		t.Fatalf("expected preset title, got %q", res.Form.Title)
	}
	if diff := cmp.Diff([]string{"workEmail", "subscribe", "when"}, seen); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(res.Code), "Work email") {
		t.Fatalf("expected patched label in output:\n%s", res.Code)
	}
}

func TestGenerateErrors(t *testing.T) {
	orch := New()

	if _, err := orch.Generate(context.Background(), Request{}); err == nil {
		t.Fatalf("expected missing input error")
	}

	dup := model.Form{Entries: []model.Entry{
		model.Single(model.Field{Name: "email"}),
		model.Single(model.Field{Name: "email"}),
	}}
	if _, err := orch.Generate(context.Background(), Request{Form: &dup}); !errors.Is(err, model.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Generate(ctx, Request{Entries: contactEntries()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	failing := TransformerFunc(func(context.Context, *model.Form) error { return errors.New("boom") })
	if _, err := New(WithTransformer(failing)).Generate(context.Background(), Request{Entries: contactEntries()}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected transformer error, got %v", err)
	}
}

func TestPresetUnknownField(t *testing.T) {
	preset, err := NewJSONPresetTransformer([]byte(`{"fields": {"missing": {"label": "x"}}}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	form := model.Form{Entries: contactEntries()}
	if err := preset.Transform(context.Background(), &form); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := NewJSONPresetTransformer([]byte("  ")); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestPresetKeepsRowsAndSteps(t *testing.T) {
	preset, err := NewJSONPresetTransformer([]byte(`{"fields": {"when": {"required": true}, "code": {"variant": "otp"}}}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	form := model.Form{
		Entries: contactEntries(),
		Steps: []model.Step{{ID: "verify", Entries: []model.Entry{
			model.Single(model.Field{Name: "code", Variant: model.VariantInput}),
		}}},
	}
	if err := preset.Transform(context.Background(), &form); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if !form.Entries[1].IsRow() || !form.Entries[1].Fields()[1].Required {
		t.Fatalf("expected row preserved and patched: %+v", form.Entries[1].Fields())
	}
	if got := form.Steps[0].Entries[0].Fields()[0].Variant; got != model.VariantInputOTP {
		t.Fatalf("expected step field patched, got %q", got)
	}
}
