package openapi_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/openapi"
)

func loadAccounts(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/accounts.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestImportOrdersRequiredFirst(t *testing.T) {
	form, err := openapi.Import(context.Background(), loadAccounts(t), "createAccount")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	want := []string{
		"email", "password", "terms",
		"age", "bio", "birthday", "contact", "newsletter", "phone",
		"plan", "stacks", "tags", "volume", "website",
	}
	if diff := cmp.Diff(want, form.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if form.Title != "New account" || form.Description != "Sign up for an account." {
		t.Fatalf("unexpected form meta: %q / %q", form.Title, form.Description)
	}
}

func TestImportMapsVariants(t *testing.T) {
	form, err := openapi.Import(context.Background(), loadAccounts(t), "createAccount")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	got := make(map[string]model.Variant)
	for _, field := range form.Flatten() {
		got[field.Name] = field.Variant
	}
	want := map[string]model.Variant{
		"email":      model.VariantInput,
		"password":   model.VariantPassword,
		"terms":      model.VariantCheckbox,
		"age":        model.VariantInput,
		"bio":        model.VariantTextarea,
		"birthday":   model.VariantDatePicker,
		"contact":    model.VariantRadioGroup,
		"newsletter": model.VariantSwitch,
		"phone":      model.VariantPhoneInput,
		"plan":       model.VariantSelect,
		"stacks":     model.VariantMultiSelect,
		"tags":       model.VariantTagsInput,
		"volume":     model.VariantSlider,
		"website":    model.VariantInput,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("variants mismatch (-want +got):\n%s", diff)
	}
}

func TestImportFieldDetails(t *testing.T) {
	form, err := openapi.Import(context.Background(), loadAccounts(t), "createAccount")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	fields := make(map[string]model.Field)
	for _, field := range form.Flatten() {
		fields[field.Name] = field
	}

	email := fields["email"]
	if email.Type != model.InputTypeEmail || !email.Required || email.Placeholder != "ada@example.com" {
		t.Fatalf("unexpected email field: %+v", email)
	}
	age := fields["age"]
	if age.Type != model.InputTypeNumber || *age.Min != 18 || *age.Max != 120 || *age.Step != 1 {
		t.Fatalf("unexpected age field: %+v", age)
	}
	if fields["website"].Type != model.InputTypeURL {
		t.Fatalf("expected url input, got %q", fields["website"].Type)
	}
	if *fields["password"].Min != 8 {
		t.Fatalf("expected password min length 8")
	}
	if fields["terms"].Label != "Accept terms" {
		t.Fatalf("expected schema title as label, got %q", fields["terms"].Label)
	}
	if fields["newsletter"].Default != true || fields["plan"].Default != "free" {
		t.Fatalf("unexpected defaults: %#v / %#v", fields["newsletter"].Default, fields["plan"].Default)
	}

	wantPlan := []model.Option{
		{Label: "Free", Value: "free"},
		{Label: "Pro", Value: "pro"},
		{Label: "Team", Value: "team"},
		{Label: "Enterprise", Value: "enterprise"},
	}
	if diff := cmp.Diff(wantPlan, fields["plan"].Options); diff != "" {
		t.Fatalf("plan options mismatch (-want +got):\n%s", diff)
	}
	wantStacks := []model.Option{{Label: "React", Value: "react"}, {Label: "Vue", Value: "vue"}}
	if diff := cmp.Diff(wantStacks, fields["stacks"].Options); diff != "" {
		t.Fatalf("stacks options mismatch (-want +got):\n%s", diff)
	}
}

func TestImportFormEncodedBody(t *testing.T) {
	form, err := openapi.Import(context.Background(), loadAccounts(t), "updateNotes")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if form.Title != "Update Notes" {
		t.Fatalf("expected title from operation id, got %q", form.Title)
	}
	fields := form.Flatten()
	if len(fields) != 1 || fields[0].Variant != model.VariantTextarea {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestImportErrors(t *testing.T) {
	ctx := context.Background()
	data := loadAccounts(t)

	if _, err := openapi.Import(ctx, data, "missing"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := openapi.Import(ctx, data, "listAccounts"); !errors.Is(err, openapi.ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
	if _, err := openapi.Import(ctx, nil, "createAccount"); err == nil {
		t.Fatalf("expected empty payload error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := openapi.Import(cancelled, data, "createAccount"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOperations(t *testing.T) {
	ids, err := openapi.NewImporter().Operations(context.Background(), loadAccounts(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	want := []string{"createAccount", "listAccounts", "updateNotes"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryPriority(t *testing.T) {
	reg := openapi.NewVariantRegistry()
	reg.Register(model.VariantCombobox, 100, func(prop openapi.Property) bool {
		return len(prop.Enum) > 3
	})

	form, err := openapi.NewImporter(openapi.WithRegistry(reg)).Import(context.Background(), loadAccounts(t), "createAccount")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	for _, field := range form.Flatten() {
		if field.Name == "plan" {
			if field.Variant != model.VariantCombobox {
				t.Fatalf("expected higher priority matcher to win, got %q", field.Variant)
			}
			if len(field.Options) != 4 {
				t.Fatalf("expected combobox options, got %+v", field.Options)
			}
			return
		}
	}
	t.Fatalf("plan field missing")
}

func TestResolveFallsBackToInput(t *testing.T) {
	reg := openapi.NewVariantRegistry()
	if got := reg.Resolve(openapi.Property{Name: "x", Type: "string"}); got != model.VariantInput {
		t.Fatalf("expected Input, got %q", got)
	}
	explicit := openapi.Property{Name: "x", Type: "string", Extensions: map[string]any{openapi.VariantExtension: "otp"}}
	if got := reg.Resolve(explicit); got != model.VariantInputOTP {
		t.Fatalf("expected extension to pin variant, got %q", got)
	}
}
