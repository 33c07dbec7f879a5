package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestEntrySpan(t *testing.T) {
	cases := []struct {
		name  string
		entry Entry
		want  int
	}{
		{name: "single", entry: Single(Field{Name: "a"}), want: 12},
		{name: "row of two", entry: Row(Field{Name: "a"}, Field{Name: "b"}), want: 6},
		{name: "row of three", entry: Row(Field{Name: "a"}, Field{Name: "b"}, Field{Name: "c"}), want: 4},
		{name: "row of one", entry: Row(Field{Name: "a"}), want: 12},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.entry.Span(); got != tc.want {
				t.Fatalf("span: want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestFlattenPreservesOrder(t *testing.T) {
	entries := []Entry{
		Single(Field{Name: "first"}),
		Row(Field{Name: "second"}, Field{Name: "third"}),
		Single(Field{Name: "fourth"}),
	}

	want := []string{"first", "second", "third", "fourth"}
	if diff := cmp.Diff(want, Names(entries)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestEntryUnmarshalJSON(t *testing.T) {
	payload := []byte(`{
		"title": "Signup",
		"fields": [
			{"name": "email", "variant": "Input", "type": "email", "required": true},
			[{"name": "first", "variant": "input"}, {"name": "last", "variant": "Input"}],
			{"row": [{"name": "a", "variant": "radio"}, {"name": "b", "variant": "Number"}, {"name": "c"}]}
		]
	}`)

	var form Form
	if err := json.Unmarshal(payload, &form); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(form.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(form.Entries))
	}
	if form.Entries[0].IsRow() {
		t.Fatalf("expected first entry to be single")
	}
	if !form.Entries[1].IsRow() || form.Entries[1].Span() != 6 {
		t.Fatalf("expected legacy array to decode as row of two")
	}
	row := form.Entries[2].Fields()
	if row[0].Variant != VariantRadioGroup {
		t.Fatalf("expected radio alias to resolve, got %q", row[0].Variant)
	}
	if row[1].Variant != VariantInput || row[1].Type != InputTypeNumber {
		t.Fatalf("expected Number to map to numeric input, got %q/%q", row[1].Variant, row[1].Type)
	}
	if row[2].Variant != VariantInput {
		t.Fatalf("expected empty variant to default to Input, got %q", row[2].Variant)
	}
}

func TestEntryYAMLRoundTrip(t *testing.T) {
	source := `
title: Contact
fields:
  - name: message
    variant: Textarea
  - row:
      - name: city
        variant: Input
      - name: zip
        variant: Input
  - - name: agree
      variant: Checkbox
    - name: subscribe
      variant: Switch
`
	var form Form
	if err := yaml.Unmarshal([]byte(source), &form); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"message", "city", "zip", "agree", "subscribe"}
	if diff := cmp.Diff(want, form.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	encoded, err := yaml.Marshal(form)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again Form
	if err := yaml.Unmarshal(encoded, &again); err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	if diff := cmp.Diff(form.Names(), again.Names()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if !again.Entries[1].IsRow() || !again.Entries[2].IsRow() {
		t.Fatalf("expected rows to survive encoding")
	}
}

func TestValidateRejectsDuplicates(t *testing.T) {
	entries := []Entry{
		Single(Field{Name: "email"}),
		Row(Field{Name: "name"}, Field{Name: "email"}),
		Single(Field{Name: " "}),
	}

	err := Validate(entries)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Issues[0].Path != "fields[1].row[1]" || verr.Issues[0].Field != "email" {
		t.Fatalf("unexpected first issue: %+v", verr.Issues[0])
	}
}

func TestValidateRowSize(t *testing.T) {
	entries := []Entry{
		Row(Field{Name: "a"}, Field{Name: "b"}, Field{Name: "c"}, Field{Name: "d"}),
	}
	if err := Validate(entries); !errors.Is(err, ErrRowSize) {
		t.Fatalf("expected ErrRowSize, got %v", err)
	}
}

func TestParseVariant(t *testing.T) {
	cases := map[string]Variant{
		"Input":              VariantInput,
		"date picker":        VariantDatePicker,
		"DatePicker":         VariantDatePicker,
		"multi-select":       VariantMultiSelect,
		"tags_input":         VariantTagsInput,
		"Radio":              VariantRadioGroup,
		"smartDatetimeInput": VariantSmartDatetimeInput,
	}
	for raw, want := range cases {
		got, ok := ParseVariant(raw)
		if !ok || got != want {
			t.Fatalf("ParseVariant(%q): want %q, got %q (ok=%v)", raw, want, got, ok)
		}
	}

	if got, ok := ParseVariant("Color Picker"); ok || got != Variant("Color Picker") {
		t.Fatalf("expected unknown variant to pass through, got %q (ok=%v)", got, ok)
	}
}

func TestVariantsAreKnown(t *testing.T) {
	for _, v := range Variants() {
		if !v.Known() {
			t.Fatalf("variant %q should be known", v)
		}
	}
	if Variant("Nope").Known() {
		t.Fatalf("unexpected known variant")
	}
}

func TestDefaultLabel(t *testing.T) {
	cases := map[string]string{
		"firstName":     "First Name",
		"first_name":    "First Name",
		"billing-zip":   "Billing Zip",
		"address2":      "Address 2",
		"":              "",
		"contact.email": "Contact Email",
	}
	for name, want := range cases {
		if got := DefaultLabel(name); got != want {
			t.Fatalf("DefaultLabel(%q): want %q, got %q", name, want, got)
		}
	}
}
