package definition_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcode/pkg/definition"
	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/stepper"
)

func TestLoadYAML(t *testing.T) {
	form, err := definition.Load(filepath.Join("testdata", "forms", "contact.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if form.Title != "Contact us" {
		t.Fatalf("unexpected title %q", form.Title)
	}
	want := []string{"email", "first-name", "last-name", "topic", "message", "agree"}
	if diff := cmp.Diff(want, form.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !form.Entries[1].IsRow() || form.Entries[1].Span() != 6 {
		t.Fatalf("expected second entry to be a row of two")
	}
	fields := form.Flatten()
	if fields[3].Variant != model.VariantSelect || len(fields[3].Options) != 2 {
		t.Fatalf("unexpected topic field: %+v", fields[3])
	}
	if fields[4].Min == nil || *fields[4].Min != 10 {
		t.Fatalf("expected message min length")
	}
}

func TestLoadJSONSteps(t *testing.T) {
	form, err := definition.Load(filepath.Join("testdata", "forms", "nested", "signup.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(form.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(form.Steps))
	}
	want := []string{"email", "password", "city", "zip", "volume"}
	if diff := cmp.Diff(want, form.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if form.Steps[1].Validation != "validate-on-submit" {
		t.Fatalf("unexpected validation %q", form.Steps[1].Validation)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := definition.Parse([]byte("  \n"), "blank.yaml"); err == nil {
		t.Fatalf("expected empty file error")
	}
	if _, err := definition.Parse([]byte("fields: [unterminated"), "broken.yaml"); err == nil {
		t.Fatalf("expected parse error")
	}

	dup := []byte(`
fields:
  - name: email
  - row:
      - name: email
      - name: other
`)
	_, err := definition.Parse(dup, "dup.yaml")
	if !errors.Is(err, model.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestParseRejectsUnknownStepPolicy(t *testing.T) {
	data := []byte(`
steps:
  - id: account
    validation: on-submit
    fields:
      - name: email
  - id: profile
    validation: eager
    fields:
      - name: email
`)
	_, err := definition.Parse(data, "policy.yaml")
	if !errors.Is(err, stepper.ErrUnknownPolicy) {
		t.Fatalf("expected ErrUnknownPolicy, got %v", err)
	}
	if !errors.Is(err, model.ErrDuplicateName) {
		t.Fatalf("expected field issues reported alongside, got %v", err)
	}

	var invalid *model.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	var paths []string
	for _, issue := range invalid.Issues {
		paths = append(paths, issue.Path)
	}
	if diff := cmp.Diff([]string{"fields[1]", "steps[1].validation"}, paths); diff != "" {
		t.Fatalf("issue paths mismatch (-want +got):\n%s", diff)
	}

	ok := []byte(`
steps:
  - id: one
    validation: none
    fields:
      - name: a
  - id: two
    fields:
      - name: b
`)
	if _, err := definition.Parse(ok, "ok.yaml"); err != nil {
		t.Fatalf("parse: %v", err)
	}
}

func TestLoadFS(t *testing.T) {
	catalog, err := definition.LoadFS(os.DirFS(filepath.Join("testdata", "forms")))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if diff := cmp.Diff([]string{"contact", "nested/signup"}, catalog.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if _, ok := catalog.Get("contact"); !ok {
		t.Fatalf("expected contact definition")
	}
	if catalog.Source("nested/signup") != "nested/signup.json" {
		t.Fatalf("unexpected source %q", catalog.Source("nested/signup"))
	}
}

func TestLoadFSRejectsDuplicateIDs(t *testing.T) {
	files := fstest.MapFS{
		"a.yaml":    {Data: []byte("fields:\n  - name: x\n")},
		"a.json":    {Data: []byte(`{"fields":[{"name":"x"}]}`)},
		"notes.txt": {Data: []byte("ignored")},
	}
	if _, err := definition.LoadFS(files); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	empty, err := definition.LoadFS(nil)
	if err != nil || empty.Len() != 0 {
		t.Fatalf("expected empty catalog, got %v (%v)", empty.Len(), err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	form, err := definition.Load(filepath.Join("testdata", "forms", "contact.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var buf bytes.Buffer
	if err := definition.Write(&buf, form); err != nil {
		t.Fatalf("write: %v", err)
	}
	again, err := definition.Parse(buf.Bytes(), "roundtrip.yaml")
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(form.Names(), again.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !again.Entries[1].IsRow() {
		t.Fatalf("expected row to survive round trip")
	}
}

func TestWriteFileJSON(t *testing.T) {
	form := model.Form{
		Title:   "Tiny",
		Entries: []model.Entry{model.Single(model.Field{Name: "email", Variant: model.VariantInput})},
	}
	target := filepath.Join(t.TempDir(), "tiny.json")
	if err := definition.WriteFile(target, form); err != nil {
		t.Fatalf("write file: %v", err)
	}
	loaded, err := definition.Load(target)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Title != "Tiny" || loaded.Names()[0] != "email" {
		t.Fatalf("unexpected form %+v", loaded)
	}
}
