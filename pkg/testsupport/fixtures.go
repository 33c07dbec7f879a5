// Package testsupport holds helpers shared by generator and pipeline tests.
package testsupport

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/definition"
	"github.com/goliatone/go-formcode/pkg/generators"
	"github.com/goliatone/go-formcode/pkg/model"
)

// LoadForm parses a definition fixture, failing the test on error.
func LoadForm(t *testing.T, path string) model.Form {
	t.Helper()

	form, err := definition.Load(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// Generate runs the built-in generator for lib and returns the source.
func Generate(t *testing.T, lib codegen.Library, form model.Form, opts codegen.Options) string {
	t.Helper()

	reg, err := generators.NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	gen, err := reg.Get(lib)
	if err != nil {
		t.Fatalf("get %s: %v", lib, err)
	}
	out, err := gen.Generate(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("generate %s: %v", lib, err)
	}
	return string(out)
}

// AssertContains fails unless every want appears in out.
func AssertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

// AssertOrder fails unless wants appear in out in the given order.
func AssertOrder(t *testing.T, out string, wants ...string) {
	t.Helper()
	offset := 0
	for _, want := range wants {
		idx := strings.Index(out[offset:], want)
		if idx < 0 {
			t.Fatalf("expected %q after offset %d in output:\n%s", want, offset, out)
		}
		offset += idx + len(want)
	}
}
