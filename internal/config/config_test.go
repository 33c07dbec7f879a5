package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcode/pkg/codegen"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
version: 1
library: tanstack
tokens:
  import_base: "~/ui"
  submit_label: Send
theme: acme
themes:
  - name: acme
    tokens:
      component.name: AcmeForm
    variants:
      compact:
        form.class: space-y-2
server:
  addr: ":9090"
  max_age: 2h
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Library != "tanstack" || cfg.Theme != "acme" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.KeyPrefix != "multi-step-form-progress" {
		t.Fatalf("expected defaults merged with server block: %+v", cfg.Server)
	}
	age, err := cfg.MaxAge()
	if err != nil || age != 2*time.Hour {
		t.Fatalf("unexpected max age %v (%v)", age, err)
	}

	tokens := cfg.CodegenTokens()
	if tokens.ImportBase != "~/ui" || tokens.SubmitLabel != "Send" || tokens.FieldClass != codegen.DefaultTokens().FieldClass {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}

	selector, err := cfg.ThemeSelector()
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	if diff := cmp.Diff([]string{"acme"}, selector.Names()); diff != "" {
		t.Fatalf("themes mismatch (-want +got):\n%s", diff)
	}
	selection, err := selector.Select("acme", "compact")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	themed := codegen.TokensFromTheme(codegen.ThemeConfig(selection))
	if themed.ComponentName != "AcmeForm" || themed.FormClass != "space-y-2" {
		t.Fatalf("unexpected themed tokens: %+v", themed)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Library != string(codegen.LibraryHookForm) || cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	selector, err := cfg.ThemeSelector()
	if err != nil || selector != nil {
		t.Fatalf("expected no selector without themes, got %v (%v)", selector, err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"version":      "version: 2\n",
		"library":      "version: 1\nlibrary: angular\n",
		"max age":      "version: 1\nserver:\n  max_age: soon\n",
		"theme name":   "version: 1\nthemes:\n  - tokens: {}\n",
		"theme twice":  "version: 1\nthemes:\n  - name: a\n  - name: a\n",
		"negative age": "version: 1\nserver:\n  max_age: -1h\n",
		"broken yaml":  "version: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Tokens.ComponentName = "SignupForm"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
