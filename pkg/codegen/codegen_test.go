package codegen_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/model"
)

type stubBinding struct{}

func (stubBinding) Native(field model.Field) []string {
	return []string{codegen.NameAttr(field)}
}

func (b stubBinding) Controlled(field model.Field, control codegen.Control) []string {
	return codegen.ControlAttrs(control, "v."+field.Name, func(arg string) string {
		return b.Setter(field, arg)
	})
}

func (stubBinding) Setter(field model.Field, arg string) string {
	return "set(" + codegen.JSString(field.Name) + ", " + arg + ")"
}

func (stubBinding) Wrap(_ model.Field, primitive string, _ bool) string {
	return primitive
}

func (stubBinding) ErrorSlot(field model.Field, _ codegen.Tokens) string {
	return "{err." + field.Name + "}"
}

func TestRenderFieldNativeInput(t *testing.T) {
	field := model.Field{
		Name:        "email",
		Variant:     model.VariantInput,
		Type:        model.InputTypeEmail,
		Label:       "Email",
		Description: "We never share it.",
		Placeholder: "you@example.com",
		Disabled:    true,
	}

	want := strings.Join([]string{
		`<div className="space-y-2">`,
		`  <Label htmlFor="email">Email</Label>`,
		`  <Input id="email" type="email" placeholder="you@example.com" name="email" disabled />`,
		`  <p className="text-sm text-muted-foreground">We never share it.</p>`,
		`  {err.email}`,
		`</div>`,
	}, "\n")

	got := codegen.RenderField(field, stubBinding{}, codegen.Tokens{})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFieldControlledCheckbox(t *testing.T) {
	field := model.Field{Name: "agree", Variant: model.VariantCheckbox, Label: "I agree"}

	want := strings.Join([]string{
		`<div className="space-y-2">`,
		`  <div className="flex flex-row items-center gap-2">`,
		`    <Checkbox id="agree" checked={v.agree} onCheckedChange={(value) => set("agree", value)} />`,
		`    <Label htmlFor="agree">I agree</Label>`,
		`  </div>`,
		`  {err.agree}`,
		`</div>`,
	}, "\n")

	got := codegen.RenderField(field, stubBinding{}, codegen.Tokens{})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFieldUnknownVariantFallsBackToInput(t *testing.T) {
	field := model.Field{Name: "color", Variant: model.Variant("Color Picker")}
	got := codegen.RenderField(field, stubBinding{}, codegen.Tokens{})
	if !strings.Contains(got, `<Input id="color" name="color" />`) {
		t.Fatalf("expected text input fallback, got:\n%s", got)
	}
	if !strings.Contains(got, `<Label htmlFor="color">Color</Label>`) {
		t.Fatalf("expected derived label, got:\n%s", got)
	}
}

func TestRenderFieldEveryVariant(t *testing.T) {
	for _, variant := range model.Variants() {
		field := model.Field{Name: "f", Variant: variant, Disabled: true}
		got := codegen.RenderField(field, stubBinding{}, codegen.Tokens{})
		if !strings.Contains(got, `htmlFor="f"`) {
			t.Fatalf("%s: expected label bound to id, got:\n%s", variant, got)
		}
		if !strings.Contains(got, "disabled") {
			t.Fatalf("%s: expected disabled attribute, got:\n%s", variant, got)
		}
		if !strings.Contains(got, "{err.f}") {
			t.Fatalf("%s: expected error slot, got:\n%s", variant, got)
		}
	}
}

func TestRenderFieldSelectAndSlider(t *testing.T) {
	sel := codegen.RenderField(model.Field{
		Name:    "lang",
		Variant: model.VariantSelect,
		Options: []model.Option{{Label: "Go", Value: "go"}, {Label: "Rust", Value: "rust"}},
	}, stubBinding{}, codegen.Tokens{})
	for _, want := range []string{
		`<Select value={v.lang} onValueChange={(value) => set("lang", value)}>`,
		`<SelectTrigger id="lang">`,
		`<SelectItem value="go">Go</SelectItem>`,
		`<SelectItem value="rust">Rust</SelectItem>`,
	} {
		if !strings.Contains(sel, want) {
			t.Fatalf("expected %q in:\n%s", want, sel)
		}
	}

	slider := codegen.RenderField(model.Field{
		Name:    "volume",
		Variant: model.VariantSlider,
		Min:     model.Float(0),
		Max:     model.Float(10),
		Step:    model.Float(0.5),
	}, stubBinding{}, codegen.Tokens{})
	want := `<Slider id="volume" min={0} max={10} step={0.5} value={[v.volume]} onValueChange={(value) => set("volume", value[0])} />`
	if !strings.Contains(slider, want) {
		t.Fatalf("expected %q in:\n%s", want, slider)
	}
}

func TestRenderEntriesGrid(t *testing.T) {
	entries := []model.Entry{
		model.Row(model.Field{Name: "fieldA"}, model.Field{Name: "fieldB"}),
		model.Row(model.Field{Name: "x"}, model.Field{Name: "y"}, model.Field{Name: "z"}),
		model.Single(model.Field{Name: "solo"}),
	}

	got := codegen.RenderEntries(entries, stubBinding{}, codegen.Tokens{})

	if n := strings.Count(got, `<div className="grid grid-cols-12 gap-4">`); n != 2 {
		t.Fatalf("expected two grid rows, got %d:\n%s", n, got)
	}
	if n := strings.Count(got, `<div className="col-span-6">`); n != 2 {
		t.Fatalf("expected two span-6 children, got %d", n)
	}
	if n := strings.Count(got, `<div className="col-span-4">`); n != 3 {
		t.Fatalf("expected three span-4 children, got %d", n)
	}
	if strings.Contains(got, "col-span-12") {
		t.Fatalf("single fields must not be wrapped in a grid:\n%s", got)
	}

	order := []string{`id="fieldA"`, `id="fieldB"`, `id="x"`, `id="y"`, `id="z"`, `id="solo"`}
	last := -1
	for _, marker := range order {
		idx := strings.Index(got, marker)
		if idx <= last {
			t.Fatalf("expected %s after previous field:\n%s", marker, got)
		}
		last = idx
	}
}

func TestImportSetDedup(t *testing.T) {
	entries := []model.Entry{
		model.Single(model.Field{Name: "a", Variant: model.VariantSelect}),
		model.Single(model.Field{Name: "b", Variant: model.VariantRadioGroup}),
		model.Single(model.Field{Name: "c", Variant: model.VariantSelect}),
	}

	set := codegen.NewImportSet()
	set.Add("zod", "z")
	codegen.CollectImports(set, entries, codegen.Tokens{})
	set.Add("zod", "z")

	want := strings.Join([]string{
		`import { z } from "zod";`,
		`import { Select, SelectContent, SelectItem, SelectTrigger, SelectValue } from "@/components/ui/select";`,
		`import { Label } from "@/components/ui/label";`,
		`import { RadioGroup, RadioGroupItem } from "@/components/ui/radio-group";`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, set.Source()); diff != "" {
		t.Fatalf("imports mismatch (-want +got):\n%s", diff)
	}
	if !set.Has("@/components/ui/label", "Label") {
		t.Fatalf("expected Label import")
	}
}

func TestImportSetHonoursImportBase(t *testing.T) {
	set := codegen.NewImportSet()
	entries := []model.Entry{model.Single(model.Field{Name: "a", Variant: model.VariantSwitch})}
	codegen.CollectImports(set, entries, codegen.Tokens{ImportBase: "~/ui/"})

	got := set.Imports()
	if got[0].Module != "~/ui/switch" {
		t.Fatalf("expected import base applied, got %q", got[0].Module)
	}
}

func TestCollectStateOncePerVariant(t *testing.T) {
	entries := []model.Entry{
		model.Single(model.Field{Name: "sig", Variant: model.VariantSignatureInput}),
		model.Row(
			model.Field{Name: "upload", Variant: model.VariantFileInput},
			model.Field{Name: "other", Variant: model.VariantFileInput},
		),
		model.Single(model.Field{Name: "where", Variant: model.VariantLocationInput}),
		model.Single(model.Field{Name: "card", Variant: model.VariantCreditCard}),
		model.Single(model.Field{Name: "name", Variant: model.VariantInput}),
	}

	state := codegen.CollectState(entries)

	var variants []model.Variant
	for _, decl := range state.Decls() {
		variants = append(variants, decl.Variant)
	}
	want := []model.Variant{
		model.VariantSignatureInput,
		model.VariantFileInput,
		model.VariantLocationInput,
		model.VariantCreditCard,
	}
	if diff := cmp.Diff(want, variants); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"useRef", "useState"}, state.Hooks()); diff != "" {
		t.Fatalf("hooks mismatch (-want +got):\n%s", diff)
	}

	source := state.Source("")
	for _, want := range []string{
		"const canvasRef = useRef<HTMLCanvasElement>(null);",
		"const [files, setFiles] = useState<File[] | null>(null);",
		"const dropZoneConfig = {",
		`const [countryName, setCountryName] = useState<string>("");`,
		"const [creditCard, setCreditCard] = useState({",
	} {
		if !strings.Contains(source, want) {
			t.Fatalf("expected %q in:\n%s", want, source)
		}
	}
	if strings.Count(source, "const [files") != 1 {
		t.Fatalf("expected file state once:\n%s", source)
	}
}

func TestText(t *testing.T) {
	if got := codegen.Text("<b>Bold</b> {x}"); got != `Bold {"{"}x{"}"}` {
		t.Fatalf("unexpected text %q", got)
	}
	got := codegen.Attr(`Say "hi" <script>alert(1)</script>`)
	if strings.ContainsAny(got, `<"`) {
		t.Fatalf("expected markup and quotes escaped, got %q", got)
	}
}

func TestParseLibrary(t *testing.T) {
	cases := map[string]codegen.Library{
		"diy":             codegen.LibraryDIY,
		"React Hook Form": codegen.LibraryHookForm,
		"rhf":             codegen.LibraryHookForm,
		"tanstack":        codegen.LibraryTanStack,
		"server_action":   codegen.LibraryServerAction,
	}
	for raw, want := range cases {
		got, err := codegen.ParseLibrary(raw)
		if err != nil || got != want {
			t.Fatalf("ParseLibrary(%q): want %q, got %q (%v)", raw, want, got, err)
		}
	}
	if _, err := codegen.ParseLibrary("angular"); !errors.Is(err, codegen.ErrUnknownLibrary) {
		t.Fatalf("expected ErrUnknownLibrary, got %v", err)
	}
}

type stubGenerator struct {
	lib codegen.Library
}

func (s stubGenerator) Library() codegen.Library { return s.lib }

func (s stubGenerator) Generate(context.Context, model.Form, codegen.Options) ([]byte, error) {
	return []byte(s.lib), nil
}

func TestRegistry(t *testing.T) {
	reg := codegen.NewRegistry()
	reg.MustRegister(stubGenerator{lib: codegen.LibraryTanStack})
	reg.MustRegister(stubGenerator{lib: codegen.LibraryDIY})

	if err := reg.Register(stubGenerator{lib: codegen.LibraryDIY}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil generator error")
	}

	want := []codegen.Library{codegen.LibraryDIY, codegen.LibraryTanStack}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	gen, err := reg.Lookup("tanstack")
	if err != nil || gen.Library() != codegen.LibraryTanStack {
		t.Fatalf("lookup: %v", err)
	}
	if _, err := reg.Get(codegen.LibraryHookForm); !errors.Is(err, codegen.ErrUnknownLibrary) {
		t.Fatalf("expected ErrUnknownLibrary for unregistered library, got %v", err)
	}
}

func TestThemeTokens(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			codegen.TokenImportBase:  "@/ui",
			codegen.TokenSubmitLabel: "Send",
		},
		Assets: theme.Assets{
			Prefix: "/assets/acme",
			Files:  map[string]string{"stylesheet": "acme.css"},
		},
		Variants: map[string]theme.Variant{
			"compact": {
				Tokens: map[string]string{codegen.TokenFormClass: "space-y-2"},
			},
		},
	}

	selector, err := codegen.NewManifestSelector(manifest)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	selection, err := selector.Select("", "compact")
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	cfg := codegen.ThemeConfig(selection)
	if cfg.Theme != "acme" || cfg.Variant != "compact" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/acme/acme.css" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if cfg.CSSVars["--submit-label"] != "Send" {
		t.Fatalf("expected css vars derived from tokens, got %v", cfg.CSSVars)
	}

	tokens := codegen.TokensFromTheme(cfg)
	if tokens.ImportBase != "@/ui" || tokens.SubmitLabel != "Send" || tokens.FormClass != "space-y-2" {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
	if tokens.GridClass != codegen.DefaultTokens().GridClass {
		t.Fatalf("expected default grid class")
	}

	if _, err := selector.Select("acme", "missing"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := selector.Select("other", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}
