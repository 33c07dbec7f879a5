package generators_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/generators"
	"github.com/goliatone/go-formcode/pkg/generators/diy"
	"github.com/goliatone/go-formcode/pkg/generators/serveraction"
	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/testsupport"
)

func signupForm() model.Form {
	return model.Form{
		Title: "Signup",
		Entries: []model.Entry{
			model.Single(model.Field{Name: "email", Variant: model.VariantInput, Type: model.InputTypeEmail, Label: "Email", Required: true}),
			model.Row(
				model.Field{Name: "first", Variant: model.VariantInput, Required: true},
				model.Field{Name: "last", Variant: model.VariantInput},
			),
			model.Single(model.Field{
				Name:    "plan",
				Variant: model.VariantSelect,
				Options: []model.Option{{Label: "Free", Value: "free"}, {Label: "Pro", Value: "pro"}},
			}),
			model.Single(model.Field{Name: "region", Variant: model.VariantSelect}),
			model.Single(model.Field{Name: "agree", Variant: model.VariantCheckbox, Required: true}),
		},
	}
}

func TestRegistryHoldsEveryLibrary(t *testing.T) {
	reg, err := generators.NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	want := []codegen.Library{
		codegen.LibraryDIY,
		codegen.LibraryHookForm,
		codegen.LibraryServerAction,
		codegen.LibraryTanStack,
	}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("libraries mismatch (-want +got):\n%s", diff)
	}
	if err := generators.Register(reg); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	form := signupForm()
	for _, lib := range codegen.Libraries() {
		t.Run(string(lib), func(t *testing.T) {
			first := testsupport.Generate(t, lib, form, codegen.Options{})
			second := testsupport.Generate(t, lib, form, codegen.Options{})
			if diff := cmp.Diff(first, second); diff != "" {
				t.Fatalf("output differs between runs (-first +second):\n%s", diff)
			}
		})
	}
}

func TestGenerateKeepsFieldOrderAndSharedParts(t *testing.T) {
	form := signupForm()
	for _, lib := range codegen.Libraries() {
		t.Run(string(lib), func(t *testing.T) {
			out := testsupport.Generate(t, lib, form, codegen.Options{})

			var markers []string
			for _, name := range []string{"email", "first", "last", "plan", "region", "agree"} {
				markers = append(markers, `<Label htmlFor="`+name+`"`)
			}
			testsupport.AssertOrder(t, out, markers...)

			selectImport := `import { Select, SelectContent, SelectItem, SelectTrigger, SelectValue } from "@/components/ui/select";`
			if n := strings.Count(out, selectImport); n != 1 {
				t.Fatalf("expected select import once, got %d:\n%s", n, out)
			}
			if n := strings.Count(out, `from "@/components/ui/label";`); n != 1 {
				t.Fatalf("expected label import once, got %d", n)
			}

			testsupport.AssertContains(t, out,
				`import { z } from "zod";`,
				`import { Button } from "@/components/ui/button";`,
				"const formSchema = z.object({",
				"  email: z.string().email(),",
				"  first: z.string().min(1),",
				"  last: z.string().optional(),",
				`<div className="grid grid-cols-12 gap-4">`,
				`<div className="col-span-6">`,
				`<SelectItem value="pro">Pro</SelectItem>`,
				`<SelectItem value="m@example.com">m@example.com</SelectItem>`,
				"export default function MyForm() {",
				`className="space-y-8 max-w-3xl mx-auto py-10"`,
				">Submit</Button>",
			)
		})
	}
}

func TestHookFormBindings(t *testing.T) {
	out := testsupport.Generate(t, codegen.LibraryHookForm, signupForm(), codegen.Options{})
	testsupport.AssertContains(t, out,
		`import { useForm, Controller } from "react-hook-form";`,
		`import { zodResolver } from "@hookform/resolvers/zod";`,
		"resolver: zodResolver(formSchema),",
		`{...register("email")}`,
		`{errors.email && <p className="text-sm font-medium text-destructive">{errors.email?.message}</p>}`,
		"<Controller",
		`name="plan"`,
		"render={({ field }) => (",
		`<Select value={field.value} onValueChange={field.onChange}>`,
		`<Checkbox id="agree" checked={field.value} onCheckedChange={field.onChange} />`,
	)
}

func TestHookFormWithoutControlledFieldsSkipsController(t *testing.T) {
	form := model.Form{Entries: []model.Entry{
		model.Single(model.Field{Name: "bio", Variant: model.VariantTextarea}),
	}}
	out := testsupport.Generate(t, codegen.LibraryHookForm, form, codegen.Options{})
	testsupport.AssertContains(t, out, `import { useForm } from "react-hook-form";`)
	if strings.Contains(out, "<Controller") {
		t.Fatalf("unexpected Controller:\n%s", out)
	}
}

func TestDIYBindings(t *testing.T) {
	out := testsupport.Generate(t, codegen.LibraryDIY, signupForm(), codegen.Options{})
	testsupport.AssertContains(t, out,
		`import { useState } from "react";`,
		`<Input id="email" type="email" name="email" defaultValue={defaultValues.email} />`,
		`<Select value={values.plan} onValueChange={(value) => setValue("plan", value)}>`,
		`{errors.email && <p className="text-sm font-medium text-destructive">{errors.email}</p>}`,
		"formSchema.safeParse({ ...values, ...submitted })",
	)
}

func TestTanStackBindings(t *testing.T) {
	out := testsupport.Generate(t, codegen.LibraryTanStack, signupForm(), codegen.Options{})
	testsupport.AssertContains(t, out,
		`import { useForm } from "@tanstack/react-form";`,
		`value={form.getFieldValue("email")}`,
		`onChange={(event) => form.setFieldValue("email", event.target.value)}`,
		`<p className="text-sm font-medium text-destructive"></p>`,
		"onChange: formSchema,",
	)
	if strings.Contains(out, "errors.email") {
		t.Fatalf("tanstack output should not reference per-field errors:\n%s", out)
	}
}

func TestServerActionBindings(t *testing.T) {
	out := testsupport.Generate(t, codegen.LibraryServerAction, signupForm(), codegen.Options{})
	testsupport.AssertContains(t, out,
		`import { useActionState } from "react";`,
		"export async function submitForm(prevState: FormState, formData: FormData): Promise<FormState> {",
		`"use server";`,
		`email: formData.get("email") ?? undefined,`,
		`agree: formData.get("agree") === "on",`,
		`<Input id="email" type="email" name="email" defaultValue={defaultValues.email} />`,
		`<Select name="plan" defaultValue={defaultValues.plan}>`,
		`{state.errors?.email && <p className="text-sm font-medium text-destructive">{state.errors.email[0]}</p>}`,
		"useActionState(submitForm, initialState)",
	)
	if strings.HasPrefix(out, `"use client"`) {
		t.Fatalf("server action module must not start with a client directive")
	}
}

func TestDefaultsPrecedence(t *testing.T) {
	form := model.Form{Entries: []model.Entry{
		model.Single(model.Field{Name: "volume", Variant: model.VariantSlider}),
		model.Single(model.Field{Name: "nick", Variant: model.VariantInput, Default: "ada"}),
		model.Single(model.Field{Name: "bio", Variant: model.VariantTextarea}),
		model.Single(model.Field{Name: "stack", Variant: model.VariantMultiSelect}),
	}}
	opts := codegen.Options{Defaults: map[string]any{"volume": 7, "bio": "hi"}}

	for _, lib := range codegen.Libraries() {
		t.Run(string(lib), func(t *testing.T) {
			out := testsupport.Generate(t, lib, form, opts)
			testsupport.AssertContains(t, out,
				"volume: 7,",
				`nick: "ada",`,
				`bio: "hi",`,
				`stack: ["React"],`,
			)
			switch lib {
			case codegen.LibraryDIY, codegen.LibraryServerAction:
				testsupport.AssertContains(t, out,
					`<Input id="nick" name="nick" defaultValue={defaultValues.nick} />`,
					`<Textarea id="bio" className="resize-none" name="bio" defaultValue={defaultValues.bio} />`,
				)
			case codegen.LibraryHookForm:
				testsupport.AssertContains(t, out, "useForm<", "defaultValues: {")
			case codegen.LibraryTanStack:
				testsupport.AssertContains(t, out, "defaultValues: {", `value={form.getFieldValue("nick")}`)
			}
		})
	}
}

func TestServerActionSeparateModule(t *testing.T) {
	gen, err := serveraction.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form := signupForm()
	opts := codegen.Options{ActionModule: "./signup-actions"}

	action, err := gen.GenerateAction(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("generate action: %v", err)
	}
	actionSrc := string(action)
	if !strings.HasPrefix(actionSrc, "\"use server\";\n") {
		t.Fatalf("action module must open with a server directive:\n%s", actionSrc)
	}
	testsupport.AssertOrder(t, actionSrc,
		`import { z } from "zod";`,
		"const formSchema = z.object(",
		"export type FormState = {",
		"export async function submitForm(prevState: FormState, formData: FormData): Promise<FormState> {",
		`email: formData.get("email") ?? undefined,`,
	)
	if strings.Count(actionSrc, `"use server"`) != 1 || strings.Contains(actionSrc, "useActionState") {
		t.Fatalf("action module should only hold the action:\n%s", actionSrc)
	}

	component, err := gen.Generate(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := string(component)
	if !strings.HasPrefix(out, "\"use client\";\n") {
		t.Fatalf("component must open with a client directive:\n%s", out)
	}
	testsupport.AssertOrder(t, out,
		`import { useActionState } from "react";`,
		`import { submitForm } from "./signup-actions";`,
		"export default function",
		"useActionState(submitForm, initialState)",
		`<Input id="email" type="email" name="email" defaultValue={defaultValues.email} />`,
	)
	for _, banned := range []string{`"use server"`, "async function", "formSchema", `from "zod"`} {
		if strings.Contains(out, banned) {
			t.Fatalf("client component should not contain %q:\n%s", banned, out)
		}
	}
}

func TestLocalStateEmittedOnce(t *testing.T) {
	form := model.Form{Entries: []model.Entry{
		model.Single(model.Field{Name: "card", Variant: model.VariantCreditCard}),
		model.Single(model.Field{Name: "where", Variant: model.VariantLocationInput}),
		model.Single(model.Field{Name: "sig", Variant: model.VariantSignatureInput}),
	}}
	for _, lib := range codegen.Libraries() {
		t.Run(string(lib), func(t *testing.T) {
			out := testsupport.Generate(t, lib, form, codegen.Options{})
			if n := strings.Count(out, "const [creditCard, setCreditCard] = useState({"); n != 1 {
				t.Fatalf("expected credit card state once, got %d:\n%s", n, out)
			}
			testsupport.AssertContains(t, out,
				"  const canvasRef = useRef<HTMLCanvasElement>(null);",
				`  const [countryName, setCountryName] = useState<string>("");`,
			)
			if !strings.Contains(out, "useState") || !strings.Contains(out, "useRef") {
				t.Fatalf("expected react hooks imported:\n%s", out)
			}
		})
	}
}

func TestServerActionHiddenInputsForLocalState(t *testing.T) {
	form := model.Form{Entries: []model.Entry{
		model.Single(model.Field{Name: "card", Variant: model.VariantCreditCard}),
	}}
	out := testsupport.Generate(t, codegen.LibraryServerAction, form, codegen.Options{})
	testsupport.AssertContains(t, out,
		`<input type="hidden" name="card" value={JSON.stringify(creditCard)} />`,
		"onChange={setCreditCard}",
	)
}

func TestTokensOverride(t *testing.T) {
	out := testsupport.Generate(t, codegen.LibraryDIY, signupForm(), codegen.Options{
		Tokens: codegen.Tokens{ImportBase: "~/ui", ComponentName: "SignupForm", SubmitLabel: "Join"},
	})
	testsupport.AssertContains(t, out,
		"export default function SignupForm() {",
		`from "~/ui/select";`,
		">Join</Button>",
	)
}

func TestGenerateRejectsInvalidForms(t *testing.T) {
	form := model.Form{Entries: []model.Entry{
		model.Single(model.Field{Name: "email"}),
		model.Single(model.Field{Name: "email"}),
	}}
	for _, lib := range codegen.Libraries() {
		reg, err := generators.NewRegistry()
		if err != nil {
			t.Fatalf("registry: %v", err)
		}
		gen, _ := reg.Get(lib)
		if _, err := gen.Generate(context.Background(), form, codegen.Options{}); !errors.Is(err, model.ErrDuplicateName) {
			t.Fatalf("%s: expected ErrDuplicateName, got %v", lib, err)
		}
	}
}

func TestGenerateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen, err := diy.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := gen.Generate(ctx, signupForm(), codegen.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"component.tsx.tpl": {Data: []byte("// {{ componentName }}: {{ fieldNames|join:\",\" }}\n")},
	}
	gen, err := diy.New(diy.WithTemplates(files))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := gen.Generate(context.Background(), signupForm(), codegen.Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := string(out); got != "// MyForm: email,first,last,plan,region,agree\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGenerateDefinitionFixture(t *testing.T) {
	form := testsupport.LoadForm(t, "testdata/booking.yaml")
	for _, lib := range codegen.Libraries() {
		t.Run(string(lib), func(t *testing.T) {
			out := testsupport.Generate(t, lib, form, codegen.Options{})
			testsupport.AssertOrder(t, out,
				`<Label htmlFor="guest"`,
				`<Label htmlFor="arrival"`,
				`<Label htmlFor="nights"`,
				`<Label htmlFor="notes"`,
			)
			testsupport.AssertContains(t, out, "nights: z.coerce.number().min(1).max(14),")
		})
	}
}
