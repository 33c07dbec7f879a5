package template

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestEngineRendersFromFS(t *testing.T) {
	files := fstest.MapFS{
		"component.tpl": {Data: []byte("export function {{ name }}() {\n  return (\n{{ body|indent:4|safe }}\n  );\n}\n")},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var sink strings.Builder
	got, err := engine.RenderTemplate("component", map[string]any{
		"name": "Demo",
		"body": "<div>\n  <span />\n</div>",
	}, &sink)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "export function Demo() {\n  return (\n    <div>\n      <span />\n    </div>\n  );\n}\n"
	if got != want {
		t.Fatalf("unexpected output:\n%s", got)
	}
	if sink.String() != want {
		t.Fatalf("expected writer to receive rendered output")
	}
	if !engine.Has("component") || engine.Has("missing") {
		t.Fatalf("unexpected Has results")
	}
}

func TestEngineNestFilterAndEscaping(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}), WithGlobalData(map[string]any{"label": "Go"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString("values: {{ obj|nest:2|safe }} {{ raw }} {{ label }}", map[string]any{
		"obj": "{\n  a: 1,\n}",
		"raw": "<b>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "values: {\n    a: 1,\n  } &lt;b&gt; Go"
	if got != want {
		t.Fatalf("unexpected output:\n%q", got)
	}
}

func TestEngineRequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}
