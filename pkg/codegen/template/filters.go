package template

import (
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

var filtersOnce sync.Once

// registerFilters installs the layout filters used by the component templates:
//
//	{{ fields|indent:6|safe }}  indents every non-empty line
//	{{ defaults|nest:4|safe }}  indents every line but the first
func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("indent") {
			_ = pongo2.RegisterFilter("indent", filterIndent)
		}
		if !pongo2.FilterExists("nest") {
			_ = pongo2.RegisterFilter("nest", filterNest)
		}
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", filterTrim)
		}
	})
}

func filterIndent(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(indentLines(in.String(), width(param), 0)), nil
}

func filterNest(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(indentLines(in.String(), width(param), 1)), nil
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func width(param *pongo2.Value) int {
	if param == nil || !param.IsInteger() {
		return 0
	}
	return param.Integer()
}

// indentLines pads non-empty lines from index skip onwards with n spaces.
func indentLines(text string, n, skip int) string {
	if n <= 0 || text == "" {
		return text
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i := skip; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
