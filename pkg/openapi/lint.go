package openapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formcode/pkg/model"
)

const extensionNamespace = "x-formcode"

// Violation is one extension on a request body schema that the importer
// cannot honour.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// Lint walks every operation's request body and reports unsupported or
// malformed x-formcode extensions, in path order.
func (i *Importer) Lint(ctx context.Context, data []byte) ([]Violation, error) {
	doc, err := i.load(ctx, data)
	if err != nil {
		return nil, err
	}
	var out []Violation
	eachOperation(doc, func(op *openapi3.Operation) {
		id := op.OperationID
		if id == "" {
			id = "(unnamed)"
		}
		walker := linter{seen: make(map[*openapi3.Schema]bool)}
		walker.schema([]string{"operation", id, "requestBody"}, requestSchema(op))
		out = append(out, walker.violations...)
	})
	return out, nil
}

type linter struct {
	seen       map[*openapi3.Schema]bool
	violations []Violation
}

func (l *linter) schema(path []string, ref *openapi3.SchemaRef) {
	if ref == nil || ref.Value == nil || l.seen[ref.Value] {
		return
	}
	l.seen[ref.Value] = true
	src := ref.Value

	l.extensions(path, src.Extensions)

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		l.schema(appendPath(path, "properties."+name), src.Properties[name])
	}
	if src.Items != nil {
		l.schema(appendPath(path, "items"), src.Items)
	}
}

func (l *linter) extensions(path []string, extensions map[string]any) {
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		if strings.HasPrefix(key, extensionNamespace) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		location := strings.Join(path, " > ")
		if key != VariantExtension {
			l.report(location, fmt.Sprintf("unsupported extension key %q (supported: %s)", key, VariantExtension))
			continue
		}
		raw, ok := extensions[key].(string)
		if !ok {
			l.report(location, fmt.Sprintf("%s must be a string, found %T", key, extensions[key]))
			continue
		}
		if _, ok := model.ParseVariant(raw); !ok {
			l.report(location, fmt.Sprintf("unknown variant %q", raw))
		}
	}
}

func (l *linter) report(location, message string) {
	l.violations = append(l.violations, Violation{Location: location, Message: message})
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}
