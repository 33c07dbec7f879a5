package codegen

import (
	"strings"
)

// Import names symbols pulled from one module.
type Import struct {
	Module string
	Names  []string
}

// ImportSet is an ordered, deduplicated module -> names collection. Modules and
// names are emitted in the order they were first added.
type ImportSet struct {
	modules []string
	names   map[string][]string
	seen    map[string]map[string]struct{}
}

// NewImportSet creates an empty set.
func NewImportSet() *ImportSet {
	return &ImportSet{
		names: make(map[string][]string),
		seen:  make(map[string]map[string]struct{}),
	}
}

// Add records names from module. Repeated names are ignored.
func (s *ImportSet) Add(module string, names ...string) {
	module = strings.TrimSpace(module)
	if module == "" {
		return
	}
	seen, ok := s.seen[module]
	if !ok {
		seen = make(map[string]struct{})
		s.seen[module] = seen
		s.modules = append(s.modules, module)
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		s.names[module] = append(s.names[module], name)
	}
}

// AddImports records every import in order.
func (s *ImportSet) AddImports(imports ...Import) {
	for _, imp := range imports {
		s.Add(imp.Module, imp.Names...)
	}
}

// Has reports whether name was imported from module.
func (s *ImportSet) Has(module, name string) bool {
	_, ok := s.seen[module][name]
	return ok
}

// Imports returns the collected imports in order.
func (s *ImportSet) Imports() []Import {
	out := make([]Import, 0, len(s.modules))
	for _, module := range s.modules {
		names := make([]string, len(s.names[module]))
		copy(names, s.names[module])
		out = append(out, Import{Module: module, Names: names})
	}
	return out
}

// Source renders one import statement per module.
func (s *ImportSet) Source() string {
	var b strings.Builder
	for _, module := range s.modules {
		names := s.names[module]
		if len(names) == 0 {
			b.WriteString("import " + JSString(module) + ";\n")
			continue
		}
		b.WriteString("import { ")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString(" } from ")
		b.WriteString(JSString(module))
		b.WriteString(";\n")
	}
	return b.String()
}
