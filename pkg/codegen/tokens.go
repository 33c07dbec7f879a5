package codegen

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Theme token keys read by TokensFromTheme.
const (
	TokenImportBase       = "import.base"
	TokenUtilsModule      = "import.utils"
	TokenFormClass        = "form.class"
	TokenFieldClass       = "field.class"
	TokenInlineClass      = "field.inline.class"
	TokenGridClass        = "grid.class"
	TokenDescriptionClass = "description.class"
	TokenErrorClass       = "error.class"
	TokenSubmitLabel      = "submit.label"
	TokenComponentName    = "component.name"
)

// Tokens are the presentational knobs of a generated file.
type Tokens struct {
	ImportBase       string
	UtilsModule      string
	FormClass        string
	FieldClass       string
	InlineClass      string
	GridClass        string
	DescriptionClass string
	ErrorClass       string
	SubmitLabel      string
	ComponentName    string
}

// DefaultTokens returns the built-in token set.
func DefaultTokens() Tokens {
	return Tokens{
		ImportBase:       "@/components/ui",
		UtilsModule:      "@/lib/utils",
		FormClass:        "space-y-8 max-w-3xl mx-auto py-10",
		FieldClass:       "space-y-2",
		InlineClass:      "flex flex-row items-center gap-2",
		GridClass:        "grid grid-cols-12 gap-4",
		DescriptionClass: "text-sm text-muted-foreground",
		ErrorClass:       "text-sm font-medium text-destructive",
		SubmitLabel:      "Submit",
		ComponentName:    "MyForm",
	}
}

// WithDefaults fills empty fields from DefaultTokens.
func (t Tokens) WithDefaults() Tokens {
	def := DefaultTokens()
	fill := func(dst *string, fallback string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = fallback
		}
	}
	fill(&t.ImportBase, def.ImportBase)
	fill(&t.UtilsModule, def.UtilsModule)
	fill(&t.FormClass, def.FormClass)
	fill(&t.FieldClass, def.FieldClass)
	fill(&t.InlineClass, def.InlineClass)
	fill(&t.GridClass, def.GridClass)
	fill(&t.DescriptionClass, def.DescriptionClass)
	fill(&t.ErrorClass, def.ErrorClass)
	fill(&t.SubmitLabel, def.SubmitLabel)
	fill(&t.ComponentName, def.ComponentName)
	t.ImportBase = strings.TrimRight(t.ImportBase, "/")
	return t
}

// UIModule joins a component module name onto the import base.
func (t Tokens) UIModule(name string) string {
	base := t.ImportBase
	if base == "" {
		base = DefaultTokens().ImportBase
	}
	return strings.TrimRight(base, "/") + "/" + name
}

// TokensFromTheme maps a resolved theme configuration onto Tokens. Missing keys
// keep their defaults.
func TokensFromTheme(cfg *theme.RendererConfig) Tokens {
	tokens := DefaultTokens()
	if cfg == nil {
		return tokens
	}
	set := func(dst *string, key string) {
		if value := strings.TrimSpace(cfg.Tokens[key]); value != "" {
			*dst = value
		}
	}
	set(&tokens.ImportBase, TokenImportBase)
	set(&tokens.UtilsModule, TokenUtilsModule)
	set(&tokens.FormClass, TokenFormClass)
	set(&tokens.FieldClass, TokenFieldClass)
	set(&tokens.InlineClass, TokenInlineClass)
	set(&tokens.GridClass, TokenGridClass)
	set(&tokens.DescriptionClass, TokenDescriptionClass)
	set(&tokens.ErrorClass, TokenErrorClass)
	set(&tokens.SubmitLabel, TokenSubmitLabel)
	set(&tokens.ComponentName, TokenComponentName)
	return tokens.WithDefaults()
}

// ThemeConfig flattens a selection into a renderer configuration: manifest
// tokens, templates and assets overlaid with the selected variant's.
func ThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	assets := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		assets = mergeStrings(assets, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.ReplaceAll(key, ".", "-")] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := assets[key]
			if !ok {
				return ""
			}
			if prefix == "" || strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

func mergeStrings(base, overlay map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}

// ManifestSelector resolves theme selections from registered manifests. It
// satisfies theme.ThemeSelector.
type ManifestSelector struct {
	mu        sync.RWMutex
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests; the first becomes the fallback
// used when Select is called without a theme name.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	selector := &ManifestSelector{manifests: make(map[string]*theme.Manifest)}
	for _, manifest := range manifests {
		if err := selector.Register(manifest); err != nil {
			return nil, err
		}
	}
	return selector, nil
}

// Register adds a manifest keyed by its name.
func (s *ManifestSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return fmt.Errorf("codegen: theme manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[manifest.Name]; exists {
		return fmt.Errorf("codegen: theme %q already registered", manifest.Name)
	}
	s.manifests[manifest.Name] = manifest
	if s.fallback == "" {
		s.fallback = manifest.Name
	}
	return nil
}

// Names lists registered themes.
func (s *ManifestSelector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Select returns the selection for name and variant. An unknown variant is an
// error; an empty variant selects the base manifest.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("codegen: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("codegen: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}
