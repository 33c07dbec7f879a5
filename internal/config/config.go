// Package config handles formcode.yaml, the project configuration read by the
// CLI and the HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/stepper"
)

// FileName is the config file looked up in the working directory.
const FileName = "formcode.yaml"

// CurrentVersion is the current version of the config file format.
const CurrentVersion = 1

// Config represents formcode.yaml.
type Config struct {
	Version int     `yaml:"version"`
	Library string  `yaml:"library,omitempty"`
	Tokens  Tokens  `yaml:"tokens,omitempty"`
	Theme   string  `yaml:"theme,omitempty"`
	Variant string  `yaml:"variant,omitempty"`
	Themes  []Theme `yaml:"themes,omitempty"`
	Server  Server  `yaml:"server,omitempty"`
}

// Tokens mirrors codegen.Tokens; empty values keep the defaults.
type Tokens struct {
	ImportBase       string `yaml:"import_base,omitempty"`
	UtilsModule      string `yaml:"utils_module,omitempty"`
	FormClass        string `yaml:"form_class,omitempty"`
	FieldClass       string `yaml:"field_class,omitempty"`
	InlineClass      string `yaml:"inline_class,omitempty"`
	GridClass        string `yaml:"grid_class,omitempty"`
	DescriptionClass string `yaml:"description_class,omitempty"`
	ErrorClass       string `yaml:"error_class,omitempty"`
	SubmitLabel      string `yaml:"submit_label,omitempty"`
	ComponentName    string `yaml:"component_name,omitempty"`
}

// Theme declares a token set and its variants. Keys are codegen token keys
// such as "submit.label".
type Theme struct {
	Name     string                       `yaml:"name"`
	Tokens   map[string]string            `yaml:"tokens,omitempty"`
	Variants map[string]map[string]string `yaml:"variants,omitempty"`
}

// Server configures `formcode serve`.
type Server struct {
	Addr       string `yaml:"addr,omitempty"`
	ProgressDB string `yaml:"progress_db,omitempty"`
	KeyPrefix  string `yaml:"key_prefix,omitempty"`
	MaxAge     string `yaml:"max_age,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Library: string(codegen.LibraryHookForm),
		Server: Server{
			Addr:      ":8080",
			KeyPrefix: stepper.DefaultKeyPrefix,
			MaxAge:    stepper.DefaultMaxAge.String(),
		},
	}
}

// Load reads a Config from a file path. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for supported values.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	if c.Library != "" {
		if _, err := codegen.ParseLibrary(c.Library); err != nil {
			return err
		}
	}
	if _, err := c.MaxAge(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.Themes))
	for _, t := range c.Themes {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return errors.New("theme name is required")
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("theme %q declared twice", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// MaxAge parses the server progress max age; empty means the stepper default.
func (c *Config) MaxAge() (time.Duration, error) {
	if strings.TrimSpace(c.Server.MaxAge) == "" {
		return stepper.DefaultMaxAge, nil
	}
	d, err := time.ParseDuration(c.Server.MaxAge)
	if err != nil {
		return 0, fmt.Errorf("server.max_age: %w", err)
	}
	if d <= 0 {
		return 0, errors.New("server.max_age must be positive")
	}
	return d, nil
}

// CodegenTokens converts the configured tokens, filling defaults.
func (c *Config) CodegenTokens() codegen.Tokens {
	return codegen.Tokens{
		ImportBase:       c.Tokens.ImportBase,
		UtilsModule:      c.Tokens.UtilsModule,
		FormClass:        c.Tokens.FormClass,
		FieldClass:       c.Tokens.FieldClass,
		InlineClass:      c.Tokens.InlineClass,
		GridClass:        c.Tokens.GridClass,
		DescriptionClass: c.Tokens.DescriptionClass,
		ErrorClass:       c.Tokens.ErrorClass,
		SubmitLabel:      c.Tokens.SubmitLabel,
		ComponentName:    c.Tokens.ComponentName,
	}.WithDefaults()
}

// Manifests builds go-theme manifests from the declared themes.
func (c *Config) Manifests() []*theme.Manifest {
	out := make([]*theme.Manifest, 0, len(c.Themes))
	for _, t := range c.Themes {
		manifest := &theme.Manifest{
			Name:   strings.TrimSpace(t.Name),
			Tokens: t.Tokens,
		}
		if len(t.Variants) > 0 {
			manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
			for name, tokens := range t.Variants {
				manifest.Variants[name] = theme.Variant{Tokens: tokens}
			}
		}
		out = append(out, manifest)
	}
	return out
}

// ThemeSelector returns a selector over the declared themes, or nil when
// none are declared.
func (c *Config) ThemeSelector() (*codegen.ManifestSelector, error) {
	manifests := c.Manifests()
	if len(manifests) == 0 {
		return nil, nil
	}
	return codegen.NewManifestSelector(manifests...)
}
