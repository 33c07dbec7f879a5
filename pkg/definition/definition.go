// Package definition reads and writes form definition files. Definitions are
// YAML or JSON documents holding a model.Form: a title, an ordered field list
// where a nested list (or a {row: [...]} mapping) is a row, and optional steps.
package definition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/stepper"
)

// Extensions lists the file extensions recognised as definitions.
var Extensions = []string{".yaml", ".yml", ".json"}

// IsDefinitionFile reports whether name has a definition extension.
func IsDefinitionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, candidate := range Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// Parse decodes a definition. JSON is tried first, then YAML. The decoded form
// is validated, step validation policies included; source only labels errors.
func Parse(data []byte, source string) (model.Form, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Form{}, fmt.Errorf("definition: file %s is empty", source)
	}

	var form model.Form
	if err := json.Unmarshal(data, &form); err != nil {
		form = model.Form{}
		if yerr := yaml.Unmarshal(data, &form); yerr != nil {
			return model.Form{}, fmt.Errorf("definition: parse %s: %w", source, yerr)
		}
	}

	var issues []model.Issue
	if err := model.ValidateForm(form); err != nil {
		var invalid *model.ValidationError
		if !errors.As(err, &invalid) {
			return model.Form{}, fmt.Errorf("definition: %s: %w", source, err)
		}
		issues = append(issues, invalid.Issues...)
	}
	issues = append(issues, stepper.PolicyIssues(form)...)
	if len(issues) > 0 {
		return model.Form{}, fmt.Errorf("definition: %s: %w", source, &model.ValidationError{Issues: issues})
	}
	return form, nil
}

// Load reads and parses the definition at path.
func Load(path string) (model.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Form{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Read parses a definition from r.
func Read(r io.Reader, source string) (model.Form, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Form{}, fmt.Errorf("definition: read %s: %w", source, err)
	}
	return Parse(data, source)
}

// Write encodes form as YAML.
func Write(w io.Writer, form model.Form) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(form); err != nil {
		return fmt.Errorf("definition: encode: %w", err)
	}
	return enc.Close()
}

// WriteFile writes form to path as YAML, or as indented JSON when path ends in
// .json.
func WriteFile(path string, form model.Form) error {
	var buf bytes.Buffer
	if strings.EqualFold(filepath.Ext(path), ".json") {
		encoded, err := json.MarshalIndent(form, "", "  ")
		if err != nil {
			return fmt.Errorf("definition: encode: %w", err)
		}
		buf.Write(encoded)
		buf.WriteByte('\n')
	} else if err := Write(&buf, form); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("definition: write %s: %w", path, err)
	}
	return nil
}

// Catalog holds definitions keyed by id: the file path without extension.
type Catalog struct {
	forms   map[string]model.Form
	sources map[string]string
}

// LoadFS walks fsys and parses every definition file. A nil fsys yields an
// empty catalog. Two files mapping to the same id are an error.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{forms: make(map[string]model.Form), sources: make(map[string]string)}
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !IsDefinitionFile(name) {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", name, err)
		}
		form, err := Parse(data, name)
		if err != nil {
			return err
		}
		id := strings.TrimSuffix(name, path.Ext(name))
		if existing, ok := catalog.sources[id]; ok {
			return fmt.Errorf("definition: duplicate id %q (%s and %s)", id, existing, name)
		}
		catalog.forms[id] = form
		catalog.sources[id] = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Get returns the definition with id.
func (c *Catalog) Get(id string) (model.Form, bool) {
	if c == nil {
		return model.Form{}, false
	}
	form, ok := c.forms[id]
	return form, ok
}

// Source returns the file an id was loaded from.
func (c *Catalog) Source(id string) string {
	if c == nil {
		return ""
	}
	return c.sources[id]
}

// IDs returns every id in sorted order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.forms))
	for id := range c.forms {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.forms)
}
