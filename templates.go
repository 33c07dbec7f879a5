package formcode

import (
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formcode/pkg/codegen"
	"github.com/goliatone/go-formcode/pkg/generators/diy"
	"github.com/goliatone/go-formcode/pkg/generators/hookform"
	"github.com/goliatone/go-formcode/pkg/generators/serveraction"
	"github.com/goliatone/go-formcode/pkg/generators/tanstack"
)

// EmbeddedTemplates exposes the built-in templates of a library's generator so
// callers can reuse or extend them without importing the generator package.
func EmbeddedTemplates(library codegen.Library) (fs.FS, error) {
	switch library {
	case codegen.LibraryDIY:
		return diy.TemplatesFS(), nil
	case codegen.LibraryHookForm:
		return hookform.TemplatesFS(), nil
	case codegen.LibraryTanStack:
		return tanstack.TemplatesFS(), nil
	case codegen.LibraryServerAction:
		return serveraction.TemplatesFS(), nil
	default:
		return nil, fmt.Errorf("%w %q", codegen.ErrUnknownLibrary, library)
	}
}
