package codegen

import (
	"errors"
	"fmt"
	"strings"
)

// Library selects a generation backend.
type Library string

const (
	LibraryDIY          Library = "diy"
	LibraryHookForm     Library = "react-hook-form"
	LibraryTanStack     Library = "tanstack-form"
	LibraryServerAction Library = "server-action"
)

// ErrUnknownLibrary reports a selector that matches no backend.
var ErrUnknownLibrary = errors.New("codegen: unknown library")

var libraryAliases = map[string]Library{
	"diy":             LibraryDIY,
	"unmanaged":       LibraryDIY,
	"react-hook-form": LibraryHookForm,
	"hook-form":       LibraryHookForm,
	"rhf":             LibraryHookForm,
	"tanstack-form":   LibraryTanStack,
	"tanstack":        LibraryTanStack,
	"server-action":   LibraryServerAction,
	"server-actions":  LibraryServerAction,
	"server":          LibraryServerAction,
	"action":          LibraryServerAction,
}

// Libraries lists the supported backends in a stable order.
func Libraries() []Library {
	return []Library{LibraryDIY, LibraryHookForm, LibraryTanStack, LibraryServerAction}
}

func (l Library) String() string {
	return string(l)
}

// ParseLibrary resolves a selector, accepting a few common spellings.
func ParseLibrary(raw string) (Library, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "_", "-")
	key = strings.ReplaceAll(key, " ", "-")
	if lib, ok := libraryAliases[key]; ok {
		return lib, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownLibrary, raw)
}
