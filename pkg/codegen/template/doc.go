// Package template wraps a pongo2 template set used to assemble generated
// component files. Templates are plain text; inserted blocks are marked safe
// and positioned with the indent and nest filters.
package template
