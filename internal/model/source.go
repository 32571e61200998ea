// Package model holds the value types shared by the descriptor pipeline.
package model

import (
	"fmt"
	"strings"
)

// Path represents a file system path.
type Path string

const (
	// HeaderExt is the extension a file needs to be treated as a header.
	HeaderExt = ".h"

	// DescriptorFileName is the name of the generated descriptor. It never
	// appears in its own include list.
	DescriptorFileName = "LinkDef.h"

	// SpecialHeaderName is the one header whose class lives outside the
	// library namespace.
	SpecialHeaderName = "TTreeFormulaCached.h"

	// SpecialClassName is the class linked for SpecialHeaderName.
	SpecialClassName = "TTreeFormulaCached"

	// Namespace is the namespace every other header's class lives in.
	Namespace = "multidraw"
)

// HeaderFile is a discovered header.
type HeaderFile struct {
	Name string
}

// ClassName returns the filename stem.
func (h HeaderFile) ClassName() string {
	return strings.TrimSuffix(h.Name, HeaderExt)
}

// IsSpecial reports whether h maps to the non-namespaced class.
func (h HeaderFile) IsSpecial() bool {
	return h.Name == SpecialHeaderName
}

// QualifiedClassName is the name used on the header's link line.
func (h HeaderFile) QualifiedClassName() string {
	if h.IsSpecial() {
		return SpecialClassName
	}

	return Namespace + "::" + h.ClassName()
}

// PersistenceMarker is appended to the special class's link line. Only the
// integrated build streams it with schema evolution.
func PersistenceMarker(mode Mode) string {
	if mode == Integrated {
		return "+"
	}

	return ""
}

// LinkLine is the pragma enabling the dictionary for h's class.
func (h HeaderFile) LinkLine(mode Mode) string {
	if h.IsSpecial() {
		return fmt.Sprintf("#pragma link C++ class %s%s;", h.QualifiedClassName(), PersistenceMarker(mode))
	}

	return fmt.Sprintf("#pragma link C++ class %s;", h.QualifiedClassName())
}
