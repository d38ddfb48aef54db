package domain

import (
	"strconv"

	"go.trai.ch/zerr"
)

// Default package names for the built-in two-library layout.
const (
	DefaultBasePackage   = "header"
	DefaultPluginPackage = "plugin"
	DefaultEntrySymbol   = "new_service"
)

// RuntimePackage is the name the runtime support library is located under.
const RuntimePackage = "std*"

// LibrarySpec describes one package to build into a shared library.
type LibrarySpec struct {
	Name string
	// ExportsRequired asks for an export list on targets that need one. An empty list is then fatal.
	ExportsRequired bool
	Dependencies    []string
	// ExportPrefixFilter restricts the export list to symbols mangled under the package.
	ExportPrefixFilter bool
}

// MangledPrefix returns the symbol prefix used by the export filter.
func (l LibrarySpec) MangledPrefix() string {
	return "_ZN" + strconv.Itoa(len(l.Name)) + l.Name
}

// Project is the ordered library list plus build settings.
type Project struct {
	Profile     Profile
	Base        string
	EntrySymbol string
	Libraries   []LibrarySpec
}

// DefaultProject returns the built-in layout: a base library and a plugin depending on it.
func DefaultProject() *Project {
	return &Project{
		Profile:     ProfileDebug,
		Base:        DefaultBasePackage,
		EntrySymbol: DefaultEntrySymbol,
		Libraries: []LibrarySpec{
			{Name: DefaultBasePackage, ExportsRequired: true},
			{Name: DefaultPluginPackage, ExportsRequired: true, Dependencies: []string{DefaultBasePackage}},
		},
	}
}

// Validate checks that names are unique, dependencies point backwards and the base exists.
func (p *Project) Validate() error {
	seen := make(map[string]bool, len(p.Libraries))
	for _, lib := range p.Libraries {
		if seen[lib.Name] {
			return zerr.Wrap(ErrDuplicateLibrary, "library "+lib.Name)
		}
		for _, dep := range lib.Dependencies {
			if !seen[dep] {
				return zerr.With(zerr.Wrap(ErrMissingDependency, lib.Name+" depends on "+dep+", which is not listed before it"), "library", lib.Name)
			}
		}
		seen[lib.Name] = true
	}
	if !seen[p.Base] {
		return zerr.Wrap(ErrMissingDependency, "base library "+p.Base+" is not listed")
	}
	if p.Plugin() == "" {
		return zerr.Wrap(ErrConfiguration, "no plugin library after the base")
	}
	return nil
}

// Plugin returns the name of the library loaded last, the one exporting the entry symbol.
func (p *Project) Plugin() string {
	if len(p.Libraries) == 0 {
		return ""
	}
	last := p.Libraries[len(p.Libraries)-1].Name
	if last == p.Base {
		return ""
	}
	return last
}

// ExportSymbol is a symbol discovered in a compiled IR summary.
type ExportSymbol struct {
	Name    string
	Linkage string
}

// LinkageExternal is the only linkage exported from a library.
const LinkageExternal = "external"

// IsExternal reports whether the symbol should be exported.
func (s ExportSymbol) IsExternal() bool {
	return s.Linkage == LinkageExternal
}
