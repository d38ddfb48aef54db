// Package config loads the optional plink.yaml project file.
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file in the working directory.
type Loader struct {
	Filename string
	Logger   ports.Logger
}

// NewLoader creates a Loader for the default project file name.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Filename: domain.ProjectFileName, Logger: logger}
}

// Load reads the project file from cwd. A missing file yields the built-in layout.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	path := filepath.Join(cwd, l.Filename)

	f, err := os.Open(path) //nolint:gosec // path is derived from the working directory
	if errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultProject(), nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	project, err := Parse(f)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load "+path), "path", path)
	}
	if l.Logger != nil {
		l.Logger.Info("   Project " + path + " (" + describe(project) + ")")
	}
	return project, nil
}

// Parse decodes a project file and fills in defaults for omitted fields.
func Parse(r io.Reader) (*domain.Project, error) {
	var pf Projectfile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(domain.ErrConfigParseFailed, err.Error())
	}

	project := domain.DefaultProject()

	switch domain.Profile(pf.Profile) {
	case "":
	case domain.ProfileDebug, domain.ProfileRelease:
		project.Profile = domain.Profile(pf.Profile)
	default:
		return nil, zerr.With(
			zerr.Wrap(domain.ErrConfiguration, "unknown profile "+pf.Profile+", expected debug or release"),
			"profile", pf.Profile,
		)
	}

	if pf.Base != "" {
		project.Base = pf.Base
	}
	if pf.Entry != "" {
		project.EntrySymbol = pf.Entry
	}

	if len(pf.Libraries) > 0 {
		project.Libraries = make([]domain.LibrarySpec, 0, len(pf.Libraries))
		for i, dto := range pf.Libraries {
			if strings.TrimSpace(dto.Name) == "" {
				return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "library without a name"), "index", i)
			}
			project.Libraries = append(project.Libraries, domain.LibrarySpec{
				Name:               dto.Name,
				ExportsRequired:    dto.Exports,
				Dependencies:       dto.DependsOn,
				ExportPrefixFilter: dto.ExportFilter,
			})
		}
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}
	return project, nil
}

func describe(p *domain.Project) string {
	names := make([]string, len(p.Libraries))
	for i, lib := range p.Libraries {
		names[i] = lib.Name
	}
	return string(p.Profile) + ": " + strings.Join(names, ", ")
}
