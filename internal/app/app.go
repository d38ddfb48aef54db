// Package app implements the application layer for plink.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.trai.ch/plink/internal/adapters/telemetry"
	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/plink/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// Builder compiles and links the project libraries.
type Builder interface {
	BuildAll(ctx context.Context, b orchestrator.Build, host domain.Triple, cross bool) ([]domain.Artifact, error)
	FindRuntime(ctx context.Context, tc ports.Toolchain, pair domain.Pair, pkg string) (string, error)
}

// PluginHost loads the modules and invokes the plugin service.
type PluginHost interface {
	Run(ctx context.Context, modules domain.ModuleSet, entrySymbol string) error
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	toolchains   ports.ToolchainLoader
	builder      Builder
	locator      ports.ArtifactLocator
	host         PluginHost
	store        ports.BuildRecordStore
	hasher       ports.Hasher
	logger       ports.Logger

	stdout     io.Writer
	hostTriple func() (domain.Triple, error)
	storePath  string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	toolchains ports.ToolchainLoader,
	builder Builder,
	locator ports.ArtifactLocator,
	host PluginHost,
	store ports.BuildRecordStore,
	hasher ports.Hasher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		toolchains:   toolchains,
		builder:      builder,
		locator:      locator,
		host:         host,
		store:        store,
		hasher:       hasher,
		logger:       log,
		stdout:       os.Stdout,
		hostTriple:   domain.HostTriple,
		storePath:    domain.DefaultStorePath(),
	}
}

// WithStdout redirects the success message printed after the service ran.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithHostTriple overrides host platform detection.
func (a *App) WithHostTriple(triple domain.Triple) *App {
	a.hostTriple = func() (domain.Triple, error) { return triple, nil }
	return a
}

// WithStorePath overrides the directory removed by Clean.
func (a *App) WithStorePath(path string) *App {
	a.storePath = path
	return a
}

// SetJSONLogs switches the logger to JSON lines when it supports it.
func (a *App) SetJSONLogs(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// RunOptions configuration for the Run and Build methods.
type RunOptions struct {
	// ToolchainPath is the command table to build with. Empty means ./toolchain.txt.
	ToolchainPath string
	// NoCompile skips the toolchain and loads prebuilt artifacts.
	NoCompile bool
	// Compile also builds for the foreign target.
	Compile bool
	Verbose bool
}

// Run builds the libraries when a toolchain is available, or locates prebuilt ones,
// then loads them and invokes the plugin service.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	shutdown := telemetry.Install(a.logger, opts.Verbose)
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	host, project, err := a.prepare()
	if err != nil {
		return err
	}

	modules, err := a.modules(ctx, host, project, opts)
	if err != nil {
		return err
	}

	if err := a.host.Run(ctx, modules, project.EntrySymbol); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(a.stdout, "Hooray!")
	return nil
}

// Build compiles and links the libraries without loading them.
func (a *App) Build(ctx context.Context, opts RunOptions) error {
	shutdown := telemetry.Install(a.logger, opts.Verbose)
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	host, project, err := a.prepare()
	if err != nil {
		return err
	}

	path := toolchainPath(opts)
	tc, found, err := a.toolchains.Load(path)
	if err != nil {
		return err
	}
	if !found {
		return zerr.With(
			zerr.Wrap(domain.ErrConfiguration, "nothing to build without "+path),
			"path", path,
		)
	}

	b := orchestrator.Build{Toolchain: tc, Project: project, Verbose: opts.Verbose}
	_, err = a.builder.BuildAll(ctx, b, host, opts.Compile)
	return err
}

// Locate returns the prebuilt modules Run would load with NoCompile set.
func (a *App) Locate(_ context.Context) (domain.ModuleSet, error) {
	host, project, err := a.prepare()
	if err != nil {
		return domain.ModuleSet{}, err
	}
	return a.locate(host, project)
}

// StatusEntry pairs a build record with the state of its artifact.
type StatusEntry struct {
	Record domain.BuildRecord
	Status domain.RecordStatus
}

// Status compares every build record with the artifact on disk.
func (a *App) Status(_ context.Context) ([]StatusEntry, error) {
	records, err := a.store.List()
	if err != nil {
		return nil, err
	}

	entries := make([]StatusEntry, 0, len(records))
	for _, rec := range records {
		status, err := a.recordStatus(rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, StatusEntry{Record: rec, Status: status})
	}
	return entries, nil
}

func (a *App) recordStatus(rec domain.BuildRecord) (domain.RecordStatus, error) {
	if _, err := os.Stat(rec.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.StatusMissing, nil
		}
		return "", zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", rec.Path)
	}

	digest, err := a.hasher.HashFile(rec.Path)
	if err != nil {
		return "", err
	}
	if digest != rec.Digest {
		return domain.StatusModified, nil
	}
	return domain.StatusOK, nil
}

// Clean removes the build record store.
func (a *App) Clean(_ context.Context) error {
	a.logger.Info("removing build records...")
	if err := os.RemoveAll(a.storePath); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove build records"), "path", a.storePath)
	}
	a.logger.Info("removed build records")
	return nil
}

func (a *App) prepare() (domain.Triple, *domain.Project, error) {
	host, err := a.hostTriple()
	if err != nil {
		return "", nil, err
	}

	project, err := a.configLoader.Load(".")
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to load configuration")
	}
	return host, project, nil
}

// modules builds the libraries when a toolchain is present, otherwise it falls back to
// prebuilt artifacts.
func (a *App) modules(ctx context.Context, host domain.Triple, project *domain.Project, opts RunOptions) (domain.ModuleSet, error) {
	if opts.NoCompile {
		return a.locate(host, project)
	}

	tc, found, err := a.toolchains.Load(toolchainPath(opts))
	if err != nil {
		return domain.ModuleSet{}, err
	}
	if !found {
		return a.locate(host, project)
	}

	native := domain.NativePair(host)
	runtime, err := a.builder.FindRuntime(ctx, tc, native, project.Base)
	if err != nil {
		return domain.ModuleSet{}, err
	}

	b := orchestrator.Build{Toolchain: tc, Project: project, Verbose: opts.Verbose}
	artifacts, err := a.builder.BuildAll(ctx, b, host, opts.Compile)
	if err != nil {
		return domain.ModuleSet{}, err
	}

	modules := domain.ModuleSet{Runtime: runtime}
	for _, artifact := range artifacts {
		switch artifact.Package {
		case project.Base:
			modules.Base = artifact.Path
		case project.Plugin():
			modules.Plugin = artifact.Path
		}
	}
	return modules, nil
}

func (a *App) locate(host domain.Triple, project *domain.Project) (domain.ModuleSet, error) {
	native := domain.NativePair(host)

	runtime, err := a.locator.Locate(native, project.Profile, domain.RuntimePackage)
	if err != nil {
		return domain.ModuleSet{}, err
	}
	base, err := a.locator.Locate(native, project.Profile, project.Base)
	if err != nil {
		return domain.ModuleSet{}, err
	}
	plugin, err := a.locator.Locate(native, project.Profile, project.Plugin())
	if err != nil {
		return domain.ModuleSet{}, err
	}
	return domain.ModuleSet{Runtime: runtime, Base: base, Plugin: plugin}, nil
}

func toolchainPath(opts RunOptions) string {
	if opts.ToolchainPath != "" {
		return opts.ToolchainPath
	}
	return domain.DefaultToolchainPath()
}
