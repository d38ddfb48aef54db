// Package orchestrator compiles packages to bitcode and links them into shared libraries
// through the commands of a toolchain table.
package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
)

// Build carries the per-invocation settings shared by every step.
type Build struct {
	Toolchain ports.Toolchain
	Project   *domain.Project
	Verbose   bool
}

// Orchestrator drives the compile, export and link steps for one library at a time.
type Orchestrator struct {
	runner    ports.ToolRunner
	staleness ports.StalenessChecker
	extractor ports.ExportExtractor
	files     ports.FileSystem
	crt       ports.CRTFinder
	hasher    ports.Hasher
	store     ports.BuildRecordStore
	logger    ports.Logger
	tracer    ports.Tracer

	now func() time.Time
}

// New creates a new Orchestrator with the given dependencies.
func New(
	runner ports.ToolRunner,
	staleness ports.StalenessChecker,
	extractor ports.ExportExtractor,
	files ports.FileSystem,
	crt ports.CRTFinder,
	hasher ports.Hasher,
	store ports.BuildRecordStore,
	logger ports.Logger,
	tracer ports.Tracer,
) *Orchestrator {
	return &Orchestrator{
		runner:    runner,
		staleness: staleness,
		extractor: extractor,
		files:     files,
		crt:       crt,
		hasher:    hasher,
		store:     store,
		logger:    logger,
		tracer:    tracer,
		now:       time.Now,
	}
}

// WithClock replaces the clock used to stamp build records.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// BuildAll builds every library of the project for the native pair and, when cross is set,
// for the foreign pair as well. The foreign pair is built first. The returned artifacts are
// those of the native pair, in project order.
func (o *Orchestrator) BuildAll(ctx context.Context, b Build, host domain.Triple, cross bool) ([]domain.Artifact, error) {
	native := domain.NativePair(host)
	pairs := []domain.Pair{native}
	if cross {
		pairs = append(pairs, native.Foreign())
	}

	var artifacts []domain.Artifact
	for i := len(pairs) - 1; i >= 0; i-- {
		pair := pairs[i]
		if pair.IsCross() {
			o.logger.Info("   Toolchain target " + string(pair.Target))
		}

		artifacts = artifacts[:0]
		for _, lib := range b.Project.Libraries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			artifact, err := o.CompileAndLink(ctx, b, pair, lib)
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, artifact)
		}
	}
	return artifacts, nil
}

// CompileAndLink produces the shared library for lib on pair, skipping the link when the
// existing artifact is newer than every object file.
func (o *Orchestrator) CompileAndLink(ctx context.Context, b Build, pair domain.Pair, lib domain.LibrarySpec) (domain.Artifact, error) {
	ctx, span := o.tracer.Start(ctx, "build "+lib.Name)
	defer span.End()
	span.SetAttribute("pair", pair.String())

	artifact, err := o.compileAndLink(ctx, b, pair, lib)
	if err != nil {
		span.RecordError(err)
		return domain.Artifact{}, err
	}
	span.SetAttribute("fresh", artifact.Fresh)
	return artifact, nil
}

func (o *Orchestrator) compileAndLink(ctx context.Context, b Build, pair domain.Pair, lib domain.LibrarySpec) (domain.Artifact, error) {
	profile := b.Project.Profile
	libname, err := pair.ArtifactName(lib.Name)
	if err != nil {
		return domain.Artifact{}, err
	}

	std, err := o.FindRuntime(ctx, b.Toolchain, pair, lib.Name)
	if err != nil {
		return domain.Artifact{}, err
	}

	if err := o.compile(ctx, b, pair, lib.Name); err != nil {
		return domain.Artifact{}, err
	}

	outRoot := pair.OutputRoot(profile)
	out := outRoot + "/" + libname
	objects := outRoot + "/" + domain.DepsDirName + "/" + lib.Name + "-*.bc"

	stale, err := o.staleness.IsStale(objects, out)
	if err != nil {
		return domain.Artifact{}, zerr.With(err, "package", lib.Name)
	}
	if !stale {
		return domain.Artifact{Path: out, Package: lib.Name, Pair: pair, Fresh: true}, nil
	}

	subs := make([]domain.Substitution, 0, 6)
	if pair.RequiresExportList() && lib.ExportsRequired {
		list, err := o.exportList(ctx, b.Toolchain, pair, lib, objects, outRoot)
		if err != nil {
			return domain.Artifact{}, err
		}
		subs = append(subs, domain.Sub(domain.VarExportsList, "@"+list))
	} else {
		subs = append(subs, domain.Sub(domain.VarExportsList))
	}

	deps := make([]string, 0, len(lib.Dependencies))
	for _, dep := range lib.Dependencies {
		deps = append(deps, "/defaultlib:"+outRoot+"/"+dep+".lib")
	}
	subs = append(subs,
		domain.Sub(domain.VarStd, std),
		domain.Sub(domain.VarOut, out),
		domain.Sub(domain.VarInputObj, objects),
		domain.Sub(domain.VarDLLLibDependencies, deps...),
	)

	if pair.Target.IsWindows() {
		crt, err := o.crt.Find(pair.Host)
		if err != nil {
			return domain.Artifact{}, err
		}
		subs = append(subs, domain.Sub(domain.VarLibCRT, crt))
	}

	if err := o.link(ctx, b.Toolchain, pair, subs); err != nil {
		return domain.Artifact{}, err
	}

	if lib.Name != b.Project.Base {
		if err := o.checkIntegrity(out); err != nil {
			return domain.Artifact{}, err
		}
	}

	if err := o.record(pair, lib.Name, out); err != nil {
		return domain.Artifact{}, err
	}

	return domain.Artifact{Path: out, Package: lib.Name, Pair: pair}, nil
}

// FindRuntime asks the compiler for its sysroot and returns the single runtime support
// library for pair below it.
func (o *Orchestrator) FindRuntime(ctx context.Context, tc ports.Toolchain, pair domain.Pair, pkg string) (string, error) {
	cmd, err := tc.Resolve(pair, domain.KindCompile)
	if err != nil {
		return "", err
	}

	args := []string{"--quiet", "rustc", "-p", pkg}
	if pair.IsCross() {
		args = append(args, "--target="+string(pair.Target))
	}
	args = append(args, "--", "--print", "sysroot")
	cmd = cmd.With(args...)

	out, err := o.runner.Output(ctx, cmd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to find the runtime library for "+pair.String())
	}

	sysroot := strings.TrimRight(string(out), "\r\n")
	if strings.TrimSpace(sysroot) == "" {
		return "", zerr.With(
			zerr.Wrap(domain.ErrRuntimeNotFound, "the sysroot query printed nothing"),
			"command", cmd.String(),
		)
	}

	dir := filepath.Join(sysroot, "lib")
	if pair.Host.IsWindows() || pair.Target.IsWindows() {
		dir = filepath.Join(dir, "rustlib", string(pair.Target), "lib")
	}

	var prefix, ext string
	switch pair.Target {
	case domain.TripleLinux:
		prefix, ext = "libstd-", "so"
	case domain.TripleWindows:
		prefix, ext = "std-", "dll"
	default:
		return "", zerr.Wrap(domain.ErrUnsupportedPlatform, "no runtime library naming rule for target "+string(pair.Target))
	}

	found, err := o.files.FindOne(dir, prefix, ext)
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", zerr.With(
			zerr.Wrap(domain.ErrRuntimeNotFound, "no "+prefix+"*."+ext+" in "+dir),
			"dir", dir,
		)
	}
	return found, nil
}

func (o *Orchestrator) compile(ctx context.Context, b Build, pair domain.Pair, pkg string) error {
	ctx, span := o.tracer.Start(ctx, "compile "+pkg)
	defer span.End()

	cmd, err := b.Toolchain.Resolve(pair, domain.KindCompile)
	if err != nil {
		return err
	}
	cmd = cmd.With(CompileArgs(pair, b.Project.Profile, pkg, b.Verbose)...)

	if err := o.runner.Run(ctx, cmd); err != nil {
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, "failed to compile "+pkg), "package", pkg)
	}
	return nil
}

// CompileArgs returns the arguments appended to the compile template.
func CompileArgs(pair domain.Pair, profile domain.Profile, pkg string, verbose bool) []string {
	args := []string{"rustc"}
	if pair.IsCross() {
		args = append(args, "--target="+string(pair.Target))
	}
	if profile == domain.ProfileRelease {
		args = append(args, "--release")
	}
	args = append(args, "-p", pkg)
	if verbose {
		args = append(args, "--verbose")
	}
	return append(args, "--", "--emit=llvm-bc")
}

// exportList disassembles the objects, writes the export directives next to them
// and returns the path of the list.
func (o *Orchestrator) exportList(
	ctx context.Context,
	tc ports.Toolchain,
	pair domain.Pair,
	lib domain.LibrarySpec,
	objects, outRoot string,
) (string, error) {
	ctx, span := o.tracer.Start(ctx, "exports "+lib.Name)
	defer span.End()

	dis, err := tc.Resolve(pair, domain.KindDisasm, domain.Sub(domain.VarObjects, objects))
	if err != nil {
		return "", err
	}

	prefix := ""
	if lib.ExportPrefixFilter {
		prefix = lib.MangledPrefix()
	}

	var syms []domain.ExportSymbol
	err = o.runner.Stream(ctx, dis, func(r io.Reader) error {
		var extractErr error
		syms, extractErr = o.extractor.Extract(r, prefix)
		return extractErr
	})
	if err != nil {
		span.RecordError(err)
		return "", zerr.With(
			zerr.Wrap(err, "aborting due to failure of llvm-dis\n  "+dis.String()),
			"command", dis.String(),
		)
	}
	if lib.ExportsRequired && len(syms) == 0 {
		return "", zerr.With(
			zerr.Wrap(domain.ErrToolFailure, lib.Name+" exports no external symbols"),
			"package", lib.Name,
		)
	}
	span.SetAttribute("symbols", len(syms))

	var buf bytes.Buffer
	if err := o.extractor.WriteList(&buf, syms); err != nil {
		return "", err
	}

	listPath := outRoot + "/" + domain.DepsDirName + "/" + lib.Name + ".dll_export"
	if err := o.files.WriteFile(listPath, buf.Bytes()); err != nil {
		return "", err
	}
	return listPath, nil
}

func (o *Orchestrator) link(ctx context.Context, tc ports.Toolchain, pair domain.Pair, subs []domain.Substitution) error {
	ctx, span := o.tracer.Start(ctx, "link")
	defer span.End()

	cmd, err := tc.Resolve(pair, domain.KindLink, subs...)
	if err != nil {
		return err
	}

	err = o.runner.Run(ctx, cmd)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrToolNotFound):
		span.RecordError(err)
		return zerr.With(
			zerr.Wrap(err, "link failed\n  "+cmd.String()+"\n\n"+LinkerGuidance(pair.Host)),
			"command", cmd.String(),
		)
	default:
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, "link failed\n  "+cmd.String()), "command", cmd.String())
	}
}

// LinkerGuidance explains how to install the expected linker on host.
func LinkerGuidance(host domain.Triple) string {
	lines := []string{"You need the LLVM toolchain version 12.0.1."}
	switch host {
	case domain.TripleLinux:
		lines = append(lines, "You can use the ./grab-clang script.")
	case domain.TripleWindows:
		lines = append(lines,
			"1. Download & run the installer from here:",
			"       https://github.com/llvm/llvm-project/releases/download/llvmorg-12.0.1/LLVM-12.0.1-win64.exe",
			"2. On the blue screen, click \"More Info\" -> Run Anyway",
			"3. Click through the installer. Select \"Add LLVM to the system PATH for the current user.\"",
		)
	}
	return strings.Join(lines, "\n")
}

// checkIntegrity fails when a non-base library carries the base module's marker,
// which means the base was linked in statically.
func (o *Orchestrator) checkIntegrity(out string) error {
	found, err := o.files.Contains(out, domain.IntegrityMarker())
	if err != nil {
		return zerr.Wrap(err, "unable to check "+out)
	}
	if found {
		return zerr.With(
			zerr.Wrap(domain.ErrIntegrityViolation, out+" contains the forbidden test string"),
			"path", out,
		)
	}
	return nil
}

func (o *Orchestrator) record(pair domain.Pair, pkg, out string) error {
	digest, err := o.hasher.HashFile(out)
	if err != nil {
		return zerr.Wrap(err, "failed to hash "+out)
	}
	return o.store.Put(domain.BuildRecord{
		Package: pkg,
		Host:    pair.Host,
		Target:  pair.Target,
		Path:    out,
		Digest:  digest,
		BuiltAt: o.now(),
	})
}
