package orchestrator_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plink/internal/adapters/telemetry"
	"go.trai.ch/plink/internal/adapters/toolchain"
	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports/mocks"
	"go.trai.ch/plink/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const table = `
host:x86_64-unknown-linux-gnu target:x86_64-unknown-linux-gnu cmd:cargo cargo +stable
host:x86_64-unknown-linux-gnu target:x86_64-unknown-linux-gnu cmd:link clang -shared -o $OUT $INPUT_OBJ $STD $EXPORTS_LIST
host:x86_64-unknown-linux-gnu target:x86_64-pc-windows-msvc cmd:cargo cargo +stable
host:x86_64-unknown-linux-gnu target:x86_64-pc-windows-msvc cmd:llvm-dis llvm-dis --summary -o - $OBJECTS
host:x86_64-unknown-linux-gnu target:x86_64-pc-windows-msvc cmd:link lld-link /dll /noentry $EXPORTS_LIST /out:$OUT /defaultlib:$STD /defaultlib:$LIBCURTD $DLL_LIB_DEPENDENCIES $INPUT_OBJ
`

const (
	winRoot   = "./target/x86_64-pc-windows-msvc/debug"
	winStdDir = "/opt/rust/lib/rustlib/x86_64-pc-windows-msvc/lib"
	winStd    = winStdDir + "/std-9f0e.dll"
	linuxStd  = "/opt/rust/lib/libstd-1a2b.so"
)

var (
	native  = domain.NativePair(domain.TripleLinux)
	cross   = domain.Pair{Host: domain.TripleLinux, Target: domain.TripleWindows}
	builtAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	header = domain.LibrarySpec{Name: "header", ExportsRequired: true}
	plugin = domain.LibrarySpec{Name: "plugin", ExportsRequired: true, Dependencies: []string{"header"}}
	helper = domain.LibrarySpec{Name: "helper", Dependencies: []string{"header"}}
)

type fixture struct {
	runner    *mocks.MockToolRunner
	staleness *mocks.MockStalenessChecker
	extractor *mocks.MockExportExtractor
	files     *mocks.MockFileSystem
	crt       *mocks.MockCRTFinder
	hasher    *mocks.MockHasher
	store     *mocks.MockBuildRecordStore
	logger    *mocks.MockLogger
	orch      *orchestrator.Orchestrator
	build     orchestrator.Build
}

func newFixture(t *testing.T, text string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	tc, err := toolchain.Parse(strings.NewReader(text), nil, toolchain.WithGlobExpansion(false))
	require.NoError(t, err)

	f := &fixture{
		runner:    mocks.NewMockToolRunner(ctrl),
		staleness: mocks.NewMockStalenessChecker(ctrl),
		extractor: mocks.NewMockExportExtractor(ctrl),
		files:     mocks.NewMockFileSystem(ctrl),
		crt:       mocks.NewMockCRTFinder(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		store:     mocks.NewMockBuildRecordStore(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		build:     orchestrator.Build{Toolchain: tc, Project: domain.DefaultProject()},
	}
	f.orch = orchestrator.New(
		f.runner, f.staleness, f.extractor, f.files, f.crt, f.hasher, f.store, f.logger,
		telemetry.NewNoOpTracer(),
	).WithClock(func() time.Time { return builtAt })
	return f
}

func cmd(argv ...string) domain.Command {
	c, _ := domain.NewCommand(argv)
	return c
}

func (f *fixture) expectRuntime(pkg string, pair domain.Pair) *gomock.Call {
	args := []string{"cargo", "+stable", "--quiet", "rustc", "-p", pkg}
	dir, prefix, ext, found := "/opt/rust/lib", "libstd-", "so", linuxStd
	if pair.IsCross() {
		args = append(args, "--target="+string(pair.Target))
		dir, prefix, ext, found = winStdDir, "std-", "dll", winStd
	}
	args = append(args, "--", "--print", "sysroot")

	return f.files.EXPECT().FindOne(dir, prefix, ext).Return(found, nil).After(
		f.runner.EXPECT().Output(gomock.Any(), cmd(args...)).Return([]byte("/opt/rust\n"), nil),
	)
}

func TestCompileArgs(t *testing.T) {
	tests := []struct {
		name    string
		pair    domain.Pair
		profile domain.Profile
		verbose bool
		want    []string
	}{
		{
			name:    "native debug",
			pair:    native,
			profile: domain.ProfileDebug,
			want:    []string{"rustc", "-p", "plugin", "--", "--emit=llvm-bc"},
		},
		{
			name:    "cross release verbose",
			pair:    cross,
			profile: domain.ProfileRelease,
			verbose: true,
			want: []string{
				"rustc", "--target=x86_64-pc-windows-msvc", "--release", "-p", "plugin",
				"--verbose", "--", "--emit=llvm-bc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orchestrator.CompileArgs(tt.pair, tt.profile, "plugin", tt.verbose))
		})
	}
}

func TestFindRuntime(t *testing.T) {
	t.Run("native", func(t *testing.T) {
		f := newFixture(t, table)
		f.expectRuntime("header", native)

		got, err := f.orch.FindRuntime(context.Background(), f.build.Toolchain, native, "header")
		require.NoError(t, err)
		assert.Equal(t, linuxStd, got)
	})

	t.Run("cross", func(t *testing.T) {
		f := newFixture(t, table)
		f.expectRuntime("header", cross)

		got, err := f.orch.FindRuntime(context.Background(), f.build.Toolchain, cross, "header")
		require.NoError(t, err)
		assert.Equal(t, winStd, got)
	})

	t.Run("empty sysroot", func(t *testing.T) {
		f := newFixture(t, table)
		f.runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.orch.FindRuntime(context.Background(), f.build.Toolchain, native, "header")
		assert.ErrorIs(t, err, domain.ErrRuntimeNotFound)
	})

	t.Run("no runtime library", func(t *testing.T) {
		f := newFixture(t, table)
		f.runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return([]byte("/opt/rust\n"), nil)
		f.files.EXPECT().FindOne("/opt/rust/lib", "libstd-", "so").Return("", nil)

		_, err := f.orch.FindRuntime(context.Background(), f.build.Toolchain, native, "header")
		assert.ErrorIs(t, err, domain.ErrRuntimeNotFound)
		assert.ErrorContains(t, err, "libstd-*.so")
	})

	t.Run("ambiguous", func(t *testing.T) {
		f := newFixture(t, table)
		f.runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return([]byte("/opt/rust\n"), nil)
		f.files.EXPECT().FindOne(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", zerr.Wrap(domain.ErrAmbiguousArtifact, "multiple"))

		_, err := f.orch.FindRuntime(context.Background(), f.build.Toolchain, native, "header")
		assert.ErrorIs(t, err, domain.ErrAmbiguousArtifact)
	})

	t.Run("query fails", func(t *testing.T) {
		f := newFixture(t, table)
		f.runner.EXPECT().Output(gomock.Any(), gomock.Any()).
			Return(nil, zerr.Wrap(domain.ErrToolFailure, "cargo exited with code 101"))

		_, err := f.orch.FindRuntime(context.Background(), f.build.Toolchain, native, "header")
		assert.ErrorIs(t, err, domain.ErrToolFailure)
	})
}

func TestCompileAndLink_NativeStale(t *testing.T) {
	f := newFixture(t, table)
	out := "./target/debug/libplugin.so"
	objects := "./target/debug/deps/plugin-*.bc"

	gomock.InOrder(
		f.expectRuntime("plugin", native),
		f.runner.EXPECT().Run(gomock.Any(), cmd("cargo", "+stable", "rustc", "-p", "plugin", "--", "--emit=llvm-bc")),
		f.staleness.EXPECT().IsStale(objects, out).Return(true, nil),
		f.runner.EXPECT().Run(gomock.Any(), cmd("clang", "-shared", "-o", out, objects, linuxStd)),
		f.files.EXPECT().Contains(out, domain.IntegrityMarker()).Return(false, nil),
		f.hasher.EXPECT().HashFile(out).Return(uint64(7), nil),
		f.store.EXPECT().Put(domain.BuildRecord{
			Package: "plugin",
			Host:    domain.TripleLinux,
			Target:  domain.TripleLinux,
			Path:    out,
			Digest:  7,
			BuiltAt: builtAt,
		}),
	)

	got, err := f.orch.CompileAndLink(context.Background(), f.build, native, plugin)
	require.NoError(t, err)
	assert.Equal(t, domain.Artifact{Path: out, Package: "plugin", Pair: native}, got)
}

func TestCompileAndLink_Fresh(t *testing.T) {
	f := newFixture(t, table)

	f.expectRuntime("header", native)
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any())
	f.staleness.EXPECT().IsStale("./target/debug/deps/header-*.bc", "./target/debug/libheader.so").Return(false, nil)

	got, err := f.orch.CompileAndLink(context.Background(), f.build, native, header)
	require.NoError(t, err)
	assert.True(t, got.Fresh)
	assert.Equal(t, "./target/debug/libheader.so", got.Path)
}

func TestCompileAndLink_CrossWithExports(t *testing.T) {
	f := newFixture(t, table)
	out := winRoot + "/plugin.dll"
	objects := winRoot + "/deps/plugin-*.bc"
	list := winRoot + "/deps/plugin.dll_export"
	syms := []domain.ExportSymbol{{Name: "_ZN6plugin5hello17h00E", Linkage: domain.LinkageExternal}}

	gomock.InOrder(
		f.expectRuntime("plugin", cross),
		f.runner.EXPECT().Run(gomock.Any(), cmd(
			"cargo", "+stable", "rustc", "--target=x86_64-pc-windows-msvc", "-p", "plugin", "--", "--emit=llvm-bc",
		)),
		f.staleness.EXPECT().IsStale(objects, out).Return(true, nil),
		f.runner.EXPECT().Stream(gomock.Any(), cmd("llvm-dis", "--summary", "-o", "-", objects), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Command, consume func(io.Reader) error) error {
				return consume(strings.NewReader("^1 = gv: (...)"))
			}),
		f.extractor.EXPECT().Extract(gomock.Any(), "").Return(syms, nil),
		f.extractor.EXPECT().WriteList(gomock.Any(), syms).DoAndReturn(func(w io.Writer, _ []domain.ExportSymbol) error {
			_, err := io.WriteString(w, "/export:_ZN6plugin5hello17h00E\r\n")
			return err
		}),
		f.files.EXPECT().WriteFile(list, []byte("/export:_ZN6plugin5hello17h00E\r\n")),
		f.crt.EXPECT().Find(domain.TripleLinux).Return("./vcruntime.lib", nil),
		f.runner.EXPECT().Run(gomock.Any(), cmd(
			"lld-link", "/dll", "/noentry", "@"+list, "/out:"+out,
			"/defaultlib:"+winStd, "/defaultlib:./vcruntime.lib",
			"/defaultlib:"+winRoot+"/header.lib", objects,
		)),
		f.files.EXPECT().Contains(out, domain.IntegrityMarker()).Return(false, nil),
		f.hasher.EXPECT().HashFile(out).Return(uint64(9), nil),
		f.store.EXPECT().Put(gomock.Any()),
	)

	got, err := f.orch.CompileAndLink(context.Background(), f.build, cross, plugin)
	require.NoError(t, err)
	assert.Equal(t, out, got.Path)
	assert.False(t, got.Fresh)
}

func TestCompileAndLink_CrossWithoutExports(t *testing.T) {
	f := newFixture(t, table)
	out := winRoot + "/helper.dll"
	objects := winRoot + "/deps/helper-*.bc"

	gomock.InOrder(
		f.expectRuntime("helper", cross),
		f.runner.EXPECT().Run(gomock.Any(), cmd(
			"cargo", "+stable", "rustc", "--target=x86_64-pc-windows-msvc", "-p", "helper", "--", "--emit=llvm-bc",
		)),
		f.staleness.EXPECT().IsStale(objects, out).Return(true, nil),
		f.crt.EXPECT().Find(domain.TripleLinux).Return("./vcruntime.lib", nil),
		f.runner.EXPECT().Run(gomock.Any(), cmd(
			"lld-link", "/dll", "/noentry", "/out:"+out,
			"/defaultlib:"+winStd, "/defaultlib:./vcruntime.lib",
			"/defaultlib:"+winRoot+"/header.lib", objects,
		)),
		f.files.EXPECT().Contains(out, domain.IntegrityMarker()).Return(false, nil),
		f.hasher.EXPECT().HashFile(out).Return(uint64(3), nil),
		f.store.EXPECT().Put(gomock.Any()),
	)

	got, err := f.orch.CompileAndLink(context.Background(), f.build, cross, helper)
	require.NoError(t, err)
	assert.Equal(t, out, got.Path)
}

func TestCompileAndLink_BaseSkipsIntegrityCheck(t *testing.T) {
	f := newFixture(t, table)
	out := "./target/debug/libheader.so"

	f.expectRuntime("header", native)
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Times(2)
	f.staleness.EXPECT().IsStale(gomock.Any(), out).Return(true, nil)
	f.hasher.EXPECT().HashFile(out).Return(uint64(1), nil)
	f.store.EXPECT().Put(gomock.Any())

	_, err := f.orch.CompileAndLink(context.Background(), f.build, native, header)
	require.NoError(t, err)
}

func TestCompileAndLink_Errors(t *testing.T) {
	t.Run("integrity violation", func(t *testing.T) {
		f := newFixture(t, table)
		f.expectRuntime("plugin", native)
		f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Times(2)
		f.staleness.EXPECT().IsStale(gomock.Any(), gomock.Any()).Return(true, nil)
		f.files.EXPECT().Contains(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.orch.CompileAndLink(context.Background(), f.build, native, plugin)
		assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
		assert.ErrorContains(t, err, "libplugin.so")
	})

	t.Run("linker not found", func(t *testing.T) {
		f := newFixture(t, table)
		f.expectRuntime("plugin", native)
		gomock.InOrder(
			f.runner.EXPECT().Run(gomock.Any(), gomock.Any()),
			f.staleness.EXPECT().IsStale(gomock.Any(), gomock.Any()).Return(true, nil),
			f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).
				Return(zerr.Wrap(domain.ErrToolNotFound, "clang: executable file not found in $PATH")),
		)

		_, err := f.orch.CompileAndLink(context.Background(), f.build, native, plugin)
		assert.ErrorIs(t, err, domain.ErrToolNotFound)
		assert.ErrorContains(t, err, "link failed")
		assert.ErrorContains(t, err, "LLVM toolchain version 12.0.1")
		assert.ErrorContains(t, err, "./grab-clang")
	})

	t.Run("linker rejects arguments", func(t *testing.T) {
		f := newFixture(t, table)
		f.expectRuntime("plugin", native)
		gomock.InOrder(
			f.runner.EXPECT().Run(gomock.Any(), gomock.Any()),
			f.staleness.EXPECT().IsStale(gomock.Any(), gomock.Any()).Return(true, nil),
			f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).
				Return(zerr.Wrap(domain.ErrToolFailure, "clang exited with code 1")),
		)

		_, err := f.orch.CompileAndLink(context.Background(), f.build, native, plugin)
		assert.ErrorIs(t, err, domain.ErrToolFailure)
		assert.ErrorContains(t, err, "link failed\n  clang -shared -o ./target/debug/libplugin.so")
		assert.NotContains(t, err.Error(), "grab-clang")
	})

	t.Run("compile fails", func(t *testing.T) {
		f := newFixture(t, table)
		f.expectRuntime("plugin", native)
		f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).
			Return(zerr.Wrap(domain.ErrToolFailure, "cargo exited with code 101"))

		_, err := f.orch.CompileAndLink(context.Background(), f.build, native, plugin)
		assert.ErrorIs(t, err, domain.ErrToolFailure)
		assert.ErrorContains(t, err, "failed to compile plugin")
	})

	t.Run("no objects", func(t *testing.T) {
		f := newFixture(t, table)
		f.expectRuntime("plugin", native)
		f.runner.EXPECT().Run(gomock.Any(), gomock.Any())
		f.staleness.EXPECT().IsStale(gomock.Any(), gomock.Any()).
			Return(false, zerr.Wrap(domain.ErrStalenessInputMissing, "./target/debug/deps/plugin-*.bc"))

		_, err := f.orch.CompileAndLink(context.Background(), f.build, native, plugin)
		assert.ErrorIs(t, err, domain.ErrStalenessInputMissing)
	})

	t.Run("disassembler fails", func(t *testing.T) {
		f := newFixture(t, table)
		f.expectRuntime("plugin", cross)
		f.runner.EXPECT().Run(gomock.Any(), gomock.Any())
		f.staleness.EXPECT().IsStale(gomock.Any(), gomock.Any()).Return(true, nil)
		f.runner.EXPECT().Stream(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(zerr.Wrap(domain.ErrToolFailure, "llvm-dis exited with code 1"))

		_, err := f.orch.CompileAndLink(context.Background(), f.build, cross, plugin)
		assert.ErrorIs(t, err, domain.ErrToolFailure)
		assert.ErrorContains(t, err, "aborting due to failure of llvm-dis\n  llvm-dis --summary -o - ")
	})

	t.Run("base exports nothing", func(t *testing.T) {
		f := newFixture(t, table)
		f.expectRuntime("header", cross)
		f.runner.EXPECT().Run(gomock.Any(), gomock.Any())
		f.staleness.EXPECT().IsStale(gomock.Any(), gomock.Any()).Return(true, nil)
		f.runner.EXPECT().Stream(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Command, consume func(io.Reader) error) error {
				return consume(strings.NewReader(""))
			})
		f.extractor.EXPECT().Extract(gomock.Any(), "").Return(nil, nil)

		_, err := f.orch.CompileAndLink(context.Background(), f.build, cross, header)
		assert.ErrorIs(t, err, domain.ErrToolFailure)
		assert.ErrorContains(t, err, "header exports no external symbols")
	})

	t.Run("missing command", func(t *testing.T) {
		f := newFixture(t, "host:x86_64-unknown-linux-gnu target:x86_64-unknown-linux-gnu cmd:link ld\n")

		_, err := f.orch.CompileAndLink(context.Background(), f.build, native, plugin)
		assert.ErrorIs(t, err, domain.ErrCommandNotSupported)
		assert.ErrorContains(t, err, "cmd:cargo")
	})

	t.Run("crt missing", func(t *testing.T) {
		f := newFixture(t, table)
		f.expectRuntime("helper", cross)
		f.runner.EXPECT().Run(gomock.Any(), gomock.Any())
		f.staleness.EXPECT().IsStale(gomock.Any(), gomock.Any()).Return(true, nil)
		f.crt.EXPECT().Find(domain.TripleLinux).Return("", zerr.Wrap(domain.ErrToolNotFound, "Unable to find vcruntime.lib"))

		_, err := f.orch.CompileAndLink(context.Background(), f.build, cross, helper)
		assert.ErrorIs(t, err, domain.ErrToolNotFound)
	})
}

func TestBuildAll_ForeignFirst(t *testing.T) {
	f := newFixture(t, table)

	var compiled []string
	f.runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return([]byte("/opt/rust\n"), nil).AnyTimes()
	f.files.EXPECT().FindOne(gomock.Any(), gomock.Any(), gomock.Any()).Return("/opt/rust/lib/std", nil).AnyTimes()
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c domain.Command) error {
		compiled = append(compiled, strings.Join(c.Args[1:], " "))
		return nil
	}).Times(4)
	f.staleness.EXPECT().IsStale(gomock.Any(), gomock.Any()).Return(false, nil).Times(4)
	f.logger.EXPECT().Info("   Toolchain target x86_64-pc-windows-msvc")

	artifacts, err := f.orch.BuildAll(context.Background(), f.build, domain.TripleLinux, true)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"rustc --target=x86_64-pc-windows-msvc -p header -- --emit=llvm-bc",
		"rustc --target=x86_64-pc-windows-msvc -p plugin -- --emit=llvm-bc",
		"rustc -p header -- --emit=llvm-bc",
		"rustc -p plugin -- --emit=llvm-bc",
	}, compiled)

	require.Len(t, artifacts, 2)
	assert.Equal(t, "./target/debug/libheader.so", artifacts[0].Path)
	assert.Equal(t, "./target/debug/libplugin.so", artifacts[1].Path)
	for _, a := range artifacts {
		assert.Equal(t, native, a.Pair)
		assert.True(t, a.Fresh)
	}
}

func TestBuildAll_NativeOnly(t *testing.T) {
	f := newFixture(t, table)

	f.runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return([]byte("/opt/rust\n"), nil).Times(2)
	f.files.EXPECT().FindOne(gomock.Any(), gomock.Any(), gomock.Any()).Return(linuxStd, nil).Times(2)
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Times(2)
	f.staleness.EXPECT().IsStale(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)

	artifacts, err := f.orch.BuildAll(context.Background(), f.build, domain.TripleLinux, false)
	require.NoError(t, err)
	assert.Len(t, artifacts, 2)
}

func TestBuildAll_Cancelled(t *testing.T) {
	f := newFixture(t, table)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.orch.BuildAll(ctx, f.build, domain.TripleLinux, false)
	assert.ErrorIs(t, err, context.Canceled)
}
