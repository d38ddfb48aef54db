package host_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plink/internal/adapters/telemetry"
	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports/mocks"
	"go.trai.ch/plink/internal/engine/host"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var modules = domain.ModuleSet{
	Runtime: "/opt/rust/lib/libstd-1a2b.so",
	Base:    "./target/debug/libheader.so",
	Plugin:  "./target/debug/libplugin.so",
}

type fakeService struct {
	hellos   int
	closes   int
	helloErr error
	calls    *[]string
}

func (s *fakeService) SayHello() error {
	s.hellos++
	*s.calls = append(*s.calls, "say_hello")
	return s.helloErr
}

func (s *fakeService) Close() error {
	s.closes++
	*s.calls = append(*s.calls, "drop")
	return nil
}

type fixture struct {
	opener  *mocks.MockLibraryOpener
	runtime *mocks.MockLibrary
	base    *mocks.MockLibrary
	plugin  *mocks.MockLibrary
	logger  *mocks.MockLogger
	host    *host.Host
	calls   []string
	value   int32
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		opener:  mocks.NewMockLibraryOpener(ctrl),
		runtime: mocks.NewMockLibrary(ctrl),
		base:    mocks.NewMockLibrary(ctrl),
		plugin:  mocks.NewMockLibrary(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}
	f.base.EXPECT().Path().Return(modules.Base).AnyTimes()
	f.plugin.EXPECT().Path().Return(modules.Plugin).AnyTimes()
	f.host = host.New(f.opener, f.logger, telemetry.NewNoOpTracer())
	return f
}

func (f *fixture) cell() *domain.StateCell {
	return domain.NewStateCell(
		func() int32 { return f.value },
		func(v int32) { f.value = v },
	)
}

func TestRun(t *testing.T) {
	f := newFixture(t)
	svc := &fakeService{calls: &f.calls}

	gomock.InOrder(
		f.opener.EXPECT().Open(modules.Runtime, domain.LoadGlobal).Return(f.runtime, nil),
		f.opener.EXPECT().Open(modules.Base, domain.LoadGlobal).Return(f.base, nil),
		f.logger.EXPECT().Info("plugin: "+modules.Plugin),
		f.opener.EXPECT().Open(modules.Plugin, domain.LoadLocal).Return(f.plugin, nil),
		f.base.EXPECT().State(domain.BaseGetSymbol, domain.BaseSetSymbol).Return(f.cell(), nil),
		f.plugin.EXPECT().Service(domain.DefaultEntrySymbol, gomock.Any()).Return(svc, nil),
	)

	err := f.host.Run(context.Background(), modules, domain.DefaultEntrySymbol)
	require.NoError(t, err)

	assert.Equal(t, []string{"say_hello", "drop"}, f.calls)
	assert.Equal(t, domain.StateDone, f.host.State())
}

func TestRun_HandsStateCellToService(t *testing.T) {
	f := newFixture(t)
	svc := &fakeService{calls: &f.calls}
	cell := f.cell()

	f.opener.EXPECT().Open(gomock.Any(), domain.LoadGlobal).Return(f.base, nil).Times(2)
	f.logger.EXPECT().Info(gomock.Any())
	f.opener.EXPECT().Open(modules.Plugin, domain.LoadLocal).Return(f.plugin, nil)
	f.base.EXPECT().State(domain.BaseGetSymbol, domain.BaseSetSymbol).Return(cell, nil)
	f.plugin.EXPECT().Service(domain.DefaultEntrySymbol, gomock.Any()).
		DoAndReturn(func(_ string, got *domain.StateCell) (domain.Service, error) {
			assert.Same(t, cell, got)
			if err := got.CheckLiveness(); err != nil {
				return nil, err
			}
			return svc, nil
		})

	require.NoError(t, f.host.Run(context.Background(), modules, domain.DefaultEntrySymbol))
	assert.Equal(t, int32(1), f.value)
}

func TestRun_OnlyOnce(t *testing.T) {
	f := newFixture(t)
	svc := &fakeService{calls: &f.calls}

	f.opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(f.base, nil).Times(2)
	f.opener.EXPECT().Open(modules.Plugin, domain.LoadLocal).Return(f.plugin, nil)
	f.logger.EXPECT().Info(gomock.Any())
	f.base.EXPECT().State(gomock.Any(), gomock.Any()).Return(f.cell(), nil)
	f.plugin.EXPECT().Service(gomock.Any(), gomock.Any()).Return(svc, nil)

	require.NoError(t, f.host.Run(context.Background(), modules, domain.DefaultEntrySymbol))

	err := f.host.Run(context.Background(), modules, domain.DefaultEntrySymbol)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 1, svc.hellos)
}

func TestRun_Failures(t *testing.T) {
	loadErr := zerr.Wrap(domain.ErrLoadFailed, "failed to load ./target/debug/libheader.so: cannot open shared object file")

	t.Run("runtime missing", func(t *testing.T) {
		f := newFixture(t)
		f.opener.EXPECT().Open(modules.Runtime, domain.LoadGlobal).Return(nil, loadErr)

		err := f.host.Run(context.Background(), modules, domain.DefaultEntrySymbol)
		assert.ErrorIs(t, err, domain.ErrLoadFailed)
		assert.Equal(t, domain.StateFailed, f.host.State())
	})

	t.Run("base missing", func(t *testing.T) {
		f := newFixture(t)
		gomock.InOrder(
			f.opener.EXPECT().Open(modules.Runtime, domain.LoadGlobal).Return(f.runtime, nil),
			f.opener.EXPECT().Open(modules.Base, domain.LoadGlobal).Return(nil, loadErr),
		)

		err := f.host.Run(context.Background(), modules, domain.DefaultEntrySymbol)
		assert.ErrorIs(t, err, domain.ErrLoadFailed)
		assert.ErrorContains(t, err, "libheader.so")
	})

	t.Run("state symbol missing", func(t *testing.T) {
		f := newFixture(t)
		f.opener.EXPECT().Open(gomock.Any(), domain.LoadGlobal).Return(f.base, nil).Times(2)
		f.logger.EXPECT().Info(gomock.Any())
		f.opener.EXPECT().Open(modules.Plugin, domain.LoadLocal).Return(f.plugin, nil)
		f.base.EXPECT().State(gomock.Any(), gomock.Any()).
			Return(nil, zerr.Wrap(domain.ErrSymbolNotFound, domain.BaseGetSymbol))

		err := f.host.Run(context.Background(), modules, domain.DefaultEntrySymbol)
		assert.ErrorIs(t, err, domain.ErrSymbolNotFound)
		assert.ErrorContains(t, err, domain.BaseGetSymbol)
		assert.Equal(t, domain.StateFailed, f.host.State())
	})

	t.Run("liveness", func(t *testing.T) {
		f := newFixture(t)
		f.value = 5
		f.opener.EXPECT().Open(gomock.Any(), domain.LoadGlobal).Return(f.base, nil).Times(2)
		f.logger.EXPECT().Info(gomock.Any())
		f.opener.EXPECT().Open(modules.Plugin, domain.LoadLocal).Return(f.plugin, nil)
		f.base.EXPECT().State(gomock.Any(), gomock.Any()).Return(f.cell(), nil)
		f.plugin.EXPECT().Service(domain.DefaultEntrySymbol, gomock.Any()).
			Return(nil, zerr.Wrap(domain.ErrLivenessCheckFailed, "initial value is 5, expected 0"))

		err := f.host.Run(context.Background(), modules, domain.DefaultEntrySymbol)
		assert.ErrorIs(t, err, domain.ErrLivenessCheckFailed)
		assert.Equal(t, domain.StateFailed, f.host.State())
	})

	t.Run("entry symbol missing", func(t *testing.T) {
		f := newFixture(t)
		f.opener.EXPECT().Open(gomock.Any(), domain.LoadGlobal).Return(f.base, nil).Times(2)
		f.logger.EXPECT().Info(gomock.Any())
		f.opener.EXPECT().Open(modules.Plugin, domain.LoadLocal).Return(f.plugin, nil)
		f.base.EXPECT().State(gomock.Any(), gomock.Any()).Return(f.cell(), nil)
		f.plugin.EXPECT().Service("make_service", gomock.Any()).
			Return(nil, zerr.Wrap(domain.ErrSymbolNotFound, "make_service"))

		err := f.host.Run(context.Background(), modules, "make_service")
		assert.ErrorIs(t, err, domain.ErrSymbolNotFound)
		assert.Equal(t, domain.StateFailed, f.host.State())
	})

	t.Run("hello fails and service is still released", func(t *testing.T) {
		f := newFixture(t)
		svc := &fakeService{calls: &f.calls, helloErr: zerr.Wrap(domain.ErrInvalidTransition, "closed")}
		f.opener.EXPECT().Open(gomock.Any(), domain.LoadGlobal).Return(f.base, nil).Times(2)
		f.logger.EXPECT().Info(gomock.Any())
		f.opener.EXPECT().Open(modules.Plugin, domain.LoadLocal).Return(f.plugin, nil)
		f.base.EXPECT().State(gomock.Any(), gomock.Any()).Return(f.cell(), nil)
		f.plugin.EXPECT().Service(gomock.Any(), gomock.Any()).Return(svc, nil)

		err := f.host.Run(context.Background(), modules, domain.DefaultEntrySymbol)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, 1, svc.closes)
		assert.Equal(t, domain.StateFailed, f.host.State())
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := f.host.Run(ctx, modules, domain.DefaultEntrySymbol)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
