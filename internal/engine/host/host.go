// Package host loads the runtime, base and plugin modules into the running process
// and invokes the service the plugin provides.
package host

import (
	"context"

	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
)

// Host walks the load sequence one stage at a time.
type Host struct {
	opener ports.LibraryOpener
	logger ports.Logger
	tracer ports.Tracer

	state domain.HostState
	// loaded keeps every opened module reachable until the process exits.
	loaded []ports.Library
}

// New creates a new Host with the given dependencies.
func New(opener ports.LibraryOpener, logger ports.Logger, tracer ports.Tracer) *Host {
	return &Host{
		opener: opener,
		logger: logger,
		tracer: tracer,
		state:  domain.StateNotLoaded,
	}
}

// State returns the stage the host has reached.
func (h *Host) State() domain.HostState {
	return h.state
}

// Run opens the modules in order, binds the base module state, hands it to the plugin
// service and says hello through that service. The service is released before
// Run returns. Module handles are never closed.
func (h *Host) Run(ctx context.Context, modules domain.ModuleSet, entrySymbol string) (err error) {
	if h.state != domain.StateNotLoaded {
		return zerr.With(
			zerr.Wrap(domain.ErrInvalidTransition, "host already ran"),
			"state", h.state.String(),
		)
	}

	ctx, span := h.tracer.Start(ctx, "host")
	defer span.End()
	defer func() {
		if err != nil {
			h.state = domain.StateFailed
			span.RecordError(err)
		}
	}()

	if _, err := h.open(ctx, "runtime", modules.Runtime, domain.LoadGlobal, domain.StateRuntimeLoaded); err != nil {
		return err
	}

	base, err := h.open(ctx, "base", modules.Base, domain.LoadGlobal, domain.StateBaseLoaded)
	if err != nil {
		return err
	}

	h.logger.Info("plugin: " + modules.Plugin)
	plugin, err := h.open(ctx, "plugin", modules.Plugin, domain.LoadLocal, domain.StatePluginLoaded)
	if err != nil {
		return err
	}

	cell, err := base.State(domain.BaseGetSymbol, domain.BaseSetSymbol)
	if err != nil {
		return zerr.With(err, "module", base.Path())
	}

	svc, err := plugin.Service(entrySymbol, cell)
	if err != nil {
		return zerr.With(zerr.With(err, "module", plugin.Path()), "symbol", entrySymbol)
	}
	defer func() {
		if closeErr := svc.Close(); closeErr != nil && err == nil {
			err = zerr.Wrap(closeErr, "failed to release the service")
			return
		}
		if err == nil {
			err = h.advance(domain.StateDone)
		}
	}()

	if err := svc.SayHello(); err != nil {
		return zerr.With(err, "module", plugin.Path())
	}
	return h.advance(domain.StateServiceInvoked)
}

func (h *Host) open(
	ctx context.Context,
	role, path string,
	mode domain.LoadMode,
	next domain.HostState,
) (ports.Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, span := h.tracer.Start(ctx, "load "+role)
	defer span.End()
	span.SetAttribute("path", path)
	span.SetAttribute("mode", mode.String())

	lib, err := h.opener.Open(path, mode)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(err, "module", role)
	}
	h.loaded = append(h.loaded, lib)

	if err := h.advance(next); err != nil {
		return nil, err
	}
	return lib, nil
}

// advance moves to the next stage, refusing to skip or repeat one.
func (h *Host) advance(to domain.HostState) error {
	if h.state.Next() != to || h.state == to {
		return zerr.With(
			zerr.Wrap(domain.ErrInvalidTransition, h.state.String()+" -> "+to.String()),
			"state", h.state.String(),
		)
	}
	h.state = to
	return nil
}
