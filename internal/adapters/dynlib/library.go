//go:build darwin || freebsd || linux || windows

package dynlib

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/zerr"
)

// Library is a module opened by Opener.
type Library struct {
	path   string
	handle uintptr
}

func newLibrary(path string, handle uintptr) *Library {
	return &Library{path: path, handle: handle}
}

// Path returns the file the module was loaded from.
func (l *Library) Path() string {
	return l.path
}

func (l *Library) symbol(name string) (uintptr, error) {
	addr, err := lookup(l.handle, name)
	if err != nil || addr == 0 {
		return 0, zerr.With(
			zerr.Wrap(domain.ErrSymbolNotFound, "symbol "+name+" not found in "+l.path),
			"symbol", name,
		)
	}
	return addr, nil
}

// State binds the module's exported int32 getter and setter.
func (l *Library) State(getSym, setSym string) (*domain.StateCell, error) {
	getAddr, err := l.symbol(getSym)
	if err != nil {
		return nil, err
	}
	setAddr, err := l.symbol(setSym)
	if err != nil {
		return nil, err
	}

	var get func() int32
	var set func(int32)
	purego.RegisterFunc(&get, getAddr)
	purego.RegisterFunc(&set, setAddr)

	return domain.NewStateCell(get, set), nil
}

// vtable is the layout returned by the entry symbol: the object pointer and its two methods.
type vtable struct {
	self     uintptr
	sayHello uintptr
	drop     uintptr
}

// Service checks the base state cell, calls the entry symbol and wraps the returned function table.
func (l *Library) Service(entrySym string, cell *domain.StateCell) (domain.Service, error) {
	entry, err := l.symbol(entrySym)
	if err != nil {
		return nil, err
	}
	svc, err := newService(entry, cell)
	if err != nil {
		return nil, zerr.With(zerr.With(err, "module", l.path), "symbol", entrySym)
	}
	return svc, nil
}

// newService runs the liveness check on cell so the entry function sees the handed-off
// value, then calls entry and takes ownership of the object it returns.
func newService(entry uintptr, cell *domain.StateCell) (*service, error) {
	if cell == nil {
		return nil, zerr.Wrap(domain.ErrLivenessCheckFailed, "no base state to hand to the plugin")
	}
	if err := cell.CheckLiveness(); err != nil {
		return nil, err
	}

	ptr, _, _ := purego.SyscallN(entry)
	if ptr == 0 {
		return nil, zerr.Wrap(domain.ErrLoadFailed, "entry returned a null service")
	}

	tbl := *(*vtable)(unsafe.Pointer(ptr)) //nolint:govet // pointer owned by the plugin
	if tbl.sayHello == 0 || tbl.drop == 0 {
		return nil, zerr.Wrap(domain.ErrLoadFailed, "entry returned an incomplete function table")
	}
	return &service{tbl: tbl, cell: cell}, nil
}

// service owns the plugin object and the base state cell until Close.
type service struct {
	tbl    vtable
	cell   *domain.StateCell
	closed bool
}

func (s *service) SayHello() error {
	if s.closed {
		return zerr.Wrap(domain.ErrInvalidTransition, "service used after release")
	}
	if got := s.cell.Get(); got == 0 {
		return zerr.Wrap(domain.ErrLivenessCheckFailed, "base state was reset before say_hello")
	}
	purego.SyscallN(s.tbl.sayHello, s.tbl.self)
	return nil
}

func (s *service) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cell = nil
	purego.SyscallN(s.tbl.drop, s.tbl.self)
	return nil
}
