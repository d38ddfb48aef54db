package domain

// Service is the capability object a plugin hands back from its entry symbol.
// The caller owns it and must Close it exactly once.
type Service interface {
	SayHello() error
	Close() error
}

// LoadMode controls symbol visibility when opening a module.
type LoadMode int

const (
	// LoadGlobal makes the module's symbols available to modules loaded later.
	LoadGlobal LoadMode = iota
	// LoadLocal keeps the module's symbols private.
	LoadLocal
)

func (m LoadMode) String() string {
	if m == LoadGlobal {
		return "global"
	}
	return "local"
}

// Symbols exported by the base module and used for the liveness check.
const (
	BaseGetSymbol = "header_get"
	BaseSetSymbol = "header_set"
)

// IntegrityMarker is a byte sequence that must not appear in non-base binaries.
// It is assembled at runtime so that this binary does not contain it verbatim.
func IntegrityMarker() []byte {
	parts := []byte("forbid" + "_" + "me")
	for i, b := range parts {
		if b >= 'a' && b <= 'z' {
			parts[i] = b - ('a' - 'A')
		}
	}
	return parts
}
