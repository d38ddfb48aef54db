package domain

import "go.trai.ch/zerr"

var (
	// ErrConfiguration is returned when a toolchain or project configuration record is malformed.
	ErrConfiguration = zerr.New("invalid configuration")

	// ErrCommandNotSupported is returned when the toolchain has no template for a (host, target, kind) key.
	ErrCommandNotSupported = zerr.New("toolchain does not support this operation")

	// ErrUnexpandedPlaceholder is returned when a resolved command still contains a placeholder.
	ErrUnexpandedPlaceholder = zerr.New("command has unexpanded variables")

	// ErrEmptyCommand is returned when a command template resolves to no arguments at all.
	ErrEmptyCommand = zerr.New("command resolved to an empty argument list")

	// ErrToolNotFound is returned when an external tool executable cannot be launched.
	ErrToolNotFound = zerr.New("external tool not found")

	// ErrToolFailure is returned when an external tool exits non-zero or its output cannot be parsed.
	ErrToolFailure = zerr.New("external tool failed")

	// ErrStalenessInputMissing is returned when a build step input glob matches no files.
	ErrStalenessInputMissing = zerr.New("no input files")

	// ErrIntegrityViolation is returned when a linked binary contains the reserved isolation marker.
	ErrIntegrityViolation = zerr.New("export isolation failed")

	// ErrArtifactNotFound is returned when no candidate location holds a prebuilt artifact.
	ErrArtifactNotFound = zerr.New("unable to find artifact")

	// ErrAmbiguousArtifact is returned when an artifact pattern matches more than one file.
	ErrAmbiguousArtifact = zerr.New("artifact pattern matched multiple files")

	// ErrRuntimeNotFound is returned when the runtime support library cannot be located.
	ErrRuntimeNotFound = zerr.New("failed to find runtime support library")

	// ErrLoadFailed is returned when a dynamic module cannot be opened or a symbol cannot be resolved.
	ErrLoadFailed = zerr.New("failed to load module")

	// ErrSymbolNotFound is returned when a mandatory symbol is missing from a loaded module.
	ErrSymbolNotFound = zerr.New("symbol not found")

	// ErrInvalidTransition is returned when the host skips or repeats a load stage.
	ErrInvalidTransition = zerr.New("invalid host state transition")

	// ErrLivenessCheckFailed is returned when the base module state does not round-trip.
	ErrLivenessCheckFailed = zerr.New("base module liveness check failed")

	// ErrUnsupportedPlatform is returned for a platform triple outside the known set.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrMissingDependency is returned when a library depends on one that is not listed before it.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrDuplicateLibrary is returned when a library name appears twice in the project.
	ErrDuplicateLibrary = zerr.New("duplicate library")

	// ErrConfigReadFailed is returned when the project file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the project file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrStoreCreateFailed is returned when the build record store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build record store directory")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")

	// ErrFileHashFailed is returned when hashing an artifact fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrBuildFailed is returned by the application when the build phase aborts.
	ErrBuildFailed = zerr.New("build failed")
)
