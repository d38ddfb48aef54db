package domain

import "path/filepath"

const (
	// TargetDirName is the root directory the toolchain writes build outputs into.
	TargetDirName = "target"

	// PlinkDirName is the name of the internal metadata directory under the target root.
	PlinkDirName = ".plink"

	// StoreDirName is the name of the build record store directory.
	StoreDirName = "store"

	// ToolchainFileName is the default name of the toolchain command table.
	ToolchainFileName = "toolchain.txt"

	// ProjectFileName is the name of the optional project configuration file.
	ProjectFileName = "plink.yaml"

	// LibDirName is the directory prebuilt artifacts may be shipped in.
	LibDirName = "lib"

	// DepsDirName is the directory compiler intermediates are written to, under the output root.
	DepsDirName = "deps"

	// CRTFileName is the Windows C runtime import library passed to the linker.
	CRTFileName = "vcruntime.lib"

	// CRTEnvVar overrides the location of CRTFileName.
	CRTEnvVar = "LIB_CRT"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStorePath returns the default path for the build record store.
// It joins target, .plink and store.
func DefaultStorePath() string {
	return filepath.Join(TargetDirName, PlinkDirName, StoreDirName)
}

// DefaultToolchainPath returns the toolchain table path relative to the working directory.
func DefaultToolchainPath() string {
	return "./" + ToolchainFileName
}
