package domain

import (
	"strings"
)

// CommandKind names one of the operations a toolchain provides.
type CommandKind string

const (
	// KindCompile compiles a package to LLVM bitcode and answers the sysroot query.
	KindCompile CommandKind = "cargo"
	// KindLink links bitcode objects into a shared library.
	KindLink CommandKind = "link"
	// KindDisasm disassembles bitcode into a readable summary.
	KindDisasm CommandKind = "llvm-dis"
)

// Placeholders substituted into command templates.
const (
	VarStd                = "$STD"
	VarOut                = "$OUT"
	VarInputObj           = "$INPUT_OBJ"
	VarObjects            = "$OBJECTS"
	VarExportsList        = "$EXPORTS_LIST"
	VarDLLLibDependencies = "$DLL_LIB_DEPENDENCIES"
	VarLibCRT             = "$LIBCURTD"
)

// PlaceholderSigil marks the start of an unexpanded placeholder.
const PlaceholderSigil = "$"

// CommandKey uniquely identifies a command template.
type CommandKey struct {
	Host   Triple
	Target Triple
	Kind   CommandKind
}

// KeyFor builds the key for a command kind on the given pair.
func KeyFor(pair Pair, kind CommandKind) CommandKey {
	return CommandKey{Host: pair.Host, Target: pair.Target, Kind: kind}
}

// String implements fmt.Stringer.
func (k CommandKey) String() string {
	return "host:" + string(k.Host) + " target:" + string(k.Target) + " cmd:" + string(k.Kind)
}

// CommandTemplate is an ordered argument list; the first element is the program.
type CommandTemplate []string

// Substitution replaces a placeholder with one or more values.
type Substitution struct {
	Placeholder string
	Values      []string
}

// Sub is shorthand for a single-valued substitution.
func Sub(placeholder string, values ...string) Substitution {
	return Substitution{Placeholder: placeholder, Values: values}
}

// Joined returns the values joined with a single space.
func (s Substitution) Joined() string {
	return strings.Join(s.Values, " ")
}

// Command is a fully resolved invocation.
type Command struct {
	Program string
	Args    []string
}

// NewCommand splits an argument vector into program and arguments.
func NewCommand(argv []string) (Command, error) {
	if len(argv) == 0 {
		return Command{}, ErrEmptyCommand
	}
	return Command{Program: argv[0], Args: argv[1:]}, nil
}

// With returns a copy of the command with extra arguments appended.
func (c Command) With(args ...string) Command {
	out := make([]string, 0, len(c.Args)+len(args))
	out = append(out, c.Args...)
	out = append(out, args...)
	return Command{Program: c.Program, Args: out}
}

// Argv returns the program followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Program}, c.Args...)
}

// String renders the command line for diagnostics.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}
