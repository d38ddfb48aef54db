// Package toolchain parses the toolchain command table and resolves command templates.
package toolchain

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Toolchain = (*Table)(nil)

const (
	hostPrefix   = "host:"
	targetPrefix = "target:"
	cmdPrefix    = "cmd:"
	commentStart = "#"
	wildcard     = "*"
)

type entry struct {
	args domain.CommandTemplate
	line int
}

// Table is an immutable index of command templates.
type Table struct {
	cmds        map[domain.CommandKey]entry
	expandGlobs bool
}

// Option configures a Table.
type Option func(*Table)

// WithGlobExpansion overrides whether arguments containing a wildcard are expanded locally.
// By default expansion happens on every host except Windows.
func WithGlobExpansion(enable bool) Option {
	return func(t *Table) {
		t.expandGlobs = enable
	}
}

// Parse reads a command table. Duplicate keys overwrite earlier ones and are reported to logger.
func Parse(r io.Reader, logger ports.Logger, opts ...Option) (*Table, error) {
	t := &Table{
		cmds:        make(map[domain.CommandKey]entry),
		expandGlobs: runtime.GOOS != "windows",
	}
	for _, opt := range opts {
		opt(t)
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentStart) {
			continue
		}

		key, args, err := parseLine(line)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, fmt.Sprintf("line %d", lineNo)), "line", lineNo)
		}

		if prev, ok := t.cmds[key]; ok && logger != nil {
			logger.Warn(fmt.Sprintf("toolchain entry %q on line %d overrides line %d", key.String(), lineNo, prev.line))
		}
		t.cmds[key] = entry{args: args, line: lineNo}
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read toolchain table")
	}

	return t, nil
}

func parseLine(line string) (domain.CommandKey, domain.CommandTemplate, error) {
	fields := strings.Fields(line)
	next := func(prefix string) (string, error) {
		if len(fields) == 0 || !strings.HasPrefix(fields[0], prefix) {
			return "", zerr.Wrap(domain.ErrConfiguration, fmt.Sprintf("expected something starting with %q", prefix))
		}
		v := strings.TrimPrefix(fields[0], prefix)
		fields = fields[1:]
		return v, nil
	}

	host, err := next(hostPrefix)
	if err != nil {
		return domain.CommandKey{}, nil, err
	}
	target, err := next(targetPrefix)
	if err != nil {
		return domain.CommandKey{}, nil, err
	}
	kind, err := next(cmdPrefix)
	if err != nil {
		return domain.CommandKey{}, nil, err
	}

	key := domain.CommandKey{
		Host:   domain.Triple(host),
		Target: domain.Triple(target),
		Kind:   domain.CommandKind(kind),
	}
	return key, domain.CommandTemplate(fields), nil
}

// Len returns the number of distinct keys in the table.
func (t *Table) Len() int {
	return len(t.cmds)
}

// Resolve implements ports.Toolchain.
func (t *Table) Resolve(pair domain.Pair, kind domain.CommandKind, subs ...domain.Substitution) (domain.Command, error) {
	key := domain.KeyFor(pair, kind)
	e, ok := t.cmds[key]
	if !ok {
		return domain.Command{}, zerr.With(zerr.Wrap(domain.ErrCommandNotSupported, key.String()), "key", key.String())
	}

	args := slices.Clone([]string(e.args))
	for _, sub := range subs {
		args = substitute(args, sub)
	}

	for _, arg := range args {
		if strings.Contains(arg, domain.PlaceholderSigil) {
			return domain.Command{}, zerr.With(zerr.Wrap(domain.ErrUnexpandedPlaceholder, fmt.Sprintf("%s: %q", key, args)), "argument", arg)
		}
	}

	if t.expandGlobs {
		expanded, err := expand(args)
		if err != nil {
			return domain.Command{}, zerr.Wrap(err, key.String())
		}
		args = expanded
	}

	cmd, err := domain.NewCommand(args)
	if err != nil {
		return domain.Command{}, zerr.Wrap(err, key.String())
	}
	return cmd, nil
}

// substitute applies one substitution. An argument that is exactly the placeholder
// is replaced by every value; otherwise the values are joined with a space.
// Empty results are dropped.
func substitute(args []string, sub domain.Substitution) []string {
	out := make([]string, 0, len(args))
	joined := sub.Joined()
	for _, arg := range args {
		if arg == sub.Placeholder {
			for _, v := range sub.Values {
				if v != "" {
					out = append(out, v)
				}
			}
			continue
		}
		if replaced := strings.ReplaceAll(arg, sub.Placeholder, joined); replaced != "" {
			out = append(out, replaced)
		}
	}
	return out
}

// expand globs every argument containing a wildcard, keeping the literal on zero matches.
func expand(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.Contains(arg, wildcard) {
			out = append(out, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob argument"), "argument", arg)
		}
		if len(matches) == 0 {
			out = append(out, arg)
			continue
		}
		out = append(out, matches...)
	}
	return out, nil
}
