// Package shell runs external toolchain programs.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.ToolRunner = (*Runner)(nil)

// Runner implements ports.ToolRunner using os/exec, with a pseudo-terminal when attached to one
// so that compilers keep their coloured diagnostics.
type Runner struct {
	logger ports.Logger
	usePTY bool
	dir    string
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger, usePTY bool) *Runner {
	return &Runner{logger: logger, usePTY: usePTY}
}

// WithDir runs every command in dir instead of the working directory.
func (r *Runner) WithDir(dir string) *Runner {
	r.dir = dir
	return r
}

// Run implements ports.ToolRunner.
func (r *Runner) Run(ctx context.Context, c domain.Command) error {
	cmd, err := r.command(ctx, c)
	if err != nil {
		return err
	}

	stdoutLog := &logWriter{logger: r.logger, tool: c.Program}
	stderrLog := &logWriter{logger: r.logger, tool: c.Program}
	defer func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}()

	if r.usePTY {
		err := runPTY(cmd, stdoutLog)
		if !errors.Is(err, pty.ErrUnsupported) {
			return r.exitError(c, err)
		}
		// Unsupported platforms fall back to pipes on a fresh command.
		if cmd, err = r.command(ctx, c); err != nil {
			return err
		}
	}

	cmd.Stdout = stdoutLog
	cmd.Stderr = stderrLog
	return r.exitError(c, cmd.Run())
}

func runPTY(cmd *exec.Cmd, out io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		if errors.Is(err, pty.ErrUnsupported) {
			return err
		}
		return zerr.Wrap(err, "failed to start pty")
	}

	var g errgroup.Group
	g.Go(func() error {
		defer func() { _ = ptmx.Close() }()
		// Reading from the master fails with EIO once the child exits; that ends the copy.
		_, _ = io.Copy(out, ptmx)
		return nil
	})

	err = cmd.Wait()
	_ = g.Wait()
	return err
}

// Output implements ports.ToolRunner.
func (r *Runner) Output(ctx context.Context, c domain.Command) ([]byte, error) {
	cmd, err := r.command(ctx, c)
	if err != nil {
		return nil, err
	}

	stderrLog := &logWriter{logger: r.logger, tool: c.Program}
	defer func() { _ = stderrLog.Close() }()

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = stderrLog
	if err := cmd.Run(); err != nil {
		return nil, r.exitError(c, err)
	}
	return stdout.Bytes(), nil
}

// Stream implements ports.ToolRunner.
func (r *Runner) Stream(ctx context.Context, c domain.Command, consume func(io.Reader) error) error {
	cmd, err := r.command(ctx, c)
	if err != nil {
		return err
	}

	stderrLog := &logWriter{logger: r.logger, tool: c.Program}
	defer func() { _ = stderrLog.Close() }()
	cmd.Stderr = stderrLog

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return zerr.Wrap(err, "failed to open stdout pipe")
	}
	if err := cmd.Start(); err != nil {
		return r.exitError(c, err)
	}

	consumeErr := consume(stdout)
	// Drain whatever the consumer left so the child never blocks on a full pipe.
	_, _ = io.Copy(io.Discard, stdout)
	waitErr := cmd.Wait()

	if consumeErr != nil {
		return consumeErr
	}
	return r.exitError(c, waitErr)
}

func (r *Runner) command(ctx context.Context, c domain.Command) (*exec.Cmd, error) {
	executable, err := exec.LookPath(c.Program)
	if err != nil {
		return nil, notFound(c, err)
	}

	cmd := exec.CommandContext(ctx, executable, c.Args...) //nolint:gosec // command comes from the toolchain table
	cmd.Args[0] = c.Program
	cmd.Env = os.Environ()
	cmd.Dir = r.dir
	return cmd, nil
}

func notFound(c domain.Command, err error) error {
	return zerr.With(zerr.Wrap(domain.ErrToolNotFound, fmt.Sprintf("%s: %v", c.Program, err)), "command", c.String())
}

// exitError classifies the result of running c.
func (r *Runner) exitError(c domain.Command, err error) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		msg := fmt.Sprintf("%s exited with code %d\n  %s", c.Program, code, c.String())
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrToolFailure, msg), "exit_code", code), "command", c.String())
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return notFound(c, err)
	}
	return zerr.With(zerr.Wrap(err, "command failed"), "command", c.String())
}

// logWriter forwards each complete line to the logger as output of tool.
type logWriter struct {
	logger ports.Logger
	tool   string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r. Remove it.
	w.logger.Output(w.tool, strings.TrimSuffix(string(line), "\r"))
}
