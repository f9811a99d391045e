package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor. When its input is a terminal the command runs in a
// pseudo-terminal so programs keep their colors, line buffering and interactive input.
type Executor struct {
	stdin io.Reader
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithStdin replaces os.Stdin as the input forwarded to executed commands.
func WithStdin(r io.Reader) ExecutorOption {
	return func(e *Executor) {
		e.stdin = r
	}
}

// NewExecutor creates a new Executor reading from os.Stdin unless configured otherwise.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{stdin: os.Stdin}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs cmd and waits for it to complete. In PTY mode both output streams are merged
// into stdout. Non-terminal input, or a system without PTY support, uses plain pipes.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	if cmd.Name == "" {
		return nil
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // commands are built by kiln
	c.Dir = cmd.Dir
	c.Env = mergeEnvironment(os.Environ(), cmd.Env)

	tty, ok := e.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(tty.Fd())) { //nolint:gosec // fd fits in int
		return e.runPiped(cmd, c, stdout, stderr)
	}

	ptmx, err := pty.Start(c)
	if errors.Is(err, pty.ErrUnsupported) {
		return e.runPiped(cmd, c, stdout, stderr)
	}
	if err != nil {
		return zerr.With(commandError(cmd, err), "mode", "pty")
	}
	defer func() { _ = ptmx.Close() }()

	// Size mismatches only affect layout.
	_ = pty.InheritSize(tty, ptmx)

	state, err := term.MakeRaw(int(tty.Fd())) //nolint:gosec // fd fits in int
	if err != nil {
		_ = c.Process.Kill()
		_ = c.Wait()
		return zerr.With(zerr.Wrap(err, "failed to switch terminal to raw mode"), "command", cmd.Name)
	}
	defer func() { _ = term.Restore(int(tty.Fd()), state) }() //nolint:gosec // fd fits in int

	// The copy blocks on the terminal until the next keystroke after the child exits.
	go func() { _, _ = io.Copy(ptmx, tty) }()

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reads fail with EIO once the child exits and the slave side closes.
		_, _ = io.Copy(stdout, ptmx)
	}()

	waitErr := c.Wait()
	<-ioDone

	if waitErr != nil {
		return commandError(cmd, waitErr)
	}
	return nil
}

func (e *Executor) runPiped(cmd domain.Command, c *exec.Cmd, stdout, stderr io.Writer) error {
	c.Stdin = e.stdin
	c.Stdout = stdout
	c.Stderr = stderr
	if err := c.Run(); err != nil {
		return commandError(cmd, err)
	}
	return nil
}
