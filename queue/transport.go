package queue

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// DefaultConsumerPath is the program run by Consumer when no other is given.
const DefaultConsumerPath = "/usr/sbin/nullmailer-queue"

// Errors returned by Consumer.Send.
var (
	// ErrConsumerFailed is returned when the consumer exits with a non-zero
	// status, rejecting the message.
	ErrConsumerFailed = errors.New("queue consumer failed")

	// ErrConsumerCrashed is returned when the consumer does not exit
	// normally, such as when it is killed by a signal.
	ErrConsumerCrashed = errors.New("queue consumer crashed or was killed")
)

// Transport is something that will take delivery of a Message.
type Transport interface {
	Send(m *Message) error
}

// Display is a Transport that shows the message rather than queuing it.
type Display struct {
	// W receives the message.
	W io.Writer

	// Envelope enables writing the envelope section before the message.
	Envelope bool
}

// Send writes the message to the display.
func (d *Display) Send(m *Message) error {
	_, err := m.write(d.W, d.Envelope)
	return err
}

// Consumer is a Transport that runs the queue program and writes the message
// to its standard input. The program accepts the message by exiting with
// status zero.
type Consumer struct {
	// Path is the program to run. It is run from the directory containing
	// it. Defaults to DefaultConsumerPath.
	Path string

	// Args are passed to the program.
	Args []string

	// Stdout and Stderr receive the output of the program. They default to
	// the output of this process.
	Stdout io.Writer
	Stderr io.Writer

	// Logger receives debug logging. Defaults to discarding it.
	Logger *slog.Logger
}

func (c *Consumer) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

func (c *Consumer) command() *exec.Cmd {
	path := c.Path
	if path == "" {
		path = DefaultConsumerPath
	}

	cmd := exec.Command(path, c.Args...)
	if filepath.IsAbs(path) {
		cmd.Dir = filepath.Dir(path)
	}

	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}

	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	return cmd
}

// Send runs the consumer, writes the message to it, and waits for it to
// exit. Any failure along the way is returned and ends the attempt; nothing
// is retried.
func (c *Consumer) Send(m *Message) error {
	cmd := c.command()
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("could not create pipe to %s: %w", cmd.Path, err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("could not start %s: %w", cmd.Path, err)
	}

	c.logger().Debug("started queue consumer",
		"path", cmd.Path,
		"pid", cmd.Process.Pid)

	n, sendErr := m.WriteTo(stdin)
	closeErr := stdin.Close()
	waitErr := cmd.Wait()

	c.logger().Debug("queue consumer finished",
		"path", cmd.Path,
		"bytes", n,
		"state", cmd.ProcessState.String())

	if sendErr != nil {
		return sendErr
	}

	if closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
		return fmt.Errorf("error closing pipe to %s: %w", cmd.Path, closeErr)
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		return nil
	case errors.As(waitErr, &exitErr) && exitErr.ExitCode() >= 0:
		return fmt.Errorf("%w: exit status %d", ErrConsumerFailed, exitErr.ExitCode())
	case errors.As(waitErr, &exitErr):
		return fmt.Errorf("%w: %s", ErrConsumerCrashed, exitErr.String())
	default:
		return fmt.Errorf("error waiting for %s: %w", cmd.Path, waitErr)
	}
}
