// Package sink provides the configurable log destination tracepoint hits
// write to: disabled, console, or an append-only file.
package sink

import (
	"fmt"
	"io"
	"os"
)

// Reserved destination names. Anything else is treated as a file path.
const (
	// DestStdout routes log lines to the console writer.
	DestStdout = "stdout"

	// DestNone disables logging entirely. Hits still process; nothing is
	// written.
	DestNone = "none"
)

// Sink is an explicit log-destination object threaded through engine
// construction. Its lifecycle is deliberate: created once at startup,
// mutated only through Set, read at every hit.
//
// Switching destinations is idempotent and never truncates existing
// file content; switching away from a file does not delete it.
//
// Thread-safety: none. Destination changes and hit writes are both
// driven from the single serialized control thread.
type Sink struct {
	dest    string
	console io.Writer
}

// New creates a sink writing to the default console destination.
// console is the writer used for the stdout destination; pass os.Stdout
// in production and a buffer in tests.
func New(console io.Writer) *Sink {
	if console == nil {
		console = os.Stdout
	}
	return &Sink{dest: DestStdout, console: console}
}

// Destination returns the current destination name: "stdout", "none", or
// a file path.
func (s *Sink) Destination() string { return s.dest }

// Enabled reports whether hit lines are written anywhere.
func (s *Sink) Enabled() bool { return s.dest != DestNone }

// IsFile reports whether the current destination is a file path.
func (s *Sink) IsFile() bool {
	return s.dest != DestStdout && s.dest != DestNone
}

// Set switches the destination. "stdout" and "none" are recognized
// destinations; any other value is a file path, which is created
// immediately if absent (and left untouched if present) so that a bad
// path fails here rather than at the first hit.
func (s *Sink) Set(dest string) error {
	if dest == DestStdout || dest == DestNone {
		s.dest = dest
		return nil
	}
	f, err := os.OpenFile(dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		return fmt.Errorf("cannot open log file %q: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot open log file %q: %w", dest, err)
	}
	s.dest = dest
	return nil
}

// Write appends one log line to the configured destination, adding the
// trailing newline. Writing to a disabled sink is a no-op.
//
// File writes use an append-mode open per line, so concurrent external
// writers cannot interleave partial lines within this one.
func (s *Sink) Write(line string) error {
	switch s.dest {
	case DestNone:
		return nil
	case DestStdout:
		_, err := fmt.Fprintln(s.console, line)
		return err
	default:
		f, err := os.OpenFile(s.dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
		if err != nil {
			return fmt.Errorf("cannot open log file %q: %w", s.dest, err)
		}
		defer f.Close()
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("cannot append to log file %q: %w", s.dest, err)
		}
		return nil
	}
}
