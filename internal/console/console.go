// Package console implements the interactive command surface of a debug
// session: one command invocation per line, arguments tokenized
// shell-like, dispatched against the tracepoint engine.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/dlogdev/dlog/internal/config"
	"github.com/dlogdev/dlog/internal/engine"
)

// Prompt is printed before each interactive command line.
const Prompt = "(dlog) "

// errQuit signals that the user asked to leave the console.
var errQuit = errors.New("quit")

// Console dispatches command lines against a tracepoint engine.
type Console struct {
	eng *engine.Engine
	cfg config.Config
	out io.Writer

	// execCommand runs a child process and captures its stdout.
	// Injectable for tests.
	execCommand func(argv []string) (string, error)
}

// New creates a console for the given engine. Command output is written
// to out.
func New(eng *engine.Engine, cfg config.Config, out io.Writer) *Console {
	return &Console{
		eng: eng,
		cfg: cfg,
		out: out,
		execCommand: func(argv []string) (string, error) {
			out, err := exec.Command(argv[0], argv[1:]...).Output()
			return string(out), err
		},
	}
}

// Run reads command lines from r until EOF or a quit command. Command
// errors are reported to the output writer and do not end the session -
// they abort only the current command.
func (c *Console) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(c.out, Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		if err := c.Dispatch(scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

// Dispatch tokenizes and executes a single command line. Empty lines are
// ignored.
func (c *Console) Dispatch(line string) error {
	args, err := Tokenize(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "set-log-destination":
		return c.setLogDestination(rest)
	case "add-tracepoint":
		return c.addTracepoint(rest)
	case "remove-tracepoint":
		return c.removeTracepoint(rest)
	case "list-tracepoints":
		return c.listTracepoints(rest)
	case "export-tracepoints":
		return c.exportTracepoints(rest)
	case "import-tracepoints":
		return c.importTracepoints(rest)
	case "test-tracepoint":
		return c.testTracepoint(rest)
	case "thread-name":
		return c.threadName(rest)
	case "locspec":
		return c.locSpec(rest)
	case "backtrace":
		return c.backtrace(rest)
	case "format-time":
		return c.formatTime(rest)
	case "exec":
		return c.execChild(rest)
	case "fire":
		return c.fire(rest)
	case "set-var":
		return c.setVar(rest)
	case "help":
		return c.help(rest)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
}
