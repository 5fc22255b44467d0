package console

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dlogdev/dlog/internal/host"
	"github.com/dlogdev/dlog/internal/persist"
)

// setLogDestination reports the current sink destination when called
// without an argument, otherwise switches it.
func (c *Console) setLogDestination(args []string) error {
	switch len(args) {
	case 0:
		fmt.Fprintf(c.out, "Log destination is %s\n", c.eng.Sink().Destination())
		return nil
	case 1:
		if err := c.eng.Sink().Set(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Log destination set to %s\n", args[0])
		return nil
	default:
		return fmt.Errorf("usage: set-log-destination [path|stdout|none]")
	}
}

func (c *Console) addTracepoint(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: add-tracepoint <location> <template> [expression...]")
	}
	tp, err := c.eng.AddTracepoint(args[0], args[1], args[2:])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Tracepoint added at %s\n", tp.Location())
	return nil
}

// removeTracepoint removes all tracepoints when called without an
// argument, otherwise the one at the given registry index.
func (c *Console) removeTracepoint(args []string) error {
	switch len(args) {
	case 0:
		c.eng.RemoveAll()
		fmt.Fprintln(c.out, "All tracepoints removed")
		return nil
	case 1:
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be an integer, got %q", args[0])
		}
		if err := c.eng.RemoveAt(index); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Tracepoint %d removed\n", index)
		return nil
	default:
		return fmt.Errorf("usage: remove-tracepoint [index]")
	}
}

func (c *Console) listTracepoints(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("list-tracepoints takes no arguments")
	}
	entries := c.eng.Registry().List()
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No tracepoints defined")
		return nil
	}
	w := tabwriter.NewWriter(c.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUM\tLOCATION\tTEMPLATE")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.Index, e.Location, e.Template)
	}
	return w.Flush()
}

func (c *Console) exportTracepoints(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: export-tracepoints <path>")
	}
	count := len(c.eng.Registry().Live())
	if err := persist.Export(args[0], c.eng.Registry()); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Exported %d tracepoint(s) to %s\n", count, args[0])
	return nil
}

// importTracepoints imports definitions in one of two modes: with a
// single path argument it replays an exported definitions file; with a
// template (and optional expressions) following the path it scans the
// file for location-declaration lines and reuses the shared template for
// each of them.
func (c *Console) importTracepoints(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: import-tracepoints <path> [template [expression...]]")
	}
	var created int
	var err error
	if len(args) == 1 {
		created, err = persist.Import(args[0], c.eng)
	} else {
		created, err = persist.ImportShared(args[0], c.cfg.ImportPrefix, args[1], args[2:], c.eng)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Imported %d tracepoint(s) from %s\n", created, args[0])
	return nil
}

// testTracepoint formats a line against the current frame without
// creating a tracepoint. The line is printed regardless of the sink
// destination, and also appended when the sink is a file.
func (c *Console) testTracepoint(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: test-tracepoint <template> [expression...]")
	}
	line, err := c.eng.TestLine(args[0], args[1:])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, line)
	if c.eng.Sink().IsFile() {
		return c.eng.Sink().Write(line)
	}
	return nil
}

func (c *Console) threadName(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("thread-name takes no arguments")
	}
	ctx, err := c.eng.Host().CurrentContext()
	if err != nil {
		return err
	}
	name, err := c.eng.Host().ThreadName(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, name)
	return nil
}

func (c *Console) locSpec(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("locspec takes no arguments")
	}
	ctx, err := c.eng.Host().CurrentContext()
	if err != nil {
		return err
	}
	loc, err := c.eng.Host().LocSpec(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, loc)
	return nil
}

// backtrace prints the simplified call stack as a semicolon-joined list,
// innermost frame first.
func (c *Console) backtrace(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("backtrace takes no arguments")
	}
	ctx, err := c.eng.Host().CurrentContext()
	if err != nil {
		return err
	}
	frames, err := c.eng.Host().Backtrace(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, strings.Join(frames, ";")+";")
	return nil
}

// formatTime prints the current wall-clock time using a Go reference
// layout.
func (c *Console) formatTime(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: format-time <layout>")
	}
	fmt.Fprintln(c.out, time.Now().Format(args[0]))
	return nil
}

// execChild runs a command in a child process and prints its captured
// output.
func (c *Console) execChild(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: exec <command> [arg...]")
	}
	out, err := c.execCommand(args)
	if err != nil {
		return fmt.Errorf("exec %q: %w", args[0], err)
	}
	fmt.Fprint(c.out, out)
	return nil
}

// fire simulates the debuggee reaching a location. Only available when
// the session runs against the built-in scripted host.
func (c *Console) fire(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: fire <location>")
	}
	sim, ok := c.eng.Host().(*host.ScriptedHost)
	if !ok {
		return fmt.Errorf("host does not support simulated hits")
	}
	signals := sim.Fire(args[0])
	fmt.Fprintf(c.out, "%d hit(s) dispatched at %s\n", len(signals), args[0])
	return nil
}

// setVar scripts an expression value for a location on the built-in
// scripted host.
func (c *Console) setVar(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: set-var <location> <expression> <value>")
	}
	sim, ok := c.eng.Host().(*host.ScriptedHost)
	if !ok {
		return fmt.Errorf("host does not support scripted variables")
	}
	sim.SetVar(args[0], args[1], args[2])
	sim.SelectFrame(args[0])
	return nil
}

func (c *Console) help(args []string) error {
	fmt.Fprint(c.out, `Commands:
  set-log-destination [path|stdout|none]   print or set the log destination
  add-tracepoint <location> <template> [expression...]
  remove-tracepoint [index]                remove one tracepoint, or all
  list-tracepoints                         print the tracepoint table
  export-tracepoints <path>                append definitions to a file
  import-tracepoints <path> [template [expression...]]
  test-tracepoint <template> [expression...]
  thread-name | locspec | backtrace        inspect the current frame
  format-time <layout>                     print the current time
  exec <command> [arg...]                  run a child process
  fire <location>                          simulate a hit (scripted host)
  set-var <location> <expression> <value>  script a value (scripted host)
  quit
`)
	return nil
}
