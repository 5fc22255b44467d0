package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/dlogdev/dlog/internal/host"
	"github.com/dlogdev/dlog/internal/journal"
	"github.com/dlogdev/dlog/internal/sink"
)

// Engine is the tracepoint engine for one debug session.
//
// It owns the registry and the hit pipeline: when the host dispatches a
// hit, the engine evaluates the tracepoint's expressions in the stopped
// frame, formats the message, writes it to the sink, journals it, and
// signals the host to continue. The continue signal is unconditional -
// no failure inside the pipeline may halt the debuggee.
//
// Concurrency model: the engine owns no goroutine. The host guarantees
// hits are delivered one at a time on a single control thread, and
// registry/persistence commands run on that same thread, so the engine
// performs no locking.
type Engine struct {
	host     host.Host
	sink     *sink.Sink
	registry *Registry
	clock    *Clock
	journal  *journal.Journal
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithJournal attaches a hit journal. Every emitted hit is recorded in
// it, regardless of the sink destination.
func WithJournal(j *journal.Journal) Option {
	return func(e *Engine) {
		e.journal = j
	}
}

// WithClock replaces the hit clock, e.g. to resume seq numbering on an
// existing journal.
func WithClock(c *Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// New creates an engine for the given host and log sink. The sink is an
// explicit constructor parameter rather than ambient state: it is
// created once at startup, mutated only through its Set operation, and
// read at every hit.
func New(h host.Host, s *sink.Sink, opts ...Option) *Engine {
	e := &Engine{
		host:     h,
		sink:     s,
		registry: NewRegistry(h),
		clock:    NewClock(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Registry returns the engine's tracepoint registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Sink returns the engine's log sink.
func (e *Engine) Sink() *sink.Sink { return e.sink }

// Clock returns the engine's logical hit clock.
func (e *Engine) Clock() *Clock { return e.clock }

// Host returns the host collaborators the engine was built with.
func (e *Engine) Host() host.Host { return e.host }

// AddTracepoint validates, binds, and registers a new tracepoint.
//
// Validation checks the arity invariant: the template's placeholder
// count must equal the expression count exactly. On mismatch no
// tracepoint is produced and nothing is bound. On success the host
// binding is configured to never halt and the tracepoint is appended to
// the registry.
func (e *Engine) AddTracepoint(location, template string, exprs []string) (*Tracepoint, error) {
	tp, err := newTracepoint(location, template, exprs)
	if err != nil {
		return nil, err
	}

	handle, err := e.host.Bind(location, func(ctx host.Context) host.Signal {
		return e.hit(tp, ctx)
	})
	if err != nil {
		return nil, &Error{
			Code:     ErrCodeBind,
			Message:  "host refused binding",
			Location: location,
			Err:      err,
		}
	}
	tp.handle = handle
	e.registry.Add(tp)

	slog.Debug("tracepoint added",
		"location", location,
		"template", template,
		"expressions", len(exprs),
	)

	return tp, nil
}

// RemoveAt destroys the binding of the registry entry at index and
// removes its slot.
func (e *Engine) RemoveAt(index int) error {
	return e.registry.RemoveAt(index)
}

// RemoveAll destroys every live binding and empties the registry.
func (e *Engine) RemoveAll() {
	e.registry.RemoveAll()
}

// hit is the pipeline run for every delivered hit.
//
// Expressions are evaluated independently: one failure does not stop the
// remaining evaluations. If any failed, the line is dropped for this hit
// and nothing is written. Either way the debuggee is resumed - hit never
// propagates an error to the host dispatcher.
func (e *Engine) hit(tp *Tracepoint, ctx host.Context) host.Signal {
	results := make([]string, 0, len(tp.exprs))
	failed := false
	for _, expr := range tp.exprs {
		value, err := e.host.Evaluate(expr, ctx)
		if err != nil {
			slog.Warn("expression evaluation failed, dropping hit line",
				"location", tp.location,
				"expression", expr,
				"error", err,
			)
			failed = true
			continue
		}
		results = append(results, value)
	}
	if failed {
		return host.Continue
	}

	line := FormatMessage(tp.template, results)
	seq := e.clock.Next()

	if e.sink.Enabled() {
		if err := e.sink.Write(line); err != nil {
			slog.Error("sink write failed",
				"location", tp.location,
				"seq", seq,
				"error", err,
			)
		}
	}

	if e.journal != nil {
		hit := journal.Hit{
			Seq:      seq,
			LoggedAt: time.Now(),
			Location: tp.location,
			Line:     line,
		}
		if err := e.journal.WriteHit(context.Background(), hit); err != nil {
			slog.Error("journal write failed",
				"location", tp.location,
				"seq", seq,
				"error", err,
			)
		}
	}

	return host.Continue
}

// TestLine formats a message against the currently selected frame
// without creating a tracepoint. Unlike the hit pipeline, evaluation
// failures are returned to the caller: this is a user command, not a hit
// callback, so there is no continue guarantee to protect.
func (e *Engine) TestLine(template string, exprs []string) (string, error) {
	placeholders := CountPlaceholders(template)
	if placeholders != len(exprs) {
		return "", NewArityError("", placeholders, len(exprs))
	}

	ctx, err := e.host.CurrentContext()
	if err != nil {
		return "", &Error{Code: ErrCodeEvaluation, Message: "no current context", Err: err}
	}

	results := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		value, evalErr := e.host.Evaluate(expr, ctx)
		if evalErr != nil {
			return "", &Error{
				Code:    ErrCodeEvaluation,
				Message: "expression evaluation failed",
				Err:     evalErr,
			}
		}
		results = append(results, value)
	}

	return FormatMessage(template, results), nil
}
