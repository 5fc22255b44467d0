package engine

import (
	"github.com/dlogdev/dlog/internal/host"
)

// Tracepoint is an instrumentation point bound to a code location. When
// the debuggee reaches it, a fixed ordered set of expressions is
// evaluated in the stopped frame, the results are substituted into the
// message template, and the line is written to the log sink. Execution
// always resumes: a tracepoint never halts the debuggee.
//
// The binding handle is not owned exclusively by the tracepoint - the
// host may destroy the binding out-of-band at any time. The registry
// tolerates that loss (see Registry.List).
type Tracepoint struct {
	location string
	template string
	exprs    []string
	handle   host.Handle
}

// Location returns the opaque location spec the tracepoint is bound to.
func (tp *Tracepoint) Location() string { return tp.location }

// Template returns the message template.
func (tp *Tracepoint) Template() string { return tp.template }

// Expressions returns the ordered expression list. The returned slice is
// a copy; tracepoints are immutable after creation.
func (tp *Tracepoint) Expressions() []string {
	return append([]string(nil), tp.exprs...)
}

// Handle returns the host binding handle. Exposed for liveness checks
// and out-of-band destruction in tests.
func (tp *Tracepoint) Handle() host.Handle { return tp.handle }

// newTracepoint validates the template arity against the expression list
// and returns an unbound tracepoint. The arity invariant
// CountPlaceholders(template) == len(exprs) is enforced here, exactly
// once; it cannot be violated later because tracepoints are immutable.
func newTracepoint(location, template string, exprs []string) (*Tracepoint, error) {
	placeholders := CountPlaceholders(template)
	if placeholders != len(exprs) {
		return nil, NewArityError(location, placeholders, len(exprs))
	}
	return &Tracepoint{
		location: location,
		template: template,
		exprs:    append([]string(nil), exprs...),
	}, nil
}
