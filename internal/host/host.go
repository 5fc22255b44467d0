package host

// Handle identifies a live location binding owned by the host debugger.
// The zero value is never issued by a Binder.
type Handle string

// NoHandle is the zero Handle, returned alongside bind errors.
const NoHandle Handle = ""

// Signal tells the host what to do with the stopped thread after a hit
// callback returns.
type Signal int

const (
	// Continue resumes the debuggee without halting. Tracepoints always
	// return Continue - this is what distinguishes them from breakpoints.
	Continue Signal = iota

	// Halt stops the debuggee at the location. Defined for completeness of
	// the callback contract; the tracepoint engine never returns it.
	Halt
)

// Context is the execution context of a thread stopped at a bound location.
// It is opaque to the engine and only meaningful to the host that produced
// it. A Context is valid only for the duration of the hit callback.
type Context interface {
	// Location returns the location spec the context is stopped at.
	Location() string
}

// HitFunc is invoked by the host when the debuggee reaches a bound
// location. The host guarantees serialized delivery on a single control
// thread, so implementations need no locking.
type HitFunc func(ctx Context) Signal

// Binder creates and destroys location bindings in the host debugger.
//
// Every call is fallible. A binding may also be destroyed out-of-band by
// the host (unrelated cleanup, shared library unload), which is why
// IsBound exists: callers holding a Handle must treat it as advisory and
// tolerate the binding disappearing at any time.
type Binder interface {
	// Bind installs a never-halting binding at spec and registers onHit as
	// its hit callback.
	Bind(spec string, onHit HitFunc) (Handle, error)

	// Destroy removes a binding. Destroying an already-dead handle is a
	// no-op.
	Destroy(h Handle)

	// IsBound reports whether the handle still refers to a live binding.
	IsBound(h Handle) bool
}

// Evaluator evaluates a source-language expression in an execution
// context and renders the result as a string.
type Evaluator interface {
	Evaluate(expr string, ctx Context) (string, error)
}

// Inspector exposes the read-only frame and thread introspection used by
// the utility commands. These are thin one-shot queries with no state.
type Inspector interface {
	// CurrentContext returns the context of the currently selected frame,
	// or an error when no debuggee is stopped.
	CurrentContext() (Context, error)

	// LocSpec returns the simplified location of a context's frame:
	// "file.c:42", or a hex address when no symbol is available.
	LocSpec(ctx Context) (string, error)

	// Backtrace returns the simplified locations of every frame in the
	// context's call stack, innermost first.
	Backtrace(ctx Context) ([]string, error)

	// ThreadName returns the stopped thread's display name, falling back
	// to its numeric id when no name is set.
	ThreadName(ctx Context) (string, error)
}

// Host aggregates every collaborator the engine consumes from the
// debugger. Implementations must treat each call as independently
// fallible.
type Host interface {
	Binder
	Evaluator
	Inspector
}
