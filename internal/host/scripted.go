package host

import (
	"fmt"

	"github.com/google/uuid"
)

// ScriptedHost is an in-process Host implementation driven by scripted
// frame state instead of a live debugger. It backs the test suites, the
// scenario harness, and the built-in simulation commands of the console.
//
// A scripted "hit" is triggered with Fire: every binding installed at the
// fired location receives a context carrying the variable values scripted
// for that location.
//
// Thread-safety: ScriptedHost assumes the serialized single-control-thread
// model the engine is specified against and performs no locking.
type ScriptedHost struct {
	bindings map[Handle]*scriptedBinding
	order    []Handle // bind order, for deterministic Fire dispatch
	vars     map[string]map[string]string
	current  string
	stack    []string
	thread   string
}

type scriptedBinding struct {
	spec  string
	onHit HitFunc
}

// scriptedContext is the Context produced by Fire and CurrentContext.
type scriptedContext struct {
	location string
	vars     map[string]string
}

// Location returns the location spec the context is stopped at.
func (c *scriptedContext) Location() string { return c.location }

// NewScriptedHost creates an empty scripted host with no bindings, no
// scripted variables, and no selected frame.
func NewScriptedHost() *ScriptedHost {
	return &ScriptedHost{
		bindings: make(map[Handle]*scriptedBinding),
		vars:     make(map[string]map[string]string),
	}
}

// Bind installs a binding at spec. Specs are opaque: any non-empty string
// is accepted, and several bindings may share one spec.
func (h *ScriptedHost) Bind(spec string, onHit HitFunc) (Handle, error) {
	if spec == "" {
		return NoHandle, &BindError{Spec: spec, Message: "empty location spec"}
	}
	if onHit == nil {
		return NoHandle, &BindError{Spec: spec, Message: "nil hit callback"}
	}
	handle := Handle(uuid.NewString())
	h.bindings[handle] = &scriptedBinding{spec: spec, onHit: onHit}
	h.order = append(h.order, handle)
	return handle, nil
}

// Destroy removes a binding. Unknown or already-destroyed handles are
// ignored, mirroring how a real host tolerates stale handles.
func (h *ScriptedHost) Destroy(handle Handle) {
	delete(h.bindings, handle)
}

// IsBound reports whether handle refers to a live binding.
func (h *ScriptedHost) IsBound(handle Handle) bool {
	_, ok := h.bindings[handle]
	return ok
}

// BoundCount returns the number of live bindings.
func (h *ScriptedHost) BoundCount() int {
	return len(h.bindings)
}

// SetVar scripts the rendered value an expression evaluates to when a
// context at location is inspected.
func (h *ScriptedHost) SetVar(location, expr, value string) {
	m, ok := h.vars[location]
	if !ok {
		m = make(map[string]string)
		h.vars[location] = m
	}
	m[expr] = value
}

// SetVars replaces the scripted expression values for location.
func (h *ScriptedHost) SetVars(location string, vars map[string]string) {
	m := make(map[string]string, len(vars))
	for k, v := range vars {
		m[k] = v
	}
	h.vars[location] = m
}

// Fire simulates the debuggee reaching location. Every live binding at
// that location receives the hit in bind order. Returns the signal each
// callback produced, in dispatch order.
func (h *ScriptedHost) Fire(location string) []Signal {
	var signals []Signal
	for _, handle := range h.order {
		b, ok := h.bindings[handle]
		if !ok || b.spec != location {
			continue
		}
		ctx := &scriptedContext{location: location, vars: h.vars[location]}
		signals = append(signals, b.onHit(ctx))
	}
	return signals
}

// Evaluate resolves expr against the scripted values of the context's
// location. Unscripted expressions fail with an EvalError, standing in
// for symbols that are not visible in the real frame.
func (h *ScriptedHost) Evaluate(expr string, ctx Context) (string, error) {
	sc, ok := ctx.(*scriptedContext)
	if !ok {
		return "", &EvalError{Expr: expr, Message: "context does not belong to this host"}
	}
	value, ok := sc.vars[expr]
	if !ok {
		return "", &EvalError{Expr: expr, Message: "no symbol in current context"}
	}
	return value, nil
}

// SelectFrame scripts the currently selected frame, as if the debuggee
// had stopped at location.
func (h *ScriptedHost) SelectFrame(location string) {
	h.current = location
}

// SetBacktrace scripts the call stack of the selected frame, innermost
// first.
func (h *ScriptedHost) SetBacktrace(stack []string) {
	h.stack = append([]string(nil), stack...)
}

// SetThreadName scripts the display name of the stopped thread.
func (h *ScriptedHost) SetThreadName(name string) {
	h.thread = name
}

// CurrentContext returns the context of the scripted selected frame.
func (h *ScriptedHost) CurrentContext() (Context, error) {
	if h.current == "" {
		return nil, fmt.Errorf("no frame selected: debuggee is not stopped")
	}
	return &scriptedContext{location: h.current, vars: h.vars[h.current]}, nil
}

// LocSpec returns the simplified location of the context's frame.
func (h *ScriptedHost) LocSpec(ctx Context) (string, error) {
	if ctx == nil {
		return "", fmt.Errorf("nil context")
	}
	return ctx.Location(), nil
}

// Backtrace returns the scripted call stack. When no stack has been
// scripted, the selected frame alone is returned.
func (h *ScriptedHost) Backtrace(ctx Context) ([]string, error) {
	if len(h.stack) > 0 {
		return append([]string(nil), h.stack...), nil
	}
	loc, err := h.LocSpec(ctx)
	if err != nil {
		return nil, err
	}
	return []string{loc}, nil
}

// ThreadName returns the scripted thread name, defaulting to the id "1"
// the way a host falls back to the lwp id for unnamed threads.
func (h *ScriptedHost) ThreadName(ctx Context) (string, error) {
	if h.thread != "" {
		return h.thread, nil
	}
	return "1", nil
}
