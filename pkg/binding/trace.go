package binding

import (
	"tova/pkg/ast"
	"tova/pkg/symbols"
)

// Handler observes one binding event.
type Handler func(at ast.Node, target symbols.Declaration)

// Trace composes observer callbacks over a parent Recorder. Every event is
// committed to the parent first, then the handlers run in registration
// order; handlers are pure side-effect listeners and can neither suppress
// the event nor alter what was recorded. Traces nest: layering a Trace over
// another Trace runs the inner layer's handlers before the outer additions.
type Trace struct {
	parent       Recorder
	onReference  []Handler
	onAssignment []Handler
}

// NewTrace creates an observer layer over parent.
func NewTrace(parent Recorder) *Trace {
	return &Trace{parent: parent}
}

// OnReference registers a handler for reference events. Returns the trace
// for chaining.
func (t *Trace) OnReference(h Handler) *Trace {
	t.onReference = append(t.onReference, h)
	return t
}

// OnAssignment registers a handler for assignment events.
func (t *Trace) OnAssignment(h Handler) *Trace {
	t.onAssignment = append(t.onAssignment, h)
	return t
}

func (t *Trace) RecordReference(at ast.Node, target symbols.Declaration) {
	t.parent.RecordReference(at, target)
	for _, h := range t.onReference {
		h(at, target)
	}
}

func (t *Trace) RecordAssignment(at ast.Node, target symbols.Declaration) {
	t.parent.RecordAssignment(at, target)
	for _, h := range t.onAssignment {
		h(at, target)
	}
}
