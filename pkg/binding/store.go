package binding

import (
	"tova/pkg/ast"
	"tova/pkg/symbols"
	"tova/pkg/types"
)

// Recorder accepts binding events as resolution discovers them: a reference
// node bound to its target, or an assignment committing through a target.
// The node is ast.Node rather than ast.Expr because constructor delegation
// calls bind too, and those are specifiers, not expressions. The engine
// writes every binding through a Recorder; observer layers (see Trace)
// watch the stream without altering it.
type Recorder interface {
	RecordReference(at ast.Node, target symbols.Declaration)
	RecordAssignment(at ast.Node, target symbols.Declaration)
}

// Store is the binding side of the descriptor graph: a map from
// declarations and expressions to resolved facts. It holds the types the
// upstream annotation pass computed for type references, the targets
// resolution binds expressions to, and the two per-property facts owned by
// body resolution. Both facts are monotonic: once true, never reset.
type Store struct {
	annotated  map[*ast.TypeRef]types.Type
	refTargets map[ast.Node]symbols.Declaration

	backingFieldRequired map[*symbols.PropertyDescriptor]bool
	observedInitialized  map[*symbols.PropertyDescriptor]bool
}

func NewStore() *Store {
	return &Store{
		annotated:            make(map[*ast.TypeRef]types.Type),
		refTargets:           make(map[ast.Node]symbols.Declaration),
		backingFieldRequired: make(map[*symbols.PropertyDescriptor]bool),
		observedInitialized:  make(map[*symbols.PropertyDescriptor]bool),
	}
}

// Annotate records the type an upstream pass computed for a type reference.
func (s *Store) Annotate(ref *ast.TypeRef, t types.Type) {
	s.annotated[ref] = t
}

// AnnotatedType returns the pre-computed type for a type reference, or nil
// when the annotation pass produced none.
func (s *Store) AnnotatedType(ref *ast.TypeRef) types.Type {
	if ref == nil {
		return nil
	}
	return s.annotated[ref]
}

func (s *Store) RecordReference(at ast.Node, target symbols.Declaration) {
	s.refTargets[at] = target
}

func (s *Store) RecordAssignment(at ast.Node, target symbols.Declaration) {
	s.refTargets[at] = target
}

// ReferenceTarget returns the declaration a node was bound to.
func (s *Store) ReferenceTarget(at ast.Node) symbols.Declaration {
	return s.refTargets[at]
}

// MarkBackingFieldRequired records that the property needs physical
// storage.
func (s *Store) MarkBackingFieldRequired(p *symbols.PropertyDescriptor) {
	s.backingFieldRequired[p] = true
}

func (s *Store) BackingFieldRequired(p *symbols.PropertyDescriptor) bool {
	return s.backingFieldRequired[p]
}

// MarkObservedInitialized records that an assignment to the property's
// backing field was seen somewhere.
func (s *Store) MarkObservedInitialized(p *symbols.PropertyDescriptor) {
	s.observedInitialized[p] = true
}

func (s *Store) ObservedInitialized(p *symbols.PropertyDescriptor) bool {
	return s.observedInitialized[p]
}
