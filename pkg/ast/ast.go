package ast

import "tova/pkg/diag"

// Node is implemented by every syntax node handed to the resolution phase.
type Node interface {
	Pos() diag.Position
}

// TypeRef is a source reference to a type by name. The type it denotes is
// computed by the upstream annotation pass and looked up in the binding
// store, never recomputed here.
type TypeRef struct {
	Position diag.Position
	Name     string
}

func (t *TypeRef) Pos() diag.Position { return t.Position }

// ModifierKind enumerates the declaration modifiers this phase inspects.
type ModifierKind int

const (
	ModAbstract ModifierKind = iota
	ModOpen
	ModOverride
	ModSealed
)

func (k ModifierKind) String() string {
	switch k {
	case ModAbstract:
		return "abstract"
	case ModOpen:
		return "open"
	case ModOverride:
		return "override"
	case ModSealed:
		return "sealed"
	default:
		return "modifier(?)"
	}
}

// Modifier is one keyword in a modifier list, with its own position so
// diagnostics can point at the keyword itself.
type Modifier struct {
	Kind     ModifierKind
	Position diag.Position
}

// ModifierList is the ordered modifier set of a declaration.
type ModifierList []Modifier

// Find returns the modifier of the given kind, or nil.
func (l ModifierList) Find(kind ModifierKind) *Modifier {
	for i := range l {
		if l[i].Kind == kind {
			return &l[i]
		}
	}
	return nil
}

func (l ModifierList) Has(kind ModifierKind) bool {
	return l.Find(kind) != nil
}
