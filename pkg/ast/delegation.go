package ast

import "tova/pkg/diag"

// DelegationSpecifier is one clause describing how a supertype (or, in a
// secondary constructor's initializer list, a delegation target) is
// initialized. The variant set is closed: resolution dispatches on it with
// an exhaustive type switch whose default arm panics, so an unhandled
// variant cannot be silently ignored.
type DelegationSpecifier interface {
	Node
	delegationSpecifier()
}

// DelegateByExpr delegates the supertype's implementation to an expression:
// `Type by expr`.
type DelegateByExpr struct {
	Position diag.Position
	Type     *TypeRef
	Expr     Expr // nil when the delegate expression is missing
}

func (s *DelegateByExpr) Pos() diag.Position    { return s.Position }
func (s *DelegateByExpr) delegationSpecifier() {}

// SuperConstructorCall initializes a supertype through one of its
// constructors: `Type(args)`.
type SuperConstructorCall struct {
	Position diag.Position
	Type     *TypeRef
	Args     []Expr
	// ArgsPosition points at the argument list; diagnostics about the call
	// attach there when available.
	ArgsPosition diag.Position
}

func (s *SuperConstructorCall) Pos() diag.Position   { return s.Position }
func (s *SuperConstructorCall) delegationSpecifier() {}
func (s *SuperConstructorCall) CallArgs() []Expr     { return s.Args }

// CallPos returns the argument-list position, falling back to the specifier
// position when no argument list was recorded.
func (s *SuperConstructorCall) CallPos() diag.Position {
	if !s.ArgsPosition.IsZero() {
		return s.ArgsPosition
	}
	return s.Position
}

// SuperType names a supertype without initializing it: `Type`.
type SuperType struct {
	Position diag.Position
	Type     *TypeRef
}

func (s *SuperType) Pos() diag.Position    { return s.Position }
func (s *SuperType) delegationSpecifier() {}

// ThisConstructorCall delegates to a sibling constructor: `this(args)`.
// It is legal only as the first entry of a secondary constructor's
// initializer list; correct upstream parsing never produces it in a class's
// supertype list.
type ThisConstructorCall struct {
	Position diag.Position
	Args     []Expr
}

func (s *ThisConstructorCall) Pos() diag.Position   { return s.Position }
func (s *ThisConstructorCall) delegationSpecifier() {}
func (s *ThisConstructorCall) CallArgs() []Expr     { return s.Args }

// ConstructorCall is the subset of delegation specifiers that resolve
// through constructor call resolution: super-constructor calls and
// this-constructor calls.
type ConstructorCall interface {
	DelegationSpecifier
	CallArgs() []Expr
}
