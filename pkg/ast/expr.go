package ast

import "tova/pkg/diag"

// Expr is the (deliberately small) expression surface this phase needs to
// hand to the type-inference engine: enough to write initializers, accessor
// and constructor bodies, and delegate expressions.
type Expr interface {
	Node
	exprNode()
}

// Ident is a plain name reference.
type Ident struct {
	Position diag.Position
	Name     string
}

func (e *Ident) Pos() diag.Position { return e.Position }
func (e *Ident) exprNode()          {}

// FieldRef is a reference to a property through its synthetic backing-field
// form ($name). Name holds the property name without the marker.
type FieldRef struct {
	Position diag.Position
	Name     string
}

func (e *FieldRef) Pos() diag.Position { return e.Position }
func (e *FieldRef) exprNode()          {}

// This is a reference to the receiver of the enclosing scope.
type This struct {
	Position diag.Position
}

func (e *This) Pos() diag.Position { return e.Position }
func (e *This) exprNode()          {}

// IntLit is an integer literal.
type IntLit struct {
	Position diag.Position
	Value    int64
}

func (e *IntLit) Pos() diag.Position { return e.Position }
func (e *IntLit) exprNode()          {}

// StringLit is a string literal.
type StringLit struct {
	Position diag.Position
	Value    string
}

func (e *StringLit) Pos() diag.Position { return e.Position }
func (e *StringLit) exprNode()          {}

// BoolLit is a boolean literal.
type BoolLit struct {
	Position diag.Position
	Value    bool
}

func (e *BoolLit) Pos() diag.Position { return e.Position }
func (e *BoolLit) exprNode()          {}

// Assign is an assignment; the target must be an Ident or a FieldRef.
type Assign struct {
	Position diag.Position
	Target   Expr
	Value    Expr
}

func (e *Assign) Pos() diag.Position { return e.Position }
func (e *Assign) exprNode()          {}

// Call is an invocation of a named callee: a function, or a class name used
// as a constructor invocation.
type Call struct {
	Position diag.Position
	Callee   *Ident
	Args     []Expr
}

func (e *Call) Pos() diag.Position { return e.Position }
func (e *Call) exprNode()          {}

// Block is a sequence of expression statements; its value is Unit.
type Block struct {
	Position diag.Position
	Stmts    []Expr
}

func (e *Block) Pos() diag.Position { return e.Position }
func (e *Block) exprNode()          {}
