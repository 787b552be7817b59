package ast

import "tova/pkg/diag"

// DeclarationWithBody is a declaration whose body is resolved by this phase:
// named functions, property accessors, and secondary constructors.
type DeclarationWithBody interface {
	Node
	// DeclaredName is the name used in diagnostics ("foo", "get", "set").
	DeclaredName() string
	// BodyExpr returns the body, or nil when the declaration has none.
	BodyExpr() Expr
	// Modifiers returns the declaration's modifier list.
	Modifiers() ModifierList
	// NamePos is the position of the name (or name placeholder).
	NamePos() diag.Position
}

// ClassDecl is the syntax of a class-like declaration: class, trait, object,
// enum, or enum entry. Kind and member structure live on the descriptor the
// upstream header pass built; the syntax node carries what only this phase
// reads: specifiers, initializer blocks, modifiers, positions.
type ClassDecl struct {
	Position     diag.Position
	NamePosition diag.Position
	Name         string
	Mods         ModifierList
	Specifiers   []DelegationSpecifier
	Initializers []*InitializerBlock
}

func (d *ClassDecl) Pos() diag.Position { return d.Position }

// InitializerBlock is an anonymous initializer inside a class body.
type InitializerBlock struct {
	Position diag.Position
	Body     Expr
}

func (d *InitializerBlock) Pos() diag.Position { return d.Position }

// FuncDecl is a named function declaration.
type FuncDecl struct {
	Position     diag.Position
	NamePosition diag.Position
	Name         string
	Mods         ModifierList
	Body         Expr // nil when the function has no body
}

func (d *FuncDecl) Pos() diag.Position      { return d.Position }
func (d *FuncDecl) DeclaredName() string    { return d.Name }
func (d *FuncDecl) BodyExpr() Expr          { return d.Body }
func (d *FuncDecl) Modifiers() ModifierList { return d.Mods }
func (d *FuncDecl) NamePos() diag.Position  { return d.NamePosition }

// AccessorKind distinguishes property getters from setters.
type AccessorKind int

const (
	Getter AccessorKind = iota
	Setter
)

func (k AccessorKind) String() string {
	if k == Setter {
		return "set"
	}
	return "get"
}

// AccessorDecl is a property getter or setter declaration.
type AccessorDecl struct {
	Position diag.Position
	Kind     AccessorKind
	Mods     ModifierList
	Body     Expr // nil for declared-only accessors
}

func (d *AccessorDecl) Pos() diag.Position      { return d.Position }
func (d *AccessorDecl) DeclaredName() string    { return d.Kind.String() }
func (d *AccessorDecl) BodyExpr() Expr          { return d.Body }
func (d *AccessorDecl) Modifiers() ModifierList { return d.Mods }
func (d *AccessorDecl) NamePos() diag.Position  { return d.Position }

// PropertyDecl is a property declaration (val/var), member or top-level.
type PropertyDecl struct {
	Position     diag.Position
	NamePosition diag.Position
	Name         string
	Mods         ModifierList
	Mutable      bool
	Type         *TypeRef // nil when the declared type is inferred upstream
	Initializer  Expr     // nil when absent
	Getter       *AccessorDecl
	Setter       *AccessorDecl
}

func (d *PropertyDecl) Pos() diag.Position { return d.Position }

// ConstructorDecl is a secondary constructor declaration.
type ConstructorDecl struct {
	Position     diag.Position
	NamePosition diag.Position
	Mods         ModifierList
	Initializers []DelegationSpecifier
	Body         Expr // nil when absent
}

func (d *ConstructorDecl) Pos() diag.Position      { return d.Position }
func (d *ConstructorDecl) DeclaredName() string    { return "constructor" }
func (d *ConstructorDecl) BodyExpr() Expr          { return d.Body }
func (d *ConstructorDecl) Modifiers() ModifierList { return d.Mods }
func (d *ConstructorDecl) NamePos() diag.Position  { return d.NamePosition }
