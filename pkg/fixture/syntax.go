package fixture

import (
	"tova/pkg/ast"
	"tova/pkg/diag"
	"tova/pkg/symbols"
)

// The parser produces syntax shapes rather than descriptors: parameter lists
// and return type references live here because the AST consumed by body
// resolution only carries what that phase reads. The loader turns these
// shapes into the descriptor graph.

type paramSyntax struct {
	name     string
	typeRef  *ast.TypeRef
	promoted bool
	mutable  bool
	pos      diag.Position
}

type funcSyntax struct {
	decl      *ast.FuncDecl
	params    []paramSyntax
	returnRef *ast.TypeRef
}

type propSyntax struct {
	decl *ast.PropertyDecl
	// setterParam is the declared name of the setter's value parameter.
	setterParam string
}

type ctorSyntax struct {
	decl   *ast.ConstructorDecl
	params []paramSyntax
}

type classSyntax struct {
	decl     *ast.ClassDecl
	kind     symbols.ClassKind
	modality symbols.Modality
	// hasParams distinguishes `class C()` (a primary constructor with no
	// parameters) from `class C` (no primary constructor at all).
	hasParams bool
	params    []paramSyntax

	funcs   []*funcSyntax
	props   []*propSyntax
	ctors   []*ctorSyntax
	entries []*classSyntax
}

type fileSyntax struct {
	classes []*classSyntax
	funcs   []*funcSyntax
	props   []*propSyntax
}
