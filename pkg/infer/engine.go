package infer

import (
	"tova/pkg/ast"
	"tova/pkg/binding"
	"tova/pkg/symbols"
	"tova/pkg/types"
)

// Engine is the type-inference and call-resolution service body resolution
// delegates expression work to. It is synchronous and may recurse into
// nested expressions, but never re-enters the resolution phase.
//
// Every method that types expressions takes the Recorder bindings are
// committed through, so observer layers see the binding stream; and returns
// types.Error ("unknown") after it has reported a failure itself, letting
// dependent checks skip silently.
type Engine interface {
	// TypeOf resolves an expression in a scope and returns its type, or
	// types.Error after reporting. The expected type is a hint; nil means
	// no expectation.
	TypeOf(rec binding.Recorder, scope *symbols.Scope, expr ast.Expr, expected types.Type) types.Type

	// CheckReturnType resolves the body of a declaration and checks it
	// against the expected (declared) type.
	CheckReturnType(rec binding.Recorder, scope *symbols.Scope, decl ast.DeclarationWithBody, expected types.Type)

	// ResolveCall resolves a constructor delegation call and returns the
	// constructed type, or types.Error when resolution failed (already
	// reported).
	ResolveCall(rec binding.Recorder, scope *symbols.Scope, call ast.ConstructorCall, expected types.Type) types.Type

	// IsSubtypeOf reports whether a is a subtype of b. Unknown types are
	// subtypes of everything, so failed sub-resolutions do not cascade.
	IsSubtypeOf(a, b types.Type) bool

	// IsOverridableBy checks whether declared may override candidate,
	// returning nil on success and a reason otherwise.
	IsOverridableBy(candidate, declared *symbols.FunctionDescriptor) error
}
