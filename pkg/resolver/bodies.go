package resolver

import (
	"fmt"

	"tova/pkg/ast"
	"tova/pkg/binding"
	"tova/pkg/symbols"
	"tova/pkg/types"
)

func (r *Resolver) resolveAnonymousInitializers() {
	for _, class := range r.registry.Classes() {
		r.resolveAnonymousInitializersOf(class)
	}
}

func (r *Resolver) resolveAnonymousInitializersOf(class *symbols.ClassDescriptor) {
	decl := class.Decl
	if decl == nil || len(decl.Initializers) == 0 {
		return
	}
	if class.Primary == nil {
		for _, init := range decl.Initializers {
			r.sink.Error(init.Pos(), "anonymous initializers are only allowed in the presence of a primary constructor")
		}
		return
	}
	scope := r.constructorScope(class.Primary, class.MemberScope, true)
	for _, init := range decl.Initializers {
		r.engine.TypeOf(r.ctorTrace, scope, init.Body, nil)
	}
}

func (r *Resolver) resolveSecondaryConstructorBodies() {
	for _, ctor := range r.registry.SecondaryConstructors() {
		r.resolveSecondaryConstructorBody(ctor, ctor.Containing.MemberScope)
	}
}

func (r *Resolver) resolveSecondaryConstructorBody(ctor *symbols.ConstructorDescriptor, declaringScope *symbols.Scope) {
	decl := ctor.Decl
	innerScope := r.constructorScope(ctor, declaringScope, false)

	if ctor.Containing.Primary == nil {
		r.sink.Error(decl.NamePos(), "a secondary constructor may appear only in a class that has a primary constructor")
	} else if len(decl.Initializers) == 0 {
		r.sink.Error(decl.NamePos(), "secondary constructors must have an initializer list")
	} else {
		switch first := decl.Initializers[0].(type) {
		case *ast.SuperConstructorCall:
			r.engine.ResolveCall(r.ctorTrace, innerScope, first, nil)
		case *ast.ThisConstructorCall:
			// No cycle detection on this(...) chains.
			r.engine.ResolveCall(r.ctorTrace, innerScope, first, nil)
		case *ast.DelegateByExpr:
			r.sink.Error(first.Pos(), "'by' is only supported for primary constructors")
		case *ast.SuperType:
			r.sink.Error(first.Pos(), "constructor parameters required")
		default:
			panic(fmt.Sprintf("unknown delegation specifier %T", first))
		}
		for _, extra := range decl.Initializers[1:] {
			r.sink.Error(extra.Pos(), "only one call to this(...) is allowed")
		}
	}

	if decl.Body != nil {
		r.engine.CheckReturnType(r.ctorTrace, innerScope, decl, types.Unit)
	}
}

func (r *Resolver) resolvePropertyDeclarationBodies() {
	processed := make(map[*symbols.PropertyDescriptor]bool)

	// Member properties first: their initializers run in the primary
	// constructor's scope. Object-scoped properties are not members in this
	// sense; they resolve in their declaring scope with the non-member
	// properties below.
	for _, class := range r.registry.Classes() {
		if class.Kind == symbols.KindObject {
			continue
		}
		for _, prop := range class.Properties {
			if prop.Decl == nil {
				// Promoted constructor parameters have no property body.
				continue
			}
			if prop.Decl.Initializer != nil && class.Primary != nil {
				scope := r.constructorScope(class.Primary, class.MemberScope, true)
				r.resolvePropertyInitializer(prop, prop.Decl.Initializer, scope)
			}
			r.resolvePropertyAccessors(prop, prop.DeclaringScope)
			r.checkProperty(prop, class)
			processed[prop] = true
		}
	}

	// Top-level properties and properties of objects.
	for _, prop := range r.registry.Properties() {
		if processed[prop] || prop.Decl == nil {
			continue
		}
		if prop.Decl.Initializer != nil {
			r.resolvePropertyInitializer(prop, prop.Decl.Initializer, prop.DeclaringScope)
		}
		r.resolvePropertyAccessors(prop, prop.DeclaringScope)
		r.checkProperty(prop, nil)
	}
}

func (r *Resolver) resolvePropertyInitializer(prop *symbols.PropertyDescriptor, initializer ast.Expr, scope *symbols.Scope) {
	t := r.engine.TypeOf(r.ctorTrace, r.propertyDeclarationScope(scope, prop), initializer, nil)
	expected := prop.ExpectedType()
	if t != nil && expected != nil && !types.IsError(t) && !types.IsError(expected) && !r.engine.IsSubtypeOf(t, expected) {
		r.sink.TypeMismatch(initializer.Pos(), expected, t)
	}
}

func (r *Resolver) resolvePropertyAccessors(prop *symbols.PropertyDescriptor, declaringScope *symbols.Scope) {
	fieldTrace := r.fieldAccessTrace(prop)
	scope := r.accessorScope(declaringScope, prop)

	decl := prop.Decl
	if decl.Getter != nil && prop.Getter != nil {
		r.resolveFunctionBody(fieldTrace, decl.Getter, prop.Getter, scope)
	}
	if decl.Setter != nil && prop.Setter != nil {
		r.resolveFunctionBody(fieldTrace, decl.Setter, prop.Setter, scope)
	}
}

func (r *Resolver) resolveFunctionBodies() {
	for _, fn := range r.registry.Functions() {
		scope := fn.DeclaringScope
		if scope == nil {
			scope = r.registry.FileScope()
		}
		r.resolveFunctionBody(r.memberTrace, fn.Decl, fn, scope)
	}
}

func (r *Resolver) resolveFunctionBody(rec binding.Recorder, decl ast.DeclarationWithBody, fn *symbols.FunctionDescriptor, declaringScope *symbols.Scope) {
	if decl.BodyExpr() != nil {
		bodyScope := symbols.NewScope(declaringScope, "body of "+fn.Name)
		for _, param := range fn.Params {
			bodyScope.Bind(param)
		}
		if fn.Containing != nil && bodyScope.ThisType() == nil {
			bodyScope.SetThisType(fn.Containing.DefaultType())
		}
		r.engine.CheckReturnType(rec, bodyScope, decl, fn.ReturnType)
	}
	r.checkFunctionDecl(decl, fn)
}
