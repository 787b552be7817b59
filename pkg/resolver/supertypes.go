package resolver

import (
	"fmt"

	"tova/pkg/ast"
	"tova/pkg/symbols"
	"tova/pkg/types"
)

// resolvedSupertype pairs an annotated supertype with the specifier's type
// reference, which carries the position for list-level diagnostics.
type resolvedSupertype struct {
	ref *ast.TypeRef
	t   types.Type
}

func (r *Resolver) resolveDelegationSpecifierLists() {
	for _, class := range r.registry.Classes() {
		r.resolveDelegationSpecifierList(class)
	}
}

func (r *Resolver) resolveDelegationSpecifierList(class *symbols.ClassDescriptor) {
	decl := class.Decl
	if decl == nil {
		return
	}
	isTrait := class.Kind == symbols.KindTrait
	if isTrait && class.Primary != nil {
		r.sink.Error(decl.NamePosition, "a trait may not have a constructor")
	}

	scope := class.MemberScope
	if class.Primary != nil {
		scope = r.constructorScope(class.Primary, class.MemberScope, true)
	}

	var resolved []resolvedSupertype
	record := func(ref *ast.TypeRef, t types.Type) {
		if t == nil || types.IsError(t) {
			return
		}
		resolved = append(resolved, resolvedSupertype{ref: ref, t: t})
	}

	for _, spec := range decl.Specifiers {
		switch s := spec.(type) {
		case *ast.DelegateByExpr:
			if isTrait {
				r.sink.Error(s.Pos(), "traits cannot use delegation")
			}
			supertype := r.bindings.AnnotatedType(s.Type)
			record(s.Type, supertype)
			if s.Expr != nil {
				t := r.engine.TypeOf(r.ctorTrace, scope, s.Expr, supertype)
				if t != nil && supertype != nil && !types.IsError(t) && !types.IsError(supertype) && !r.engine.IsSubtypeOf(t, supertype) {
					r.sink.TypeMismatch(s.Expr.Pos(), supertype, t)
				}
			}

		case *ast.SuperConstructorCall:
			if isTrait {
				r.sink.Error(s.CallPos(), "traits cannot initialize supertypes")
			}
			if class.Primary != nil {
				supertype := r.engine.ResolveCall(r.bindings, scope, s, nil)
				if !types.IsError(supertype) {
					record(s.Type, supertype)
					if super := symbols.AsClass(supertype); super != nil && super.Kind == symbols.KindTrait {
						r.sink.Error(s.CallPos(), "a trait may not have a constructor")
					}
				} else {
					record(s.Type, r.bindings.AnnotatedType(s.Type))
				}
			} else if !isTrait {
				record(s.Type, r.bindings.AnnotatedType(s.Type))
				r.sink.Error(s.CallPos(), fmt.Sprintf("class %s must have a constructor in order to initialize supertypes", class.Name))
			}

		case *ast.SuperType:
			supertype := r.bindings.AnnotatedType(s.Type)
			record(s.Type, supertype)
			if super := symbols.AsClass(supertype); super != nil && !isTrait {
				if super.Kind != symbols.KindTrait && super.HasConstructors() {
					r.sink.Error(s.Pos(), "this type has a constructor and must be initialized here")
				}
			}

		case *ast.ThisConstructorCall:
			panic("this-call specifiers in a supertype list are rejected by the parser")

		default:
			panic(fmt.Sprintf("unknown delegation specifier %T", spec))
		}
	}

	allowedFinal := map[*symbols.ClassDescriptor]bool{}
	if class.Kind == symbols.KindEnumEntry && class.ContainingEnum != nil {
		allowedFinal[class.ContainingEnum] = true
	}
	r.checkSupertypeList(class, resolved, allowedFinal)
}

// checkSupertypeList validates the aggregate set after every specifier has
// resolved: one non-trait class at most, no duplicates, and final types only
// where explicitly allowed (an enum entry extending its own enum).
func (r *Resolver) checkSupertypeList(class *symbols.ClassDescriptor, resolved []resolvedSupertype, allowedFinal map[*symbols.ClassDescriptor]bool) {
	seen := make(map[types.Type]bool)
	classAppeared := false
	var supertypes []*symbols.ClassType

	for _, entry := range resolved {
		super := symbols.AsClass(entry.t)
		if super == nil {
			r.sink.Error(entry.ref.Pos(), "only classes and traits may serve as supertypes")
		} else if super.Kind != symbols.KindTrait {
			if classAppeared {
				r.sink.Error(entry.ref.Pos(), "only one class may appear in a supertype list")
			} else {
				classAppeared = true
			}
		}

		if seen[entry.t] {
			r.sink.Error(entry.ref.Pos(), "a supertype appears twice")
		} else {
			seen[entry.t] = true
			if ct, ok := entry.t.(*symbols.ClassType); ok {
				supertypes = append(supertypes, ct)
			}
		}

		if super != nil && !super.Modality.IsOpen() && !allowedFinal[super] {
			r.sink.Error(entry.ref.Pos(), "this type is final, so it cannot be inherited from")
		}
	}

	class.Supertypes = supertypes
}
