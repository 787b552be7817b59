package resolver

import (
	"tova/pkg/ast"
	"tova/pkg/symbols"
)

// bindOverrides wires every member function to the supertype functions it
// overrides. This runs before supertype lists are resolved, so the
// supertypes are read straight from the annotated specifier types rather
// than from the committed supertype set.
func (r *Resolver) bindOverrides() {
	for _, class := range r.registry.Classes() {
		r.bindOverridesInClass(class)
	}
}

func (r *Resolver) bindOverridesInClass(class *symbols.ClassDescriptor) {
	supertypes := r.declaredSupertypes(class)
	for _, fn := range class.Functions {
		for _, super := range supertypes {
			if overridden := r.findOverridden(fn, super); overridden != nil {
				fn.AddOverridden(overridden)
			}
		}
	}
}

// findOverridden picks the first function in the supertype that the
// declared function can override. With overloads present the choice is
// first-match in declaration order.
func (r *Resolver) findOverridden(declared *symbols.FunctionDescriptor, super *symbols.ClassDescriptor) *symbols.FunctionDescriptor {
	for _, candidate := range super.FunctionGroup(declared.Name) {
		if r.engine.IsOverridableBy(candidate, declared) == nil {
			return candidate
		}
	}
	return nil
}

// declaredSupertypes reads the class descriptors behind the annotated types
// of the class's delegation specifiers, in declaration order. Specifiers
// whose type is unresolved or not a class are skipped.
func (r *Resolver) declaredSupertypes(class *symbols.ClassDescriptor) []*symbols.ClassDescriptor {
	if class.Decl == nil {
		return nil
	}
	var supers []*symbols.ClassDescriptor
	for _, spec := range class.Decl.Specifiers {
		if super := symbols.AsClass(r.bindings.AnnotatedType(specifierTypeRef(spec))); super != nil {
			supers = append(supers, super)
		}
	}
	return supers
}

func specifierTypeRef(spec ast.DelegationSpecifier) *ast.TypeRef {
	switch s := spec.(type) {
	case *ast.DelegateByExpr:
		return s.Type
	case *ast.SuperConstructorCall:
		return s.Type
	case *ast.SuperType:
		return s.Type
	case *ast.ThisConstructorCall:
		return nil
	default:
		panic("unknown delegation specifier")
	}
}
