package resolver

import (
	"tova/pkg/ast"
	"tova/pkg/binding"
	"tova/pkg/symbols"
)

// newConstructorTrace returns the recorder used while resolving constructor
// scopes: anonymous initializers, property initializers and secondary
// constructor bodies. Referencing a backing field that no property provides
// is an error here, and assigning one counts as initializing the property.
func (r *Resolver) newConstructorTrace() binding.Recorder {
	t := binding.NewTrace(r.bindings)
	t.OnReference(func(at ast.Node, target symbols.Declaration) {
		field, ok := at.(*ast.FieldRef)
		if !ok {
			return
		}
		prop, ok := target.(*symbols.PropertyDescriptor)
		if !ok {
			return
		}
		if !r.bindings.BackingFieldRequired(prop) {
			r.sink.Error(field.Pos(), "this property does not have a backing field")
		}
	})
	t.OnAssignment(func(at ast.Node, target symbols.Declaration) {
		if _, ok := at.(*ast.FieldRef); !ok {
			return
		}
		if prop, ok := target.(*symbols.PropertyDescriptor); ok {
			r.bindings.MarkObservedInitialized(prop)
		}
	})
	return t
}

// newMemberTrace returns the recorder used for member and top-level function
// bodies. A promoted constructor parameter only needs storage once some body
// actually reads the property, so the flag is set lazily on first reference.
func (r *Resolver) newMemberTrace() binding.Recorder {
	t := binding.NewTrace(r.bindings)
	t.OnReference(func(at ast.Node, target symbols.Declaration) {
		prop, ok := target.(*symbols.PropertyDescriptor)
		if !ok {
			return
		}
		if r.registry.IsPromoted(prop) {
			r.bindings.MarkBackingFieldRequired(prop)
		}
	})
	return t
}

// fieldAccessTrace layers one more handler over the member trace for the
// accessors of a single property: touching that property's own backing field
// inside its getter or setter is what forces the field to exist.
func (r *Resolver) fieldAccessTrace(prop *symbols.PropertyDescriptor) binding.Recorder {
	t := binding.NewTrace(r.memberTrace)
	t.OnReference(func(at ast.Node, target symbols.Declaration) {
		if _, ok := at.(*ast.FieldRef); !ok {
			return
		}
		if p, ok := target.(*symbols.PropertyDescriptor); ok && p == prop {
			r.bindings.MarkBackingFieldRequired(prop)
		}
	})
	return t
}
