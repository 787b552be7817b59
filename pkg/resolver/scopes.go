package resolver

import (
	"tova/pkg/symbols"
)

// constructorScope builds the scope a constructor body or initializer sees.
// Every property of the class is visible in its backing-field form, `this`
// is the class itself, and the constructor's parameters sit on top. Promoted
// parameters of a primary constructor are already visible as properties, so
// they are not bound a second time.
func (r *Resolver) constructorScope(ctor *symbols.ConstructorDescriptor, declaring *symbols.Scope, primary bool) *symbols.Scope {
	class := ctor.Containing
	s := symbols.NewScope(declaring, "constructor of "+class.Name)
	for _, prop := range class.Properties {
		s.BindField(prop)
	}
	s.SetThisType(class.DefaultType())
	for _, param := range ctor.Params {
		if primary && param.IsPromoted {
			continue
		}
		s.Bind(param)
	}
	return s
}

// propertyDeclarationScope introduces the property's type parameters and,
// for extension properties, the receiver as `this`.
func (r *Resolver) propertyDeclarationScope(declaring *symbols.Scope, prop *symbols.PropertyDescriptor) *symbols.Scope {
	s := symbols.NewScope(declaring, "property "+prop.Name)
	for _, tp := range prop.TypeParams {
		s.Bind(tp)
	}
	if prop.ReceiverType != nil {
		s.SetThisType(prop.ReceiverType)
	}
	return s
}

// accessorScope is the property declaration scope plus the property's own
// backing field, which only accessors may touch.
func (r *Resolver) accessorScope(declaring *symbols.Scope, prop *symbols.PropertyDescriptor) *symbols.Scope {
	s := symbols.NewScope(r.propertyDeclarationScope(declaring, prop), "accessors of "+prop.Name)
	s.BindField(prop)
	return s
}
