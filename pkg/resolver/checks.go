package resolver

import (
	"fmt"

	"tova/pkg/ast"
	"tova/pkg/symbols"
)

func (r *Resolver) checkOverrides() {
	for _, class := range r.registry.Classes() {
		r.checkOverridesInClass(class)
	}
}

func (r *Resolver) checkOverridesInClass(class *symbols.ClassDescriptor) {
	for _, fn := range class.Functions {
		r.checkOverrideForFunction(fn)
	}
	if class.Modality == symbols.ModalityAbstract || class.Kind == symbols.KindTrait || class.Decl == nil {
		return
	}

	covered := make(map[*symbols.FunctionDescriptor]bool)
	for _, fn := range class.Functions {
		for _, overridden := range fn.Overridden {
			covered[overridden] = true
		}
	}

	foundError := false
	for _, super := range class.Supertypes {
		for _, inherited := range super.Descriptor().Functions {
			if inherited.Modality == symbols.ModalityAbstract && !covered[inherited] && !foundError {
				r.sink.Error(class.Decl.NamePosition, fmt.Sprintf(
					"class %s must be declared abstract or implement abstract method %s in %s",
					class.Name, inherited.Name, super.Descriptor().Name))
				foundError = true
			}
		}
	}
}

func (r *Resolver) checkOverrideForFunction(fn *symbols.FunctionDescriptor) {
	decl := fn.Decl
	overrideMod := decl.Modifiers().Find(ast.ModOverride)
	hasOverrideModifier := overrideMod != nil

	foundError := false
	for _, overridden := range fn.Overridden {
		if hasOverrideModifier && !overridden.Modality.IsOpen() && !foundError {
			r.sink.Error(overrideMod.Position, fmt.Sprintf(
				"method %s in %s is final and cannot be overridden",
				overridden.Name, overridden.Containing.Name))
			foundError = true
		}
	}
	if hasOverrideModifier && len(fn.Overridden) == 0 {
		r.sink.Error(overrideMod.Position, fmt.Sprintf("method %s overrides nothing", fn.Name))
	}
	if !hasOverrideModifier && len(fn.Overridden) > 0 {
		overridden := fn.Overridden[0]
		r.sink.Error(decl.NamePos(), fmt.Sprintf(
			"method %s overrides method %s in class %s and needs 'override' modifier",
			fn.Name, overridden.Name, overridden.Containing.Name))
	}
}

func (r *Resolver) checkIfPrimaryConstructorIsNecessary() {
	for _, class := range r.registry.Classes() {
		if class.Primary != nil || class.Kind == symbols.KindTrait || class.Kind == symbols.KindObject || class.Decl == nil {
			continue
		}
		for _, prop := range class.Properties {
			if r.bindings.BackingFieldRequired(prop) {
				r.sink.Error(class.Decl.NamePosition, fmt.Sprintf(
					"this class must have a primary constructor, because property %s has a backing field",
					prop.Name))
				break
			}
		}
	}
}

// checkFunctionDecl enforces the abstract-modifier and body-presence rules
// for named functions and property accessors. Constructors never reach this
// check.
func (r *Resolver) checkFunctionDecl(decl ast.DeclarationWithBody, fn *symbols.FunctionDescriptor) {
	isAccessor := false
	switch decl.(type) {
	case *ast.FuncDecl:
	case *ast.AccessorDecl:
		isAccessor = true
	default:
		panic(fmt.Sprintf("unsupported declaration with body %T", decl))
	}

	abstractMod := decl.Modifiers().Find(ast.ModAbstract)
	hasAbstractModifier := abstractMod != nil
	hasBody := decl.BodyExpr() != nil
	name := decl.DeclaredName()

	if class := fn.Containing; class != nil {
		inTrait := class.Kind == symbols.KindTrait
		inEnum := class.Kind == symbols.KindEnum
		inAbstractClass := class.Modality == symbols.ModalityAbstract
		if hasAbstractModifier && !inAbstractClass && !inTrait && !inEnum {
			r.sink.Error(abstractMod.Position, fmt.Sprintf("abstract method %s in non-abstract class %s", name, class.Name))
		}
		if hasAbstractModifier && inTrait && !isAccessor {
			r.sink.Warning(abstractMod.Position, "abstract modifier is redundant in a trait")
		}
		if hasBody && hasAbstractModifier {
			r.sink.Error(abstractMod.Position, fmt.Sprintf("method %s with body cannot be abstract", name))
		}
		if !hasBody && !hasAbstractModifier && !inTrait && !isAccessor {
			r.sink.Error(decl.NamePos(), fmt.Sprintf("method %s without body must be abstract", name))
		}
		return
	}

	if hasAbstractModifier {
		if isAccessor {
			r.sink.Error(abstractMod.Position, "this property accessor cannot be abstract")
		} else {
			r.sink.Error(abstractMod.Position, fmt.Sprintf("function %s cannot be abstract", name))
		}
	}
	if !hasBody && !hasAbstractModifier && !isAccessor {
		r.sink.Error(decl.NamePos(), fmt.Sprintf("function %s must have body", name))
	}
}

func (r *Resolver) checkProperty(prop *symbols.PropertyDescriptor, class *symbols.ClassDescriptor) {
	r.checkPropertyAbstractness(prop, class)
	r.checkPropertyInitializer(prop, class)
}

func (r *Resolver) checkPropertyAbstractness(prop *symbols.PropertyDescriptor, class *symbols.ClassDescriptor) {
	decl := prop.Decl
	abstractMod := decl.Mods.Find(ast.ModAbstract)

	if abstractMod != nil {
		if class == nil {
			r.sink.Error(abstractMod.Position, "this property cannot be abstract")
			return
		}
		if class.Modality != symbols.ModalityAbstract && class.Kind != symbols.KindEnum && class.Kind != symbols.KindTrait {
			r.sink.Error(abstractMod.Position, fmt.Sprintf("abstract property %s in non-abstract class %s", prop.Name, class.Name))
			return
		}
		if class.Kind == symbols.KindTrait {
			r.sink.Warning(abstractMod.Position, "abstract modifier is redundant in a trait")
		}
	}

	if prop.Modality == symbols.ModalityAbstract {
		if decl.Initializer != nil {
			r.sink.Error(decl.Initializer.Pos(), "property with initializer cannot be abstract")
		}
		if decl.Getter != nil && decl.Getter.Body != nil {
			r.sink.Error(decl.Getter.Pos(), "property with getter implementation cannot be abstract")
		}
		if decl.Setter != nil && decl.Setter.Body != nil {
			r.sink.Error(decl.Setter.Pos(), "property with setter implementation cannot be abstract")
		}
	}
}

func (r *Resolver) checkPropertyInitializer(prop *symbols.PropertyDescriptor, class *symbols.ClassDescriptor) {
	if prop.Modality == symbols.ModalityAbstract {
		return
	}
	decl := prop.Decl
	hasAccessorImplementation := (decl.Getter != nil && decl.Getter.Body != nil) ||
		(decl.Setter != nil && decl.Setter.Body != nil)
	inTrait := class != nil && class.Kind == symbols.KindTrait
	backingFieldRequired := r.bindings.BackingFieldRequired(prop)

	if inTrait && backingFieldRequired && hasAccessorImplementation {
		r.sink.Error(decl.NamePosition, "property in a trait cannot have a backing field")
	}
	if decl.Initializer == nil {
		if backingFieldRequired && !inTrait && !r.bindings.ObservedInitialized(prop) {
			if class == nil || hasAccessorImplementation {
				r.sink.Error(decl.NamePosition, "property must be initialized")
			} else {
				r.sink.Error(decl.NamePosition, "property must be initialized or be abstract")
			}
		}
		return
	}
	if inTrait {
		r.sink.Error(decl.Initializer.Pos(), "property initializers are not allowed in traits")
	} else if !backingFieldRequired {
		r.sink.Error(decl.Initializer.Pos(), "initializer is not allowed here because this property has no backing field")
	} else if class != nil && class.Primary == nil {
		r.sink.Error(decl.Initializer.Pos(), "property initializers are not allowed when no primary constructor is present")
	}
}
