package symbols

import (
	"tova/pkg/ast"
	"tova/pkg/types"
)

// Declaration is implemented by every descriptor kind. Binding events carry
// their resolved target as a Declaration.
type Declaration interface {
	DeclaredName() string
	declarationNode()
}

// ClassKind classifies a class-like declaration.
type ClassKind int

const (
	KindClass ClassKind = iota
	KindTrait
	KindObject
	KindEnum
	KindEnumEntry
)

func (k ClassKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindTrait:
		return "trait"
	case KindObject:
		return "object"
	case KindEnum:
		return "enum class"
	case KindEnumEntry:
		return "enum entry"
	default:
		return "class kind(?)"
	}
}

// Modality governs whether a member or type may be overridden or extended.
type Modality int

const (
	ModalityFinal Modality = iota
	ModalityOpen
	ModalityAbstract
	ModalitySealed
)

// IsOpen reports whether a member of this modality may be overridden.
func (m Modality) IsOpen() bool {
	return m == ModalityOpen || m == ModalityAbstract
}

func (m Modality) String() string {
	switch m {
	case ModalityFinal:
		return "final"
	case ModalityOpen:
		return "open"
	case ModalityAbstract:
		return "abstract"
	case ModalitySealed:
		return "sealed"
	default:
		return "modality(?)"
	}
}

// ClassDescriptor is the symbol record of a class-like declaration. It is
// created by the upstream header pass with its declared shape and mutated in
// place by body resolution: the resolved supertype list is committed here,
// and member functions gain override edges.
type ClassDescriptor struct {
	Name     string
	Kind     ClassKind
	Modality Modality
	Decl     *ast.ClassDecl

	// ContainingEnum is set for enum entries and points at the owning enum.
	ContainingEnum *ClassDescriptor

	Primary     *ConstructorDescriptor
	Secondaries []*ConstructorDescriptor
	Functions   []*FunctionDescriptor
	Properties  []*PropertyDescriptor

	// Supertypes is the validated, de-duplicated supertype set, written by
	// the delegation resolver.
	Supertypes []*ClassType

	// MemberScope is the lookup environment for member resolution,
	// constructed upstream alongside the descriptor.
	MemberScope *Scope

	defaultType *ClassType
}

func (c *ClassDescriptor) DeclaredName() string { return c.Name }
func (c *ClassDescriptor) declarationNode()     {}

// DefaultType returns the type denoted by this class. The descriptor pointer
// is the type's identity ("type constructor"), so the result is cached.
func (c *ClassDescriptor) DefaultType() *ClassType {
	if c.defaultType == nil {
		c.defaultType = &ClassType{descriptor: c}
	}
	return c.defaultType
}

// FunctionGroup returns the member functions sharing the given name, in
// declaration order.
func (c *ClassDescriptor) FunctionGroup(name string) []*FunctionDescriptor {
	var group []*FunctionDescriptor
	for _, f := range c.Functions {
		if f.Name == name {
			group = append(group, f)
		}
	}
	return group
}

// HasConstructors reports whether the class declares any constructor.
func (c *ClassDescriptor) HasConstructors() bool {
	return c.Primary != nil || len(c.Secondaries) > 0
}

// FunctionDescriptor is the symbol record of a named function or a property
// accessor. The overridden set starts empty and is populated by override
// binding.
type FunctionDescriptor struct {
	Name       string
	Modality   Modality
	Containing *ClassDescriptor // nil for top-level functions
	Params     []*ParameterDescriptor
	ReturnType types.Type

	Decl           ast.DeclarationWithBody
	DeclaringScope *Scope

	Overridden []*FunctionDescriptor
}

func (f *FunctionDescriptor) DeclaredName() string { return f.Name }
func (f *FunctionDescriptor) declarationNode()     {}

// AddOverridden records an override edge from this function to an inherited
// one.
func (f *FunctionDescriptor) AddOverridden(overridden *FunctionDescriptor) {
	f.Overridden = append(f.Overridden, overridden)
}

// PropertyDescriptor is the symbol record of a property. The two facts owned
// by body resolution (backing-field-required and observed-initialized)
// live in the binding store, not here.
type PropertyDescriptor struct {
	Name       string
	Modality   Modality
	Containing *ClassDescriptor // nil for top-level properties
	Mutable    bool

	// ReadType is the type seen by reads; WriteType by writes. They may
	// differ for get/set asymmetry. WriteType is nil for read-only
	// properties.
	ReadType  types.Type
	WriteType types.Type

	// ReceiverType is set for extension properties.
	ReceiverType types.Type
	TypeParams   []*TypeParameterDescriptor

	Getter *FunctionDescriptor
	Setter *FunctionDescriptor

	Decl           *ast.PropertyDecl
	DeclaringScope *Scope
}

func (p *PropertyDescriptor) DeclaredName() string { return p.Name }
func (p *PropertyDescriptor) declarationNode()     {}

// ExpectedType returns the type an initializer must produce: the write type
// when present, otherwise the read type.
func (p *PropertyDescriptor) ExpectedType() types.Type {
	if p.WriteType != nil {
		return p.WriteType
	}
	return p.ReadType
}

// ConstructorDescriptor is the symbol record of a primary or secondary
// constructor.
type ConstructorDescriptor struct {
	Containing *ClassDescriptor
	IsPrimary  bool
	Params     []*ParameterDescriptor
	Decl       *ast.ConstructorDecl // nil for primary constructors
}

func (c *ConstructorDescriptor) DeclaredName() string { return c.Containing.Name }
func (c *ConstructorDescriptor) declarationNode()     {}

// ParameterDescriptor is a constructor or function value parameter.
// Promoted parameters (val/var in a primary constructor) are also visible as
// member properties; Property points at the promoted property.
type ParameterDescriptor struct {
	Name       string
	Type       types.Type
	IsPromoted bool
	Property   *PropertyDescriptor
}

func (p *ParameterDescriptor) DeclaredName() string { return p.Name }
func (p *ParameterDescriptor) declarationNode()     {}

// TypeParameterDescriptor is a declared type parameter. Body resolution only
// needs its name for scope construction.
type TypeParameterDescriptor struct {
	Name string
}

func (t *TypeParameterDescriptor) DeclaredName() string { return t.Name }
func (t *TypeParameterDescriptor) declarationNode()     {}
