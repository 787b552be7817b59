package fixture

import (
	"fmt"

	"tova/pkg/ast"
	"tova/pkg/binding"
	"tova/pkg/diag"
	"tova/pkg/source"
	"tova/pkg/symbols"
	"tova/pkg/types"
)

// Load parses fixture source and runs the header pass over it: descriptors
// for every declaration, member scopes, and type annotations for every type
// reference, all committed to a fresh registry and binding store. The graph
// comes out in exactly the shape body resolution expects to receive.
func Load(file *source.File, sink diag.Sink) (*symbols.Registry, *binding.Store, error) {
	syntax, err := parseFile(file)
	if err != nil {
		return nil, nil, err
	}
	l := &loader{
		registry: symbols.NewRegistry(),
		bindings: binding.NewStore(),
		sink:     sink,
		descOf:   make(map[*classSyntax]*symbols.ClassDescriptor),
	}
	l.registerClasses(syntax)
	l.buildClasses(syntax)
	l.buildTopLevel(syntax)
	return l.registry, l.bindings, nil
}

// LoadString is Load over in-memory source, for tests.
func LoadString(name, content string, sink diag.Sink) (*symbols.Registry, *binding.Store, error) {
	return Load(source.New(name, "", content), sink)
}

type loader struct {
	registry *symbols.Registry
	bindings *binding.Store
	sink     diag.Sink
	descOf   map[*classSyntax]*symbols.ClassDescriptor
}

// registerClasses is the first pass: every class-like name must be bound in
// the file scope before any type reference resolves.
func (l *loader) registerClasses(file *fileSyntax) {
	for _, cs := range file.classes {
		desc := &symbols.ClassDescriptor{
			Name:     cs.decl.Name,
			Kind:     cs.kind,
			Modality: cs.modality,
			Decl:     cs.decl,
		}
		l.descOf[cs] = desc
		l.registry.AddClass(desc)
	}
	for _, cs := range file.classes {
		if cs.kind != symbols.KindEnum {
			continue
		}
		for _, entry := range cs.entries {
			l.descOf[entry].ContainingEnum = l.descOf[cs]
		}
	}
}

func (l *loader) buildClasses(file *fileSyntax) {
	for _, cs := range file.classes {
		l.buildClass(cs, l.descOf[cs])
	}
	for _, cs := range file.classes {
		l.annotateSpecifiers(cs.decl.Specifiers)
		for _, ctor := range cs.ctors {
			l.annotateSpecifiers(ctor.decl.Initializers)
		}
	}
}

func (l *loader) buildClass(cs *classSyntax, desc *symbols.ClassDescriptor) {
	memberScope := symbols.NewScope(l.registry.FileScope(), "members of "+desc.Name)
	memberScope.SetThisType(desc.DefaultType())
	desc.MemberScope = memberScope

	if cs.hasParams {
		primary := &symbols.ConstructorDescriptor{Containing: desc, IsPrimary: true}
		for _, ps := range cs.params {
			param := l.buildParameter(ps)
			if ps.promoted {
				prop := &symbols.PropertyDescriptor{
					Name:           ps.name,
					Modality:       symbols.ModalityFinal,
					Containing:     desc,
					Mutable:        ps.mutable,
					ReadType:       param.Type,
					DeclaringScope: memberScope,
				}
				if ps.mutable {
					prop.WriteType = param.Type
				}
				param.IsPromoted = true
				param.Property = prop
				desc.Properties = append(desc.Properties, prop)
				l.registry.MarkPromoted(prop)
				memberScope.Bind(prop)
			}
			primary.Params = append(primary.Params, param)
		}
		desc.Primary = primary
	}

	for _, ps := range cs.props {
		prop := l.buildProperty(ps, desc, memberScope)
		desc.Properties = append(desc.Properties, prop)
		memberScope.Bind(prop)
	}
	for _, fs := range cs.funcs {
		fn := l.buildFunction(fs, desc, memberScope)
		desc.Functions = append(desc.Functions, fn)
		memberScope.Bind(fn)
	}
	for _, ctor := range cs.ctors {
		secondary := &symbols.ConstructorDescriptor{Containing: desc, Decl: ctor.decl}
		for _, ps := range ctor.params {
			secondary.Params = append(secondary.Params, l.buildParameter(ps))
		}
		desc.Secondaries = append(desc.Secondaries, secondary)
		l.registry.AddSecondaryConstructor(secondary)
	}
}

func (l *loader) buildTopLevel(file *fileSyntax) {
	fileScope := l.registry.FileScope()
	for _, ps := range file.props {
		prop := l.buildProperty(ps, nil, fileScope)
		fileScope.Bind(prop)
	}
	for _, fs := range file.funcs {
		fn := l.buildFunction(fs, nil, fileScope)
		fileScope.Bind(fn)
	}
}

func (l *loader) buildParameter(ps paramSyntax) *symbols.ParameterDescriptor {
	return &symbols.ParameterDescriptor{
		Name: ps.name,
		Type: l.resolveTypeRef(ps.typeRef),
	}
}

func (l *loader) buildProperty(ps *propSyntax, class *symbols.ClassDescriptor, declaringScope *symbols.Scope) *symbols.PropertyDescriptor {
	decl := ps.decl
	prop := &symbols.PropertyDescriptor{
		Name:           decl.Name,
		Modality:       l.propertyModality(ps, class),
		Containing:     class,
		Mutable:        decl.Mutable,
		Decl:           decl,
		DeclaringScope: declaringScope,
	}
	if decl.Type != nil {
		prop.ReadType = l.resolveTypeRef(decl.Type)
	} else {
		prop.ReadType = l.inferInitializerType(decl.Initializer)
	}
	if decl.Mutable {
		prop.WriteType = prop.ReadType
	}

	if decl.Getter != nil {
		prop.Getter = &symbols.FunctionDescriptor{
			Name:       "get:" + prop.Name,
			Modality:   accessorModality(decl.Getter, prop),
			Containing: class,
			ReturnType: prop.ReadType,
			Decl:       decl.Getter,
		}
	}
	if decl.Setter != nil {
		setter := &symbols.FunctionDescriptor{
			Name:       "set:" + prop.Name,
			Modality:   accessorModality(decl.Setter, prop),
			Containing: class,
			ReturnType: types.Unit,
			Decl:       decl.Setter,
		}
		paramName := ps.setterParam
		if paramName == "" {
			paramName = "value"
		}
		setter.Params = []*symbols.ParameterDescriptor{{Name: paramName, Type: prop.ExpectedType()}}
		prop.Setter = setter
	}

	l.registry.AddProperty(prop)
	l.seedBackingField(prop, class)
	return prop
}

func (l *loader) buildFunction(fs *funcSyntax, class *symbols.ClassDescriptor, declaringScope *symbols.Scope) *symbols.FunctionDescriptor {
	decl := fs.decl
	fn := &symbols.FunctionDescriptor{
		Name:           decl.Name,
		Modality:       functionModality(fs, class),
		Containing:     class,
		ReturnType:     l.resolveTypeRef(fs.returnRef),
		Decl:           decl,
		DeclaringScope: declaringScope,
	}
	for _, ps := range fs.params {
		fn.Params = append(fn.Params, l.buildParameter(ps))
	}
	l.registry.AddFunction(fn)
	return fn
}

// propertyModality mirrors how headers come out upstream: an explicit
// abstract modifier wins; a trait property with neither initializer nor any
// accessor body is implicitly abstract; override and open both leave the
// member overridable.
func (l *loader) propertyModality(ps *propSyntax, class *symbols.ClassDescriptor) symbols.Modality {
	decl := ps.decl
	if decl.Mods.Has(ast.ModAbstract) {
		return symbols.ModalityAbstract
	}
	if class != nil && class.Kind == symbols.KindTrait &&
		decl.Initializer == nil && !hasAccessorBody(decl) {
		return symbols.ModalityAbstract
	}
	if decl.Mods.Has(ast.ModOpen) || decl.Mods.Has(ast.ModOverride) {
		return symbols.ModalityOpen
	}
	return symbols.ModalityFinal
}

func functionModality(fs *funcSyntax, class *symbols.ClassDescriptor) symbols.Modality {
	decl := fs.decl
	if decl.Mods.Has(ast.ModAbstract) {
		return symbols.ModalityAbstract
	}
	if class != nil && class.Kind == symbols.KindTrait && decl.Body == nil {
		return symbols.ModalityAbstract
	}
	if decl.Mods.Has(ast.ModOpen) || decl.Mods.Has(ast.ModOverride) {
		return symbols.ModalityOpen
	}
	return symbols.ModalityFinal
}

func accessorModality(acc *ast.AccessorDecl, prop *symbols.PropertyDescriptor) symbols.Modality {
	if acc.Mods.Has(ast.ModAbstract) {
		return symbols.ModalityAbstract
	}
	return prop.Modality
}

func hasAccessorBody(decl *ast.PropertyDecl) bool {
	return (decl.Getter != nil && decl.Getter.Body != nil) ||
		(decl.Setter != nil && decl.Setter.Body != nil)
}

// seedBackingField sets the initial backing-field-required fact the way the
// header pass does: a concrete, non-trait, non-promoted property needs
// storage when its reads (and writes, if mutable) are not covered by
// accessor bodies. An initializer alone does not create the requirement;
// that is what makes an initializer on a fully accessor-backed property
// reportable. Promoted constructor parameters stay unseeded and gain the
// flag lazily on first use.
func (l *loader) seedBackingField(prop *symbols.PropertyDescriptor, class *symbols.ClassDescriptor) {
	if prop.Modality == symbols.ModalityAbstract {
		return
	}
	if class != nil && class.Kind == symbols.KindTrait {
		return
	}
	decl := prop.Decl
	readUncovered := decl.Getter == nil || decl.Getter.Body == nil
	writeUncovered := prop.Mutable && (decl.Setter == nil || decl.Setter.Body == nil)
	if readUncovered || writeUncovered {
		l.bindings.MarkBackingFieldRequired(prop)
	}
}

func (l *loader) annotateSpecifiers(specs []ast.DelegationSpecifier) {
	for _, spec := range specs {
		switch s := spec.(type) {
		case *ast.DelegateByExpr:
			l.resolveTypeRef(s.Type)
		case *ast.SuperConstructorCall:
			l.resolveTypeRef(s.Type)
		case *ast.SuperType:
			l.resolveTypeRef(s.Type)
		case *ast.ThisConstructorCall:
		}
	}
}

// resolveTypeRef resolves a type name against registered classes, then
// primitives, annotating the reference in the binding store. Unknown names
// are reported once here and annotated as the error type so downstream
// checks skip them.
func (l *loader) resolveTypeRef(ref *ast.TypeRef) types.Type {
	if ref == nil {
		return nil
	}
	if t := l.bindings.AnnotatedType(ref); t != nil {
		return t
	}
	var t types.Type
	if class := l.registry.ClassByName(ref.Name); class != nil {
		t = class.DefaultType()
	} else if prim, ok := types.Lookup(ref.Name); ok {
		t = prim
	} else {
		l.sink.Error(ref.Pos(), fmt.Sprintf("unknown type name: %s", ref.Name))
		t = types.Error
	}
	l.bindings.Annotate(ref, t)
	return t
}

func (l *loader) inferInitializerType(init ast.Expr) types.Type {
	switch e := init.(type) {
	case nil:
		return nil
	case *ast.IntLit:
		return types.Int
	case *ast.StringLit:
		return types.String
	case *ast.BoolLit:
		return types.Boolean
	case *ast.Call:
		if class := l.registry.ClassByName(e.Callee.Name); class != nil {
			return class.DefaultType()
		}
		return nil
	default:
		return nil
	}
}
