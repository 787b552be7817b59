package infer

import (
	"fmt"

	"tova/pkg/ast"
	"tova/pkg/binding"
	"tova/pkg/diag"
	"tova/pkg/symbols"
	"tova/pkg/types"
)

// Basic is the built-in engine. It covers exactly the expression surface of
// pkg/ast: identifier and backing-field lookup through scope chains,
// literals, assignment, `this`, and invocation of functions and class
// constructors found in scope.
type Basic struct {
	sink     diag.Sink
	bindings *binding.Store
}

func NewBasic(sink diag.Sink, bindings *binding.Store) *Basic {
	return &Basic{sink: sink, bindings: bindings}
}

func (b *Basic) TypeOf(rec binding.Recorder, scope *symbols.Scope, expr ast.Expr, expected types.Type) types.Type {
	switch e := expr.(type) {
	case *ast.IntLit:
		return types.Int
	case *ast.StringLit:
		return types.String
	case *ast.BoolLit:
		return types.Boolean

	case *ast.Ident:
		target := scope.Lookup(e.Name)
		if target == nil {
			b.sink.Error(e.Pos(), fmt.Sprintf("unresolved reference: %s", e.Name))
			return types.Error
		}
		switch t := target.(type) {
		case *symbols.PropertyDescriptor:
			rec.RecordReference(e, t)
			return t.ReadType
		case *symbols.ParameterDescriptor:
			rec.RecordReference(e, t)
			return t.Type
		default:
			b.sink.Error(e.Pos(), fmt.Sprintf("'%s' cannot be used as a value", e.Name))
			return types.Error
		}

	case *ast.FieldRef:
		prop := scope.LookupField(e.Name)
		if prop == nil {
			b.sink.Error(e.Pos(), fmt.Sprintf("unresolved reference: $%s", e.Name))
			return types.Error
		}
		rec.RecordReference(e, prop)
		return prop.ReadType

	case *ast.This:
		t := scope.ThisType()
		if t == nil {
			b.sink.Error(e.Pos(), "'this' is not available in this context")
			return types.Error
		}
		return t

	case *ast.Assign:
		return b.typeOfAssignment(rec, scope, e)

	case *ast.Call:
		return b.typeOfCall(rec, scope, e)

	case *ast.Block:
		for _, stmt := range e.Stmts {
			b.TypeOf(rec, scope, stmt, nil)
		}
		return types.Unit

	default:
		panic(fmt.Sprintf("unsupported expression %T", expr))
	}
}

func (b *Basic) typeOfAssignment(rec binding.Recorder, scope *symbols.Scope, e *ast.Assign) types.Type {
	valueType := b.TypeOf(rec, scope, e.Value, nil)

	var targetType types.Type
	switch target := e.Target.(type) {
	case *ast.Ident:
		decl := scope.Lookup(target.Name)
		if decl == nil {
			b.sink.Error(target.Pos(), fmt.Sprintf("unresolved reference: %s", target.Name))
			return types.Error
		}
		switch t := decl.(type) {
		case *symbols.PropertyDescriptor:
			rec.RecordReference(target, t)
			rec.RecordAssignment(target, t)
			targetType = t.ExpectedType()
		case *symbols.ParameterDescriptor:
			rec.RecordReference(target, t)
			rec.RecordAssignment(target, t)
			targetType = t.Type
		default:
			b.sink.Error(target.Pos(), fmt.Sprintf("'%s' is not assignable", target.Name))
			return types.Error
		}
	case *ast.FieldRef:
		prop := scope.LookupField(target.Name)
		if prop == nil {
			b.sink.Error(target.Pos(), fmt.Sprintf("unresolved reference: $%s", target.Name))
			return types.Error
		}
		rec.RecordReference(target, prop)
		rec.RecordAssignment(target, prop)
		targetType = prop.ExpectedType()
	default:
		b.sink.Error(e.Target.Pos(), "this expression cannot be assigned to")
		return types.Error
	}

	if !types.IsError(valueType) && !types.IsError(targetType) && !b.IsSubtypeOf(valueType, targetType) {
		b.sink.TypeMismatch(e.Value.Pos(), targetType, valueType)
	}
	return types.Unit
}

func (b *Basic) typeOfCall(rec binding.Recorder, scope *symbols.Scope, e *ast.Call) types.Type {
	target := scope.Lookup(e.Callee.Name)
	if target == nil {
		b.sink.Error(e.Callee.Pos(), fmt.Sprintf("unresolved reference: %s", e.Callee.Name))
		return types.Error
	}
	switch t := target.(type) {
	case *symbols.ClassDescriptor:
		if t.Kind == symbols.KindTrait {
			b.sink.Error(e.Pos(), fmt.Sprintf("trait %s cannot be instantiated", t.Name))
			return types.Error
		}
		return b.resolveConstructorInvocation(rec, scope, e, t, e.Args, e.Pos())
	case *symbols.FunctionDescriptor:
		rec.RecordReference(e.Callee, t)
		b.checkArguments(rec, scope, e.Args, paramTypes(t.Params), t.Name, e.Pos())
		if t.ReturnType == nil {
			return types.Unit
		}
		return t.ReturnType
	default:
		b.sink.Error(e.Callee.Pos(), fmt.Sprintf("'%s' is not callable", e.Callee.Name))
		return types.Error
	}
}

// resolveConstructorInvocation picks a constructor of class by arity and
// checks argument types against it. A class that declares no constructors
// still has the implicit zero-argument one.
func (b *Basic) resolveConstructorInvocation(rec binding.Recorder, scope *symbols.Scope, at ast.Node, class *symbols.ClassDescriptor, args []ast.Expr, pos diag.Position) types.Type {
	var candidates []*symbols.ConstructorDescriptor
	if class.Primary != nil {
		candidates = append(candidates, class.Primary)
	}
	candidates = append(candidates, class.Secondaries...)

	if len(candidates) == 0 {
		if len(args) != 0 {
			b.sink.Error(pos, fmt.Sprintf("no constructor of %s accepts %d arguments", class.Name, len(args)))
			return types.Error
		}
		return class.DefaultType()
	}

	for _, ctor := range candidates {
		if len(ctor.Params) != len(args) {
			continue
		}
		rec.RecordReference(at, ctor)
		b.checkArguments(rec, scope, args, paramTypes(ctor.Params), class.Name, pos)
		return class.DefaultType()
	}

	// Arguments of a failed call are still resolved so their own errors
	// surface.
	for _, arg := range args {
		b.TypeOf(rec, scope, arg, nil)
	}
	b.sink.Error(pos, fmt.Sprintf("no constructor of %s accepts %d arguments", class.Name, len(args)))
	return types.Error
}

func (b *Basic) checkArguments(rec binding.Recorder, scope *symbols.Scope, args []ast.Expr, params []types.Type, calleeName string, pos diag.Position) {
	if len(args) != len(params) {
		b.sink.Error(pos, fmt.Sprintf("%s expects %d arguments, got %d", calleeName, len(params), len(args)))
		return
	}
	for i, arg := range args {
		argType := b.TypeOf(rec, scope, arg, params[i])
		if !types.IsError(argType) && !types.IsError(params[i]) && !b.IsSubtypeOf(argType, params[i]) {
			b.sink.TypeMismatch(arg.Pos(), params[i], argType)
		}
	}
}

func (b *Basic) CheckReturnType(rec binding.Recorder, scope *symbols.Scope, decl ast.DeclarationWithBody, expected types.Type) {
	body := decl.BodyExpr()
	if body == nil {
		return
	}
	bodyType := b.TypeOf(rec, scope, body, expected)

	// Block bodies produce their value through return statements, which are
	// outside this engine's expression surface; only expression bodies are
	// compared against the declared type.
	if _, isBlock := body.(*ast.Block); isBlock {
		return
	}
	if expected != nil && !types.IsError(bodyType) && !types.IsError(expected) && !b.IsSubtypeOf(bodyType, expected) {
		b.sink.TypeMismatch(body.Pos(), expected, bodyType)
	}
}

func (b *Basic) ResolveCall(rec binding.Recorder, scope *symbols.Scope, call ast.ConstructorCall, expected types.Type) types.Type {
	switch c := call.(type) {
	case *ast.SuperConstructorCall:
		annotated := b.bindings.AnnotatedType(c.Type)
		class := symbols.AsClass(annotated)
		if class == nil {
			// The annotation pass failed (and reported) for this reference.
			return types.Error
		}
		if class.Kind == symbols.KindTrait {
			// Returned as-is: the caller decides whether a trait here is an
			// error. Arguments are still resolved.
			for _, arg := range c.Args {
				b.TypeOf(rec, scope, arg, nil)
			}
			return class.DefaultType()
		}
		return b.resolveConstructorInvocation(rec, scope, c, class, c.Args, c.CallPos())

	case *ast.ThisConstructorCall:
		class := symbols.AsClass(scope.ThisType())
		if class == nil {
			b.sink.Error(c.Pos(), "this(...) delegation requires an enclosing class")
			return types.Error
		}
		return b.resolveConstructorInvocation(rec, scope, c, class, c.Args, c.Pos())

	default:
		panic(fmt.Sprintf("unsupported constructor call %T", call))
	}
}

func (b *Basic) IsSubtypeOf(a, t types.Type) bool {
	if types.IsError(a) || types.IsError(t) {
		return true
	}
	if a.Equals(t) {
		return true
	}
	if a == types.Nothing {
		return true
	}
	if class := symbols.AsClass(a); class != nil {
		return b.classInherits(class, t, make(map[*symbols.ClassDescriptor]bool))
	}
	return false
}

// classInherits walks the supertype graph of class looking for t. While the
// delegation resolver has not yet committed a class's validated supertype
// list, the walk falls back to the annotated types of its declared
// specifiers.
func (b *Basic) classInherits(class *symbols.ClassDescriptor, t types.Type, seen map[*symbols.ClassDescriptor]bool) bool {
	if seen[class] {
		return false
	}
	seen[class] = true
	for _, super := range b.supertypesOf(class) {
		if super.Equals(t) {
			return true
		}
		if b.classInherits(super.Descriptor(), t, seen) {
			return true
		}
	}
	return false
}

func (b *Basic) supertypesOf(class *symbols.ClassDescriptor) []*symbols.ClassType {
	if class.Supertypes != nil {
		return class.Supertypes
	}
	if class.Decl == nil {
		return nil
	}
	var supers []*symbols.ClassType
	for _, spec := range class.Decl.Specifiers {
		var ref *ast.TypeRef
		switch s := spec.(type) {
		case *ast.DelegateByExpr:
			ref = s.Type
		case *ast.SuperConstructorCall:
			ref = s.Type
		case *ast.SuperType:
			ref = s.Type
		case *ast.ThisConstructorCall:
			continue
		}
		if ct, ok := b.bindings.AnnotatedType(ref).(*symbols.ClassType); ok {
			supers = append(supers, ct)
		}
	}
	return supers
}

func (b *Basic) IsOverridableBy(candidate, declared *symbols.FunctionDescriptor) error {
	if candidate.Name != declared.Name {
		return fmt.Errorf("names differ: %s vs %s", candidate.Name, declared.Name)
	}
	if len(candidate.Params) != len(declared.Params) {
		return fmt.Errorf("parameter counts differ")
	}
	for i := range candidate.Params {
		ct, dt := candidate.Params[i].Type, declared.Params[i].Type
		if types.IsError(ct) || types.IsError(dt) {
			continue
		}
		if !ct.Equals(dt) {
			return fmt.Errorf("parameter %d types differ: %s vs %s", i+1, ct, dt)
		}
	}
	cr, dr := candidate.ReturnType, declared.ReturnType
	if cr != nil && dr != nil && !types.IsError(cr) && !types.IsError(dr) && !b.IsSubtypeOf(dr, cr) {
		return fmt.Errorf("return type %s is not a subtype of %s", dr, cr)
	}
	return nil
}

func paramTypes(params []*symbols.ParameterDescriptor) []types.Type {
	out := make([]types.Type, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}
