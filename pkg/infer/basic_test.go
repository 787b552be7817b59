package infer_test

import (
	"testing"

	"github.com/nalgeon/be"

	"tova/pkg/ast"
	"tova/pkg/binding"
	"tova/pkg/diag"
	"tova/pkg/infer"
	"tova/pkg/symbols"
	"tova/pkg/types"
)

func newEngine() (*infer.Basic, *binding.Store, *diag.Bag) {
	bag := diag.NewBag()
	store := binding.NewStore()
	return infer.NewBasic(bag, store), store, bag
}

func TestLiteralTypes(t *testing.T) {
	engine, store, bag := newEngine()
	scope := symbols.NewScope(nil, "test")

	be.Equal(t, engine.TypeOf(store, scope, &ast.IntLit{Value: 1}, nil), types.Type(types.Int))
	be.Equal(t, engine.TypeOf(store, scope, &ast.StringLit{Value: "s"}, nil), types.Type(types.String))
	be.Equal(t, engine.TypeOf(store, scope, &ast.BoolLit{Value: true}, nil), types.Type(types.Boolean))
	be.Equal(t, bag.Len(), 0)
}

func TestIdentResolution(t *testing.T) {
	engine, store, bag := newEngine()
	scope := symbols.NewScope(nil, "test")
	scope.Bind(&symbols.ParameterDescriptor{Name: "n", Type: types.Int})

	at := &ast.Ident{Name: "n"}
	be.Equal(t, engine.TypeOf(store, scope, at, nil), types.Type(types.Int))
	be.Equal(t, store.ReferenceTarget(at), scope.Lookup("n"))

	be.Equal(t, engine.TypeOf(store, scope, &ast.Ident{Name: "missing"}, nil), types.Error)
	be.Equal(t, bag.Len(), 1)
	be.Equal(t, bag.Diagnostics()[0].Msg, "unresolved reference: missing")
}

func TestAssignmentTypeMismatch(t *testing.T) {
	engine, store, bag := newEngine()
	scope := symbols.NewScope(nil, "test")
	scope.Bind(&symbols.PropertyDescriptor{
		Name: "x", Mutable: true, ReadType: types.Int, WriteType: types.Int,
	})

	assign := &ast.Assign{
		Target: &ast.Ident{Name: "x"},
		Value:  &ast.StringLit{Value: "no", Position: diag.At(1, 5)},
	}
	be.Equal(t, engine.TypeOf(store, scope, assign, nil), types.Type(types.Unit))
	be.Equal(t, bag.Len(), 1)
	be.Equal(t, bag.Diagnostics()[0].Msg, "type mismatch: expected Int, got String")
}

func TestSubtypingWalksSupertypes(t *testing.T) {
	engine, _, _ := newEngine()

	base := &symbols.ClassDescriptor{Name: "Base", Modality: symbols.ModalityOpen}
	mid := &symbols.ClassDescriptor{Name: "Mid", Modality: symbols.ModalityOpen}
	leaf := &symbols.ClassDescriptor{Name: "Leaf"}
	mid.Supertypes = []*symbols.ClassType{base.DefaultType()}
	leaf.Supertypes = []*symbols.ClassType{mid.DefaultType()}

	be.True(t, engine.IsSubtypeOf(leaf.DefaultType(), base.DefaultType()))
	be.True(t, engine.IsSubtypeOf(leaf.DefaultType(), leaf.DefaultType()))
	be.True(t, !engine.IsSubtypeOf(base.DefaultType(), leaf.DefaultType()))
	be.True(t, engine.IsSubtypeOf(types.Nothing, base.DefaultType()))
	be.True(t, !engine.IsSubtypeOf(types.Int, types.String))
}

func TestOverridability(t *testing.T) {
	engine, _, _ := newEngine()

	declared := &symbols.FunctionDescriptor{
		Name:       "f",
		Params:     []*symbols.ParameterDescriptor{{Name: "a", Type: types.Int}},
		ReturnType: types.Int,
	}
	same := &symbols.FunctionDescriptor{
		Name:       "f",
		Params:     []*symbols.ParameterDescriptor{{Name: "b", Type: types.Int}},
		ReturnType: types.Int,
	}
	be.Err(t, engine.IsOverridableBy(same, declared), nil)

	otherName := &symbols.FunctionDescriptor{Name: "g", ReturnType: types.Int}
	be.True(t, engine.IsOverridableBy(otherName, declared) != nil)

	otherParams := &symbols.FunctionDescriptor{
		Name:       "f",
		Params:     []*symbols.ParameterDescriptor{{Name: "a", Type: types.String}},
		ReturnType: types.Int,
	}
	be.True(t, engine.IsOverridableBy(otherParams, declared) != nil)

	wideReturn := &symbols.FunctionDescriptor{
		Name:       "f",
		Params:     []*symbols.ParameterDescriptor{{Name: "a", Type: types.Int}},
		ReturnType: types.String,
	}
	be.True(t, engine.IsOverridableBy(wideReturn, declared) != nil)
}

// Delegation calls are specifiers, not expressions, yet their resolution
// must still flow through the binding recorder.
func TestResolveCallBindsConstructor(t *testing.T) {
	engine, store, bag := newEngine()
	scope := symbols.NewScope(nil, "test")

	super := &symbols.ClassDescriptor{Name: "A", Modality: symbols.ModalityOpen}
	super.Primary = &symbols.ConstructorDescriptor{
		Containing: super,
		IsPrimary:  true,
		Params:     []*symbols.ParameterDescriptor{{Name: "x", Type: types.Int}},
	}

	ref := &ast.TypeRef{Name: "A"}
	store.Annotate(ref, super.DefaultType())
	call := &ast.SuperConstructorCall{Type: ref, Args: []ast.Expr{&ast.IntLit{Value: 1}}}

	got := engine.ResolveCall(store, scope, call, nil)
	be.Equal(t, got, types.Type(super.DefaultType()))
	be.Equal(t, bag.Len(), 0)
	be.Equal(t, store.ReferenceTarget(call), symbols.Declaration(super.Primary))
}

func TestCheckReturnTypeSkipsBlocks(t *testing.T) {
	engine, store, bag := newEngine()
	scope := symbols.NewScope(nil, "test")

	exprBody := &ast.FuncDecl{Name: "f", Body: &ast.StringLit{Value: "s"}}
	engine.CheckReturnType(store, scope, exprBody, types.Int)
	be.Equal(t, bag.Len(), 1)

	blockBody := &ast.FuncDecl{Name: "g", Body: &ast.Block{}}
	engine.CheckReturnType(store, scope, blockBody, types.Int)
	be.Equal(t, bag.Len(), 1)
}
