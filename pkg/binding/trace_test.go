package binding_test

import (
	"testing"

	"github.com/nalgeon/be"

	"tova/pkg/ast"
	"tova/pkg/binding"
	"tova/pkg/symbols"
	"tova/pkg/types"
)

func TestTraceCommitsToParentFirst(t *testing.T) {
	store := binding.NewStore()
	prop := &symbols.PropertyDescriptor{Name: "x", ReadType: types.Int}
	at := &ast.Ident{Name: "x"}

	var seenInStore symbols.Declaration
	trace := binding.NewTrace(store).OnReference(func(at ast.Node, target symbols.Declaration) {
		seenInStore = store.ReferenceTarget(at)
	})

	trace.RecordReference(at, prop)
	be.Equal(t, seenInStore, symbols.Declaration(prop))
	be.Equal(t, store.ReferenceTarget(at), symbols.Declaration(prop))
}

func TestTraceHandlerOrder(t *testing.T) {
	store := binding.NewStore()
	var order []string
	trace := binding.NewTrace(store).
		OnReference(func(ast.Node, symbols.Declaration) { order = append(order, "first") }).
		OnReference(func(ast.Node, symbols.Declaration) { order = append(order, "second") })

	outer := binding.NewTrace(trace).
		OnReference(func(ast.Node, symbols.Declaration) { order = append(order, "outer") })

	outer.RecordReference(&ast.Ident{Name: "x"}, &symbols.ParameterDescriptor{Name: "x"})
	be.Equal(t, order, []string{"first", "second", "outer"})
}

func TestTraceAssignmentHandlersSeparate(t *testing.T) {
	store := binding.NewStore()
	refs, assigns := 0, 0
	trace := binding.NewTrace(store).
		OnReference(func(ast.Node, symbols.Declaration) { refs++ }).
		OnAssignment(func(ast.Node, symbols.Declaration) { assigns++ })

	target := &symbols.PropertyDescriptor{Name: "x"}
	trace.RecordReference(&ast.Ident{Name: "x"}, target)
	trace.RecordAssignment(&ast.Ident{Name: "x"}, target)

	be.Equal(t, refs, 1)
	be.Equal(t, assigns, 1)
}

func TestStoreFactsAreMonotonic(t *testing.T) {
	store := binding.NewStore()
	prop := &symbols.PropertyDescriptor{Name: "x"}

	be.True(t, !store.BackingFieldRequired(prop))
	store.MarkBackingFieldRequired(prop)
	store.MarkBackingFieldRequired(prop)
	be.True(t, store.BackingFieldRequired(prop))

	be.True(t, !store.ObservedInitialized(prop))
	store.MarkObservedInitialized(prop)
	be.True(t, store.ObservedInitialized(prop))
}

func TestStoreTypeAnnotations(t *testing.T) {
	store := binding.NewStore()
	ref := &ast.TypeRef{Name: "Int"}

	be.Equal(t, store.AnnotatedType(ref), nil)
	be.Equal(t, store.AnnotatedType(nil), nil)

	store.Annotate(ref, types.Int)
	be.Equal(t, store.AnnotatedType(ref), types.Type(types.Int))
}
