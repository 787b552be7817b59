package symbols_test

import (
	"testing"

	"github.com/nalgeon/be"

	"tova/pkg/symbols"
	"tova/pkg/types"
)

func TestScopeShadowing(t *testing.T) {
	outer := symbols.NewScope(nil, "outer")
	inner := symbols.NewScope(outer, "inner")

	a := &symbols.PropertyDescriptor{Name: "x", ReadType: types.Int}
	b := &symbols.ParameterDescriptor{Name: "x", Type: types.String}
	outer.Bind(a)
	inner.Bind(b)

	be.Equal(t, outer.Lookup("x"), symbols.Declaration(a))
	be.Equal(t, inner.Lookup("x"), symbols.Declaration(b))
	be.Equal(t, inner.Lookup("y"), nil)
}

func TestScopeFieldForm(t *testing.T) {
	scope := symbols.NewScope(nil, "ctor")
	prop := &symbols.PropertyDescriptor{Name: "count", ReadType: types.Int}
	scope.BindField(prop)

	// The field form does not make the plain name visible, and vice versa.
	be.Equal(t, scope.Lookup("count"), nil)
	be.Equal(t, scope.LookupField("count"), prop)

	child := symbols.NewScope(scope, "body")
	be.Equal(t, child.LookupField("count"), prop)
}

func TestScopeThisTypeChain(t *testing.T) {
	root := symbols.NewScope(nil, "file")
	be.Equal(t, root.ThisType(), nil)

	class := &symbols.ClassDescriptor{Name: "C"}
	members := symbols.NewScope(root, "members")
	members.SetThisType(class.DefaultType())

	body := symbols.NewScope(members, "body")
	be.Equal(t, body.ThisType(), types.Type(class.DefaultType()))
}

func TestScopeNormalizesNames(t *testing.T) {
	scope := symbols.NewScope(nil, "file")
	// Composed é on bind, decomposed e+combining acute on lookup.
	prop := &symbols.PropertyDescriptor{Name: "café", ReadType: types.Int}
	scope.Bind(prop)

	be.Equal(t, scope.Lookup("café"), symbols.Declaration(prop))
}
