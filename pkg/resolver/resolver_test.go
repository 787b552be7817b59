package resolver_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"

	"tova/pkg/binding"
	"tova/pkg/diag"
	"tova/pkg/fixture"
	"tova/pkg/infer"
	"tova/pkg/resolver"
	"tova/pkg/symbols"
)

// TestFixtures runs every markdown scenario under testdata/ and compares
// the reported diagnostics line by line.
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.md"))
	be.Err(t, err, nil)
	be.True(t, len(paths) > 0)

	for _, path := range paths {
		cases, err := fixture.ExtractCases(path)
		be.Err(t, err, nil)

		for _, c := range cases {
			t.Run(filepath.Base(path)+"/"+c.Name, func(t *testing.T) {
				bag := diag.NewBag()
				registry, bindings, err := fixture.LoadString(c.Name+".tova", c.Source, bag)
				be.Err(t, err, nil)

				engine := infer.NewBasic(bag, bindings)
				resolver.New(registry, bindings, bag, engine).ResolveDeclarationBodies()

				var got []string
				for _, d := range bag.Diagnostics() {
					got = append(got, fmt.Sprintf("%s %d: %s", d.Severity, d.Position.Line, d.Msg))
				}
				be.Equal(t, got, c.Expected)
			})
		}
	}
}

func resolve(t *testing.T, src string) (*symbols.Registry, *binding.Store, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag()
	registry, bindings, err := fixture.LoadString("test.tova", src, bag)
	be.Err(t, err, nil)
	engine := infer.NewBasic(bag, bindings)
	resolver.New(registry, bindings, bag, engine).ResolveDeclarationBodies()
	return registry, bindings, bag
}

func classFunction(t *testing.T, registry *symbols.Registry, class, name string) *symbols.FunctionDescriptor {
	t.Helper()
	desc := registry.ClassByName(class)
	be.True(t, desc != nil)
	for _, fn := range desc.Functions {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("no function %s in class %s", name, class)
	return nil
}

func TestOverrideEdgeRecorded(t *testing.T) {
	registry, _, bag := resolve(t, `
abstract class A {
    abstract fun foo(): Int
}
class B() : A {
    override fun foo(): Int = 1
}
`)
	be.True(t, !bag.HasErrors())

	base := classFunction(t, registry, "A", "foo")
	impl := classFunction(t, registry, "B", "foo")
	be.Equal(t, len(impl.Overridden), 1)
	be.Equal(t, impl.Overridden[0], base)
	be.Equal(t, len(base.Overridden), 0)
}

func TestOverrideEdgesAcrossSeveralSupertypes(t *testing.T) {
	registry, _, bag := resolve(t, `
trait T {
    fun foo(): Int
}
abstract class A {
    abstract fun foo(): Int
}
class B() : A, T {
    override fun foo(): Int = 1
}
`)
	be.True(t, !bag.HasErrors())

	impl := classFunction(t, registry, "B", "foo")
	be.Equal(t, len(impl.Overridden), 2)
	be.Equal(t, impl.Overridden[0], classFunction(t, registry, "A", "foo"))
	be.Equal(t, impl.Overridden[1], classFunction(t, registry, "T", "foo"))
}

// With an overloaded group in the supertype, the override edge lands on the
// first compatible candidate in declaration order.
func TestOverrideBindingPicksFirstOverload(t *testing.T) {
	registry, _, bag := resolve(t, `
abstract class A {
    open fun foo(x: Int) {}
    open fun foo(x: Int): Int = 1
}
class B() : A {
    override fun foo(x: Int): Int = 2
}
`)
	be.True(t, !bag.HasErrors())

	group := registry.ClassByName("A").FunctionGroup("foo")
	be.Equal(t, len(group), 2)

	impl := classFunction(t, registry, "B", "foo")
	be.Equal(t, len(impl.Overridden), 1)
	be.Equal(t, impl.Overridden[0], group[0])
}

// A this(...) initializer binds to the sibling constructor whose arity
// matches, not to the primary.
func TestSiblingConstructorDelegation(t *testing.T) {
	registry, bindings, bag := resolve(t, `
class C(x: Int, y: Int) {
    constructor(a: Int) : this(a, 2) {
    }
    constructor() : this(3) {
    }
}
`)
	be.True(t, !bag.HasErrors())

	secondaries := registry.SecondaryConstructors()
	be.Equal(t, len(secondaries), 2)

	first := secondaries[0].Decl.Initializers[0]
	be.Equal(t, bindings.ReferenceTarget(first), symbols.Declaration(registry.ClassByName("C").Primary))

	second := secondaries[1].Decl.Initializers[0]
	be.Equal(t, bindings.ReferenceTarget(second), symbols.Declaration(secondaries[0]))
}

// A promoted constructor parameter gets its backing field lazily, the first
// time a member body reads it.
func TestPromotedParameterBackingField(t *testing.T) {
	registry, bindings, bag := resolve(t, `
class C(val x: Int) {
    fun usage(): Int = x
}
`)
	be.True(t, !bag.HasErrors())

	class := registry.ClassByName("C")
	be.True(t, class != nil)
	be.Equal(t, len(class.Properties), 1)
	prop := class.Properties[0]
	be.Equal(t, prop.Name, "x")
	be.True(t, registry.IsPromoted(prop))
	be.True(t, bindings.BackingFieldRequired(prop))
}

func TestUnreadPromotedParameterNeedsNoField(t *testing.T) {
	registry, bindings, bag := resolve(t, `
class C(val x: Int)
`)
	be.True(t, !bag.HasErrors())

	prop := registry.ClassByName("C").Properties[0]
	be.True(t, !bindings.BackingFieldRequired(prop))
}

func TestInitializerBlockMarksPropertyInitialized(t *testing.T) {
	registry, bindings, bag := resolve(t, `
class C() {
    var x: Int
    init {
        $x = 1
    }
}
`)
	be.True(t, !bag.HasErrors())

	prop := registry.ClassByName("C").Properties[0]
	be.True(t, bindings.BackingFieldRequired(prop))
	be.True(t, bindings.ObservedInitialized(prop))
}

func TestSupertypeListCommitted(t *testing.T) {
	registry, _, bag := resolve(t, `
open class A()
trait T
class B() : A(), T
`)
	be.True(t, !bag.HasErrors())

	b := registry.ClassByName("B")
	be.Equal(t, len(b.Supertypes), 2)
	be.Equal(t, b.Supertypes[0].Descriptor(), registry.ClassByName("A"))
	be.Equal(t, b.Supertypes[1].Descriptor(), registry.ClassByName("T"))
}
