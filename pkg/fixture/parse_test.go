package fixture

import (
	"testing"

	"github.com/nalgeon/be"

	"tova/pkg/ast"
	"tova/pkg/source"
	"tova/pkg/symbols"
)

func parseSource(t *testing.T, content string) *fileSyntax {
	t.Helper()
	out, err := parseFile(source.New("test.tova", "test.tova", content))
	be.Err(t, err, nil)
	return out
}

func TestParseClassHeader(t *testing.T) {
	out := parseSource(t, `
open class A(val x: Int, y: String) : B(), T {
    fun f(): Int = x
}
`)
	be.Equal(t, len(out.classes), 1)
	class := out.classes[0]
	be.Equal(t, class.decl.Name, "A")
	be.Equal(t, class.kind, symbols.KindClass)
	be.Equal(t, class.modality, symbols.ModalityOpen)
	be.True(t, class.hasParams)
	be.Equal(t, len(class.params), 2)
	be.True(t, class.params[0].promoted)
	be.True(t, !class.params[0].mutable)
	be.True(t, !class.params[1].promoted)
	be.Equal(t, len(class.decl.Specifiers), 2)

	_, isCall := class.decl.Specifiers[0].(*ast.SuperConstructorCall)
	be.True(t, isCall)
	_, isBare := class.decl.Specifiers[1].(*ast.SuperType)
	be.True(t, isBare)

	be.Equal(t, len(class.funcs), 1)
	be.Equal(t, class.funcs[0].decl.Name, "f")
	be.Equal(t, class.funcs[0].returnRef.Name, "Int")
}

func TestParseSpecifierShapes(t *testing.T) {
	out := parseSource(t, `class C() : A(1, 2), T by x, U`)
	specs := out.classes[0].decl.Specifiers
	be.Equal(t, len(specs), 3)

	call := specs[0].(*ast.SuperConstructorCall)
	be.Equal(t, call.Type.Name, "A")
	be.Equal(t, len(call.Args), 2)

	by := specs[1].(*ast.DelegateByExpr)
	be.Equal(t, by.Type.Name, "T")
	be.Equal(t, by.Expr.(*ast.Ident).Name, "x")

	be.Equal(t, specs[2].(*ast.SuperType).Type.Name, "U")
}

func TestParseSecondaryConstructor(t *testing.T) {
	out := parseSource(t, `
class C(x: Int) {
    constructor(a: String) : this(1) {
        $y = a
    }
}
`)
	class := out.classes[0]
	be.Equal(t, len(class.ctors), 1)
	ctor := class.ctors[0]
	be.Equal(t, len(ctor.params), 1)
	be.Equal(t, ctor.params[0].name, "a")
	be.Equal(t, len(ctor.decl.Initializers), 1)

	this := ctor.decl.Initializers[0].(*ast.ThisConstructorCall)
	be.Equal(t, len(this.Args), 1)

	body := ctor.decl.Body.(*ast.Block)
	be.Equal(t, len(body.Stmts), 1)
	_, isAssign := body.Stmts[0].(*ast.Assign)
	be.True(t, isAssign)
}

func TestParsePropertyWithAccessors(t *testing.T) {
	out := parseSource(t, `
class C() {
    var x: Int
        get() = 1
        set(v) { $x = v }
}
`)
	prop := out.classes[0].props[0]
	be.Equal(t, prop.decl.Name, "x")
	be.True(t, prop.decl.Mutable)
	be.True(t, prop.decl.Getter != nil)
	be.True(t, prop.decl.Setter != nil)
	be.Equal(t, prop.setterParam, "v")
	be.True(t, prop.decl.Getter.Body != nil)
}

func TestParseEnumEntries(t *testing.T) {
	out := parseSource(t, `
enum class Color {
    entry RED : Color
    entry GREEN : Color
}
`)
	// Enum entries flatten into the class list after their enum.
	be.Equal(t, len(out.classes), 3)
	be.Equal(t, out.classes[0].kind, symbols.KindEnum)
	be.Equal(t, out.classes[0].modality, symbols.ModalitySealed)
	be.Equal(t, out.classes[1].kind, symbols.KindEnumEntry)
	be.Equal(t, out.classes[1].decl.Name, "RED")
	be.Equal(t, out.classes[2].decl.Name, "GREEN")
}

func TestParseRejectsUnknownDeclarations(t *testing.T) {
	_, err := parseFile(source.New("bad.tova", "bad.tova", "frobnicate x"))
	be.True(t, err != nil)
}

func TestParseExpressions(t *testing.T) {
	p := &parser{file: source.New("t", "t", "x"), lines: []string{"x"}}

	check := func(s string, want any) {
		t.Helper()
		p.lines[0] = s
		expr, err := p.parseExprAt(0, s)
		be.Err(t, err, nil)
		switch want := want.(type) {
		case int64:
			be.Equal(t, expr.(*ast.IntLit).Value, want)
		case string:
			be.Equal(t, expr.(*ast.StringLit).Value, want)
		case bool:
			be.Equal(t, expr.(*ast.BoolLit).Value, want)
		}
	}
	check("42", int64(42))
	check(`"hi"`, "hi")
	check("true", true)

	p.lines[0] = "f(1, g(2), $x)"
	expr, err := p.parseExprAt(0, p.lines[0])
	be.Err(t, err, nil)
	call := expr.(*ast.Call)
	be.Equal(t, call.Callee.Name, "f")
	be.Equal(t, len(call.Args), 3)
	_, isNested := call.Args[1].(*ast.Call)
	be.True(t, isNested)
	_, isField := call.Args[2].(*ast.FieldRef)
	be.True(t, isField)

	p.lines[0] = "$x = f(1)"
	expr, err = p.parseExprAt(0, p.lines[0])
	be.Err(t, err, nil)
	assign := expr.(*ast.Assign)
	_, isField = assign.Target.(*ast.FieldRef)
	be.True(t, isField)

	p.lines[0] = "1 + 2"
	_, err = p.parseExprAt(0, p.lines[0])
	be.True(t, err != nil)
}

func TestSplitAssignSkipsNestedEquals(t *testing.T) {
	lhs, rhs, ok := splitAssign("x = y")
	be.True(t, ok)
	be.Equal(t, lhs, "x")
	be.Equal(t, rhs, "y")

	_, _, ok = splitAssign("f(a = b)")
	be.True(t, !ok)
	_, _, ok = splitAssign(`"a = b"`)
	be.True(t, !ok)
	_, _, ok = splitAssign("a == b")
	be.True(t, !ok)
}
