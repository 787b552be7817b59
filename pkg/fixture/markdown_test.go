package fixture

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestExtractCases(t *testing.T) {
	doc := []byte(`
# Scenarios

Some prose that the extractor ignores.

## Case: first

` + "```tova" + `
class A()
` + "```" + `

` + "```diagnostics" + `
error 1: something
error 2: something else
` + "```" + `

## Case: clean

` + "```tova" + `
class B()
` + "```" + `

` + "```diagnostics" + `
` + "```" + `
`)
	cases, err := ExtractCasesFromBytes("doc.md", doc)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	be.Equal(t, cases[0].Name, "first")
	be.Equal(t, cases[0].Source, "class A()\n")
	be.Equal(t, cases[0].Expected, []string{"error 1: something", "error 2: something else"})

	be.Equal(t, cases[1].Name, "clean")
	be.Equal(t, len(cases[1].Expected), 0)
}

func TestExtractCasesRequiresSource(t *testing.T) {
	doc := []byte(`
## Case: empty

` + "```diagnostics" + `
error 1: x
` + "```" + `
`)
	_, err := ExtractCasesFromBytes("doc.md", doc)
	be.True(t, err != nil)
}

func TestExtractCasesIgnoresOtherHeadings(t *testing.T) {
	doc := []byte(`
# Not a case

## Case: only

` + "```tova" + `
class A()
` + "```" + `
`)
	cases, err := ExtractCasesFromBytes("doc.md", doc)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 1)
	be.Equal(t, cases[0].Name, "only")
}
