package fixture

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Case is one named scenario extracted from a markdown document: a heading
// of the form `Case: name`, a fenced `tova` block holding the source, and
// an optional fenced `diagnostics` block listing the expected output one
// diagnostic per line.
type Case struct {
	Name     string
	Source   string
	Expected []string
}

// ExtractCases reads a markdown file and returns its cases in document
// order.
func ExtractCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractCasesFromBytes(path, data)
}

func ExtractCasesFromBytes(name string, data []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(data))

	var cases []Case
	var current *Case
	flush := func() error {
		if current == nil {
			return nil
		}
		if strings.TrimSpace(current.Source) == "" {
			return fmt.Errorf("%s: case %q has no tova block", name, current.Name)
		}
		cases = append(cases, *current)
		current = nil
		return nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *gast.Heading:
			title := nodeText(node, data)
			caseName, ok := strings.CutPrefix(title, "Case:")
			if !ok {
				continue
			}
			if err := flush(); err != nil {
				return nil, err
			}
			current = &Case{Name: strings.TrimSpace(caseName)}

		case *gast.FencedCodeBlock:
			if current == nil {
				continue
			}
			switch string(node.Language(data)) {
			case "tova":
				current.Source = fenceContent(node, data)
			case "diagnostics":
				for _, line := range strings.Split(fenceContent(node, data), "\n") {
					if line = strings.TrimSpace(line); line != "" {
						current.Expected = append(current.Expected, line)
					}
				}
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("%s: no cases found", name)
	}
	return cases, nil
}

func nodeText(n gast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
	}
	return sb.String()
}

func fenceContent(fc *gast.FencedCodeBlock, src []byte) string {
	var buf bytes.Buffer
	lines := fc.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}
