package fixture

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"tova/pkg/ast"
	"tova/pkg/diag"
	"tova/pkg/source"
	"tova/pkg/symbols"
)

// The fixture surface is line-oriented: one declaration header per line,
// bodies either inline (`= expr`, `{ a; b }`) or opened with `{` and closed
// by a line holding only `}`. That keeps the reader a set of line patterns
// instead of a grammar.

var (
	classLine = regexp2.MustCompile(
		`^(?<mods>(?:(?:open|abstract|sealed|final)\s+)*)(?<kw>enum\s+class|class|trait|object)\s+(?<name>[A-Za-z_]\w*)\s*(?<parens>\((?<params>[^()]*)\))?(?:\s*:\s*(?<specs>[^{]*))?\s*(?<brace>\{)?\s*(?<close>\})?$`,
		regexp2.None)
	entryLine = regexp2.MustCompile(
		`^entry\s+(?<name>[A-Za-z_]\w*)(?:\s*:\s*(?<specs>[^{]*))?\s*(?<brace>\{)?\s*(?<close>\})?$`,
		regexp2.None)
	funLine = regexp2.MustCompile(
		`^(?<mods>(?:(?:open|abstract|override|final)\s+)*)fun\s+(?<name>[A-Za-z_]\w*)\((?<params>[^()]*)\)(?:\s*:\s*(?<ret>[A-Za-z_]\w*))?\s*(?<rest>.*)$`,
		regexp2.None)
	propLine = regexp2.MustCompile(
		`^(?<mods>(?:(?:open|abstract|override|final)\s+)*)(?<kw>val|var)\s+(?<name>[A-Za-z_]\w*)(?:\s*:\s*(?<type>[A-Za-z_]\w*))?(?:\s*=\s*(?<init>.+))?$`,
		regexp2.None)
	getterLine = regexp2.MustCompile(
		`^(?<mods>(?:abstract\s+)?)get\(\)\s*(?<rest>.*)$`, regexp2.None)
	setterLine = regexp2.MustCompile(
		`^(?<mods>(?:abstract\s+)?)set\((?<param>\w*)\)\s*(?<rest>.*)$`, regexp2.None)
	ctorLine = regexp2.MustCompile(
		`^constructor\((?<params>[^()]*)\)(?:\s*:\s*(?<inits>[^{]*?))?\s*(?<rest>\{.*)?$`,
		regexp2.None)
	initLine = regexp2.MustCompile(
		`^init\s*(?<rest>\{.*)?$`, regexp2.None)
	paramShape = regexp2.MustCompile(
		`^(?:(?<kw>val|var)\s+)?(?<name>[A-Za-z_]\w*)\s*:\s*(?<type>[A-Za-z_]\w*)$`,
		regexp2.None)
)

type parser struct {
	file  *source.File
	lines []string
	i     int
}

func parseFile(f *source.File) (*fileSyntax, error) {
	p := &parser{file: f, lines: f.Lines()}
	out := &fileSyntax{}
	for p.i < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.i])
		if line == "" || strings.HasPrefix(line, "//") {
			p.i++
			continue
		}
		if m := match(classLine, line); m != nil {
			class, err := p.parseClass(m, line)
			if err != nil {
				return nil, err
			}
			out.classes = append(out.classes, class)
			if class.kind == symbols.KindEnum {
				out.classes = append(out.classes, class.entries...)
			}
			continue
		}
		if m := match(funLine, line); m != nil {
			fn, err := p.parseFunc(m, line)
			if err != nil {
				return nil, err
			}
			out.funcs = append(out.funcs, fn)
			continue
		}
		if m := match(propLine, line); m != nil {
			prop, err := p.parseProp(m, line)
			if err != nil {
				return nil, err
			}
			out.props = append(out.props, prop)
			continue
		}
		return nil, fmt.Errorf("%s:%d: unrecognized declaration: %s", f.DisplayPath(), p.i+1, line)
	}
	return out, nil
}

func match(re *regexp2.Regexp, s string) *regexp2.Match {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}
	return m
}

func group(m *regexp2.Match, name string) string {
	g := m.GroupByName(name)
	if g == nil {
		return ""
	}
	return strings.TrimSpace(g.String())
}

// at builds a position from a zero-based line index and a substring of that
// line; the column points at the substring's first occurrence.
func (p *parser) at(lineIdx int, sub string) diag.Position {
	col := 1
	if sub != "" {
		if idx := strings.Index(p.lines[lineIdx], sub); idx >= 0 {
			col = idx + 1
		}
	}
	pos := diag.At(lineIdx+1, col)
	pos.Source = p.file
	return pos
}

func (p *parser) parseModifiers(lineIdx int, mods string) ast.ModifierList {
	var list ast.ModifierList
	for _, word := range strings.Fields(mods) {
		var kind ast.ModifierKind
		switch word {
		case "abstract":
			kind = ast.ModAbstract
		case "open":
			kind = ast.ModOpen
		case "override":
			kind = ast.ModOverride
		case "sealed":
			kind = ast.ModSealed
		case "final":
			continue
		default:
			continue
		}
		list = append(list, ast.Modifier{Kind: kind, Position: p.at(lineIdx, word)})
	}
	return list
}

func (p *parser) parseClass(m *regexp2.Match, line string) (*classSyntax, error) {
	lineIdx := p.i
	name := group(m, "name")
	class := &classSyntax{
		decl: &ast.ClassDecl{
			Position:     p.at(lineIdx, line),
			NamePosition: p.at(lineIdx, name),
			Name:         name,
			Mods:         p.parseModifiers(lineIdx, group(m, "mods")),
		},
	}
	switch group(m, "kw") {
	case "trait":
		class.kind = symbols.KindTrait
		class.modality = symbols.ModalityAbstract
	case "object":
		class.kind = symbols.KindObject
		class.modality = symbols.ModalityFinal
	case "class":
		class.kind = symbols.KindClass
		class.modality = classModality(class.decl.Mods)
	default:
		class.kind = symbols.KindEnum
		class.modality = symbols.ModalitySealed
	}

	if g := m.GroupByName("parens"); g != nil && g.Length > 0 {
		class.hasParams = true
		params, err := p.parseParams(lineIdx, group(m, "params"))
		if err != nil {
			return nil, err
		}
		class.params = params
	}
	if specs := group(m, "specs"); specs != "" {
		class.decl.Specifiers = p.parseSpecifiers(lineIdx, specs)
	}

	p.i++
	if group(m, "brace") == "" || group(m, "close") != "" {
		return class, nil
	}
	return class, p.parseClassBody(class)
}

func (p *parser) parseClassBody(class *classSyntax) error {
	for p.i < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.i])
		switch {
		case line == "" || strings.HasPrefix(line, "//"):
			p.i++
		case line == "}":
			p.i++
			return nil
		default:
			if err := p.parseMember(class, line); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("%s: missing '}' for %s", p.file.DisplayPath(), class.decl.Name)
}

func (p *parser) parseMember(class *classSyntax, line string) error {
	lineIdx := p.i
	if class.kind == symbols.KindEnum {
		if m := match(entryLine, line); m != nil {
			return p.parseEnumEntry(class, m, line)
		}
	}
	if m := match(initLine, line); m != nil {
		pos := p.at(lineIdx, line)
		p.i++
		body, err := p.parseBody(lineIdx, group(m, "rest"))
		if err != nil {
			return err
		}
		if body == nil {
			body = &ast.Block{Position: pos}
		}
		class.decl.Initializers = append(class.decl.Initializers, &ast.InitializerBlock{Position: pos, Body: body})
		return nil
	}
	if m := match(ctorLine, line); m != nil {
		return p.parseConstructor(class, m, line)
	}
	if m := match(funLine, line); m != nil {
		fn, err := p.parseFunc(m, line)
		if err != nil {
			return err
		}
		class.funcs = append(class.funcs, fn)
		return nil
	}
	if m := match(propLine, line); m != nil {
		prop, err := p.parseProp(m, line)
		if err != nil {
			return err
		}
		class.props = append(class.props, prop)
		return nil
	}
	return fmt.Errorf("%s:%d: unrecognized member: %s", p.file.DisplayPath(), lineIdx+1, line)
}

func (p *parser) parseEnumEntry(enum *classSyntax, m *regexp2.Match, line string) error {
	lineIdx := p.i
	name := group(m, "name")
	entry := &classSyntax{
		kind:     symbols.KindEnumEntry,
		modality: symbols.ModalityFinal,
		decl: &ast.ClassDecl{
			Position:     p.at(lineIdx, line),
			NamePosition: p.at(lineIdx, name),
			Name:         name,
		},
	}
	if specs := group(m, "specs"); specs != "" {
		entry.decl.Specifiers = p.parseSpecifiers(lineIdx, specs)
	}
	p.i++
	enum.entries = append(enum.entries, entry)
	if group(m, "brace") != "" && group(m, "close") == "" {
		return p.parseClassBody(entry)
	}
	return nil
}

func (p *parser) parseConstructor(class *classSyntax, m *regexp2.Match, line string) error {
	lineIdx := p.i
	params, err := p.parseParams(lineIdx, group(m, "params"))
	if err != nil {
		return err
	}
	decl := &ast.ConstructorDecl{
		Position:     p.at(lineIdx, line),
		NamePosition: p.at(lineIdx, "constructor"),
	}
	if inits := group(m, "inits"); inits != "" {
		decl.Initializers = p.parseSpecifiers(lineIdx, inits)
	}
	p.i++
	body, err := p.parseBody(lineIdx, group(m, "rest"))
	if err != nil {
		return err
	}
	decl.Body = body
	class.ctors = append(class.ctors, &ctorSyntax{decl: decl, params: params})
	return nil
}

func (p *parser) parseFunc(m *regexp2.Match, line string) (*funcSyntax, error) {
	lineIdx := p.i
	name := group(m, "name")
	params, err := p.parseParams(lineIdx, group(m, "params"))
	if err != nil {
		return nil, err
	}
	fn := &funcSyntax{
		decl: &ast.FuncDecl{
			Position:     p.at(lineIdx, line),
			NamePosition: p.at(lineIdx, name),
			Name:         name,
			Mods:         p.parseModifiers(lineIdx, group(m, "mods")),
		},
		params: params,
	}
	if ret := group(m, "ret"); ret != "" {
		fn.returnRef = &ast.TypeRef{Position: p.at(lineIdx, ret), Name: ret}
	}
	p.i++
	body, err := p.parseBody(lineIdx, group(m, "rest"))
	if err != nil {
		return nil, err
	}
	fn.decl.Body = body
	return fn, nil
}

func (p *parser) parseProp(m *regexp2.Match, line string) (*propSyntax, error) {
	lineIdx := p.i
	name := group(m, "name")
	decl := &ast.PropertyDecl{
		Position:     p.at(lineIdx, line),
		NamePosition: p.at(lineIdx, name),
		Name:         name,
		Mods:         p.parseModifiers(lineIdx, group(m, "mods")),
		Mutable:      group(m, "kw") == "var",
	}
	if typeName := group(m, "type"); typeName != "" {
		decl.Type = &ast.TypeRef{Position: p.at(lineIdx, typeName), Name: typeName}
	}
	if init := group(m, "init"); init != "" {
		expr, err := p.parseExprAt(lineIdx, init)
		if err != nil {
			return nil, err
		}
		decl.Initializer = expr
	}
	p.i++

	prop := &propSyntax{decl: decl}

	// Accessor lines follow the property immediately.
	for p.i < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.i])
		if m := match(getterLine, line); m != nil && decl.Getter == nil {
			acc, err := p.parseAccessor(m, ast.Getter, line)
			if err != nil {
				return nil, err
			}
			decl.Getter = acc
			continue
		}
		if m := match(setterLine, line); m != nil && decl.Setter == nil {
			prop.setterParam = group(m, "param")
			acc, err := p.parseAccessor(m, ast.Setter, line)
			if err != nil {
				return nil, err
			}
			decl.Setter = acc
			continue
		}
		break
	}
	return prop, nil
}

func (p *parser) parseAccessor(m *regexp2.Match, kind ast.AccessorKind, line string) (*ast.AccessorDecl, error) {
	lineIdx := p.i
	acc := &ast.AccessorDecl{
		Position: p.at(lineIdx, line),
		Kind:     kind,
		Mods:     p.parseModifiers(lineIdx, group(m, "mods")),
	}
	p.i++
	body, err := p.parseBody(lineIdx, group(m, "rest"))
	if err != nil {
		return nil, err
	}
	acc.Body = body
	return acc, nil
}

// parseBody handles the three body shapes: none, `= expr`, and a braced
// block. The parser has already advanced past the declaration line; a
// multi-line block consumes further lines up to its closing `}`.
func (p *parser) parseBody(declLine int, rest string) (ast.Expr, error) {
	switch {
	case rest == "":
		return nil, nil
	case strings.HasPrefix(rest, "="):
		return p.parseExprAt(declLine, strings.TrimSpace(rest[1:]))
	case strings.HasPrefix(rest, "{"):
		return p.parseBlock(declLine, rest)
	default:
		return nil, fmt.Errorf("%s:%d: malformed body: %s", p.file.DisplayPath(), declLine+1, rest)
	}
}

func (p *parser) parseBlock(declLine int, rest string) (ast.Expr, error) {
	block := &ast.Block{Position: p.at(declLine, rest)}
	inner := strings.TrimSpace(rest[1:])
	if closed := strings.HasSuffix(inner, "}"); closed {
		inner = strings.TrimSpace(strings.TrimSuffix(inner, "}"))
		return p.appendStmts(block, declLine, inner)
	}
	if inner != "" {
		if _, err := p.appendStmts(block, declLine, inner); err != nil {
			return nil, err
		}
	}
	for p.i < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.i])
		lineIdx := p.i
		p.i++
		if line == "}" {
			return block, nil
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if _, err := p.appendStmts(block, lineIdx, line); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s:%d: missing '}'", p.file.DisplayPath(), declLine+1)
}

func (p *parser) appendStmts(block *ast.Block, lineIdx int, stmts string) (ast.Expr, error) {
	for _, stmt := range strings.Split(stmts, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		expr, err := p.parseExprAt(lineIdx, stmt)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, expr)
	}
	return block, nil
}

func (p *parser) parseParams(lineIdx int, params string) ([]paramSyntax, error) {
	var out []paramSyntax
	for _, item := range splitTop(params) {
		m := match(paramShape, item)
		if m == nil {
			return nil, fmt.Errorf("%s:%d: malformed parameter: %s", p.file.DisplayPath(), lineIdx+1, item)
		}
		name := group(m, "name")
		typeName := group(m, "type")
		out = append(out, paramSyntax{
			name:     name,
			typeRef:  &ast.TypeRef{Position: p.at(lineIdx, typeName), Name: typeName},
			promoted: group(m, "kw") != "",
			mutable:  group(m, "kw") == "var",
			pos:      p.at(lineIdx, name),
		})
	}
	return out, nil
}

func (p *parser) parseSpecifiers(lineIdx int, specs string) []ast.DelegationSpecifier {
	var out []ast.DelegationSpecifier
	for _, item := range splitTop(specs) {
		out = append(out, p.parseSpecifier(lineIdx, item))
	}
	return out
}

func (p *parser) parseSpecifier(lineIdx int, item string) ast.DelegationSpecifier {
	pos := p.at(lineIdx, item)

	if args, ok := callArgs(item, "this"); ok {
		return &ast.ThisConstructorCall{Position: pos, Args: p.parseArgs(lineIdx, args)}
	}
	if name, rest, found := strings.Cut(item, " by "); found {
		name = strings.TrimSpace(name)
		spec := &ast.DelegateByExpr{
			Position: pos,
			Type:     &ast.TypeRef{Position: p.at(lineIdx, name), Name: name},
		}
		if expr, err := p.parseExprAt(lineIdx, strings.TrimSpace(rest)); err == nil {
			spec.Expr = expr
		}
		return spec
	}
	if open := strings.Index(item, "("); open > 0 && strings.HasSuffix(item, ")") {
		name := strings.TrimSpace(item[:open])
		args := item[open+1 : len(item)-1]
		return &ast.SuperConstructorCall{
			Position:     pos,
			Type:         &ast.TypeRef{Position: p.at(lineIdx, name), Name: name},
			Args:         p.parseArgs(lineIdx, args),
			ArgsPosition: p.at(lineIdx, item[open:]),
		}
	}
	return &ast.SuperType{Position: pos, Type: &ast.TypeRef{Position: pos, Name: item}}
}

func (p *parser) parseArgs(lineIdx int, args string) []ast.Expr {
	var out []ast.Expr
	for _, item := range splitTop(args) {
		expr, err := p.parseExprAt(lineIdx, item)
		if err != nil {
			continue
		}
		out = append(out, expr)
	}
	return out
}

// callArgs matches `name(args)` for a fixed callee name.
func callArgs(item, name string) (string, bool) {
	if !strings.HasPrefix(item, name+"(") || !strings.HasSuffix(item, ")") {
		return "", false
	}
	return item[len(name)+1 : len(item)-1], true
}

// splitTop splits on commas outside parentheses.
func splitTop(s string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" {
		out = append(out, last)
	}
	return out
}

func classModality(mods ast.ModifierList) symbols.Modality {
	switch {
	case mods.Has(ast.ModAbstract):
		return symbols.ModalityAbstract
	case mods.Has(ast.ModSealed):
		return symbols.ModalitySealed
	case mods.Has(ast.ModOpen):
		return symbols.ModalityOpen
	default:
		return symbols.ModalityFinal
	}
}
