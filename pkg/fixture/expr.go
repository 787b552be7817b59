package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"tova/pkg/ast"
)

func (p *parser) parseExprAt(lineIdx int, s string) (ast.Expr, error) {
	s = strings.TrimSpace(s)
	pos := p.at(lineIdx, s)

	if lhs, rhs, ok := splitAssign(s); ok {
		target, err := p.parseExprAt(lineIdx, lhs)
		if err != nil {
			return nil, err
		}
		value, err := p.parseExprAt(lineIdx, rhs)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Position: pos, Target: target, Value: value}, nil
	}

	switch {
	case s == "this":
		return &ast.This{Position: pos}, nil
	case s == "true" || s == "false":
		return &ast.BoolLit{Position: pos, Value: s == "true"}, nil
	case strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2:
		return &ast.StringLit{Position: pos, Value: s[1 : len(s)-1]}, nil
	case strings.HasPrefix(s, "$"):
		name := s[1:]
		if !isName(name) {
			return nil, fmt.Errorf("%s:%d: malformed field reference: %s", p.file.DisplayPath(), lineIdx+1, s)
		}
		return &ast.FieldRef{Position: pos, Name: name}, nil
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &ast.IntLit{Position: pos, Value: v}, nil
	}

	if open := strings.Index(s, "("); open > 0 && strings.HasSuffix(s, ")") {
		callee := strings.TrimSpace(s[:open])
		if isName(callee) {
			call := &ast.Call{
				Position: pos,
				Callee:   &ast.Ident{Position: p.at(lineIdx, callee), Name: callee},
			}
			for _, item := range splitTop(s[open+1 : len(s)-1]) {
				arg, err := p.parseExprAt(lineIdx, item)
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
			}
			return call, nil
		}
	}

	if isName(s) {
		return &ast.Ident{Position: pos, Name: s}, nil
	}
	return nil, fmt.Errorf("%s:%d: unrecognized expression: %s", p.file.DisplayPath(), lineIdx+1, s)
}

// splitAssign finds a top-level single `=` outside parentheses and strings.
func splitAssign(s string) (lhs, rhs string, ok bool) {
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inString = !inString
		case '(':
			if !inString {
				depth++
			}
		case ')':
			if !inString {
				depth--
			}
		case '=':
			if inString || depth != 0 {
				continue
			}
			if i+1 < len(s) && s[i+1] == '=' {
				i++
				continue
			}
			if i > 0 && strings.ContainsRune("=!<>", rune(s[i-1])) {
				continue
			}
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
		}
	}
	return "", "", false
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
