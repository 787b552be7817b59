package symbols

import (
	"golang.org/x/text/unicode/norm"

	"tova/pkg/types"
)

// fieldPrefix is the marker of the synthetic backing-field form: a property
// x is visible as $x inside constructors and its own accessors.
const fieldPrefix = "$"

// Scope is a chained lookup environment: an immutable parent pointer plus a
// local overlay of name bindings, optionally carrying a "this" receiver
// type. Scopes are built per resolution unit, populated during
// construction, and discarded once that unit's body is resolved; after
// construction the overlay is never mutated.
//
// Identifier names are normalized to NFC on both bind and lookup, so
// visually identical spellings resolve to the same symbol.
type Scope struct {
	parent   *Scope
	overlay  map[string]Declaration
	thisType types.Type
	debug    string
}

// NewScope creates an empty scope over parent. The debug name shows up in
// invariant-failure messages only.
func NewScope(parent *Scope, debug string) *Scope {
	return &Scope{
		parent:  parent,
		overlay: make(map[string]Declaration),
		debug:   debug,
	}
}

// Bind adds a named declaration to the overlay, shadowing any binding of
// the same name in the parent chain.
func (s *Scope) Bind(decl Declaration) {
	s.overlay[norm.NFC.String(decl.DeclaredName())] = decl
}

// BindField exposes a property under its synthetic backing-field name.
func (s *Scope) BindField(prop *PropertyDescriptor) {
	s.overlay[fieldPrefix+norm.NFC.String(prop.Name)] = prop
}

// SetThisType sets the receiver type visible from this scope.
func (s *Scope) SetThisType(t types.Type) {
	s.thisType = t
}

// Lookup resolves a name, checking the overlay before the parent chain.
// Returns nil when the name is unbound.
func (s *Scope) Lookup(name string) Declaration {
	key := norm.NFC.String(name)
	for cur := s; cur != nil; cur = cur.parent {
		if decl, ok := cur.overlay[key]; ok {
			return decl
		}
	}
	return nil
}

// LookupField resolves a property through its backing-field form.
func (s *Scope) LookupField(name string) *PropertyDescriptor {
	decl := s.Lookup(fieldPrefix + name)
	prop, _ := decl.(*PropertyDescriptor)
	return prop
}

// ThisType returns the nearest receiver type in the chain, or nil.
func (s *Scope) ThisType() types.Type {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.thisType != nil {
			return cur.thisType
		}
	}
	return nil
}

// Debug returns the scope's debug name.
func (s *Scope) Debug() string { return s.debug }
