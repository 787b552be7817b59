package types

// Type is the interface implemented by all type representations.
type Type interface {
	// String returns a printable representation of the type, used in
	// diagnostics and debugging.
	String() string
	// Equals checks whether this type denotes the same type as other.
	Equals(other Type) bool

	// typeNode is a marker method so that only this package and packages
	// that embed Extension can satisfy the interface.
	typeNode()
}

// Extension is embedded by type representations defined outside this
// package (the symbol registry's class types) to satisfy the Type marker.
type Extension struct{}

func (Extension) typeNode() {}

// Primitive represents a fundamental, non-composite type. Primitives are
// singletons; identity comparison is sufficient.
type Primitive struct {
	Name string
}

func (p *Primitive) String() string { return p.Name }
func (p *Primitive) typeNode()      {}
func (p *Primitive) Equals(other Type) bool {
	return p == other
}

// Pre-defined instances for the built-in primitive types.
var (
	Int     = &Primitive{Name: "Int"}
	Boolean = &Primitive{Name: "Boolean"}
	String  = &Primitive{Name: "String"}
	Unit    = &Primitive{Name: "Unit"}
	Nothing = &Primitive{Name: "Nothing"}
)

// errorType is the singleton standing in for "unknown": the result of a
// resolution that already failed and reported. Checks that depend on an
// unknown type silently skip instead of cascading secondary diagnostics.
type errorType struct{}

func (e *errorType) String() string { return "<error>" }
func (e *errorType) typeNode()      {}
func (e *errorType) Equals(other Type) bool {
	return e == other
}

// Error is the unknown-type singleton.
var Error Type = &errorType{}

// IsError reports whether t is absent or already known to be broken.
func IsError(t Type) bool {
	return t == nil || t == Error
}

// Lookup maps a built-in primitive name to its type.
func Lookup(name string) (Type, bool) {
	switch name {
	case "Int":
		return Int, true
	case "Boolean":
		return Boolean, true
	case "String":
		return String, true
	case "Unit":
		return Unit, true
	case "Nothing":
		return Nothing, true
	default:
		return nil, false
	}
}
