package symbols

import "tova/pkg/types"

// ClassType is the type denoted by a class-like descriptor. Its identity is
// the descriptor pointer: two ClassType values denote the same type exactly
// when they share a descriptor.
type ClassType struct {
	types.Extension
	descriptor *ClassDescriptor
}

func (t *ClassType) String() string { return t.descriptor.Name }

func (t *ClassType) Equals(other types.Type) bool {
	o, ok := other.(*ClassType)
	return ok && o.descriptor == t.descriptor
}

// Descriptor returns the class-like descriptor this type denotes.
func (t *ClassType) Descriptor() *ClassDescriptor { return t.descriptor }

// AsClass returns the class descriptor behind t, or nil when t is not a
// class type (primitives, error type, nil).
func AsClass(t types.Type) *ClassDescriptor {
	if ct, ok := t.(*ClassType); ok {
		return ct.Descriptor()
	}
	return nil
}
