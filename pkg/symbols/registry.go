package symbols

// Registry is the arena of symbol records for one compilation unit. The
// upstream header pass fills it with declared-but-unresolved descriptors;
// body resolution takes a single mutable pass over it. Everything is kept
// in declaration order so diagnostics come out deterministically.
type Registry struct {
	classes     []*ClassDescriptor
	functions   []*FunctionDescriptor
	properties  []*PropertyDescriptor
	secondaries []*ConstructorDescriptor

	// promoted holds properties that originate from val/var primary
	// constructor parameters.
	promoted map[*PropertyDescriptor]bool

	fileScope *Scope
}

func NewRegistry() *Registry {
	return &Registry{
		promoted:  make(map[*PropertyDescriptor]bool),
		fileScope: NewScope(nil, "file scope"),
	}
}

// AddClass registers a class-like descriptor and binds its name in the file
// scope.
func (r *Registry) AddClass(c *ClassDescriptor) {
	r.classes = append(r.classes, c)
	r.fileScope.Bind(c)
}

// AddFunction registers a named function (member or top-level).
func (r *Registry) AddFunction(f *FunctionDescriptor) {
	r.functions = append(r.functions, f)
}

// AddProperty registers a property (member or top-level).
func (r *Registry) AddProperty(p *PropertyDescriptor) {
	r.properties = append(r.properties, p)
}

// AddSecondaryConstructor registers a secondary constructor.
func (r *Registry) AddSecondaryConstructor(c *ConstructorDescriptor) {
	r.secondaries = append(r.secondaries, c)
}

// MarkPromoted records that a property was promoted from a primary
// constructor parameter.
func (r *Registry) MarkPromoted(p *PropertyDescriptor) {
	r.promoted[p] = true
}

// IsPromoted reports whether the property is a promoted primary-constructor
// parameter.
func (r *Registry) IsPromoted(p *PropertyDescriptor) bool {
	return r.promoted[p]
}

func (r *Registry) Classes() []*ClassDescriptor                  { return r.classes }
func (r *Registry) Functions() []*FunctionDescriptor             { return r.functions }
func (r *Registry) Properties() []*PropertyDescriptor            { return r.properties }
func (r *Registry) SecondaryConstructors() []*ConstructorDescriptor { return r.secondaries }

// FileScope is the outermost lookup environment of the unit: class names
// and top-level declarations.
func (r *Registry) FileScope() *Scope { return r.fileScope }

// ClassByName finds a registered class-like descriptor by name, or nil.
func (r *Registry) ClassByName(name string) *ClassDescriptor {
	for _, c := range r.classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}
