package resolver

import (
	"tova/pkg/binding"
	"tova/pkg/diag"
	"tova/pkg/infer"
	"tova/pkg/symbols"
)

// Resolver runs the declaration-body phase: by the time it starts, every
// class, function and property in the file has a descriptor in the registry
// and every type annotation has been recorded in the binding store. The
// resolver types the bodies, wires override edges, resolves supertype lists
// and enforces the declaration-level rules that depend on those results.
type Resolver struct {
	registry *symbols.Registry
	bindings *binding.Store
	sink     diag.Sink
	engine   infer.Engine

	ctorTrace   binding.Recorder
	memberTrace binding.Recorder
}

func New(registry *symbols.Registry, bindings *binding.Store, sink diag.Sink, engine infer.Engine) *Resolver {
	r := &Resolver{
		registry: registry,
		bindings: bindings,
		sink:     sink,
		engine:   engine,
	}
	r.ctorTrace = r.newConstructorTrace()
	r.memberTrace = r.newMemberTrace()
	return r
}

// ResolveDeclarationBodies drives the whole phase. The stages are ordered:
// override edges must exist before supertype lists are checked, and every
// body must be resolved before the backing-field and abstractness checks
// run, because resolution is what sets the flags those checks read.
func (r *Resolver) ResolveDeclarationBodies() {
	r.bindOverrides()
	r.resolveDelegationSpecifierLists()
	r.resolveClassAnnotations()
	r.resolveAnonymousInitializers()
	r.resolvePropertyDeclarationBodies()
	r.resolveSecondaryConstructorBodies()
	r.resolveFunctionBodies()
	r.checkIfPrimaryConstructorIsNecessary()
	r.checkOverrides()
}

// Annotations carry no body-level semantics yet. The stage stays in the
// pipeline so the ordering is explicit once they do.
func (r *Resolver) resolveClassAnnotations() {}
