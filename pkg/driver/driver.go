package driver

import (
	"io"
	"os"

	"tova/pkg/binding"
	"tova/pkg/diag"
	"tova/pkg/fixture"
	"tova/pkg/infer"
	"tova/pkg/resolver"
	"tova/pkg/source"
	"tova/pkg/symbols"
)

// Options control one resolution run.
type Options struct {
	// WarningsAsErrors promotes every warning to an error before the result
	// is inspected.
	WarningsAsErrors bool
	// MaxDiagnostics caps how many diagnostics Report renders; zero means
	// no cap.
	MaxDiagnostics int
}

// Result is the outcome of resolving one compilation unit: the decorated
// descriptor graph and everything that was reported along the way.
type Result struct {
	File        *source.File
	Registry    *symbols.Registry
	Bindings    *binding.Store
	Diagnostics *diag.Bag

	opts Options
}

// Check loads one unit and runs declaration-body resolution over it. The
// returned error covers malformed input only; semantic issues land in the
// result's diagnostics.
func Check(file *source.File, opts Options) (*Result, error) {
	bag := diag.NewBag()
	registry, bindings, err := fixture.Load(file, bag)
	if err != nil {
		return nil, err
	}

	engine := infer.NewBasic(bag, bindings)
	resolver.New(registry, bindings, bag, engine).ResolveDeclarationBodies()

	if opts.WarningsAsErrors {
		bag.Promote()
	}
	return &Result{
		File:        file,
		Registry:    registry,
		Bindings:    bindings,
		Diagnostics: bag,
		opts:        opts,
	}, nil
}

// CheckFile is Check over a file on disk.
func CheckFile(path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Check(source.FromFile(path, string(data)), opts)
}

// HasErrors reports whether the run produced any error-severity diagnostic.
func (r *Result) HasErrors() bool {
	return r.Diagnostics.HasErrors()
}

// Report renders the run's diagnostics with source context, honoring the
// MaxDiagnostics cap.
func (r *Result) Report(w io.Writer) {
	diagnostics := r.Diagnostics.Diagnostics()
	if limit := r.opts.MaxDiagnostics; limit > 0 && len(diagnostics) > limit {
		diagnostics = diagnostics[:limit]
	}
	diag.Display(w, diagnostics)
}
