package driver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk run configuration: which unit to resolve and how
// strictly. Unknown keys are rejected so typos fail loudly.
type Manifest struct {
	Input   string `yaml:"input"`
	Options struct {
		WarningsAsErrors bool `yaml:"warnings_as_errors"`
		MaxDiagnostics   int  `yaml:"max_diagnostics"`
	} `yaml:"options"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if m.Input == "" {
		return nil, fmt.Errorf("manifest %s: input is required", path)
	}
	if m.Options.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("manifest %s: max_diagnostics must not be negative", path)
	}
	return &m, nil
}

// DriverOptions converts the manifest's options section.
func (m *Manifest) DriverOptions() Options {
	return Options{
		WarningsAsErrors: m.Options.WarningsAsErrors,
		MaxDiagnostics:   m.Options.MaxDiagnostics,
	}
}
