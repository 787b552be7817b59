package driver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"

	"tova/pkg/driver"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tova.yaml")
	be.Err(t, os.WriteFile(path, []byte(content), 0o644), nil)
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
input: animals.tova
options:
  warnings_as_errors: true
  max_diagnostics: 10
`)
	m, err := driver.LoadManifest(path)
	be.Err(t, err, nil)
	be.Equal(t, m.Input, "animals.tova")

	opts := m.DriverOptions()
	be.True(t, opts.WarningsAsErrors)
	be.Equal(t, opts.MaxDiagnostics, 10)
}

func TestLoadManifestDefaults(t *testing.T) {
	m, err := driver.LoadManifest(writeManifest(t, `input: x.tova`))
	be.Err(t, err, nil)

	opts := m.DriverOptions()
	be.True(t, !opts.WarningsAsErrors)
	be.Equal(t, opts.MaxDiagnostics, 0)
}

func TestLoadManifestRejectsUnknownKeys(t *testing.T) {
	_, err := driver.LoadManifest(writeManifest(t, `
input: x.tova
optoins:
  warnings_as_errors: true
`))
	be.True(t, err != nil)
}

func TestLoadManifestRequiresInput(t *testing.T) {
	_, err := driver.LoadManifest(writeManifest(t, `options: {}`))
	be.True(t, err != nil)
}

func TestLoadManifestRejectsNegativeCap(t *testing.T) {
	_, err := driver.LoadManifest(writeManifest(t, `
input: x.tova
options:
  max_diagnostics: -1
`))
	be.True(t, err != nil)
}
