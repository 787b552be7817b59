package driver_test

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"tova/pkg/driver"
	"tova/pkg/source"
)

func TestCheckCleanUnit(t *testing.T) {
	file := source.New("ok.tova", "", `
class Animal(val name: String) {
    fun describe(): String = name
}
`)
	result, err := driver.Check(file, driver.Options{})
	be.Err(t, err, nil)
	be.True(t, !result.HasErrors())
	be.True(t, result.Registry.ClassByName("Animal") != nil)
}

func TestCheckReportsDiagnostics(t *testing.T) {
	file := source.New("bad.tova", "", `
class C() {
    fun f()
}
`)
	result, err := driver.Check(file, driver.Options{})
	be.Err(t, err, nil)
	be.True(t, result.HasErrors())

	var out strings.Builder
	result.Report(&out)
	be.True(t, strings.Contains(out.String(), "method f without body must be abstract"))
}

func TestCheckPromotesWarnings(t *testing.T) {
	file := source.New("warn.tova", "", `
trait T {
    abstract fun f()
}
`)
	relaxed, err := driver.Check(file, driver.Options{})
	be.Err(t, err, nil)
	be.True(t, !relaxed.HasErrors())

	strict, err := driver.Check(file, driver.Options{WarningsAsErrors: true})
	be.Err(t, err, nil)
	be.True(t, strict.HasErrors())
}

func TestCheckCapsReportedDiagnostics(t *testing.T) {
	file := source.New("many.tova", "", `
abstract fun f()
abstract fun g()
abstract fun h()
`)
	result, err := driver.Check(file, driver.Options{MaxDiagnostics: 1})
	be.Err(t, err, nil)
	be.Equal(t, result.Diagnostics.Len(), 3)

	var out strings.Builder
	result.Report(&out)
	be.True(t, strings.Contains(out.String(), "function f cannot be abstract"))
	be.True(t, !strings.Contains(out.String(), "function g cannot be abstract"))
}

func TestCheckRejectsMalformedInput(t *testing.T) {
	_, err := driver.Check(source.New("bad.tova", "", "not a declaration"), driver.Options{})
	be.True(t, err != nil)
}
