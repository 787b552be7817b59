package main

import (
	"flag"
	"fmt"
	"os"

	"tova/pkg/driver"
)

func main() {
	manifestFlag := flag.String("manifest", "", "Read run configuration from a manifest file")
	strictFlag := flag.Bool("strict", false, "Treat warnings as errors")
	maxFlag := flag.Int("max-diagnostics", 0, "Cap the number of reported diagnostics (0 = no cap)")

	flag.Parse()

	var (
		input string
		opts  driver.Options
	)
	if *manifestFlag != "" {
		manifest, err := driver.LoadManifest(*manifestFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tova-resolve: %v\n", err)
			os.Exit(70) // Exit code 70: internal software error
		}
		input = manifest.Input
		opts = manifest.DriverOptions()
	}
	if flag.NArg() == 1 {
		input = flag.Arg(0)
	}
	if input == "" || flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Usage: tova-resolve [options] <input.tova>\n")
		flag.PrintDefaults()
		os.Exit(64) // Exit code 64: command line usage error
	}
	if *strictFlag {
		opts.WarningsAsErrors = true
	}
	if *maxFlag > 0 {
		opts.MaxDiagnostics = *maxFlag
	}

	result, err := driver.CheckFile(input, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tova-resolve: %v\n", err)
		os.Exit(70)
	}
	result.Report(os.Stderr)
	if result.HasErrors() {
		os.Exit(1)
	}
}
