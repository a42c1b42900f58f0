/*
Algocc compiles one algocc source file to its target C rendering.

Usage:

	algocc [flags] <input-path> [output-path]

The flags are:

	-o, --output FILE
		Write the emitted source to FILE instead of the positional
		output-path argument.

	--emit-only
		Skip writing the .algocache sidecar even when caching is enabled.
		An existing sidecar is not read either (same effect as --no-cache).

	--no-cache
		Ignore any existing .algocache sidecar and do not write a new one.

	-v, --version
		Give the current version of algocc and then exit.

Exit code is 0 if the diagnostic sink came back empty, 1 if it holds any
diagnostic, or 2 if the compile could not even start (bad flags, unreadable
input file). Diagnostics are always written to standard error.
*/
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/dekarrin/algoc/internal/config"
	"github.com/dekarrin/algoc/internal/session"
)

// errLog writes to standard error with no timestamp prefix: diagnostics
// already carry their own line/column, so a log timestamp would only add
// noise.
var errLog = log.New(os.Stderr, "", 0)

const (
	// ExitSuccess indicates a clean compile: the diagnostic sink was empty.
	ExitSuccess = iota

	// ExitCompileError indicates the diagnostic sink held at least one
	// diagnostic; no output was written.
	ExitCompileError

	// ExitInitError indicates the driver could not even start the compile:
	// bad flags or an unreadable input file.
	ExitInitError
)

const version = "0.1.0"

var (
	returnCode = ExitSuccess

	flagVersion  = pflag.BoolP("version", "v", false, "Gives the version info")
	flagOutput   = pflag.StringP("output", "o", "", "Write emitted source to this path instead of the positional output-path")
	flagEmitOnly = pflag.Bool("emit-only", false, "Skip writing the .algocache sidecar")
	flagNoCache  = pflag.Bool("no-cache", false, "Ignore and do not write the .algocache sidecar")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("algocc %s\n", version)
		return
	}

	args := pflag.Args()
	if len(args) < 1 {
		errLog.Println("ERROR: missing <input-path>")
		returnCode = ExitInitError
		return
	}
	inputPath := args[0]

	outputPath := *flagOutput
	if outputPath == "" && len(args) >= 2 {
		outputPath = args[1]
	}

	cfg, err := config.Load(filepath.Join(filepath.Dir(inputPath), "algoc.toml"))
	if err != nil {
		errLog.Printf("ERROR: %s", err)
		returnCode = ExitInitError
		return
	}
	if *flagEmitOnly || *flagNoCache {
		cfg.Cache.Enabled = false
	}

	sess := session.New(cfg)
	result, err := sess.Compile(inputPath)
	if err != nil {
		errLog.Printf("ERROR: %s", err)
		returnCode = ExitInitError
		return
	}

	errLog.Printf("correlation id: %s", result.CorrelationID)

	if !result.Clean() {
		for _, d := range result.Diagnostics {
			errLog.Print(d)
		}
		returnCode = ExitCompileError
		return
	}

	if outputPath == "" {
		fmt.Print(result.Emitted)
		return
	}

	if err := os.WriteFile(outputPath, []byte(result.Emitted), 0o644); err != nil {
		errLog.Printf("ERROR: writing %s: %s", outputPath, err)
		returnCode = ExitInitError
		return
	}
}
