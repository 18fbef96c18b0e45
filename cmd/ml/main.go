// Command ml is the front end's CLI driver: it compiles a single ML
// source file and reports diagnostics to stderr. The argument contract
// is a single positional file plus -g/--debug and -json, with
// unrecognized flags logged rather than treated as fatal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mlang/ml-frontend/internal/compiler"
	"github.com/mlang/ml-frontend/internal/diag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ml", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	debug := fs.Bool("debug", false, "print the parsed AST")
	fs.BoolVar(debug, "g", false, "shorthand for -debug")
	jsonOut := fs.Bool("json", false, "with -debug, print the AST as JSON instead of an indented tree")
	useColor := fs.Bool("color", defaultUseColor(), "colorize diagnostics")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ml [options] <file>\n\nOptions:\n")
		fs.PrintDefaults()
	}

	// Unrecognized flags are logged but not treated as a hard error;
	// -h/-help prints the usage text and exits with a failure code.
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return compiler.ExitFailure
		}
		log.Printf("ignoring argument error: %v", err)
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return compiler.ExitFailure
	}

	path := fs.Arg(0)
	result := compiler.CompileFile(path, compiler.Config{Debug: *debug, JSON: *jsonOut})

	formatter := diag.NewFormatter(*useColor)
	if err := formatter.FprintAll(os.Stderr, result.Diagnostics); err != nil {
		log.Printf("failed to write diagnostics: %v", err)
	}

	if result.ExitCode == compiler.ExitSuccess {
		fmt.Println("Compilation successful!")
	} else {
		fmt.Println("Compilation failed.")
	}

	return result.ExitCode
}

// defaultUseColor is a stdlib stand-in for a portable isatty check: a
// character device stderr is treated as a terminal, and anything else
// (a pipe, a redirected file) disables color.
func defaultUseColor() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
