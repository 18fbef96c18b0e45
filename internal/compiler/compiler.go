// Package compiler wires the lexer, parser, and analyzer into the two
// public entry points a driver needs: compile a source string, or
// compile a file.
package compiler

import (
	"fmt"
	"os"

	"github.com/mlang/ml-frontend/internal/analyzer"
	"github.com/mlang/ml-frontend/internal/ast"
	"github.com/mlang/ml-frontend/internal/diag"
	"github.com/mlang/ml-frontend/internal/parser"
	"github.com/mlang/ml-frontend/internal/printer"
)

// Exit codes: 0 on success, 1 when compilation produced any Error or
// Fatal diagnostic.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Config groups the compile-time options CompileSource/CompileFile
// accept, in place of a run of bare bool parameters.
type Config struct {
	// Debug enables tree-printing of the parsed program, including a
	// partial one when parsing reported errors.
	Debug bool
	// JSON selects the printer's machine-readable output mode instead of
	// the indented text form, when Debug is set.
	JSON bool
}

// Result carries everything a driver needs to report the outcome of a
// compilation: the exit code, every diagnostic gathered across lexing,
// parsing, and analysis, and the AST the parser built (partial when
// parsing reported errors).
type Result struct {
	ExitCode    int
	Diagnostics []diag.Diagnostic
	Program     *ast.Program
}

// CompileSource lexes, parses, and analyzes source, labeling
// diagnostics with file. It always returns a Result; a syntactically
// broken program still produces whatever prefix the parser managed to
// build. Diagnostics stay in source order, and the analyzer only runs
// when parsing produced a program to walk.
func CompileSource(source, file string, cfg Config) Result {
	program, parseDiags := parser.Parse(source, file)

	var allDiags []diag.Diagnostic
	allDiags = append(allDiags, parseDiags...)

	a := analyzer.New(file, source)
	if program != nil {
		a.Analyze(program)
		allDiags = append(allDiags, a.Diagnostics()...)
	}

	exitCode := ExitSuccess
	for _, d := range allDiags {
		if d.Level == diag.Error || d.Level == diag.Fatal {
			exitCode = ExitFailure
			break
		}
	}

	if cfg.Debug && program != nil {
		if cfg.JSON {
			if err := printer.PrintJSON(os.Stdout, program); err != nil {
				fmt.Fprintf(os.Stderr, "failed to print AST as JSON: %v\n", err)
			}
		} else {
			printer.Print(os.Stdout, program)
		}
	}

	return Result{ExitCode: exitCode, Diagnostics: allDiags, Program: program}
}

// CompileFile reads path and delegates to CompileSource. A read
// failure is reported as a Result carrying ExitFailure and a single
// diagnostic, rather than a Go error, so callers have one uniform
// success/failure shape to inspect.
func CompileFile(path string, cfg Config) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{
			ExitCode: ExitFailure,
			Diagnostics: []diag.Diagnostic{
				diag.New(diag.Fatal, fmt.Sprintf("Cannot read file '%s': %v", path, err),
					"Check that the path exists and is readable.",
					diag.Span{}, path, ""),
			},
		}
	}
	return CompileSource(string(data), path, cfg)
}
