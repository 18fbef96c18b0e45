package diag

import (
	"fmt"
	"io"
	"strings"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[91m"
	ansiYellow = "\033[93m"
	ansiBlue   = "\033[94m"
	ansiWhite  = "\033[97m"
	ansiCyan   = "\033[96m"
)

// Formatter renders diagnostics in a fixed layout: a colored level
// header, a "--> file:line:col" pointer, the offending source line, a
// caret underline, and a help line. Rendering is pure and may be
// repeated; the only state is whether to emit color codes.
type Formatter struct {
	// UseColor enables ANSI escapes. The stdlib has no portable isatty
	// check, so the CLI driver decides this once and passes it in here
	// rather than the formatter probing a stream itself.
	UseColor bool
}

// NewFormatter builds a Formatter with the given color setting.
func NewFormatter(useColor bool) Formatter {
	return Formatter{UseColor: useColor}
}

func (f Formatter) color(code string) string {
	if !f.UseColor {
		return ""
	}
	return code
}

func (f Formatter) levelColor(level Level) string {
	switch level {
	case Info:
		return f.color(ansiCyan)
	case Warning:
		return f.color(ansiYellow)
	case Error, Fatal:
		return f.color(ansiRed)
	default:
		return f.color(ansiWhite)
	}
}

func sourceLine(source string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line <= len(lines) {
		return lines[line-1]
	}
	return ""
}

func lineNumberWidth(start, end int) int {
	maxLine := start
	if end > maxLine {
		maxLine = end
	}
	if maxLine == 0 {
		maxLine = 1
	}
	return len(fmt.Sprintf("%d", maxLine))
}

// Format renders a single diagnostic. It never returns an error;
// rendering failures are not a modeled failure mode for this front end.
func (f Formatter) Format(d Diagnostic) string {
	var b strings.Builder
	reset := f.color(ansiReset)
	bold := f.color(ansiBold)
	dim := f.color(ansiDim)
	blue := f.color(ansiBlue)
	level := f.levelColor(d.Level)

	fmt.Fprintf(&b, "%s%s%s%s", level, bold, d.Level.String(), reset)
	if d.Code != 0 {
		fmt.Fprintf(&b, "%s[%04d]%s", dim, d.Code, reset)
	}
	fmt.Fprintf(&b, ": %s%s%s\n", bold, d.Desc, reset)

	start := d.Span.Start
	end := d.Span.End

	if start.Line > 0 {
		displayColumn := start.Column
		if start.Column > 1 {
			displayColumn = start.Column - 1
		}
		fmt.Fprintf(&b, "%s   --> %s:%d:%d%s\n", dim, d.File, start.Line, displayColumn, reset)
	}

	fmt.Fprintf(&b, "%s  |%s\n", dim, reset)

	if start.Line > 0 {
		width := lineNumberWidth(start.Line, end.Line)
		line := sourceLine(d.Source, start.Line)

		fmt.Fprintf(&b, "%s%*d | %s%s\n", dim, width, start.Line, reset, line)

		pad := strings.Repeat(" ", width)
		fmt.Fprintf(&b, "%s%s | %s", dim, pad, reset)

		errorStart := 0
		if start.Column > 1 {
			errorStart = start.Column - 1
		}
		errorLength := 2
		if end.Column > start.Column {
			errorLength = end.Column - start.Column
		}

		b.WriteString(strings.Repeat(" ", errorStart))
		fmt.Fprintf(&b, "%s%s%s%s\n", level, bold, strings.Repeat("^", errorLength), reset)

		fmt.Fprintf(&b, "%s%s | %s\n", dim, pad, reset)
		fmt.Fprintf(&b, "%s%s | %s%shelp: %s%s\n", dim, pad, reset, blue, reset, d.Help)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	return b.String()
}

// Fprint writes the rendered diagnostic to w.
func (f Formatter) Fprint(w io.Writer, d Diagnostic) error {
	_, err := io.WriteString(w, f.Format(d))
	return err
}

// FprintAll renders each diagnostic in the order given, preserving the
// pipeline's source-order guarantee.
func (f Formatter) FprintAll(w io.Writer, diags []Diagnostic) error {
	for _, d := range diags {
		if err := f.Fprint(w, d); err != nil {
			return err
		}
	}
	return nil
}
