package diag

// Level is the severity of a diagnostic.
type Level int

const (
	Info Level = iota
	Warning
	Error
	Fatal
)

// String names a level the way the rendered header spells it.
func (l Level) String() string {
	switch l {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Diagnostic is a levelled message anchored to a span. It carries its
// own copy of the source text and file label so that Formatter.Format
// can be called repeatedly, and can be called long after the stage that
// produced the diagnostic has finished. A Code of zero means "no code"
// and is omitted from the rendered header.
type Diagnostic struct {
	Level  Level
	Desc   string
	Help   string
	Span   Span
	File   string
	Source string
	Code   uint64
}

// New builds a diagnostic with Code left at zero ("no code").
func New(level Level, desc, help string, span Span, file, source string) Diagnostic {
	return Diagnostic{
		Level:  level,
		Desc:   desc,
		Help:   help,
		Span:   span,
		File:   file,
		Source: source,
	}
}

// WithCode returns a copy of the diagnostic carrying the given numeric
// code, leaving the receiver untouched.
func (d Diagnostic) WithCode(code uint64) Diagnostic {
	d.Code = code
	return d
}

// WithHelp returns a copy of the diagnostic with a replaced help hint.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
