package diag

import "fmt"

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic is one reported issue with a location and a message.
type Diagnostic struct {
	Severity Severity
	Position Position
	Msg      string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %d:%d: %s", d.Severity, d.Position.Line, d.Position.Column, d.Msg)
}

// Sink accepts diagnostics. Resolution writes into it and never reads back;
// callers inspect the accumulated diagnostics after a pass completes.
type Sink interface {
	Error(pos Position, msg string)
	Warning(pos Position, msg string)
	TypeMismatch(pos Position, expected, actual fmt.Stringer)
}

// Bag is the accumulating Sink used by the resolution pipeline. Diagnostics
// are kept in report order.
type Bag struct {
	diagnostics []Diagnostic
}

func NewBag() *Bag {
	return &Bag{}
}

func (b *Bag) Error(pos Position, msg string) {
	b.diagnostics = append(b.diagnostics, Diagnostic{Severity: SeverityError, Position: pos, Msg: msg})
}

func (b *Bag) Warning(pos Position, msg string) {
	b.diagnostics = append(b.diagnostics, Diagnostic{Severity: SeverityWarning, Position: pos, Msg: msg})
}

func (b *Bag) TypeMismatch(pos Position, expected, actual fmt.Stringer) {
	b.Error(pos, fmt.Sprintf("type mismatch: expected %s, got %s", expected, actual))
}

// Diagnostics returns everything reported so far, in report order.
func (b *Bag) Diagnostics() []Diagnostic {
	return b.diagnostics
}

// Errors returns only the error-severity diagnostics.
func (b *Bag) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range b.diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

func (b *Bag) HasErrors() bool {
	for _, d := range b.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int { return len(b.diagnostics) }

// Promote rewrites every warning into an error. Used by the driver when the
// warnings-as-errors option is set.
func (b *Bag) Promote() {
	for i := range b.diagnostics {
		b.diagnostics[i].Severity = SeverityError
	}
}
