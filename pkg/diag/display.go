package diag

import (
	"fmt"
	"io"
	"strings"
)

// Display writes diagnostics to w in a user-friendly format, including the
// offending source line and a position marker when the position carries a
// source reference.
func Display(w io.Writer, diagnostics []Diagnostic) {
	for _, d := range diagnostics {
		pos := d.Position

		if pos.Source == nil || pos.Line < 1 || pos.Line > len(pos.Source.Lines()) {
			fmt.Fprintf(w, "%s: %s\n", d.Severity, d.Msg)
			continue
		}

		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", pos.Source.DisplayPath(), pos.Line, pos.Column, d.Severity, d.Msg)

		sourceLine := strings.TrimRight(pos.Source.Lines()[pos.Line-1], "\r\n\t ")
		fmt.Fprintf(w, "  %s\n", sourceLine)

		marker := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"
		fmt.Fprintf(w, "  %s\n", marker)
	}
}
