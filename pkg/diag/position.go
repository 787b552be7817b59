package diag

import "tova/pkg/source"

// Position represents a specific location in the input.
// Line and column are 1-based for human-readability; the byte offsets are
// 0-based and kept for tooling.
type Position struct {
	Line     int          // 1-based line number
	Column   int          // 1-based column number
	StartPos int          // 0-based byte offset of the start of the span
	EndPos   int          // 0-based byte offset of the end of the span (exclusive)
	Source   *source.File // Reference to the input file, may be nil
}

// At builds a position from a line and column with an empty span.
func At(line, column int) Position {
	return Position{Line: line, Column: column}
}

// IsZero reports whether the position carries no location information.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.StartPos == 0 && p.EndPos == 0
}
