package compono

// Span locates a byte range within a source file, for diagnostics.
type Span struct {
	File   string // source file path; empty if unknown
	Offset int    // byte offset in the file
	Line   int    // 1-based line number
	Column int    // 1-based column number (in bytes)
	Length int    // length in bytes
}

// IsZero reports whether the span was never set.
func (s Span) IsZero() bool {
	return s.File == "" && s.Offset == 0 && s.Line == 0 && s.Column == 0 && s.Length == 0
}
