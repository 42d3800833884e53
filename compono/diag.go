package compono

import (
	"fmt"

	"go.uber.org/multierr"
)

// Severity classifies a Diagnostic. Errors push the build's overall exit
// code to non-zero; warnings never do.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a single error or warning, carrying enough source context to
// point a user at the offending byte range. None of these abort processing:
// the engine always continues, leaving the offending node in place or
// substituting an empty value, per spec.
type Diagnostic struct {
	Severity Severity
	Message  string
	Source   Span
	// Path is the "/"-joined chain of element tags from the document root
	// down to the offending node, when the diagnostic was raised against a
	// specific Node (see Build.WarnfAt/ErrorfAt). Empty otherwise.
	Path string
}

func (d *Diagnostic) Error() string {
	msg := d.Message
	if d.Path != "" {
		msg = fmt.Sprintf("%s (at /%s)", msg, d.Path)
	}
	if d.Source.File == "" {
		return msg
	}
	if d.Source.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", d.Source.File, d.Source.Line, msg)
	}
	return fmt.Sprintf("%s: %s", d.Source.File, msg)
}

// Build is the mutable diagnostics context threaded through one file's
// processing chain: parse and expand both log through the same Build so
// error_count/warning_count accumulate across the whole pipeline (serialize
// emits no diagnostics).
// It is not shared across files — each file gets its own Build (there is no
// concurrency to guard against, per the single-threaded resource model).
type Build struct {
	File string

	diags []*Diagnostic

	errorCount   int
	warningCount int
}

// NewBuild returns a Build scoped to the given source file name, used only
// for messages — it does not open or read the file.
func NewBuild(file string) *Build {
	return &Build{File: file}
}

// Errorf records an error-level diagnostic at src.
func (b *Build) Errorf(src Span, format string, args ...any) {
	b.log(SeverityError, src, "", fmt.Sprintf(format, args...))
}

// Warnf records a warning-level diagnostic at src.
func (b *Build) Warnf(src Span, format string, args ...any) {
	b.log(SeverityWarning, src, "", fmt.Sprintf(format, args...))
}

// ErrorfAt is Errorf, but additionally records n's path from the document
// root for diagnostics that can point at more than just a byte offset.
func (b *Build) ErrorfAt(n *Node, format string, args ...any) {
	b.log(SeverityError, n.Source, pathToRoot(n), fmt.Sprintf(format, args...))
}

// WarnfAt is Warnf, but additionally records n's path from the document
// root for diagnostics that can point at more than just a byte offset.
func (b *Build) WarnfAt(n *Node, format string, args ...any) {
	b.log(SeverityWarning, n.Source, pathToRoot(n), fmt.Sprintf(format, args...))
}

func (b *Build) log(sev Severity, src Span, path, msg string) {
	if src.File == "" {
		src.File = b.File
	}
	d := &Diagnostic{Severity: sev, Message: msg, Source: src, Path: path}
	b.diags = append(b.diags, d)
	if sev == SeverityError {
		b.errorCount++
	} else {
		b.warningCount++
	}
}

// Diagnostics returns every diagnostic recorded so far, in emission order.
func (b *Build) Diagnostics() []*Diagnostic {
	return b.diags
}

// ErrorCount returns the number of error-severity diagnostics recorded.
func (b *Build) ErrorCount() int {
	return b.errorCount
}

// WarningCount returns the number of warning-severity diagnostics recorded.
func (b *Build) WarningCount() int {
	return b.warningCount
}

// Err joins every recorded diagnostic into a single error via multierr, or
// returns nil if nothing was recorded. It is not whether the build failed —
// use ErrorCount for that — it is a convenient way to propagate every
// diagnostic (warnings included) up to a caller that wants to log them all.
func (b *Build) Err() error {
	var err error
	for _, d := range b.diags {
		err = multierr.Append(err, d)
	}
	return err
}

// pathToRoot builds a "/"-joined path of element tags from the document root
// down to n, for use in diagnostic messages that reference "<tag>".
func pathToRoot(n *Node) string {
	var tags []string
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Kind == ElementKind {
			tags = append(tags, cur.Tag)
		}
	}
	for i, j := 0, len(tags)-1; i < j; i, j = i+1, j-1 {
		tags[i], tags[j] = tags[j], tags[i]
	}
	s := ""
	for i, t := range tags {
		if i > 0 {
			s += "/"
		}
		s += t
	}
	return s
}
