package compono

import (
	"strings"
	"testing"
)

func TestDiagnosticErrorIncludesFileLineAndPath(t *testing.T) {
	b := NewBuild("page.html")
	doc := Parse("page.html", `<div><widget-x></widget-x></div>`, b)
	Expand(b, doc)

	if got, want := b.WarningCount(), 1; got != want {
		t.Fatalf("WarningCount() = %d, want %d", got, want)
	}
	d := b.Diagnostics()[0]
	if d.Path != "div/widget-x" {
		t.Errorf("Path = %q, want %q", d.Path, "div/widget-x")
	}
	msg := d.Error()
	if !strings.HasPrefix(msg, "page.html:1:") {
		t.Errorf("Error() = %q, want a page.html:1: prefix", msg)
	}
	if !strings.Contains(msg, "(at /div/widget-x)") {
		t.Errorf("Error() = %q, want it to include the node path", msg)
	}
}

func TestErrAggregatesEveryDiagnostic(t *testing.T) {
	b := NewBuild("page.html")
	doc := Parse("page.html", `<def-1bad></def-1bad><widget-y></widget-y>`, b)
	Expand(b, doc)

	err := b.Err()
	if err == nil {
		t.Fatal("Err() = nil, want a combined error for the recorded diagnostics")
	}
	// one error (invalid definition tag) + one warning (unknown invocation).
	if got, want := b.ErrorCount()+b.WarningCount(), 2; got != want {
		t.Fatalf("got %d total diagnostics, want %d", got, want)
	}
}
