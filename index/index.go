// Package index builds the discovery index: a second, independent walk of
// the input tree that parses and expands every HTML document exactly like
// the build package does, then lifts a conventional set of metadata off
// each document's top-level <html> element and writes the aggregate out as
// JSON.
package index

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ashgrove/compono"
)

// PageMeta is the metadata lifted from one document's <html> element.
type PageMeta struct {
	// Path is slash-separated, relative to the input root.
	Path string `json:"path"`
	// Attrs holds every attribute found on the top-level <html> element.
	Attrs map[string]string `json:"attrs,omitempty"`
	// Title is the verbatim text content of <head><title>, if present.
	Title string `json:"title,omitempty"`
	// Meta holds <head><meta name="X" content="Y"> pairs, keyed by name.
	Meta map[string]string `json:"meta,omitempty"`
}

// Index is the aggregate discovery document written to <output>/<name>.
type Index struct {
	Pages []PageMeta `json:"pages"`
}

// Options configures Build.
type Options struct {
	// InputDir is the source tree to walk. The index pass re-parses and
	// re-expands every HTML file independently of the build pass; nothing
	// is cached between the two.
	InputDir string
	// Logger receives per-file extraction warnings. Defaults to a
	// discarding logger.
	Logger *slog.Logger
}

// Build walks opts.InputDir, parses and expands every ".html"/".htm" file,
// and extracts PageMeta for each one that yields a top-level <html>
// element. A file that fails to parse into a usable <html> element is
// logged as a warning and omitted from the result; Build never aborts the
// whole index because one document is bad.
func Build(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	idx := &Index{}
	fsys := os.DirFS(opts.InputDir)

	err := fs.WalkDir(fsys, ".", func(relPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", relPath, err)
		}
		if d.IsDir() || !isHTML(relPath) {
			return nil
		}

		raw, rerr := fs.ReadFile(fsys, relPath)
		if rerr != nil {
			return fmt.Errorf("reading %s: %w", relPath, rerr)
		}

		b := compono.NewBuild(relPath)
		doc := compono.Parse(relPath, string(raw), b)
		compono.Expand(b, doc)

		meta, ok := extract(doc)
		if !ok {
			logger.Warn("no top-level <html> element found; omitting from index", "path", relPath)
			return nil
		}
		meta.Path = filepath.ToSlash(relPath)
		idx.Pages = append(idx.Pages, meta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// extract finds the first <html> element among doc's direct children
// (definitions have already been expanded away, so a component-emitted
// <html> is a direct child too) and lifts its attributes, <title>, and
// <meta> pairs. An <html> nested deeper in the tree is not found.
func extract(doc *compono.Node) (PageMeta, bool) {
	html, ok := findElement(doc, "html")
	if !ok {
		return PageMeta{}, false
	}

	meta := PageMeta{}
	for _, a := range html.Attrs {
		if meta.Attrs == nil {
			meta.Attrs = make(map[string]string)
		}
		if _, exists := meta.Attrs[a.Name]; !exists {
			meta.Attrs[a.Name] = a.Value
		}
	}

	head, ok := findElement(html, "head")
	if !ok {
		return meta, true
	}

	if title, ok := findElement(head, "title"); ok {
		meta.Title = textContent(title)
	}

	for _, c := range head.Children {
		if c.Kind != compono.ElementKind || c.Tag != "meta" {
			continue
		}
		name, hasName := c.Attr("name")
		content, hasContent := c.Attr("content")
		if !hasName || !hasContent || name == "" {
			continue
		}
		if meta.Meta == nil {
			meta.Meta = make(map[string]string)
		}
		if _, exists := meta.Meta[name]; !exists {
			meta.Meta[name] = content
		}
	}
	return meta, true
}

// findElement returns the first direct-child Element of n with the given
// tag. n itself is never returned, even if it has that tag.
func findElement(n *compono.Node, tag string) (*compono.Node, bool) {
	for _, c := range n.Children {
		if c.Kind == compono.ElementKind && c.Tag == tag {
			return c, true
		}
	}
	return nil, false
}

// textContent concatenates every Text descendant of n, verbatim and in
// document order. <title> content is expected to be plain text, but a
// component-authored title may legitimately wrap its text in an element
// (e.g. a <slot> substitution), so this walks the whole subtree rather
// than only n's direct children.
func textContent(n *compono.Node) string {
	var sb strings.Builder
	var walk func(*compono.Node)
	walk = func(cur *compono.Node) {
		if cur.Kind == compono.TextKind {
			sb.WriteString(cur.Text)
			return
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	for _, c := range n.Children {
		walk(c)
	}
	return sb.String()
}

func isHTML(p string) bool {
	ext := strings.ToLower(path.Ext(filepath.ToSlash(p)))
	return ext == ".html" || ext == ".htm"
}

// Write marshals idx as indented JSON to dstPath, creating parent
// directories as needed.
func Write(idx *Index, dstPath string) error {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dstPath, err)
	}
	f, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dstPath, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(idx); err != nil {
		return fmt.Errorf("encoding %s: %w", dstPath, err)
	}
	return nil
}
