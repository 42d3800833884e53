package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestBuildExtractsHTMLMetadata(t *testing.T) {
	in := t.TempDir()
	writeFile(t, in, "a.html",
		`<html lang="en"><head><title>Home</title>`+
			`<meta name="description" content="A home page."></head><body></body></html>`)
	writeFile(t, in, "b.html", `<p>no html wrapper here</p>`)

	idx, err := Build(Options{InputDir: in})
	require.NoError(t, err)
	require.Len(t, idx.Pages, 1)

	page := idx.Pages[0]
	require.Equal(t, "a.html", page.Path)
	require.Equal(t, "en", page.Attrs["lang"])
	require.Equal(t, "Home", page.Title)
	require.Equal(t, "A home page.", page.Meta["description"])
}

func TestBuildReflectsExpandedTree(t *testing.T) {
	in := t.TempDir()
	writeFile(t, in, "index.html",
		`<def-page><html lang="en"><head><title><slot name="title"></slot></title></head>`+
			`<body><slot></slot></body></html></def-page>`+
			`<page><span slot="title">Hi</span><p>body</p></page>`)

	idx, err := Build(Options{InputDir: in})
	require.NoError(t, err)
	require.Len(t, idx.Pages, 1)
	require.Equal(t, "Hi", idx.Pages[0].Title)
	require.Equal(t, "en", idx.Pages[0].Attrs["lang"])
}

func TestWriteProducesIndentedJSON(t *testing.T) {
	idx := &Index{Pages: []PageMeta{{Path: "a.html", Attrs: map[string]string{"lang": "en"}}}}
	dst := filepath.Join(t.TempDir(), "out", "index.json")

	require.NoError(t, Write(idx, dst))

	raw, err := os.ReadFile(dst)
	require.NoError(t, err)

	var got Index
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, idx.Pages, got.Pages)
}
