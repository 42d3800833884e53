package main

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

// resetGlobals restores the package-level flag/exit-code state that run()
// and its cobra flags mutate, so tests in this file don't bleed into
// each other.
func resetGlobals() {
	indexName = "index.json"
	verbose = false
	exitCode = 0
}

func TestRunBuildsOutputAndIndex(t *testing.T) {
	resetGlobals()
	in := t.TempDir()
	out := t.TempDir()

	writeFile(t, in, "index.html", `<html lang="en"><head><title>Home</title></head><body>hi</body></html>`)
	writeFile(t, in, "style.css", "body{}")

	err := run(rootCmd, []string{in, out})
	require.NoError(t, err)
	require.Equal(t, 0, exitCode)

	raw, err := os.ReadFile(filepath.Join(out, "index.json"))
	require.NoError(t, err)

	var doc struct {
		Pages []struct {
			Path  string `json:"path"`
			Title string `json:"title"`
		} `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Pages, 1)
	require.Equal(t, "Home", doc.Pages[0].Title)
}

func TestRunSetsExitCodeOneOnLoggedError(t *testing.T) {
	resetGlobals()
	in := t.TempDir()
	out := t.TempDir()

	writeFile(t, in, "bad.html", `<def-1bad><p>x</p></def-1bad>`)

	err := run(rootCmd, []string{in, out})
	require.NoError(t, err) // diagnostics don't abort the build
	require.Equal(t, 1, exitCode)
}

func TestArgCountMismatchMapsToExitCodeTwo(t *testing.T) {
	resetGlobals()
	rootCmd.SetArgs([]string{"only-one-arg"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	require.ErrorIs(t, err, errArgCount)
}
