package build

import (
	"fmt"
	"os"

	"github.com/ashgrove/compono"
)

// ProcessFile reads src, runs it through parse → expand → serialize, and
// writes the result to dst. It returns the Build diagnostics context
// accumulated across the whole chain so the caller can log and tally it.
func ProcessFile(src, dst string) (*compono.Build, error) {
	raw, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}

	b := compono.NewBuild(src)
	doc := compono.Parse(src, string(raw), b)
	compono.Expand(b, doc)
	out := compono.Serialize(doc)

	if err := os.WriteFile(dst, []byte(out), 0o644); err != nil {
		return b, fmt.Errorf("writing %s: %w", dst, err)
	}
	return b, nil
}
