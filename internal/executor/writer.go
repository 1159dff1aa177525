package executor

import (
	"os"
	"path/filepath"
	"time"

	"github.com/futureCreator/polyhello/internal/lang"
)

// WriteSource persists the spec's source text into dir, overwriting any
// previous copy. The write is timed and reported as a Result like any other
// stage; a filesystem failure marks the Result failed with the OS error in
// Stderr, which makes the caller skip the remaining stages for that
// language only.
func WriteSource(spec *lang.Spec, dir string) *Result {
	res := &Result{Command: []string{"write", spec.Filename}}

	start := time.Now()
	if err := os.MkdirAll(dir, 0755); err != nil {
		res.Stderr = err.Error()
		return res
	}
	path := filepath.Join(dir, spec.Filename)
	if err := os.WriteFile(path, []byte(spec.SourceText()), 0644); err != nil {
		res.Duration = time.Since(start)
		res.Stderr = err.Error()
		return res
	}

	res.Duration = time.Since(start)
	res.Succeeded = true
	return res
}
