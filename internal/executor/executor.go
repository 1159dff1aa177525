// Package executor runs external toolchain commands and captures their
// outcomes. It is the single integration point with whatever compilers,
// assemblers, and interpreters happen to be installed.
package executor

import (
	"context"
	"time"
)

// Result records the outcome of a single stage: one subprocess invocation
// or one source file write. A Result is created fresh per attempt and never
// mutated afterwards.
type Result struct {
	Command   []string
	Succeeded bool
	Duration  time.Duration
	Stdout    string
	Stderr    string
}

// Runner executes one external command in a working directory, blocking
// until the child process exits.
type Runner interface {
	Run(ctx context.Context, command []string, dir string) *Result
}
