package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommandRunner runs commands as local subprocesses.
//
// No timeout is enforced: the demo programs terminate near-instantly, so a
// hung toolchain is left to the user's Ctrl+C (the passed context still
// cancels the child).
type CommandRunner struct{}

// Run spawns the command with dir as its working directory and waits for it
// to exit. Every failure mode, including a missing executable, comes back as
// a failed Result rather than an error: one absent compiler must not abort
// the other languages.
func (CommandRunner) Run(ctx context.Context, command []string, dir string) *Result {
	res := &Result{Command: command}
	if len(command) == 0 {
		res.Stderr = "empty command"
		return res
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res.Duration = time.Since(start)
	res.Stdout = decode(stdout.Bytes())
	res.Stderr = decode(stderr.Bytes())

	switch {
	case err == nil:
		res.Succeeded = true
	case isExitError(err):
		// Ran but exited nonzero; the captured streams tell the story.
	default:
		// Spawn failure: the tool does not exist or cannot start.
		res.Duration = 0
		res.Stderr = fmt.Sprintf("cannot run %q: %v", command[0], err)
	}
	return res
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

// decode converts captured bytes to text, replacing invalid UTF-8 so output
// capture can never fail.
func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
