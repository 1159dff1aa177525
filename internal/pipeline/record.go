// Package pipeline drives the per-language write/compile/run sequence and
// renders its progress.
package pipeline

import (
	"fmt"

	"github.com/futureCreator/polyhello/internal/executor"
	"github.com/futureCreator/polyhello/internal/lang"
)

// Record accumulates the outcome of one language's pipeline pass. It is
// mutated only by the engine while the language is being processed and is
// read-only once handed to the reporter.
type Record struct {
	Spec    *lang.Spec
	Write   *executor.Result
	Compile []*executor.Result
	Run     *executor.Result
	Failed  bool
}

// Timings maps stage names to elapsed seconds for the stages that actually
// ran. Skipped stages are absent keys, not zeros, so "never attempted" stays
// distinguishable from "ran in 0 seconds". The total sums exactly the
// present stages.
func (r *Record) Timings() map[string]float64 {
	t := make(map[string]float64)
	total := 0.0
	if r.Write != nil {
		t["write"] = r.Write.Duration.Seconds()
		total += t["write"]
	}
	for i, c := range r.Compile {
		key := fmt.Sprintf("compile_%d", i+1)
		t[key] = c.Duration.Seconds()
		total += t[key]
	}
	if r.Run != nil {
		t["run"] = r.Run.Duration.Seconds()
		total += t["run"]
	}
	t["total"] = total
	return t
}

// Output returns the run stage's stdout, or empty if the run never happened.
func (r *Record) Output() string {
	if r.Run == nil {
		return ""
	}
	return r.Run.Stdout
}

// FailureDetail returns the stderr (falling back to stdout) of the first
// failed stage, for display purposes.
func (r *Record) FailureDetail() string {
	stages := []*executor.Result{r.Write}
	stages = append(stages, r.Compile...)
	stages = append(stages, r.Run)
	for _, res := range stages {
		if res == nil || res.Succeeded {
			continue
		}
		if res.Stderr != "" {
			return res.Stderr
		}
		return res.Stdout
	}
	return ""
}
