package pipeline

import (
	"context"
	"fmt"

	"github.com/futureCreator/polyhello/internal/executor"
	"github.com/futureCreator/polyhello/internal/lang"
)

// Observer receives pipeline progress events. Implementations are purely
// presentational; the engine's behavior never depends on them.
type Observer interface {
	LanguageStart(spec *lang.Spec)
	StageStart(spec *lang.Spec, stage string, command []string)
	StageDone(spec *lang.Spec, stage string, res *executor.Result)
	StageSkipped(spec *lang.Spec, stage, reason string)
	LanguageDone(rec *Record)
}

type nopObserver struct{}

func (nopObserver) LanguageStart(*lang.Spec)                       {}
func (nopObserver) StageStart(*lang.Spec, string, []string)        {}
func (nopObserver) StageDone(*lang.Spec, string, *executor.Result) {}
func (nopObserver) StageSkipped(*lang.Spec, string, string)        {}
func (nopObserver) LanguageDone(*Record)                           {}

// Engine orchestrates the write → compile → run sequence for each language.
type Engine struct {
	Runner   executor.Runner
	Observer Observer
	Dir      string // workspace directory shared by all languages
}

func (e *Engine) observer() Observer {
	if e.Observer == nil {
		return nopObserver{}
	}
	return e.Observer
}

// Process runs all stages for one language, strictly in order, and returns
// its record. A failing stage marks the record failed and skips everything
// after it; the failure is data in the record, never an error that could
// stop the other languages.
func (e *Engine) Process(ctx context.Context, spec *lang.Spec) *Record {
	obs := e.observer()
	rec := &Record{Spec: spec}
	obs.LanguageStart(spec)

	obs.StageStart(spec, "write", nil)
	rec.Write = executor.WriteSource(spec, e.Dir)
	obs.StageDone(spec, "write", rec.Write)
	if !rec.Write.Succeeded {
		rec.Failed = true
		if !spec.Interpreted() {
			obs.StageSkipped(spec, "compile", "source write failed")
		}
		obs.StageSkipped(spec, "run", "source write failed")
		obs.LanguageDone(rec)
		return rec
	}

	for i, cmd := range spec.Compile {
		stage := compileStage(i, len(spec.Compile))
		obs.StageStart(spec, stage, cmd)
		res := e.Runner.Run(ctx, cmd, e.Dir)
		rec.Compile = append(rec.Compile, res)
		obs.StageDone(spec, stage, res)
		if !res.Succeeded {
			// Later steps consume this one's artifact; stop here.
			rec.Failed = true
			break
		}
	}

	if rec.Failed {
		obs.StageSkipped(spec, "run", "compilation failed")
	} else {
		obs.StageStart(spec, "run", spec.Run)
		rec.Run = e.Runner.Run(ctx, spec.Run, e.Dir)
		obs.StageDone(spec, "run", rec.Run)
		if !rec.Run.Succeeded {
			rec.Failed = true
		}
	}

	obs.LanguageDone(rec)
	return rec
}

// Execute processes every language in catalog order. Processing is strictly
// sequential: a language completes entirely before the next one begins, and
// a failed language never prevents the next from being attempted.
func (e *Engine) Execute(ctx context.Context, specs []*lang.Spec) ([]*Record, error) {
	records := make([]*Record, 0, len(specs))
	for _, spec := range specs {
		select {
		case <-ctx.Done():
			return records, ctx.Err()
		default:
		}
		records = append(records, e.Process(ctx, spec))
	}
	return records, nil
}

func compileStage(index, total int) string {
	if total == 1 {
		return "compile"
	}
	return fmt.Sprintf("compile %d/%d", index+1, total)
}
