package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/futureCreator/polyhello/internal/assets"
	"github.com/futureCreator/polyhello/internal/config"
	"github.com/futureCreator/polyhello/internal/executor"
	"github.com/futureCreator/polyhello/internal/lang"
	vlog "github.com/futureCreator/polyhello/internal/log"
	"github.com/futureCreator/polyhello/internal/pipeline"
	"github.com/futureCreator/polyhello/internal/workspace"
)

type demoOptions struct {
	plain     bool
	keep      bool
	verbose   bool
	languages []string
	workspace string
}

// runDemo is the shared entry point for the run command. Per-language
// failures are presented but never surface as an error here: a non-nil
// return (and its non-zero exit code) is reserved for environment-level
// failures like an unusable workspace.
func runDemo(ctx context.Context, opts demoOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logFile := openLogFile()
	vlog.Init(cfg.LogLevel, logFile)
	if logFile != nil {
		defer logFile.Close()
	}

	specs, err := assets.Catalog()
	if err != nil {
		return fmt.Errorf("loading language catalog: %w", err)
	}
	specs, err = filterLanguages(specs, cfg.Languages)
	if err != nil {
		return err
	}

	ws, err := workspace.New(cfg.Workspace.Root)
	if err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}
	vlog.Info("workspace created", "id", ws.ID, "dir", ws.Dir)

	disp := pipeline.NewDisplay(cfg.Display.Animate, cfg.Display.ParsedRevealDelay())
	disp.Header(ws.Dir)
	disp.RevealSources(specs)

	engine := &pipeline.Engine{
		Runner:   executor.CommandRunner{},
		Observer: disp,
		Dir:      ws.Dir,
	}

	start := time.Now()
	records, execErr := engine.Execute(ctx, specs)

	for _, rec := range records {
		if err := ws.AddLanguage(languageMeta(rec)); err != nil {
			vlog.Warn("failed to save language result", "language", rec.Spec.Name, "err", err)
		}
	}

	if execErr != nil {
		if err := ws.Fail(execErr.Error()); err != nil {
			vlog.Error("failed to update workspace meta", "err", err)
		}
		return execErr
	}

	disp.Report(records)
	if err := ws.Complete(); err != nil {
		vlog.Warn("failed to mark run complete", "err", err)
	}
	disp.Summary(records, time.Since(start))

	if !cfg.Workspace.Keep {
		if err := ws.Cleanup(); err != nil {
			vlog.Warn("workspace cleanup failed", "dir", ws.Dir, "err", err)
		}
	}
	return nil
}

func applyFlags(cfg *config.Config, opts demoOptions) {
	if opts.plain {
		cfg.Display.Animate = false
	}
	if opts.keep {
		cfg.Workspace.Keep = true
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	if len(opts.languages) > 0 {
		cfg.Languages = opts.languages
	}
	if opts.workspace != "" {
		cfg.Workspace.Root = opts.workspace
	}
}

// filterLanguages keeps the catalog's order and returns only the named
// languages (case-insensitive). An empty filter keeps everything; an
// unknown name is an error rather than a silent no-op.
func filterLanguages(specs []*lang.Spec, names []string) ([]*lang.Spec, error) {
	if len(names) == 0 {
		return specs, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.ToLower(n)] = false
	}
	var out []*lang.Spec
	for _, spec := range specs {
		key := strings.ToLower(spec.Name)
		if _, ok := wanted[key]; ok {
			wanted[key] = true
			out = append(out, spec)
		}
	}
	for name, found := range wanted {
		if !found {
			return nil, fmt.Errorf("unknown language %q (see `polyhello list`)", name)
		}
	}
	return out, nil
}

func languageMeta(rec *pipeline.Record) workspace.LanguageMeta {
	lm := workspace.LanguageMeta{
		Name:    rec.Spec.Name,
		Failed:  rec.Failed,
		Timings: rec.Timings(),
	}
	if rec.Run != nil {
		lm.Stdout = strings.TrimSpace(rec.Run.Stdout)
	}
	if rec.Failed {
		lm.Stderr = rec.FailureDetail()
	}
	return lm
}

func openLogFile() *os.File {
	dir := ".polyhello"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "polyhello.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	return f
}
