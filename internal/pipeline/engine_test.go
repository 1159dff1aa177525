package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/futureCreator/polyhello/internal/executor"
	"github.com/futureCreator/polyhello/internal/lang"
)

// fakeRunner scripts results by the command's first token and records every
// invocation, so tests can assert which commands ran and in what order.
type fakeRunner struct {
	calls   [][]string
	results map[string]*executor.Result
}

func (f *fakeRunner) Run(ctx context.Context, command []string, dir string) *executor.Result {
	f.calls = append(f.calls, command)
	if res, ok := f.results[command[0]]; ok {
		out := *res
		out.Command = command
		return &out
	}
	return &executor.Result{Command: command, Succeeded: true, Duration: time.Millisecond}
}

func failed(stderr string) *executor.Result {
	return &executor.Result{Succeeded: false, Stderr: stderr}
}

func cSpec() *lang.Spec {
	return &lang.Spec{
		Name:     "C",
		Filename: "hello.c",
		Source:   []string{"int main(void){return 0;}"},
		Compile:  [][]string{{"gcc", "hello.c", "-o", "hello_c"}},
		Run:      []string{"./hello_c"},
	}
}

func TestProcessSuccess(t *testing.T) {
	runner := &fakeRunner{results: map[string]*executor.Result{
		"./hello_c": {Succeeded: true, Stdout: "Hello World\n", Duration: time.Millisecond},
	}}
	e := &Engine{Runner: runner, Dir: t.TempDir()}

	rec := e.Process(context.Background(), cSpec())

	if rec.Failed {
		t.Fatal("record should not be failed")
	}
	if len(rec.Compile) != 1 {
		t.Fatalf("expected 1 compile result, got %d", len(rec.Compile))
	}
	if rec.Run == nil || !strings.Contains(rec.Run.Stdout, "Hello World") {
		t.Errorf("run stdout missing greeting: %+v", rec.Run)
	}
	if !rec.Write.Succeeded {
		t.Error("write stage should succeed")
	}
}

func TestProcessMissingCompiler(t *testing.T) {
	runner := &fakeRunner{results: map[string]*executor.Result{
		"gcc": failed(`cannot run "gcc": executable file not found`),
	}}
	e := &Engine{Runner: runner, Dir: t.TempDir()}

	rec := e.Process(context.Background(), cSpec())

	if !rec.Failed {
		t.Fatal("record should be failed")
	}
	if len(rec.Compile) != 1 || rec.Compile[0].Succeeded {
		t.Errorf("expected one failed compile result, got %+v", rec.Compile)
	}
	if rec.Run != nil {
		t.Error("run stage should be skipped after compile failure")
	}
}

func TestProcessInterpretedRunFailure(t *testing.T) {
	spec := &lang.Spec{
		Name:     "Python",
		Filename: "hello.py",
		Source:   []string{`print("Hello World")`},
		Run:      []string{"python3", "hello.py"},
	}
	runner := &fakeRunner{results: map[string]*executor.Result{
		"python3": failed("Traceback"),
	}}
	e := &Engine{Runner: runner, Dir: t.TempDir()}

	rec := e.Process(context.Background(), spec)

	if len(rec.Compile) != 0 {
		t.Errorf("interpreted language should have no compile results, got %d", len(rec.Compile))
	}
	if rec.Run == nil || rec.Run.Succeeded {
		t.Error("run should be attempted and fail")
	}
	if !rec.Failed {
		t.Error("record should be failed")
	}
}

func TestProcessStopsAtFirstCompileFailure(t *testing.T) {
	spec := &lang.Spec{
		Name:     "Assembly",
		Filename: "hello.asm",
		Source:   []string{"section .text"},
		Compile: [][]string{
			{"nasm", "-f", "elf64", "hello.asm", "-o", "hello.o"},
			{"ld", "hello.o", "-o", "hello_asm"},
		},
		Run: []string{"./hello_asm"},
	}
	runner := &fakeRunner{results: map[string]*executor.Result{
		"nasm": failed("nasm: not found"),
	}}
	e := &Engine{Runner: runner, Dir: t.TempDir()}

	rec := e.Process(context.Background(), spec)

	if len(runner.calls) != 1 {
		t.Fatalf("expected exactly 1 runner invocation, got %d: %v", len(runner.calls), runner.calls)
	}
	if len(rec.Compile) != 1 {
		t.Errorf("expected 1 compile result, got %d", len(rec.Compile))
	}
	if rec.Run != nil {
		t.Error("run stage must not be invoked")
	}
}

func TestProcessWriteFailureSkipsEverything(t *testing.T) {
	// Block the workspace path with a regular file so the source write fails.
	parent := t.TempDir()
	blocker := filepath.Join(parent, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	runner := &fakeRunner{}
	e := &Engine{Runner: runner, Dir: blocker}

	rec := e.Process(context.Background(), cSpec())

	if !rec.Failed {
		t.Fatal("record should be failed")
	}
	if len(rec.Compile) != 0 {
		t.Errorf("compile must be skipped, got %d results", len(rec.Compile))
	}
	if rec.Run != nil {
		t.Error("run must be skipped")
	}
	if len(runner.calls) != 0 {
		t.Errorf("no subprocess should be spawned, got %v", runner.calls)
	}
}

func TestExecuteFailureIsolation(t *testing.T) {
	specs := []*lang.Spec{
		cSpec(),
		{
			Name: "C++", Filename: "hello.cpp",
			Source:  []string{"int main(){}"},
			Compile: [][]string{{"g++", "hello.cpp", "-o", "hello_cpp"}},
			Run:     []string{"./hello_cpp"},
		},
		{
			Name: "Rust", Filename: "hello.rs",
			Source:  []string{"fn main(){}"},
			Compile: [][]string{{"rustc", "hello.rs", "-o", "hello_rust"}},
			Run:     []string{"./hello_rust"},
		},
		{
			Name: "Python", Filename: "hello.py",
			Source: []string{`print("Hello World")`},
			Run:    []string{"python3", "hello.py"},
		},
	}
	runner := &fakeRunner{results: map[string]*executor.Result{
		"g++":          failed("g++: not found"),
		"./hello_c":    {Succeeded: true, Stdout: "Hello World\n"},
		"./hello_rust": {Succeeded: true, Stdout: "Hello World\n"},
		"python3":      {Succeeded: true, Stdout: "Hello World\n"},
	}}
	e := &Engine{Runner: runner, Dir: t.TempDir()}

	records, err := e.Execute(context.Background(), specs)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	for i, spec := range specs {
		if records[i].Spec.Name != spec.Name {
			t.Errorf("record %d out of order: got %q", i, records[i].Spec.Name)
		}
	}
	for _, rec := range records {
		if rec.Spec.Name == "C++" {
			if !rec.Failed {
				t.Error("C++ should have failed")
			}
			continue
		}
		if rec.Failed {
			t.Errorf("%s should not be affected by the C++ failure", rec.Spec.Name)
		}
		if !strings.Contains(rec.Output(), "Hello World") {
			t.Errorf("%s missing greeting in output: %q", rec.Spec.Name, rec.Output())
		}
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := &Engine{Runner: &fakeRunner{}, Dir: t.TempDir()}

	records, err := e.Execute(ctx, []*lang.Spec{cSpec()})
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(records) != 0 {
		t.Errorf("no language should start after cancellation, got %d records", len(records))
	}
}

// spyObserver records skip events to verify the engine reports them.
type spyObserver struct {
	nopObserver
	skipped []string
}

func (s *spyObserver) StageSkipped(spec *lang.Spec, stage, reason string) {
	s.skipped = append(s.skipped, stage)
}

func TestObserverSkipEvents(t *testing.T) {
	runner := &fakeRunner{results: map[string]*executor.Result{
		"gcc": failed("gcc: not found"),
	}}
	obs := &spyObserver{}
	e := &Engine{Runner: runner, Observer: obs, Dir: t.TempDir()}

	e.Process(context.Background(), cSpec())

	if len(obs.skipped) != 1 || obs.skipped[0] != "run" {
		t.Errorf("expected [run] skipped, got %v", obs.skipped)
	}
}
