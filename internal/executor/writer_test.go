package executor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/futureCreator/polyhello/internal/lang"
)

func testSpec() *lang.Spec {
	return &lang.Spec{
		Name:     "C",
		Filename: "hello.c",
		Source:   []string{"#include <stdio.h>", "int main(void){return 0;}"},
		Run:      []string{"./hello_c"},
	}
}

func TestWriteSource(t *testing.T) {
	dir := t.TempDir()
	res := WriteSource(testSpec(), dir)
	if !res.Succeeded {
		t.Fatalf("WriteSource failed: %q", res.Stderr)
	}
	data, err := os.ReadFile(filepath.Join(dir, "hello.c"))
	if err != nil {
		t.Fatalf("source file not written: %v", err)
	}
	want := "#include <stdio.h>\nint main(void){return 0;}\n"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", data, want)
	}
}

func TestWriteSourceCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "workspace")
	res := WriteSource(testSpec(), dir)
	if !res.Succeeded {
		t.Fatalf("WriteSource should create the directory: %q", res.Stderr)
	}
}

func TestWriteSourceIdempotent(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec()
	first := WriteSource(spec, dir)
	second := WriteSource(spec, dir)
	if !first.Succeeded || !second.Succeeded {
		t.Fatal("both writes should succeed")
	}
	data, err := os.ReadFile(filepath.Join(dir, spec.Filename))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != spec.SourceText() {
		t.Errorf("second write changed content: %q", data)
	}
}

func TestWriteSourceFailure(t *testing.T) {
	// Use a regular file as the target directory to force a failure.
	parent := t.TempDir()
	blocker := filepath.Join(parent, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	res := WriteSource(testSpec(), blocker)
	if res.Succeeded {
		t.Fatal("expected failure writing into a file path")
	}
	if res.Stderr == "" {
		t.Error("expected the OS error in stderr")
	}
}
