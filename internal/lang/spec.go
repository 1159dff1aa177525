// Package lang defines the language descriptors that drive the demo:
// source text, compile command sequence, and run command for each entry
// in the catalog.
package lang

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec describes one language's hello-world demo. A Spec is immutable once
// parsed; the pipeline only reads it.
type Spec struct {
	Name     string     `yaml:"name"`
	Filename string     `yaml:"filename"`
	Syntax   string     `yaml:"syntax,omitempty"`
	Source   []string   `yaml:"source"`
	Compile  [][]string `yaml:"compile,omitempty"`
	Run      []string   `yaml:"run"`
}

// Interpreted reports whether the language runs without a compile stage.
func (s *Spec) Interpreted() bool {
	return len(s.Compile) == 0
}

// SourceText joins the source lines into the file content that gets written
// to the workspace, newline-terminated.
func (s *Spec) SourceText() string {
	return strings.Join(s.Source, "\n") + "\n"
}

// Tools returns the external executables the spec depends on: the first
// token of every compile step plus the run command, excluding artifacts
// produced by the compile stages themselves (./...).
func (s *Spec) Tools() []string {
	var tools []string
	for _, cmd := range s.Compile {
		if len(cmd) > 0 {
			tools = append(tools, cmd[0])
		}
	}
	if len(s.Run) > 0 && !strings.HasPrefix(s.Run[0], "./") {
		tools = append(tools, s.Run[0])
	}
	return tools
}

// Validate checks that the spec is complete enough to process.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("language spec must have a name")
	}
	if s.Filename == "" {
		return fmt.Errorf("language %q: filename is required", s.Name)
	}
	if len(s.Source) == 0 {
		return fmt.Errorf("language %q: source is required", s.Name)
	}
	for i, cmd := range s.Compile {
		if len(cmd) == 0 {
			return fmt.Errorf("language %q: compile step %d is empty", s.Name, i+1)
		}
	}
	if len(s.Run) == 0 {
		return fmt.Errorf("language %q: run command is required", s.Name)
	}
	return nil
}

// Parse decodes a language spec from YAML bytes and validates it.
func Parse(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing language spec: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
