// Package workspace manages the per-run working directory where source
// files are written and toolchain artifacts land, plus the meta.json record
// of what happened.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Workspace represents a single demo run's working directory.
type Workspace struct {
	ID   string
	Dir  string
	Meta Meta
}

// Meta holds metadata about a run, persisted to meta.json.
type Meta struct {
	StartedAt time.Time      `json:"started_at"`
	Status    string         `json:"status"` // "running" | "completed" | "failed"
	Languages []LanguageMeta `json:"languages"`
	Error     string         `json:"error,omitempty"`
}

// LanguageMeta records the persisted outcome for one language.
type LanguageMeta struct {
	Name    string             `json:"name"`
	Failed  bool               `json:"failed"`
	Stdout  string             `json:"stdout,omitempty"`
	Stderr  string             `json:"stderr,omitempty"`
	Timings map[string]float64 `json:"timings"`
}

// New creates a new run workspace under root (e.g. .polyhello/runs).
// Failure here is the one environment-level error in the tool: without a
// workspace no language can proceed.
func New(root string) (*Workspace, error) {
	now := time.Now()
	id := fmt.Sprintf("%s-%s", now.Format("20060102-150405"), uuid.NewString()[:8])

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating workspace root: %w", err)
	}

	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating workspace dir: %w", err)
	}

	w := &Workspace{
		ID:  id,
		Dir: dir,
		Meta: Meta{
			StartedAt: now,
			Status:    "running",
		},
	}

	if err := w.SaveMeta(); err != nil {
		return nil, err
	}

	if err := updateLatestLink(root, id); err != nil {
		return nil, err
	}

	return w, nil
}

// SaveMeta writes meta.json to the workspace directory.
func (w *Workspace) SaveMeta() error {
	data, err := json.MarshalIndent(w.Meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling meta: %w", err)
	}
	path := filepath.Join(w.Dir, "meta.json")
	return os.WriteFile(path, data, 0644)
}

// AddLanguage appends a language outcome and persists the meta file.
func (w *Workspace) AddLanguage(lm LanguageMeta) error {
	w.Meta.Languages = append(w.Meta.Languages, lm)
	return w.SaveMeta()
}

// Complete marks the run as completed.
func (w *Workspace) Complete() error {
	w.Meta.Status = "completed"
	return w.SaveMeta()
}

// Fail marks the run as failed with an error message.
func (w *Workspace) Fail(msg string) error {
	w.Meta.Status = "failed"
	w.Meta.Error = msg
	return w.SaveMeta()
}

// Cleanup removes everything from the workspace directory except meta.json,
// so source files and binaries are gone but the run history stays readable
// by `polyhello stats`.
func (w *Workspace) Cleanup() error {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return fmt.Errorf("reading workspace dir: %w", err)
	}
	for _, e := range entries {
		if e.Name() == "meta.json" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(w.Dir, e.Name())); err != nil {
			return fmt.Errorf("removing %s: %w", e.Name(), err)
		}
	}
	return nil
}

// updateLatestLink atomically updates the "latest" symlink.
func updateLatestLink(root, id string) error {
	latestPath := filepath.Join(root, "latest")
	tmpPath := latestPath + ".tmp"

	// Remove any stale tmp link
	os.Remove(tmpPath)

	if err := os.Symlink(id, tmpPath); err != nil {
		return fmt.Errorf("creating temp symlink: %w", err)
	}
	if err := os.Rename(tmpPath, latestPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("updating latest symlink: %w", err)
	}
	return nil
}
