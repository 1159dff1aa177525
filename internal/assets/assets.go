// Package assets provides the embedded language descriptor catalog.
// Descriptor files are numbered so the embedded directory order is the
// demo's presentation order.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/futureCreator/polyhello/internal/lang"
)

//go:embed languages/*.yaml
var languagesFS embed.FS

// Catalog returns every language spec in presentation order.
// Each embedded descriptor may be shadowed by a same-named file in
// .polyhello/languages/ (project) or ~/.polyhello/languages/ (user).
func Catalog() ([]*lang.Spec, error) {
	entries, err := fs.ReadDir(languagesFS, "languages")
	if err != nil {
		return nil, fmt.Errorf("reading embedded catalog: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	specs := make([]*lang.Spec, 0, len(names))
	for _, name := range names {
		data, err := loadWithOverride(name)
		if err != nil {
			return nil, err
		}
		spec, err := lang.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("descriptor %s: %w", name, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func loadWithOverride(filename string) ([]byte, error) {
	// 1. project-level override
	projectPath := filepath.Join(".polyhello", "languages", filename)
	if data, err := os.ReadFile(projectPath); err == nil {
		return data, nil
	}

	// 2. user-level override
	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".polyhello", "languages", filename)
		if data, err := os.ReadFile(userPath); err == nil {
			return data, nil
		}
	}

	// 3. embedded default
	data, err := languagesFS.ReadFile(filepath.Join("languages", filename))
	if err != nil {
		return nil, fmt.Errorf("descriptor %q not found", filename)
	}
	return data, nil
}
