package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/futureCreator/polyhello/internal/config"
	"github.com/futureCreator/polyhello/internal/workspace"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show results of past demo runs",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	entries, err := os.ReadDir(cfg.Workspace.Root)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No runs found.")
			return nil
		}
		return fmt.Errorf("reading runs dir: %w", err)
	}

	type runStat struct {
		id   string
		meta workspace.Meta
	}

	var stats []runStat
	for _, e := range entries {
		if !e.IsDir() || e.Name() == "latest" {
			continue
		}
		metaPath := filepath.Join(cfg.Workspace.Root, e.Name(), "meta.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var meta workspace.Meta
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		stats = append(stats, runStat{id: e.Name(), meta: meta})
	}

	if len(stats) == 0 {
		fmt.Println("No runs found.")
		return nil
	}

	// Sort by started_at descending
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].meta.StartedAt.After(stats[j].meta.StartedAt)
	})

	fmt.Printf("%-28s %-10s %s\n", "Run ID", "Status", "Languages")
	for _, s := range stats {
		succeeded := 0
		for _, lm := range s.meta.Languages {
			if !lm.Failed {
				succeeded++
			}
		}
		fmt.Printf("%-28s %-10s %d/%d succeeded\n",
			s.id, s.meta.Status, succeeded, len(s.meta.Languages))
	}
	return nil
}
