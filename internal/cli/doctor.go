package cli

import (
	"fmt"
	"os/exec"

	"github.com/futureCreator/polyhello/internal/assets"
	"github.com/futureCreator/polyhello/internal/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check which toolchains are installed",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	allOK := true

	check := func(label string, ok bool, hint string) {
		if ok {
			fmt.Printf("✅ %s\n", label)
		} else {
			fmt.Printf("❌ %s — %s\n", label, hint)
			allOK = false
		}
	}

	// 1. config
	cfg, cfgErr := config.Load()
	check("config loadable", cfgErr == nil, fmt.Sprintf("fix config: %v", cfgErr))
	if cfgErr == nil {
		validateErr := cfg.Validate()
		check("config valid", validateErr == nil, fmt.Sprintf("%v", validateErr))
	}

	// 2. language catalog
	specs, catErr := assets.Catalog()
	check("language catalog parseable", catErr == nil, fmt.Sprintf("fix descriptor: %v", catErr))

	// 3. toolchains named by the catalog
	seen := map[string]bool{}
	for _, spec := range specs {
		for _, tool := range spec.Tools() {
			if seen[tool] {
				continue
			}
			seen[tool] = true
			_, err := exec.LookPath(tool)
			check(fmt.Sprintf("%s installed (%s)", tool, spec.Name), err == nil,
				fmt.Sprintf("install %s or that language will fail gracefully", tool))
		}
	}

	fmt.Println()
	if allOK {
		fmt.Println("All checks passed. Every language should build and run.")
	} else {
		fmt.Println("Some toolchains are missing. The demo still runs; those languages will report failures.")
	}
	return nil
}
