package cli

import (
	"fmt"

	"github.com/futureCreator/polyhello/internal/assets"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the languages in the demo catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := assets.Catalog()
		if err != nil {
			return fmt.Errorf("loading language catalog: %w", err)
		}
		fmt.Printf("%-10s %-12s %-10s %s\n", "Language", "Source", "Compile", "Run")
		for _, spec := range specs {
			compile := fmt.Sprintf("%d step(s)", len(spec.Compile))
			if spec.Interpreted() {
				compile = "none"
			}
			fmt.Printf("%-10s %-12s %-10s %v\n", spec.Name, spec.Filename, compile, spec.Run)
		}
		return nil
	},
}
