package cli

import (
	"fmt"

	"github.com/futureCreator/polyhello/pkg/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "polyhello",
	Short: "Animated multi-language hello-world demo",
	Long: `polyhello writes, compiles, and runs a hello-world program in several
languages, animates the process, and reports per-stage timings. A missing
toolchain fails that language only; the rest still run.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("polyhello %s\n", version.Version)
	},
}
