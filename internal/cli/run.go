package cli

import (
	"github.com/spf13/cobra"
)

var (
	runPlain     bool
	runKeep      bool
	runVerbose   bool
	runLanguages []string
	runWorkspace string
)

var runCmd = &cobra.Command{
	Use:          "run",
	Short:        "Run the hello-world demo",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.Context(), demoOptions{
			plain:     runPlain,
			keep:      runKeep,
			verbose:   runVerbose,
			languages: runLanguages,
			workspace: runWorkspace,
		})
	},
}

func init() {
	runCmd.Flags().BoolVar(&runPlain, "plain", false, "Disable animation, print plain text")
	runCmd.Flags().BoolVar(&runKeep, "keep", false, "Keep source files and binaries after the run")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Enable debug logging")
	runCmd.Flags().StringSliceVarP(&runLanguages, "language", "l", nil, "Run only the named languages (repeatable)")
	runCmd.Flags().StringVar(&runWorkspace, "workspace", "", "Workspace root directory (default .polyhello/runs)")
}
