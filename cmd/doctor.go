package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loom-sh/loom/internal/cli"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that loom's external tools are installed",
	Long: `Checks the command-line tools loom shells out to. tmux is required;
git, npm, and docker unlock scaffolding features when present.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	results := cli.CheckAll(cli.DefaultPrerequisites())
	fmt.Print(cli.FormatCheckResults(results))

	for _, r := range results {
		if r.Prerequisite.Required && !r.Found {
			return fmt.Errorf("a required tool is missing")
		}
	}
	return nil
}
