package cmd

import (
	"errors"
	"fmt"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/loom-sh/loom/internal/exec"
	"github.com/loom-sh/loom/internal/logger"
	"github.com/loom-sh/loom/internal/scaffold"
)

var menuCmd = &cobra.Command{
	Use:   "menu [dir]",
	Short: "Pick and run an npm script from package.json",
	Long: `Reads package.json in the project directory and offers its scripts as
a menu. The chosen script runs through npm in the foreground.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	defer logger.Close()

	pkg, err := scaffold.ReadPackageJSON(dir)
	if err != nil {
		return err
	}

	names := scaffold.ScriptNames(pkg.Scripts)
	if len(names) == 0 {
		fmt.Println("No scripts in package.json.")
		return nil
	}

	options := make([]huh.Option[string], 0, len(names))
	for _, name := range names {
		options = append(options, huh.NewOption(fmt.Sprintf("%s  (%s)", name, pkg.Scripts[name]), name))
	}

	var script string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Run which script?").
			Options(options...).
			Value(&script),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("Until next time!")
			return nil
		}
		return err
	}

	fmt.Printf("Running npm run %s\n", script)
	return scaffold.RunScript(cmd.Context(), exec.NewRealExecutor(), dir, script)
}
