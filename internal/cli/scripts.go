package cli

import (
	"fmt"
	"path"

	"github.com/decker502/birdsong/pkg/embedded"
	"github.com/spf13/cobra"
)

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "List the scripts bundled with the binary",
	Args:  cobra.NoArgs,
	RunE:  runScripts,
}

func init() {
	rootCmd.AddCommand(scriptsCmd)
}

func runScripts(cmd *cobra.Command, args []string) error {
	matches, err := embedded.Glob("data/scripts/*.txt")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, m := range matches {
		fmt.Fprintln(out, path.Base(m))
	}
	return nil
}
