package cli

import (
	"fmt"
	"io"

	"github.com/decker502/birdsong/internal/script"
	"github.com/decker502/birdsong/pkg/dialogue"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <script>",
	Short: "Validate a script without playing it",
	Long: `Parse a script and check it statically:
  - every line matches its section's format
  - every setting has a known key and a valid value
  - every font, cursor, background and speaker name is defined
  - every choice target is inside the entry list
  - every entry type is known

Exits with a non-zero status when problems are found.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := script.ParseFile(args[0])
	if err != nil {
		return err
	}

	problems := report(cmd.OutOrStdout(), args[0], s)
	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	return nil
}

// report prints the script summary and lint results, returning the problem count.
func report(w io.Writer, path string, s *script.Script) int {
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  fonts: %d  cursor sprites: %d  backgrounds: %d  actors: %d  entries: %d\n",
		len(s.Fonts), len(s.CursorSprites), len(s.Backgrounds), len(s.Actors), len(s.Entries))

	if s.Preamble > 0 {
		fmt.Fprintf(w, "  warning: %d line(s) before the first section header were read as FONTS rows\n", s.Preamble)
	}

	errs := dialogue.Lint(s)
	for _, err := range errs {
		fmt.Fprintf(w, "  error: %v\n", err)
	}
	if len(errs) == 0 {
		fmt.Fprintln(w, "  ok")
	}
	return len(errs)
}
