package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List saved reading positions",
	Args:  cobra.NoArgs,
	RunE:  runBookmarks,
}

var clearBookmarkCmd = &cobra.Command{
	Use:   "clear <script>",
	Short: "Forget the saved position of a script",
	Args:  cobra.ExactArgs(1),
	RunE:  runClearBookmark,
}

func init() {
	bookmarksCmd.AddCommand(clearBookmarkCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

func runBookmarks(cmd *cobra.Command, args []string) error {
	list := openBookmarks().List()
	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "no bookmarks")
		return nil
	}
	for _, b := range list {
		fmt.Fprintf(out, "%s  entry %d  (%s)\n", b.Script, b.EntryIndex, b.SavedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runClearBookmark(cmd *cobra.Command, args []string) error {
	bookmarks := openBookmarks()
	if _, ok := bookmarks.Get(args[0]); !ok {
		return fmt.Errorf("no bookmark for %s", args[0])
	}
	bookmarks.Clear(args[0])
	return bookmarks.Save()
}
