package cli

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/decker502/birdsong/pkg/config"
	"github.com/decker502/birdsong/pkg/embedded"
	"github.com/decker502/birdsong/pkg/game"
	"github.com/decker502/birdsong/pkg/tui"
	"github.com/quasilyte/gdata/v2"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:     "tui [script]",
	Aliases: []string{"term"},
	Short:   "Play a script in the terminal",
	Long: `Play a script in the terminal. Images are shown by name and voice
cues as a note next to the dialogue box.

Controls:
  Space/Enter   Advance, confirm choice
  Up/K/W/Z      Previous choice
  Down/J/S      Next choice
  Q/Esc         Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().Bool("resume", false, "continue from the saved bookmark")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// the terminal belongs to the UI; only a log file receives output
	setupLogging(false)

	presentation, err := loadPresentation()
	if err != nil {
		return err
	}

	title := "demo"
	var source string
	if len(args) == 1 {
		title = filepath.Base(args[0])
		if source, err = readScriptFile(args[0]); err != nil {
			return err
		}
	} else {
		data, err := embedded.ReadFile(config.DemoScriptPath)
		if err != nil {
			return fmt.Errorf("reading demo script: %w", err)
		}
		source = string(data)
	}

	bookmarks := openBookmarks()
	startAt := 0
	resume, _ := cmd.Flags().GetBool("resume")
	if resume && len(args) == 1 {
		if b, ok := bookmarks.Get(args[0]); ok {
			startAt = b.EntryIndex
		}
	}

	m, err := tui.Run(title, source, presentation, startAt)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		if m.Runtime().Concluded() {
			bookmarks.Clear(args[0])
		} else {
			bookmarks.Set(args[0], m.Runtime().CurrentEntryIndex())
		}
		if err := bookmarks.Save(); err != nil {
			log.Printf("[CLI] Warning: %v", err)
		}
	}
	return nil
}

// openBookmarks opens the bookmark store, falling back to memory only.
func openBookmarks() *game.BookmarkManager {
	gdataManager, err := gdata.Open(gdata.Config{AppName: config.AppName})
	if err != nil {
		log.Printf("[CLI] Warning: persistent storage unavailable: %v", err)
		gdataManager = nil
	}
	bookmarks, err := game.NewBookmarkManager(gdataManager)
	if err != nil {
		log.Printf("[CLI] Warning: %v", err)
	}
	return bookmarks
}
