package cli

import (
	"github.com/decker502/birdsong/pkg/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var playCmd = &cobra.Command{
	Use:   "play [script]",
	Short: "Play a script in a window",
	Long: `Play a script in a window. Without a script the embedded demo is played.

Asset paths in the script are resolved relative to the script's directory,
then against the embedded assets.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().Bool("watch", false, "reload the script when the file changes")
		c.Flags().Bool("resume", false, "continue from the saved bookmark")
		c.Flags().Bool("no-audio", false, "disable voice cues")
	}
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	viper.BindPFlag(keyWatch, cmd.Flags().Lookup("watch"))
	viper.BindPFlag(keyResume, cmd.Flags().Lookup("resume"))
	viper.BindPFlag(keyNoAudio, cmd.Flags().Lookup("no-audio"))

	presentation, err := loadPresentation()
	if err != nil {
		return err
	}

	scriptPath := ""
	if len(args) == 1 {
		scriptPath = args[0]
	}

	a, err := app.NewApp(app.Config{
		Verbose:      viper.GetBool(keyVerbose),
		LogOutput:    setupLogging(true),
		ScriptPath:   scriptPath,
		Presentation: presentation,
		Watch:        viper.GetBool(keyWatch),
		Resume:       viper.GetBool(keyResume),
		NoAudio:      viper.GetBool(keyNoAudio),
	})
	if err != nil {
		return err
	}
	return a.Run()
}
