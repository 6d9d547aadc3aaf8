// Package cli contains the birdsong command line.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/birdsong/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// viper keys
const (
	keyVerbose = "verbose"
	keyLogFile = "log_file"
	keyConfig  = "config"
	keyWatch   = "watch"
	keyResume  = "resume"
	keyNoAudio = "no_audio"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "birdsong [script]",
	Short: "Play branching dialogue scripts",
	Long: `Birdsong plays line-based dialogue scripts: a typewriter dialogue box,
speaker portraits with voice cues, backgrounds and branching choices.

Running 'birdsong' without a script plays the embedded demo.

Controls:
  Space/Enter/Click  Advance, confirm choice
  Up/W/Z, Down/S     Move the choice cursor
  F11                Toggle fullscreen
  Esc                Quit`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runPlay,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.Bool("verbose", false, "verbose log output")
	flags.String("log-file", "", "write logs to a rotating file")
	flags.String("config", "", "presentation config file (YAML)")

	viper.BindPFlag(keyVerbose, flags.Lookup("verbose"))
	viper.BindPFlag(keyLogFile, flags.Lookup("log-file"))
	viper.BindPFlag(keyConfig, flags.Lookup("config"))
}

// initConfig reads ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("BIRDSONG")
	viper.AutomaticEnv()
}

// loadPresentation loads the presentation config named by --config, or the defaults.
func loadPresentation() (*config.PresentationConfig, error) {
	cfg, err := config.LoadPresentationConfig(viper.GetString(keyConfig))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogWriter returns where logs go.
//
// With --log-file, logs go to a rotating file (and to stderr as well when
// verbose and console is true). Without it, verbose console runs log to
// stderr and everything else is discarded.
func openLogWriter(logFile string, verbose, console bool) io.Writer {
	var writers []io.Writer
	if logFile != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	if verbose && console {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		return io.Discard
	case 1:
		return writers[0]
	default:
		return io.MultiWriter(writers...)
	}
}

// setupLogging points the standard logger at the configured writer.
func setupLogging(console bool) io.Writer {
	w := openLogWriter(viper.GetString(keyLogFile), viper.GetBool(keyVerbose), console)
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags)
	return w
}

func readScriptFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading script: %w", err)
	}
	return string(data), nil
}
