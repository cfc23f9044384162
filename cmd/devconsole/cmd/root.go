package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "devconsole",
	Short: "Developer console for live objects",
	Long: `devconsole is a command interpreter for inspecting and changing a
running program: read and write fields, call methods, watch values,
control the host clock and script all of it.

Commands:
  run      - Interactive console (terminal UI)
  exec     - Run a script or single lines and print the output
  serve    - Expose the console over WebSocket
  connect  - Line client for a served console
  version  - Show version information`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $DEVCONSOLE_CONFIG or ./devconsole.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
