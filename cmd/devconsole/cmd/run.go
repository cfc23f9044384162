package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/devconsole/internal/tui"
)

var runWatchConfig bool

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"tui", "console"},
	Short:   "Opens the interactive console",
	Long: `Opens the interactive console in the terminal.

Type help for the commands or registry for a list of all of them.

Keys:
  Enter       Run the line
  Up/Down     Browse the history
  PgUp/PgDn   Scroll the output
  Ctrl+W      Delete the word before the cursor
  Esc/Ctrl+C  Close the console`,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runWatchConfig, "watch", true, "Apply changes of the config file while running")
}

func runConsole(cmd *cobra.Command, args []string) error {
	h, err := newHost(hostOptions{ConfigPath: cfgFile, Verbose: verbose, Quiet: true})
	if err != nil {
		printError("setup failed", err)
		return err
	}
	defer h.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchPath := ""
	if runWatchConfig {
		watchPath = h.cfgPath
	}

	return tui.Run(ctx, tui.Options{
		Console:  h.console,
		Settings: &h.cfg.Console,
		Clock:    h.clock,
		Tap:      h.tap,
		Logger:   h.logger,
	}, watchPath)
}
