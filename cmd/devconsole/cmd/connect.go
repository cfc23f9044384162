package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/msto63/devconsole/internal/remote"
	"github.com/msto63/devconsole/pkg/core/config"
)

var connectCmd = &cobra.Command{
	Use:   "connect [url]",
	Short: "Opens a line client for a served console",
	Long: `Connects to a console started with serve and runs every line read
from stdin on it. Without a url the address of the [remote] config
section is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	url := ""
	if len(args) == 1 {
		url = args[0]
	} else {
		cfg, _, err := loadConfig(cfgFile)
		if err != nil {
			printError("config", err)
			return err
		}
		url = remoteURL(cfg.Remote)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := remote.Dial(ctx, url)
	if err != nil {
		printError("connect failed", err)
		return err
	}
	defer client.Close()

	prompt := ""
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s (session %s)\n", url, client.Session())
		prompt = "> "
	}
	return client.REPL(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
}

func remoteURL(cfg config.RemoteConfig) string {
	return "ws://" + cfg.Listen + cfg.Path
}
