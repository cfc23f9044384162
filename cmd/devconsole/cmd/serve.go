package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/devconsole/internal/remote"
)

var (
	serveListen string
	servePath   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Exposes the console over WebSocket",
	Long: `Serves the console at ws://<listen><path>. All connected clients
share one console; their lines are run one at a time.

Connect with:
  devconsole connect ws://127.0.0.1:7070/console`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default from config: 127.0.0.1:7070)")
	serveCmd.Flags().StringVar(&servePath, "path", "", "WebSocket path (default from config: /console)")
}

func runServe(cmd *cobra.Command, args []string) error {
	h, err := newHost(hostOptions{ConfigPath: cfgFile, Verbose: verbose, Plain: true})
	if err != nil {
		printError("setup failed", err)
		return err
	}
	defer h.Close()

	cfg := h.cfg.Remote
	if serveListen != "" {
		cfg.Listen = serveListen
	}
	if servePath != "" {
		cfg.Path = servePath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := remote.NewServer(h.console, cfg, h.logger)
	return remote.ListenAndServe(ctx, srv, cfg)
}
