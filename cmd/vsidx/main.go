package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"media-indexer/internal/logging"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "vsidx",
		Usage: "manage seek-index artifacts for video files",
		Commands: []*cli.Command{
			indexCommand(),
			infoCommand(),
			cleanCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		logging.Error("%v", err)
		os.Exit(1)
	}
}
