package main

import (
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/logging"
	"github.com/urfave/cli/v2"
)

func main() {
	logging.Setup(slog.LevelInfo)

	if err := newApp().Run(os.Args); err != nil {
		slog.Error("photoprep failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "photoprep",
		Usage: "Validate and shrink report photos before upload",
		Commands: []*cli.Command{
			validateCommand,
			compressCommand,
			estimateCommand,
		},
	}
}
