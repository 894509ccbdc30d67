// Command mms filters the audio (and optionally the video) of media files.
//
// Usage:
//
//	mms serve                                  run the HTTP session service
//	mms process in.mp4 -o out.mp4 -f car       filter one file
//	mms watch inbox -o done -f denoiseDelay    filter files dropped into a folder
//	mms filters                                list the filter catalog
//
// Filters are given as id[:name=value,...], for example
// "gainCompressor:threshold_db=-6,limiter_db=-1".
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-mms/internal/cli"
)

var version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Globals

	Serve   ServeCmd   `cmd:"" help:"Run the HTTP media session service."`
	Process ProcessCmd `cmd:"" help:"Filter a single audio or video file."`
	Watch   WatchCmd   `cmd:"" help:"Filter media files as they appear in a directory."`
	Filters FiltersCmd `cmd:"" help:"List the available filters."`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("mms"),
		kong.Description("Multichannel audio filter pipeline and media session service"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliArgs.Globals.ctx = sigCtx

	err := ctx.Run(&cliArgs.Globals)
	if err != nil {
		cli.PrintError(cli.FormatError(err))
		stop()
		os.Exit(1)
	}
}
