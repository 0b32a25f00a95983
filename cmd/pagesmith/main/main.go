package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/pagesmith/cmd/pagesmith"
	"github.com/arthur-debert/pagesmith/pkg/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := pagesmith.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Errors raised before the build picked its report format.
		if !pagesmith.Reported(err) {
			if renderer, rerr := ui.NewRenderer(ui.FormatAuto, os.Stderr, os.Stderr); rerr == nil {
				_ = renderer.RenderError(err)
			}
		}
		stop()
		os.Exit(1)
	}
}
