package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/upkeepdev/upkeep/internal/adapters/inbound/cli"
)

func main() {
	// Ctrl-C cancels the run context; the in-flight tool process is killed
	// and the CLI reports a partial, interrupted summary.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
