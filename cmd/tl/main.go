package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"timelog/internal/cli"
	"timelog/internal/config"
)

func main() {
	// Flags and environment are resolved by the root command before the
	// storage is opened.
	root := cli.NewRootCommand(config.NewLoader(), cli.DefaultAPIFactory)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.NewErrorHandler().ExitCode(err))
	}
}
