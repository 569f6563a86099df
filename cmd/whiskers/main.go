package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/whiskers-launcher/companion/cli"
	"github.com/whiskers-launcher/companion/cmd"
)

func main() {
	// An optional .env in the working directory seeds WHISKERS_* variables.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cmd.NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		cli.NewErrorHandler(cli.GetOptions(root).Verbose, os.Stderr).Handle(err)
		stop()
		os.Exit(1)
	}
}
