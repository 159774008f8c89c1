package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"site-search/bootstrap"

	"github.com/joho/godotenv"
)

func main() {
	// .env is a local development convenience; deployments configure the
	// service through the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := bootstrap.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "site-search exited: %v\n", err)
		os.Exit(1)
	}
}
