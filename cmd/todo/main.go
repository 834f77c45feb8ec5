package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"todo-tracker/internal/cli"
	"todo-tracker/internal/config"
)

func main() {
	// Configuration is resolved once flags are parsed; the service is built
	// from the final configuration by the root command.
	root := cli.NewRootCommand(config.NewLoader(), cli.NewServiceForConfig, os.Stdin, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
