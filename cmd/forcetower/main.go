package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/forcetower/internal/cli"
	"github.com/matzehuels/forcetower/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		if ctx.Err() != nil {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.UserMessage(err))
		if code := errors.GetCode(err); code != "" {
			fmt.Fprintf(os.Stderr, "Code: %s\n", code)
		}
		os.Exit(errors.ExitCode(err))
	}
}
