// Package main provides the repertoire CLI, an interactive explorer of the
// openings a Lichess player has played.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/discochess/repertoire/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if errors.Is(err, config.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
