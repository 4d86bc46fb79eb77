package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nihei9/alab/engine"
	"github.com/nihei9/alab/server"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var serveFlags = struct {
	addr    *string
	timeout *time.Duration
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the constructions as a JSON API",
		Example: `  alab serve --addr :8000 --renderer source`,
		Args:    cobra.NoArgs,
		RunE:    runServe,
	}
	serveFlags.addr = cmd.Flags().String("addr", ":8000", "the address to listen on")
	serveFlags.timeout = cmd.Flags().Duration("timeout", engine.DefaultRequestTimeout, "how long one request may take")
	rootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	c, err := engine.NewConfig(*rootFlags.maxStates, *rootFlags.symbolOrder, *rootFlags.nonTerminal, *rootFlags.renderer, *serveFlags.timeout)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.Println("listening on " + *serveFlags.addr)
	return server.New(engine.New(c)).ListenAndServe(ctx, *serveFlags.addr)
}
