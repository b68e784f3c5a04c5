package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sidebar/internal/daemon"
	"sidebar/internal/logging"
)

func newDaemonCommand(wiring commandWiring) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Serve sessions and their config over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := wiring.loadConfig()
			if err != nil {
				return err
			}
			if address == "" {
				address = cfg.DaemonAddress()
			}
			repo, err := wiring.openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := logging.New(wiring.stderr, logging.ParseLevel(cfg.LogLevel())).
				With(logging.F("component", "daemon"))
			return wiring.runDaemon(ctx, daemon.Options{
				Address: address,
				Token:   cfg.DaemonToken(),
				Version: wiring.version,
				Repo:    repo,
				Logger:  logger,
			})
		},
	}
	cmd.Flags().StringVar(&address, "addr", "", "listen address (default from config)")
	return cmd
}
