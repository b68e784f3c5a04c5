package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sidebar/internal/app"
	"sidebar/internal/config"
	"sidebar/internal/logging"
	"sidebar/internal/state"
	"sidebar/internal/store"
	"sidebar/internal/types"
)

const uiLoadTimeout = 10 * time.Second

func newUICommand(wiring commandWiring) *cobra.Command {
	var logPath string
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Run the session sidebar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := wiring.loadConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := openUILogger(logPath, cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			sidebar, cleanup, err := buildSidebar(cmd.Context(), wiring, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return wiring.runUI(sidebar)
		},
	}
	cmd.Flags().StringVar(&logPath, "log-file", "", "write UI logs to this file (default ~/.sidebar/ui.log)")
	return cmd
}

// buildSidebar resolves the deployment mode once and wires the sidebar to the
// matching session source.
func buildSidebar(ctx context.Context, wiring commandWiring, cfg config.CoreConfig, logger logging.Logger) (*app.Sidebar, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, uiLoadTimeout)
	defer cancel()

	mode := cfg.ServiceMode()
	logger = logger.With(logging.F("mode", mode.String()))
	opts := []app.Option{
		app.WithDeploymentMode(mode),
		app.WithLogger(logger),
		app.WithProviderBadgeColors(cfg.ProviderBadgeColors()),
	}
	if path, err := config.KeybindingsPath(); err == nil {
		bindings, err := app.LoadKeybindings(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load keybindings: %w", err)
		}
		opts = append(opts, app.WithKeybindings(bindings))
	}

	var (
		sessions []*types.Session
		groups   []types.SessionGroup
		repo     store.Repository
		err      error
	)
	cleanup := func() {}
	switch mode {
	case types.DeploymentServer:
		remote := wiring.newClient(cfg)
		sessions, err = remote.ListSessions(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("list sessions: %w", err)
		}
		opts = append(opts, app.WithConfigFetcher(remote))
	default:
		repo, err = wiring.openRepo()
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = repo.Close() }
		sessions, err = repo.Sessions().List(ctx)
		if err == nil {
			groups, err = repo.Groups().List(ctx)
		}
		if err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	stores := app.NewStores(state.NewSessionState(sessions, withBuiltinGroups(groups)), cfg.DefaultModel())
	opts = append(opts, app.WithSessionActions(app.NewSessionActions(stores, repo, logger)))
	logger.Info("ui_started", logging.F("sessions", len(sessions)))
	return app.NewSidebar(stores, opts...), cleanup, nil
}

func withBuiltinGroups(groups []types.SessionGroup) []types.SessionGroup {
	for _, group := range groups {
		if group.ID == types.SessionGroupDefault {
			return groups
		}
	}
	builtin := types.SessionGroup{ID: types.SessionGroupDefault, Name: "Default"}
	return append([]types.SessionGroup{builtin}, groups...)
}

func openUILogger(path string, cfg config.CoreConfig) (logging.Logger, func(), error) {
	if path == "" {
		var err error
		path, err = config.UILogPath()
		if err != nil {
			return nil, nil, err
		}
	}
	logger, closer, err := logging.NewFile(path, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		return nil, nil, fmt.Errorf("open ui log: %w", err)
	}
	return logger, func() { _ = closer.Close() }, nil
}
