package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sidebar/internal/client"
	"sidebar/internal/config"
	"sidebar/internal/types"
)

func newSessionsCommand(wiring commandWiring) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"ps"},
		Short:   "Manage chat sessions",
	}
	cmd.AddCommand(newSessionsListCommand(wiring), newSessionsAddCommand(wiring))
	return cmd
}

func newSessionsListCommand(wiring commandWiring) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := wiring.loadConfig()
			if err != nil {
				return err
			}
			sessions, err := listSessions(commandContext(cmd), wiring, cfg)
			if err != nil {
				return err
			}
			printSessions(cmd.OutOrStdout(), sessions)
			return nil
		},
	}
}

type addSessionFlags struct {
	title       string
	description string
	avatar      string
	model       string
	provider    string
	group       string
	pinned      bool
}

func newSessionsAddCommand(wiring commandWiring) *cobra.Command {
	var flags addSessionFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := wiring.loadConfig()
			if err != nil {
				return err
			}
			session, err := addSession(commandContext(cmd), wiring, cfg, flags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), session.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.title, "title", "", "session title")
	cmd.Flags().StringVar(&flags.description, "description", "", "session description")
	cmd.Flags().StringVar(&flags.avatar, "avatar", "", "session avatar (emoji)")
	cmd.Flags().StringVar(&flags.model, "model", "", "model id (default from config)")
	cmd.Flags().StringVar(&flags.provider, "provider", "", "model provider")
	cmd.Flags().StringVar(&flags.group, "group", "", "session group id")
	cmd.Flags().BoolVar(&flags.pinned, "pinned", false, "pin the session")
	return cmd
}

func listSessions(ctx context.Context, wiring commandWiring, cfg config.CoreConfig) ([]*types.Session, error) {
	if cfg.ServiceMode() == types.DeploymentServer {
		return wiring.newClient(cfg).ListSessions(ctx)
	}
	repo, err := wiring.openRepo()
	if err != nil {
		return nil, err
	}
	defer repo.Close()
	return repo.Sessions().List(ctx)
}

func addSession(ctx context.Context, wiring commandWiring, cfg config.CoreConfig, flags addSessionFlags) (*types.Session, error) {
	model := strings.TrimSpace(flags.model)
	if model == "" {
		model = cfg.DefaultModel()
	}
	sessionConfig := types.SessionConfig{
		Provider: strings.TrimSpace(flags.provider),
		Model:    model,
	}
	if cfg.ServiceMode() == types.DeploymentServer {
		return wiring.newClient(cfg).CreateSession(ctx, client.CreateSessionRequest{
			Title:       flags.title,
			Description: flags.description,
			Avatar:      flags.avatar,
			Model:       model,
			Group:       flags.group,
			Config:      sessionConfig,
		})
	}
	repo, err := wiring.openRepo()
	if err != nil {
		return nil, err
	}
	defer repo.Close()
	now := time.Now().UTC()
	return repo.Sessions().Upsert(ctx, &types.Session{
		ID: uuid.NewString(),
		Meta: types.SessionMeta{
			Title:       strings.TrimSpace(flags.title),
			Description: strings.TrimSpace(flags.description),
			Avatar:      strings.TrimSpace(flags.avatar),
		},
		Model:     model,
		Config:    sessionConfig,
		Group:     strings.TrimSpace(flags.group),
		Pinned:    flags.pinned,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func printSessions(output io.Writer, sessions []*types.Session) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tPINNED\tGROUP\tMODEL\tPROVIDER\tTITLE")
	for _, session := range sessions {
		pinned := "-"
		if types.SessionPinned(session) {
			pinned = "yes"
		}
		provider := session.Config.Provider
		if provider == "" {
			provider = "-"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
			session.ID, pinned, session.Group, session.Model, provider, session.Meta.DisplayTitle())
	}
	_ = writer.Flush()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
