package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"sidebar/internal/app"
	"sidebar/internal/client"
	"sidebar/internal/config"
	"sidebar/internal/daemon"
	"sidebar/internal/store"
)

const version = "dev"

// commandWiring carries the process dependencies commands use, so tests can
// swap them out.
type commandWiring struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
	openRepo   func() (store.Repository, error)
	newClient  func(cfg config.CoreConfig) *client.Client
	runUI      func(sidebar *app.Sidebar) error
	runDaemon  func(ctx context.Context, opts daemon.Options) error
	version    string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: config.LoadCoreConfig,
		openRepo:   openDefaultRepository,
		newClient: func(cfg config.CoreConfig) *client.Client {
			return client.New(cfg.DaemonBaseURL(), cfg.DaemonToken())
		},
		runUI:     app.Run,
		runDaemon: daemon.Run,
		version:   buildVersion(),
	}
}

func newRootCommand(wiring commandWiring) *cobra.Command {
	root := &cobra.Command{
		Use:           "sidebar",
		Short:         "Chat session sidebar",
		Long:          "A terminal sidebar for chat sessions, backed by a local session database or a session daemon.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(wiring.stdout)
	root.SetErr(wiring.stderr)
	root.AddCommand(
		newUICommand(wiring),
		newDaemonCommand(wiring),
		newConfigCommand(wiring),
		newSessionsCommand(wiring),
	)
	return root
}

func openDefaultRepository() (store.Repository, error) {
	path, err := config.SessionsDBPath()
	if err != nil {
		return nil, err
	}
	return store.NewBboltRepository(path)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision, modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}
	exe, err := os.Executable()
	if err != nil {
		return version
	}
	file, err := os.Open(exe)
	if err != nil {
		return version
	}
	defer file.Close()
	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return version
	}
	return fmt.Sprintf("bin-%x", hasher.Sum(nil)[:6])
}
