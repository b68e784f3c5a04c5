package app

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"sidebar/internal/logging"
	"sidebar/internal/types"
)

type SessionConfigFetcher interface {
	FetchSessionConfig(ctx context.Context, id string) (*types.SessionConfig, error)
}

type providerResolvedMsg struct {
	instance   uint64
	generation uint64
	sessionID  string
	provider   string
	err        error
}

// ProviderResolver decides which provider label a row shows. In client
// deployments the session record carries it; in server deployments it is
// fetched once per (row instance, session id) and kept for that binding.
type ProviderResolver struct {
	mode       types.DeploymentMode
	fetcher    SessionConfigFetcher
	logger     logging.Logger
	instance   uint64
	sessionID  string
	generation uint64
	provider   string
	settled    bool
	released   bool
	scopes     requestScopes
}

func newProviderResolver(instance uint64, mode types.DeploymentMode, fetcher SessionConfigFetcher, logger logging.Logger) *ProviderResolver {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ProviderResolver{
		mode:     mode,
		fetcher:  fetcher,
		logger:   logger,
		instance: instance,
	}
}

// Bind points the resolver at sessionID. Any in-flight fetch for a previous
// binding is cancelled and its result will be discarded.
func (r *ProviderResolver) Bind(sessionID string) tea.Cmd {
	r.scopes.cancel(requestScopeProviderConfig)
	r.generation++
	r.sessionID = sessionID
	r.provider = ""
	r.settled = false
	r.released = false
	if r.mode != types.DeploymentServer || r.fetcher == nil || strings.TrimSpace(sessionID) == "" {
		r.settled = true
		return nil
	}
	ctx := r.scopes.replace(requestScopeProviderConfig)
	return fetchProviderCmd(ctx, r.fetcher, r.instance, r.generation, sessionID)
}

func fetchProviderCmd(ctx context.Context, fetcher SessionConfigFetcher, instance, generation uint64, sessionID string) tea.Cmd {
	return func() tea.Msg {
		msg := providerResolvedMsg{instance: instance, generation: generation, sessionID: sessionID}
		cfg, err := fetcher.FetchSessionConfig(ctx, sessionID)
		if err != nil {
			msg.err = err
			return msg
		}
		if cfg != nil {
			msg.provider = strings.TrimSpace(cfg.Provider)
		}
		return msg
	}
}

// Resolve returns the provider to display. clientProvider is the value from
// the session record and is only consulted in client deployments.
func (r *ProviderResolver) Resolve(clientProvider string) string {
	if r.mode == types.DeploymentServer {
		return r.provider
	}
	return strings.TrimSpace(clientProvider)
}

// Apply commits a fetch result. It reports whether the resolved provider
// changed; results for another binding or after Release are dropped.
func (r *ProviderResolver) Apply(msg providerResolvedMsg) bool {
	if r.released || r.settled {
		return false
	}
	if msg.instance != r.instance || msg.generation != r.generation || msg.sessionID != r.sessionID {
		return false
	}
	r.settled = true
	r.scopes.cancel(requestScopeProviderConfig)
	if msg.err != nil {
		if !isCanceledRequestError(msg.err) {
			r.logger.Debug("provider_fetch_failed",
				logging.F("session_id", msg.sessionID),
				logging.Err(msg.err),
			)
		}
		return false
	}
	if msg.provider == r.provider {
		return false
	}
	r.provider = msg.provider
	return true
}

func (r *ProviderResolver) Release() {
	r.scopes.cancelAll()
	r.generation++
	r.released = true
	r.provider = ""
}
