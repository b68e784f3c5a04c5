package app

import (
	"context"
	"errors"
	"strings"
)

const requestScopeProviderConfig = "provider_config"

type requestScope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// requestScopes tracks cancellable contexts by name. Replacing a scope cancels
// the request that was running under the old one.
type requestScopes map[string]requestScope

func (s *requestScopes) replace(name string) context.Context {
	name = strings.TrimSpace(name)
	if name == "" {
		return context.Background()
	}
	s.cancel(name)
	if *s == nil {
		*s = requestScopes{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	(*s)[name] = requestScope{ctx: ctx, cancel: cancel}
	return ctx
}

func (s requestScopes) cancel(name string) {
	name = strings.TrimSpace(name)
	scope, ok := s[name]
	if !ok {
		return
	}
	if scope.cancel != nil {
		scope.cancel()
	}
	delete(s, name)
}

func (s requestScopes) cancelAll() {
	for name := range s {
		s.cancel(name)
	}
}

func isCanceledRequestError(err error) bool {
	return err != nil && errors.Is(err, context.Canceled)
}
