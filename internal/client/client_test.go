package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sidebar/internal/types"
)

func TestFetchSessionConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/sessions/s1/config" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("expected bearer token, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(types.SessionConfig{Provider: "openai", Model: "gpt-4"})
	}))
	defer server.Close()

	c := New(server.URL+"/", "secret")
	cfg, err := c.FetchSessionConfig(context.Background(), "s1")
	if err != nil {
		t.Fatalf("FetchSessionConfig: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Fatalf("expected openai provider, got %q", cfg.Provider)
	}
}

func TestFetchSessionConfigNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "session not found"})
	}))
	defer server.Close()

	_, err := New(server.URL, "").FetchSessionConfig(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	apiErr := AsAPIError(err)
	if apiErr == nil || apiErr.Message != "session not found" {
		t.Fatalf("expected decoded api error, got %v", err)
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not found classification")
	}
}

func TestFetchSessionConfigRequiresID(t *testing.T) {
	if _, err := New("http://127.0.0.1:1", "").FetchSessionConfig(context.Background(), " "); err == nil {
		t.Fatalf("expected error for blank id")
	}
}

func TestFetchSessionConfigHonorsCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.SessionConfig{Provider: "openai"})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(server.URL, "").FetchSessionConfig(ctx, "s1"); err == nil {
		t.Fatalf("expected canceled request to fail")
	}
}

func TestListAndCreateSessions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(SessionsResponse{Sessions: []*types.Session{{ID: "s1"}}})
		case http.MethodPost:
			var req CreateSessionRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(types.Session{ID: "s2", Meta: types.SessionMeta{Title: req.Title}})
		}
	}))
	defer server.Close()

	c := New(server.URL, "")
	sessions, err := c.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "s1" {
		t.Fatalf("unexpected sessions: %#v", sessions)
	}
	created, err := c.CreateSession(context.Background(), CreateSessionRequest{Title: "Travel"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if created.ID != "s2" || created.Meta.Title != "Travel" {
		t.Fatalf("unexpected created session: %#v", created)
	}
}
