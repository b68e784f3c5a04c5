package client

import "sidebar/internal/types"

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version,omitempty"`
}

type SessionsResponse struct {
	Sessions []*types.Session `json:"sessions"`
}

type CreateSessionRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Avatar      string              `json:"avatar,omitempty"`
	Model       string              `json:"model,omitempty"`
	Group       string              `json:"group,omitempty"`
	Config      types.SessionConfig `json:"config"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
