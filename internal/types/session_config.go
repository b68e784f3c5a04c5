package types

// SessionConfig is the per-session agent configuration. In server deployments
// the daemon is authoritative for it and clients only see it through
// GET /v1/sessions/{id}/config.
type SessionConfig struct {
	Provider   string `json:"provider,omitempty"`
	Model      string `json:"model,omitempty"`
	SystemRole string `json:"system_role,omitempty"`
}
