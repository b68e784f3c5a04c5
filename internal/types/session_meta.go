package types

import "strings"

const (
	DefaultSessionTitle  = "Just Chat"
	DefaultSessionAvatar = "🤖"
)

type SessionMeta struct {
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	Avatar          string `json:"avatar,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
}

func (m SessionMeta) DisplayTitle() string {
	if title := strings.TrimSpace(m.Title); title != "" {
		return title
	}
	return DefaultSessionTitle
}

func (m SessionMeta) DisplayDescription() string {
	return strings.TrimSpace(m.Description)
}

func (m SessionMeta) DisplayAvatar() string {
	if avatar := strings.TrimSpace(m.Avatar); avatar != "" {
		return avatar
	}
	return DefaultSessionAvatar
}
