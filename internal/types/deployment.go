package types

import "strings"

type DeploymentMode string

const (
	DeploymentClient DeploymentMode = "client"
	DeploymentServer DeploymentMode = "server"
)

func ParseDeploymentMode(raw string) DeploymentMode {
	switch DeploymentMode(strings.ToLower(strings.TrimSpace(raw))) {
	case DeploymentServer:
		return DeploymentServer
	default:
		return DeploymentClient
	}
}

func (m DeploymentMode) String() string {
	return string(m)
}
