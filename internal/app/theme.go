package app

import "charm.land/lipgloss/v2"

var (
	headerStyle            = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusErrorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	sessionStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeSessionStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true)
	selectedStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	descriptionStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	dateStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Faint(true)
	pinStyle               = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	loadingStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	modelTagStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("180"))
	actionButtonStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true)
	menuDropStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	menuSelectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("239")).Bold(true)
	menuDangerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("235"))
	contextMenuHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	modalBorderStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 1)
)

func providerBadgeStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

func avatarStyle(background string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if background != "" {
		style = style.Background(lipgloss.Color(background))
	}
	return style
}
