package app

import (
	"fmt"
	"strings"
	"time"

	xansi "github.com/charmbracelet/x/ansi"

	"sidebar/internal/providers"
)

const (
	listItemAvatarWidth = 2
	listItemGutter      = 1
)

var listItemNow = time.Now

// renderListItem paints a session row as two lines: avatar, title and date on
// top; description and addon badges beneath. It performs layout only.
func renderListItem(props ListItemProps, width int, badgeColors map[string]string) string {
	if width <= 0 {
		width = minSidebarWidth
	}
	avatar := avatarStyle(props.AvatarBackground).Render(fitCell(props.Avatar, listItemAvatarWidth))
	textWidth := max(1, width-listItemAvatarWidth-listItemGutter)

	trailing := dateStyle.Render(formatSince(props.Date))
	if props.Loading {
		trailing = loadingStyle.Render("● generating")
	}
	if props.ShowAction {
		trailing += " " + actionButtonStyle.Render("⋯")
	}

	title := props.Title
	if props.Pinned {
		title = pinStyle.Render("📌") + " " + title
	}
	titleStyle := sessionStyle
	if props.Active {
		titleStyle = activeSessionStyle
	}
	titleWidth := max(1, textWidth-xansi.StringWidth(trailing)-1)
	title = titleStyle.Render(truncateToWidth(title, titleWidth))
	top := avatar + strings.Repeat(" ", listItemGutter) + spreadLine(title, trailing, textWidth)

	addon := renderAddon(props.Addon, badgeColors)
	descWidth := textWidth
	if addon != "" {
		descWidth = max(0, textWidth-xansi.StringWidth(addon)-1)
	}
	desc := ""
	if descWidth > 0 {
		desc = descriptionStyle.Render(truncateToWidth(singleLine(props.Description), descWidth))
	}
	bottom := strings.Repeat(" ", listItemAvatarWidth+listItemGutter) + spreadLine(desc, addon, textWidth)
	return top + "\n" + bottom
}

func renderAddon(addon *AddonView, badgeColors map[string]string) string {
	if addon == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	if addon.Provider != "" {
		color := providers.BadgeColor(addon.Provider, badgeColors)
		parts = append(parts, providerBadgeStyle(color).Render("["+addon.Provider+"]"))
	}
	parts = append(parts, modelTagStyle.Render("["+addon.Model+"]"))
	return strings.Join(parts, " ")
}

func spreadLine(left, right string, width int) string {
	gap := width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func formatSince(last time.Time) string {
	if last.IsZero() {
		return "—"
	}
	delta := listItemNow().Sub(last)
	if delta < 0 {
		delta = 0
	}
	switch {
	case delta < time.Minute:
		return "just now"
	case delta < time.Hour:
		return fmt.Sprintf("%dm ago", int(delta.Minutes()))
	case delta < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(delta.Hours()))
	default:
		days := int(delta.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
}
