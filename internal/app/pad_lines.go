package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

func padToWidth(text string, width int) string {
	lineWidth := xansi.StringWidth(text)
	if lineWidth >= width {
		return text
	}
	return text + strings.Repeat(" ", width-lineWidth)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	if xansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return xansi.Cut(text, 0, width-1) + "…"
}

// fitCell pads or truncates a plain (unstyled) glyph to exactly width
// terminal cells. Emoji avatars report inconsistent widths across fonts, so
// this measures with go-runewidth rather than the ANSI-aware helpers.
func fitCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = runewidth.Truncate(text, width, "")
	return runewidth.FillRight(text, width)
}

func indentBlock(block string, spaces int) string {
	if spaces <= 0 || block == "" {
		return block
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
