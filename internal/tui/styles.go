package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	text     lipgloss.Color
	muted    lipgloss.Color
	accent   lipgloss.Color
	err      lipgloss.Color
	statusBg lipgloss.Color
}

var (
	lightPalette = palette{text: "235", muted: "245", accent: "125", err: "160", statusBg: "254"}
	darkPalette  = palette{text: "252", muted: "241", accent: "212", err: "203", statusBg: "236"}
)

// styles is the rendered look for one theme.
type styles struct {
	title     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	section   lipgloss.Style
	item      lipgloss.Style
	selected  lipgloss.Style
	muted     lipgloss.Style
	err       lipgloss.Style
	status    lipgloss.Style
	help      lipgloss.Style
	featured  lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(p.muted),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(p.accent),
		section:   lipgloss.NewStyle().Bold(true).Foreground(p.text).MarginTop(1),
		item:      lipgloss.NewStyle().Foreground(p.text),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		muted:     lipgloss.NewStyle().Foreground(p.muted),
		err:       lipgloss.NewStyle().Foreground(p.err),
		status:    lipgloss.NewStyle().Foreground(p.text).Background(p.statusBg).Padding(0, 1),
		help:      lipgloss.NewStyle().Foreground(p.muted),
		featured: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),
	}
}
