package emulation

import "github.com/charmbracelet/lipgloss"

type styles struct {
	banner lipgloss.Style
	info   lipgloss.Style
	mode   lipgloss.Style
	stats  lipgloss.Style
	log    lipgloss.Style
	err    lipgloss.Style
}

// ANSI Color reference
// 0	Black
// 1	Red
// 2	Green
// 3	Yellow
// 4	Blue
// 5	Magenta
// 6	Cyan
// 7	White
// 8	Bright Black (Gray)

func newStyles() styles {
	return styles{
		banner: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(4)),
		info:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(2)),
		mode:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		stats:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		log:    lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		err:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
	}
}
