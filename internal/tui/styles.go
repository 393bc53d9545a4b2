package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/paydesk/paydesk/internal/grid"
)

// Color palette (ANSI 256).
const (
	ColorAccent  = lipgloss.Color("57")
	ColorText    = lipgloss.Color("229")
	ColorMuted   = lipgloss.Color("240")
	ColorOK      = lipgloss.Color("42")
	ColorWarning = lipgloss.Color("214")
	ColorDanger  = lipgloss.Color("196")
	ColorInfo    = lipgloss.Color("39")
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorAccent).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorMuted).
				BorderBottom(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorAccent).
				Bold(false)

	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	SuccessStyle  = lipgloss.NewStyle().Foreground(ColorOK)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorInfo)
	HelpStyle     = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	EmptyStyle    = lipgloss.NewStyle().Foreground(ColorMuted).Padding(1, 2)
	StatusStyle   = lipgloss.NewStyle().Foreground(ColorInfo)
	CurrentPage   = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Background(ColorAccent).Padding(0, 1)
	PageStyle     = lipgloss.NewStyle().Padding(0, 1)
	DisabledStyle = lipgloss.NewStyle().Foreground(ColorMuted).Strikethrough(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	actionStyles = map[grid.ActionVariant]lipgloss.Style{
		grid.ActionDefault:     lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("236")),
		grid.ActionPrimary:     lipgloss.NewStyle().Padding(0, 1).Foreground(ColorText).Background(ColorAccent),
		grid.ActionDestructive: lipgloss.NewStyle().Padding(0, 1).Foreground(ColorText).Background(lipgloss.Color("124")),
		grid.ActionOutline: lipgloss.NewStyle().Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, true).BorderForeground(ColorMuted),
	}

	badgeGlyphs = map[grid.BadgeVariant]string{
		grid.BadgeSuccess: "●",
		grid.BadgeWarning: "◐",
		grid.BadgeDanger:  "✕",
		grid.BadgeInfo:    "◆",
		grid.BadgeMuted:   "○",
	}
)

// ActionStyle returns the button style for a variant.
func ActionStyle(v grid.ActionVariant) lipgloss.Style {
	if s, ok := actionStyles[v]; ok {
		return s
	}
	return actionStyles[grid.ActionDefault]
}

// BadgeText prefixes a badge value with the glyph of its variant. The table
// body cannot carry per-cell colour, so the glyph stands in for it.
func BadgeText(c grid.Cell) string {
	if g, ok := badgeGlyphs[c.Variant]; ok {
		return g + " " + c.Text
	}
	return "· " + c.Text
}
