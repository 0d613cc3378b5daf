package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/puyokura/zethon/model"
)

var (
	accent    = lipgloss.Color("#A855F7")
	muted     = lipgloss.Color("#6B7280")
	subtle    = lipgloss.Color("#9CA3AF")
	lineColor = lipgloss.Color("#505050")
	good      = lipgloss.Color("#22C55E")
	bad       = lipgloss.Color("#EF4444")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle    = lipgloss.NewStyle().Foreground(muted)
	subtleStyle   = lipgloss.NewStyle().Foreground(subtle)
	keyStyle      = lipgloss.NewStyle().Foreground(accent)
	selectedStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#6D28D9")).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Foreground(bad)
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED")).Padding(0, 1)
	bannerStyle   = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(accent)
	panelStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lineColor)
	formStyle     = lipgloss.NewStyle().Padding(1, 3).Border(lipgloss.RoundedBorder()).BorderForeground(accent)
	vLine         = lipgloss.NewStyle().Foreground(lineColor).Render("│")
)

var rankColors = map[model.Rank]lipgloss.Color{
	model.RankMember:    lipgloss.Color("#9CA3AF"),
	model.RankVIP:       lipgloss.Color("#4ADE80"),
	model.RankPremium:   lipgloss.Color("#60A5FA"),
	model.RankModerator: lipgloss.Color("#FACC15"),
	model.RankAdmin:     lipgloss.Color("#F87171"),
}

func rankColor(r model.Rank) lipgloss.Color {
	if c, ok := rankColors[r]; ok {
		return c
	}
	return subtle
}

// rankTag renders the rank as a colored label.
func rankTag(r model.Rank) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Background(rankColor(r)).Padding(0, 1).Render(string(r))
}

// username renders a name in its rank color.
func username(u model.User) string {
	return lipgloss.NewStyle().Foreground(rankColor(u.Rank)).Bold(true).Render(u.Username)
}

func key(k, label string) string {
	return keyStyle.Render("["+k+"]") + " " + label
}
