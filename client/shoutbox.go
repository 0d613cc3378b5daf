package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/puyokura/zethon/format"
	"github.com/puyokura/zethon/model"
)

// shoutboxView renders the side panel: the fixture shouts, then the input.
func (m modelState) shoutboxView(height int) string {
	inner := shoutWidth - 2
	title := titleStyle.Render("Shoutbox") + " " + key("x", "hide")
	if !m.shoutOpen {
		title = titleStyle.Render("Shoutbox") + " " + key("x", "show")
		return lipgloss.NewStyle().Width(shoutWidth).Height(height).Padding(0, 1).Render(title)
	}

	lines := []string{title, ""}
	for _, s := range m.ds.Shouts {
		lines = append(lines, formatShout(s, inner))
	}

	count := utf8.RuneCountInString(m.shout.Value())
	counter := mutedStyle.Render(fmt.Sprintf("%d/%d characters", count, model.MaxShoutLength))
	input := m.shout.View()
	if m.focus != focusShout {
		input = key("s", "Type your message...")
	}

	body := strings.Join(lines, "\n")
	footer := lipgloss.JoinVertical(lipgloss.Left, mutedStyle.Render(strings.Repeat("─", inner)), input, counter)
	gap := height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return lipgloss.NewStyle().Width(shoutWidth).Padding(0, 1).Render(body + "\n" + footer)
}

// formatShout lays out one shout as time, name in rank color, then the
// message wrapped under it.
func formatShout(s model.ShoutboxMessage, width int) string {
	if width < 20 {
		width = 20
	}
	head := mutedStyle.Render(format.Clock(s.Timestamp)) + " " + username(s.User)
	msg := lipgloss.NewStyle().Width(width).Render(s.Message)
	return head + "\n" + msg
}
