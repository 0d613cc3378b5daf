// Package icons maps the icon identifiers used by categories and badges to
// terminal glyphs.
package icons

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Glyph is a terminal symbol with its default color.
type Glyph struct {
	Symbol string
	Color  lipgloss.Color
}

// Render draws the glyph in its own color.
func (g Glyph) Render() string {
	return lipgloss.NewStyle().Foreground(g.Color).Render(g.Symbol)
}

// RenderAs draws the glyph in color, or in its own color when color is empty.
func (g Glyph) RenderAs(color string) string {
	if color == "" {
		return g.Render()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(g.Symbol)
}

// Fallback is returned for identifiers missing from the registry.
var Fallback = Glyph{Symbol: "◇", Color: lipgloss.Color("#6B7280")}

var registry = map[string]Glyph{
	"Gamepad2":      {Symbol: "🎮", Color: lipgloss.Color("#A855F7")},
	"Code":          {Symbol: "</>", Color: lipgloss.Color("#3B82F6")},
	"Shield":        {Symbol: "🛡", Color: lipgloss.Color("#22C55E")},
	"MessageSquare": {Symbol: "💬", Color: lipgloss.Color("#9CA3AF")},
	"Megaphone":     {Symbol: "📣", Color: lipgloss.Color("#F97316")},
	"HelpCircle":    {Symbol: "?", Color: lipgloss.Color("#06B6D4")},
	"ShoppingCart":  {Symbol: "🛒", Color: lipgloss.Color("#EAB308")},
	"Wrench":        {Symbol: "🔧", Color: lipgloss.Color("#64748B")},
	"Trophy":        {Symbol: "🏆", Color: lipgloss.Color("#EAB308")},
	"Star":          {Symbol: "★", Color: lipgloss.Color("#FACC15")},
	"Crown":         {Symbol: "♛", Color: lipgloss.Color("#F59E0B")},
	"Award":         {Symbol: "✪", Color: lipgloss.Color("#A855F7")},
	"Zap":           {Symbol: "⚡", Color: lipgloss.Color("#FDE047")},
	"Heart":         {Symbol: "♥", Color: lipgloss.Color("#EF4444")},
	"Flame":         {Symbol: "🔥", Color: lipgloss.Color("#F97316")},
	"Gem":           {Symbol: "◆", Color: lipgloss.Color("#38BDF8")},
	"Users":         {Symbol: "👥", Color: lipgloss.Color("#9CA3AF")},
	"Pin":           {Symbol: "📌", Color: lipgloss.Color("#22C55E")},
	"Lock":          {Symbol: "🔒", Color: lipgloss.Color("#EF4444")},
}

// Known reports whether name is registered.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// Lookup returns the glyph for name, or Fallback.
func Lookup(name string) Glyph {
	if g, ok := registry[name]; ok {
		return g
	}
	return Fallback
}

// Names returns the registered identifiers in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
