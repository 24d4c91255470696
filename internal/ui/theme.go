package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stormquest/internal/engine"
)

// Stormquest theme (CLI + TUI).

const (
	IconStorm   = "🌩️"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTodo    = "⬜"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconFire    = "🔥"
	IconFlag    = "🏁"
	IconCal     = "📅"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBook    = "📚"
	IconLock    = "🔒"
	IconGift    = "🎁"
	IconScroll  = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)
	Done  = lipgloss.NewStyle().Foreground(cMuted).Strikethrough(true)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeBonus   = lipgloss.NewStyle().Bold(true).Foreground(cAccent).Render("BONUS")
)

// activityIcons maps catalog icon names to glyphs.
var activityIcons = map[string]string{
	"dumbbell": "🏋️",
	"book":     "📖",
	"lunch":    "🥪",
	"guitar":   "🎸",
	"math":     "🧮",
	"golf":     "⛳",
	"band":     "🎺",
	"bed":      "🛏️",
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(done bool) string {
	if done {
		return Good.Render("done")
	}
	return Warn.Render("pending")
}

// Check renders a completion box.
func Check(done bool) string {
	if done {
		return IconDone
	}
	return IconTodo
}

// Weather renders a tier as a colored "emoji label" badge.
func Weather(t engine.Tier) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Color)).Render(t.Emoji + " " + t.Label)
}

// ActivityIcon resolves a catalog icon name; unknown names fall back to a
// calendar glyph, and names that are already emoji pass through.
func ActivityIcon(name string) string {
	if g, ok := activityIcons[strings.ToLower(strings.TrimSpace(name))]; ok {
		return g
	}
	if name != "" && !isASCII(name) {
		return name
	}
	return IconCal
}

// ProgressBar draws a width-cell bar filled to pct (0-100).
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return Good.Render(strings.Repeat("█", filled)) + Dim.Render(strings.Repeat("░", width-filled))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
