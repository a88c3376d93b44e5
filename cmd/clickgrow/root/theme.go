package root

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	IconPlant   = "🌱"
	IconSparkle = "✨"
	IconTrophy  = "🏆"
	IconTarget  = "🎯"
	IconCoin    = "💰"
	IconGem     = "💎"
	IconShop    = "🛒"
	IconSkull   = "🥀"
	IconClock   = "⏳"
	IconError   = "🧨"
)

var (
	cPrimary = lipgloss.Color("35")  // leaf green
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")
	cWarn    = lipgloss.Color("214")
	cBad     = lipgloss.Color("196")
	cMuted   = lipgloss.Color("244")
	cGold    = lipgloss.Color("220")
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

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

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

// Bar renders a fixed-width meter for current out of max.
func Bar(current, max float64, width int) string {
	if max <= 0 {
		max = 1
	}
	ratio := current / max
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)

	style := Good
	switch {
	case ratio < 0.25:
		style = Bad
	case ratio < 0.5:
		style = Warn
	}
	return style.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

func Coins(n int64) string {
	return Gold.Render(IconCoin + " " + humanize.Comma(n))
}

func Gems(n int64) string {
	return H2.Render(IconGem + " " + humanize.Comma(n))
}
