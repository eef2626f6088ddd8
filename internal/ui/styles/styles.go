package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kyleking/local-mw/internal/models"
)

var (
	Base     = lipgloss.Color("#24273a")
	Surface0 = lipgloss.Color("#363a4f")
	Surface1 = lipgloss.Color("#494d64")
	Overlay1 = lipgloss.Color("#8087a2")
	Subtext0 = lipgloss.Color("#a5adcb")
	Text     = lipgloss.Color("#cad3f5")

	Mauve  = lipgloss.Color("#c6a0f6")
	Red    = lipgloss.Color("#ed8796")
	Peach  = lipgloss.Color("#f5a97f")
	Yellow = lipgloss.Color("#eed49f")
	Green  = lipgloss.Color("#a6da95")
	Sky    = lipgloss.Color("#91d7e3")
	Blue   = lipgloss.Color("#8aadf4")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Blue)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Subtext0)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(Surface0).
				Foreground(Text)

	DirtyStyle = lipgloss.NewStyle().
			Foreground(Peach)

	UpToDateStyle = lipgloss.NewStyle().
			Foreground(Green)

	UpdatesStyle = lipgloss.NewStyle().
			Foreground(Sky)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Yellow)

	BranchStyle = lipgloss.NewStyle().
			Foreground(Mauve)

	PendingStyle = lipgloss.NewStyle().
			Foreground(Overlay1)

	BadgeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true)

	FilterBadgeStyle = BadgeStyle.
				Background(Yellow).
				Foreground(Base)

	SearchBadgeStyle = BadgeStyle.
				Background(Mauve).
				Foreground(Base)

	CountBadgeStyle = BadgeStyle.
			Background(Surface1).
			Foreground(Text)

	FooterStyle = lipgloss.NewStyle().
			Foreground(Subtext0)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(Overlay1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Yellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(Text)

	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(Subtext0).
				Width(22)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Mauve)
)

func Badge(text string, style lipgloss.Style) string {
	return style.Render(text)
}

// StatusStyle picks the colour for a status cell.
func StatusStyle(s models.RepoStatus) lipgloss.Style {
	switch {
	case s.Category() == models.CategoryError:
		return WarningStyle
	case s.PullFailed():
		return ErrorStyle
	case s.Pulled:
		return UpToDateStyle
	case s.HasUpdates:
		return UpdatesStyle
	default:
		return UpToDateStyle
	}
}

// StatusIcon is the glyph shown before a status text.
func StatusIcon(s models.RepoStatus) string {
	switch {
	case s.Category() == models.CategoryError:
		return "⚠️ "
	case s.PullFailed():
		return "❌"
	case s.Pulled:
		return "✅"
	case s.HasUpdates:
		return "🔴"
	default:
		return "✅"
	}
}

func CategoryBadge(c models.Category, label string) string {
	var style lipgloss.Style
	switch c {
	case models.CategoryError:
		style = BadgeStyle.Background(Red).Foreground(Base)
	case models.CategoryUpdates:
		style = BadgeStyle.Background(Sky).Foreground(Base)
	default:
		style = BadgeStyle.Background(Green).Foreground(Base)
	}
	return Badge(label, style)
}
