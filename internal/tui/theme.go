package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the TUI.
// Tokyo Night colors.
type Theme struct {
	BgDark lipgloss.Color

	TextPrimary lipgloss.Color
	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color

	Border lipgloss.Color

	Accent  lipgloss.Color // Blue
	Success lipgloss.Color // Green
	Warning lipgloss.Color // Amber
	Error   lipgloss.Color // Red/Pink
	Purple  lipgloss.Color
}

// DefaultTheme is the dark theme.
var DefaultTheme = Theme{
	BgDark: lipgloss.Color("#1a1b26"),

	TextPrimary: lipgloss.Color("#c0caf5"),
	TextDim:     lipgloss.Color("#565f89"),
	TextMuted:   lipgloss.Color("#414868"),

	Border: lipgloss.Color("#414868"),

	Accent:  lipgloss.Color("#7aa2f7"),
	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Purple:  lipgloss.Color("#bb9af7"),
}

// Styles provides pre-configured lipgloss styles using the theme.
type Styles struct {
	Base lipgloss.Style
	Dim  lipgloss.Style
	Bold lipgloss.Style

	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Running lipgloss.Style
	Banner  lipgloss.Style

	KeyBinding lipgloss.Style
	KeyHint    lipgloss.Style

	Panel lipgloss.Style
}

// NewStyles creates a new Styles instance from a Theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Base: lipgloss.NewStyle().Foreground(t.TextPrimary),
		Dim:  lipgloss.NewStyle().Foreground(t.TextDim),
		Bold: lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true).
			Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Running: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Banner: lipgloss.NewStyle().
			Foreground(t.Purple).
			Italic(true),

		KeyBinding: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		KeyHint: lipgloss.NewStyle().
			Foreground(t.TextDim),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),
	}
}

// DefaultStyles returns styles using the default theme.
var DefaultStyles = NewStyles(DefaultTheme)

// StatusIcon returns a colored indicator for a submission phase.
func StatusIcon(phase string, s Styles) string {
	switch phase {
	case "completed":
		return s.Success.Render("●")
	case "failed":
		return s.Error.Render("●")
	case "submitting":
		return s.Running.Render("●")
	default:
		return s.Dim.Render("○")
	}
}

// keyHint renders "key action" pairs for the footer.
func keyHint(s Styles, pairs ...string) string {
	out := ""
	for i := 0; i+1 < len(pairs); i += 2 {
		if out != "" {
			out += "  "
		}
		out += s.KeyBinding.Render(pairs[i]) + " " + s.KeyHint.Render(pairs[i+1])
	}
	return out
}
