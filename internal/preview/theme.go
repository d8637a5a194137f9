package preview

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors and styles of the preview
type Theme struct {
	Name string

	// Core colors
	Primary    lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor
	Warning    lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor // Separator lines

	// Component styles
	Header      lipgloss.Style
	Section     lipgloss.Style // Object field headers
	Label       lipgloss.Style
	Required    lipgloss.Style
	Widget      lipgloss.Style
	Description lipgloss.Style
	Diagnostic  lipgloss.Style
	StatusBar   lipgloss.Style
}

func newTheme(name string, primary, secondary, foreground, muted, errColor, warning, border lipgloss.AdaptiveColor) *Theme {
	t := &Theme{
		Name:       name,
		Primary:    primary,
		Secondary:  secondary,
		Foreground: foreground,
		Muted:      muted,
		Error:      errColor,
		Warning:    warning,
		Border:     border,
	}

	t.Header = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	t.Section = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	t.Label = lipgloss.NewStyle().Foreground(t.Foreground)
	t.Required = lipgloss.NewStyle().Foreground(t.Error)
	t.Widget = lipgloss.NewStyle().Foreground(t.Secondary)
	t.Description = lipgloss.NewStyle().Foreground(t.Muted).Italic(true)
	t.Diagnostic = lipgloss.NewStyle().Foreground(t.Warning)
	t.StatusBar = lipgloss.NewStyle().Foreground(t.Muted)

	return t
}

// ThemeCharm returns the default Charm theme
func ThemeCharm() *Theme {
	return newTheme("charm",
		lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"},
		lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"},
		lipgloss.AdaptiveColor{Light: "235", Dark: "252"},
		lipgloss.AdaptiveColor{Light: "243", Dark: "243"},
		lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"},
		lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFAA00"},
		lipgloss.AdaptiveColor{Light: "240", Dark: "240"},
	)
}

// ThemeDracula returns a Dracula-inspired theme
func ThemeDracula() *Theme {
	return newTheme("dracula",
		lipgloss.AdaptiveColor{Light: "#bd93f9", Dark: "#bd93f9"},
		lipgloss.AdaptiveColor{Light: "#8be9fd", Dark: "#8be9fd"},
		lipgloss.AdaptiveColor{Light: "#282a36", Dark: "#f8f8f2"},
		lipgloss.AdaptiveColor{Light: "#6272a4", Dark: "#6272a4"},
		lipgloss.AdaptiveColor{Light: "#ff5555", Dark: "#ff5555"},
		lipgloss.AdaptiveColor{Light: "#f1fa8c", Dark: "#f1fa8c"},
		lipgloss.AdaptiveColor{Light: "61", Dark: "61"},
	)
}

// ThemeNord returns a Nord-inspired theme
func ThemeNord() *Theme {
	return newTheme("nord",
		lipgloss.AdaptiveColor{Light: "#5e81ac", Dark: "#88c0d0"},
		lipgloss.AdaptiveColor{Light: "#a3be8c", Dark: "#a3be8c"},
		lipgloss.AdaptiveColor{Light: "#2e3440", Dark: "#eceff4"},
		lipgloss.AdaptiveColor{Light: "#4c566a", Dark: "#4c566a"},
		lipgloss.AdaptiveColor{Light: "#bf616a", Dark: "#bf616a"},
		lipgloss.AdaptiveColor{Light: "#ebcb8b", Dark: "#ebcb8b"},
		lipgloss.AdaptiveColor{Light: "#d8dee9", Dark: "#3b4252"},
	)
}

// GetTheme returns a theme by name, defaulting to Charm
func GetTheme(name string) *Theme {
	switch name {
	case "dracula":
		return ThemeDracula()
	case "nord":
		return ThemeNord()
	default:
		return ThemeCharm()
	}
}

// AvailableThemes returns a list of available theme names
func AvailableThemes() []string {
	return []string{"charm", "dracula", "nord"}
}
