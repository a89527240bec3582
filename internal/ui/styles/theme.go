package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for summaries and tables
type Theme struct {
	Name    string
	Primary color.Color // paths and headers
	Success color.Color // kept lines
	Error   color.Color // rejected lines and failures
	Muted   color.Color // blank lines and secondary text
	Warning color.Color // non-fatal warnings
}

// Preset themes
var (
	// DefaultTheme is the default color scheme
	DefaultTheme = Theme{
		Name:    "default",
		Primary: lipgloss.Color("62"),  // cyan/teal
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
		Warning: lipgloss.Color("214"), // orange
	}

	// DraculaTheme is based on the Dracula color scheme
	DraculaTheme = Theme{
		Name:    "dracula",
		Primary: lipgloss.Color("#bd93f9"), // purple
		Success: lipgloss.Color("#50fa7b"), // green
		Error:   lipgloss.Color("#ff5555"), // red
		Muted:   lipgloss.Color("#6272a4"), // comment
		Warning: lipgloss.Color("#ffb86c"), // orange
	}

	// NordTheme is based on the Nord color scheme
	NordTheme = Theme{
		Name:    "nord",
		Primary: lipgloss.Color("#88c0d0"), // nord8 (frost cyan)
		Success: lipgloss.Color("#a3be8c"), // nord14 (aurora green)
		Error:   lipgloss.Color("#bf616a"), // nord11 (aurora red)
		Muted:   lipgloss.Color("#4c566a"), // nord3 (polar night)
		Warning: lipgloss.Color("#ebcb8b"), // nord13 (aurora yellow)
	}

	// GruvboxTheme is based on the Gruvbox color scheme
	GruvboxTheme = Theme{
		Name:    "gruvbox",
		Primary: lipgloss.Color("#83a598"), // blue
		Success: lipgloss.Color("#b8bb26"), // green
		Error:   lipgloss.Color("#fb4934"), // red
		Muted:   lipgloss.Color("#665c54"), // gray
		Warning: lipgloss.Color("#fabd2f"), // yellow
	}
)

var presets = map[string]Theme{
	DefaultTheme.Name: DefaultTheme,
	DraculaTheme.Name: DraculaTheme,
	NordTheme.Name:    NordTheme,
	GruvboxTheme.Name: GruvboxTheme,
}

// currentTheme holds the active theme
var currentTheme = DefaultTheme

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// Init activates the named preset. Unknown names fall back to the default
// theme; config validation rejects them before this point.
// Re-selecting the active theme is a no-op.
func Init(name string) {
	theme, ok := presets[name]
	if !ok {
		theme = DefaultTheme
	}
	if theme.Name == currentTheme.Name {
		return
	}
	currentTheme = theme
	applyTheme(theme)
}

// applyTheme updates all global style variables to use the given theme
func applyTheme(t Theme) {
	Primary = t.Primary
	Success = t.Success
	Error = t.Error
	Muted = t.Muted
	Warning = t.Warning

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
}
