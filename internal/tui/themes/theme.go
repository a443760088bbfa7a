// Package themes defines the color schemes of the review screen.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Code          lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	Box           lipgloss.Style
	BorderedBox   lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Background    lipgloss.Color
	Info          lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
	Name          string
}

// Palette is the set of colors a theme is built from.
type Palette struct {
	Primary    string
	Secondary  string
	Success    string
	Warning    string
	Error      string
	Info       string
	Background string
	Foreground string
	Subtle     string
	Surface    string
	Border     string
	Muted      string
}

// New builds a theme from a palette.
func New(name string, p Palette) Theme {
	fg := lipgloss.Color(p.Foreground)
	border := lipgloss.Color(p.Border)

	return Theme{
		Name:       name,
		Primary:    lipgloss.Color(p.Primary),
		Secondary:  lipgloss.Color(p.Secondary),
		Success:    lipgloss.Color(p.Success),
		Warning:    lipgloss.Color(p.Warning),
		Error:      lipgloss.Color(p.Error),
		Info:       lipgloss.Color(p.Info),
		Background: lipgloss.Color(p.Background),
		Foreground: fg,
		Border:     border,
		Muted:      lipgloss.Color(p.Muted),

		Title:    lipgloss.NewStyle().Bold(true).Foreground(fg).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Subtle)).MarginBottom(1),
		Normal:   lipgloss.NewStyle().Foreground(fg),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		Code: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Surface)).
			Foreground(fg).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Primary)).
			Foreground(lipgloss.Color(p.Background)).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(border).
			Foreground(fg),

		Box: lipgloss.NewStyle().Padding(1, 2),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(1, 2),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),

		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Success)).Bold(true),
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warning)).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Bold(true),
		StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Info)).Bold(true),
		StatusPending: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)).Italic(true),
	}
}

// Default is the default theme.
var Default = New("default", Palette{
	Primary:    "#7c3aed",
	Secondary:  "#a78bfa",
	Success:    "#10b981",
	Warning:    "#f59e0b",
	Error:      "#ef4444",
	Info:       "#3b82f6",
	Background: "#1a1a1a",
	Foreground: "#fafafa",
	Subtle:     "#a3a3a3",
	Surface:    "#262626",
	Border:     "#404040",
	Muted:      "#737373",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = New("catppuccin-mocha", Palette{
	Primary:    "#cba6f7",
	Secondary:  "#f5c2e7",
	Success:    "#a6e3a1",
	Warning:    "#f9e2af",
	Error:      "#f38ba8",
	Info:       "#89dceb",
	Background: "#1e1e2e",
	Foreground: "#cdd6f4",
	Subtle:     "#a6adc8",
	Surface:    "#313244",
	Border:     "#45475a",
	Muted:      "#6c7086",
})

// Names lists the selectable theme names.
func Names() []string {
	return []string{Default.Name, CatppuccinMocha.Name}
}

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case CatppuccinMocha.Name:
		return CatppuccinMocha
	default:
		return Default
	}
}
