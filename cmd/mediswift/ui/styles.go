// Package ui provides the terminal storefront: the root application model,
// one page model per view, and the shared visual styling.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Teal/green for the pharmacy brand, with light/dark
// variants.
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f4f7f6")
	LightForeground = lipgloss.Color("#0f2e2b")
	LightPrimary    = lipgloss.Color("#0f766e") // Teal
	LightAccent     = lipgloss.Color("#22c55e") // Green
	LightSecondary  = lipgloss.Color("#e2e8e6")
	LightMuted      = lipgloss.Color("#64748b")
	LightBorder     = lipgloss.Color("#d7dedd")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#0c1a18")
	DarkForeground = lipgloss.Color("#e7f0ee")
	DarkPrimary    = lipgloss.Color("#2dd4bf")
	DarkAccent     = lipgloss.Color("#4ade80")
	DarkSecondary  = lipgloss.Color("#16302c")
	DarkMuted      = lipgloss.Color("#7e948f")
	DarkBorder     = lipgloss.Color("#1e3c38")
	DarkCard       = lipgloss.Color("#11231f")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#22c55e")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeByName maps the config theme value to a Theme, falling back to
// terminal detection for unknown values.
func ThemeByName(name string) Theme {
	switch name {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme auto-detects based on terminal or returns light mode
func DetectTheme() Theme {
	// COLORFGBG is usually "foreground;background"
	colorTerm := os.Getenv("COLORFGBG")
	if colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("MEDISWIFT_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	App     lipgloss.Style
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Navigation
	NavLink       lipgloss.Style
	NavLinkActive lipgloss.Style
	Badge         lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Catalog
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	Price         lipgloss.Style
	OriginalPrice lipgloss.Style
	Discount      lipgloss.Style
	RxTag         lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Timeline
	StageCompleted lipgloss.Style
	StageActive    lipgloss.Style
	StagePending   lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Input   lipgloss.Style
	Button  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		NavLink: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		NavLinkActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		Price: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		OriginalPrice: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Strikethrough(true),

		Discount: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		RxTag: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		StageCompleted: lipgloss.NewStyle().
			Foreground(Success),

		StageActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		StagePending: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Input: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Button: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
	}
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}

// ToastStyle returns the style for a toast line of the given severity name.
func (s Styles) ToastStyle(severity string) lipgloss.Style {
	switch severity {
	case "success":
		return s.Success
	case "error":
		return s.Error
	case "warning":
		return s.Warning
	default:
		return s.Info
	}
}

func truncate(str string, l int) string {
	if len(str) > l {
		return str[:l-3] + "..."
	}
	return str
}
