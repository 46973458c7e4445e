/* pkg/tui/styles.go */

package tui

import (
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Common color palette for consistent styling
var (
	ColorPrimary = lipgloss.Color("#16a34a") // Green
	ColorSuccess = lipgloss.Color("#22c55e") // Light green
	ColorWarning = lipgloss.Color("#eab308") // Amber
	ColorError   = lipgloss.Color("#dc2626") // Red
	ColorInfo    = lipgloss.Color("#2563eb") // Blue
	ColorMuted   = lipgloss.Color("#6b7280") // Gray
	ColorBorder  = lipgloss.Color("#86efac") // Pale green
)

// BandColor returns the badge colour for a carbon band.
func BandColor(b cart.CarbonBand) lipgloss.Color {
	switch b {
	case cart.BandLow:
		return ColorSuccess
	case cart.BandMedium:
		return ColorWarning
	default:
		return ColorError
	}
}

// BandIcon returns the badge icon for a carbon band.
func BandIcon(b cart.CarbonBand) string {
	switch b {
	case cart.BandLow:
		return "🟢"
	case cart.BandMedium:
		return "🟡"
	default:
		return "🔴"
	}
}

// Styles groups the styles used by every view.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	Panel lipgloss.Style
	Card  lipgloss.Style

	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style

	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Button   lipgloss.Style

	Separator lipgloss.Style
	Footer    lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1),

		Primary: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),

		Secondary: lipgloss.NewStyle().
			Foreground(ColorInfo),

		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Selected: lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true).
			Padding(0, 1),

		Cursor: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1),

		Separator: lipgloss.NewStyle().
			Foreground(ColorBorder),

		Footer: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),
	}
}

// CarbonBadge renders the coloured carbon score badge of an item.
func (s Styles) CarbonBadge(score float64) string {
	band := cart.BandFor(score)
	style := lipgloss.NewStyle().Foreground(BandColor(band)).Bold(true)
	return style.Render(fmt.Sprintf("%s %s carbon (%g)", BandIcon(band), titleCase(band.String()), score))
}

// MetricCard renders a titled figure.
func (s Styles) MetricCard(title, value string, highlight bool) string {
	valueStyle := s.Primary
	if !highlight {
		valueStyle = s.Secondary
	}
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		s.Muted.Render(title),
		valueStyle.Render(value),
	)
	return s.Card.Render(content)
}

// KeyValuePair renders "key: value".
func (s Styles) KeyValuePair(key, value string, highlight bool) string {
	valueStyle := s.Secondary
	if highlight {
		valueStyle = s.Primary
	}
	return s.Muted.Render(key+": ") + valueStyle.Render(value)
}

// Section renders a titled panel.
func (s Styles) Section(title, content string) string {
	return lipgloss.JoinVertical(lipgloss.Left, s.Subtitle.Render(title), s.Panel.Render(content))
}

// LoadingSpinner renders a spinner with a message.
func (s Styles) LoadingSpinner(sp spinner.Model, message string) string {
	return fmt.Sprintf("%s %s", sp.View(), s.Secondary.Render(message))
}

// Tabs renders a radio-style row with the active option highlighted.
func (s Styles) Tabs(tabs []string, activeIndex int) string {
	rendered := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		if i == activeIndex {
			rendered = append(rendered, s.Selected.Render("● "+tab))
		} else {
			rendered = append(rendered, s.Button.Render("○ "+tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// HorizontalRule creates a horizontal separator
func (s Styles) HorizontalRule(width int) string {
	if width <= 0 {
		width = 40
	}
	return s.Separator.Render(strings.Repeat("─", width))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
