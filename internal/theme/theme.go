package theme

import "github.com/charmbracelet/lipgloss"

// Surface colours follow the renderer's dark flag rather than the palette.
var (
	PageBackground  = lipgloss.AdaptiveColor{Light: "#f3f4f6", Dark: "#111827"}
	PageForeground  = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#ffffff"}
	PanelBackground = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#1f2937"}
	IdleBackground  = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#374151"}
	IdleForeground  = lipgloss.AdaptiveColor{Light: "#4b5563", Dark: "#d1d5db"}
	MutedForeground = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ErrorForeground = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// Styles describes the Lip Gloss styles used by the shell for one
// presentation.
type Styles struct {
	Page         *lipgloss.Style
	Header       *lipgloss.Style
	Title        *lipgloss.Style
	Button       *lipgloss.Style
	Panel        *lipgloss.Style
	NavActive    *lipgloss.Style
	NavIdle      *lipgloss.Style
	Footer       *lipgloss.Style
	Info         *lipgloss.Style
	Error        *lipgloss.Style
	Presentation Presentation
}

// NewStyles derives shell styles from resolved presentation tokens.
func NewStyles(p Presentation) *Styles {
	return &Styles{
		Page: ptr(
			lipgloss.NewStyle().Background(PageBackground).Foreground(PageForeground),
		),
		Header: ptr(
			lipgloss.NewStyle().Background(p.Chrome.Color).Foreground(p.Text.Color).Padding(0, 1),
		),
		Title: ptr(
			lipgloss.NewStyle().Background(p.Chrome.Color).Foreground(p.Text.Color).Bold(true),
		),
		Button: ptr(
			lipgloss.NewStyle().Background(p.Hover.Color).Foreground(p.Text.Color).Padding(0, 1),
		),
		Panel: ptr(
			lipgloss.NewStyle().
				Background(PanelBackground).
				Foreground(PageForeground).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(p.Chrome.Color).
				Padding(0, 1),
		),
		NavActive: ptr(
			lipgloss.NewStyle().Background(p.Chrome.Color).Foreground(p.Text.Color).Bold(true).Padding(0, 1),
		),
		NavIdle: ptr(
			lipgloss.NewStyle().Background(IdleBackground).Foreground(IdleForeground).Padding(0, 1),
		),
		Footer: ptr(
			lipgloss.NewStyle().Foreground(MutedForeground),
		),
		Info: ptr(
			lipgloss.NewStyle().Foreground(MutedForeground).Italic(true),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(ErrorForeground).Bold(true),
		),
		Presentation: p,
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
