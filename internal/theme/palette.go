package theme

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Token is a named colour used by the shell chrome.
type Token struct {
	Name  string
	Color lipgloss.Color
}

// Theme is one entry of the palette.
type Theme struct {
	Primary   Token
	Secondary Token
	Text      Token
}

// Palette is the ordered list of themes cycled by the palette button. It is
// built once at startup and never mutated.
type Palette []Theme

// Spec describes a palette entry by token name, as read from configuration.
type Spec struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Text      string `mapstructure:"text"`
}

// ErrEmptyPalette is returned when a palette has no entries.
var ErrEmptyPalette = errors.New("palette must contain at least one theme")

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var namedColors = map[string]string{
	"white":      "#ffffff",
	"black":      "#000000",
	"purple-500": "#a855f7",
	"purple-600": "#9333ea",
	"blue-500":   "#3b82f6",
	"blue-600":   "#2563eb",
	"green-500":  "#22c55e",
	"green-600":  "#16a34a",
	"red-500":    "#ef4444",
	"red-600":    "#dc2626",
	"amber-500":  "#f59e0b",
	"amber-600":  "#d97706",
	"teal-500":   "#14b8a6",
	"teal-600":   "#0d9488",
	"pink-500":   "#ec4899",
	"pink-600":   "#db2777",
	"gray-100":   "#f3f4f6",
	"gray-300":   "#d1d5db",
	"gray-600":   "#4b5563",
	"gray-700":   "#374151",
	"gray-800":   "#1f2937",
	"gray-900":   "#111827",
}

var defaultSpecs = []Spec{
	{Primary: "purple-600", Secondary: "purple-500", Text: "white"},
	{Primary: "blue-600", Secondary: "blue-500", Text: "white"},
	{Primary: "green-600", Secondary: "green-500", Text: "white"},
	{Primary: "red-600", Secondary: "red-500", Text: "white"},
}

// DefaultPalette returns the built-in four-entry palette.
func DefaultPalette() Palette {
	p, err := ParsePalette(defaultSpecs)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseToken resolves a colour name or #rrggbb value.
func ParseToken(name string) (Token, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return Token{}, errors.New("empty colour")
	}
	if hex, ok := namedColors[trimmed]; ok {
		return Token{Name: trimmed, Color: lipgloss.Color(hex)}, nil
	}
	if hexColor.MatchString(trimmed) {
		return Token{Name: trimmed, Color: lipgloss.Color(trimmed)}, nil
	}
	return Token{}, fmt.Errorf("unknown colour %q", name)
}

// ParsePalette builds a palette from specs, failing on the first bad entry.
func ParsePalette(specs []Spec) (Palette, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyPalette
	}
	out := make(Palette, 0, len(specs))
	for i, spec := range specs {
		primary, err := ParseToken(spec.Primary)
		if err != nil {
			return nil, fmt.Errorf("palette[%d].primary: %w", i, err)
		}
		secondary, err := ParseToken(spec.Secondary)
		if err != nil {
			return nil, fmt.Errorf("palette[%d].secondary: %w", i, err)
		}
		text, err := ParseToken(spec.Text)
		if err != nil {
			return nil, fmt.Errorf("palette[%d].text: %w", i, err)
		}
		out = append(out, Theme{Primary: primary, Secondary: secondary, Text: text})
	}
	return out, nil
}

// Presentation is the set of tokens the shell draws with for one
// (dark mode, palette index) pair.
type Presentation struct {
	Primary   Token
	Secondary Token
	Text      Token
	// Chrome backs the header bar and the active navigation button.
	Chrome Token
	// Hover highlights header buttons under the pointer.
	Hover Token
}

// Resolve maps (dark, index) onto presentation tokens. Dark mode draws chrome
// with the stronger primary shade and light mode with the lighter secondary
// shade.
func Resolve(p Palette, dark bool, index int) Presentation {
	if len(p) == 0 {
		return Presentation{}
	}
	index %= len(p)
	if index < 0 {
		index += len(p)
	}
	entry := p[index]
	pres := Presentation{
		Primary:   entry.Primary,
		Secondary: entry.Secondary,
		Text:      entry.Text,
	}
	if dark {
		pres.Chrome = entry.Primary
		pres.Hover = entry.Secondary
	} else {
		pres.Chrome = entry.Secondary
		pres.Hover = entry.Primary
	}
	return pres
}
