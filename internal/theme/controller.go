package theme

import (
	"github.com/atomicstack/tabdeck/internal/logging"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/charmbracelet/lipgloss"
)

// Persister stores the dark-mode preference.
type Persister interface {
	SaveDarkMode(dark bool) error
}

// Surface is the root display surface whose global dark flag drives every
// adaptive colour in the program.
type Surface interface {
	SetDark(dark bool)
}

// RootSurface flips the dark-background flag of lipgloss's default renderer,
// which decides how every lipgloss.AdaptiveColor resolves.
type RootSurface struct{}

// SetDark implements Surface.
func (RootSurface) SetDark(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}

// Controller owns the dark-mode flag and the palette index.
type Controller struct {
	palette Palette
	dark    bool
	index   int
	surface Surface
	persist Persister
}

// NewController starts at palette index 0 with the given dark mode and syncs
// the surface once. Nil surface or persister disable those side effects.
func NewController(p Palette, dark bool, surface Surface, persist Persister) *Controller {
	if len(p) == 0 {
		p = DefaultPalette()
	}
	c := &Controller{palette: p, dark: dark, surface: surface, persist: persist}
	if c.surface != nil {
		c.surface.SetDark(dark)
	}
	return c
}

// DarkMode reports the current flag.
func (c *Controller) DarkMode() bool { return c.dark }

// Index reports the current palette index.
func (c *Controller) Index() int { return c.index }

// Palette returns the palette the controller cycles through.
func (c *Controller) Palette() Palette { return c.palette }

// ToggleDarkMode flips dark mode, persists the new value and then updates the
// root surface. It returns the new value.
func (c *Controller) ToggleDarkMode() bool {
	c.dark = !c.dark
	events.Theme.DarkMode(c.dark)
	if c.persist != nil {
		if err := c.persist.SaveDarkMode(c.dark); err != nil {
			logging.Errorf("save dark mode: %w", err)
		}
	}
	if c.surface != nil {
		c.surface.SetDark(c.dark)
	}
	return c.dark
}

// CycleTheme advances to the next palette entry, wrapping at the end.
func (c *Controller) CycleTheme() int {
	c.index = (c.index + 1) % len(c.palette)
	events.Theme.Cycle(c.index, len(c.palette))
	return c.index
}

// Presentation resolves the tokens for the current state.
func (c *Controller) Presentation() Presentation {
	return Resolve(c.palette, c.dark, c.index)
}

// Styles builds the shell styles for the current state.
func (c *Controller) Styles() *Styles {
	return NewStyles(c.Presentation())
}
