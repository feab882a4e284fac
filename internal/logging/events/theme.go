package events

import "github.com/atomicstack/tabdeck/internal/logging"

type ThemeTracer struct{}

var Theme = ThemeTracer{}

func (ThemeTracer) DarkMode(enabled bool) {
	logging.Trace("theme.dark-mode", map[string]interface{}{"enabled": enabled})
}

func (ThemeTracer) Cycle(index, total int) {
	logging.Trace("theme.cycle", map[string]interface{}{"index": index, "total": total})
}
