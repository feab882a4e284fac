package events

import "github.com/atomicstack/tabdeck/internal/logging"

type PrefsTracer struct{}

var Prefs = PrefsTracer{}

func (PrefsTracer) Load(key, value string, found bool) {
	logging.Trace("prefs.load", map[string]interface{}{"key": key, "value": value, "found": found})
}

// Fallback records a stored value that could not be used.
func (PrefsTracer) Fallback(key, raw, reason string) {
	logging.Trace("prefs.fallback", map[string]interface{}{"key": key, "raw": raw, "reason": reason})
}

func (PrefsTracer) Save(key, value string) {
	logging.Trace("prefs.save", map[string]interface{}{"key": key, "value": value})
}

func (PrefsTracer) Error(key string, err error) {
	if err == nil {
		return
	}
	logging.Trace("prefs.error", map[string]interface{}{"key": key, "error": err.Error()})
}
