package events

import "github.com/atomicstack/tabdeck/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) StoreFallback(err error) {
	if err == nil {
		return
	}
	logging.Trace("app.store-fallback", map[string]interface{}{"error": err.Error()})
}

func (AppTracer) Exit(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
