package events

import "github.com/atomicstack/tabdeck/internal/logging"

type ShellTracer struct{}

type PanelTracer struct{}

type KeyTracer struct{}

var (
	Shell = ShellTracer{}
	Panel = PanelTracer{}
	Key   = KeyTracer{}
)

func (ShellTracer) Select(from, to string) {
	logging.Trace("shell.select", map[string]interface{}{"from": from, "to": to})
}

func (ShellTracer) Reject(raw string) {
	logging.Trace("shell.reject", map[string]interface{}{"tab": raw})
}

func (ShellTracer) Click(target string, x, y int) {
	logging.Trace("shell.click", map[string]interface{}{"target": target, "x": x, "y": y})
}

func (PanelTracer) Mount(tab string) {
	logging.Trace("panel.mount", map[string]interface{}{"tab": tab})
}

func (PanelTracer) Unmount(tab string) {
	logging.Trace("panel.unmount", map[string]interface{}{"tab": tab})
}

func (PanelTracer) Error(tab string, err error) {
	if err == nil {
		return
	}
	logging.Trace("panel.error", map[string]interface{}{"tab": tab, "error": err.Error()})
}

func (KeyTracer) Global(binding string) {
	logging.Trace("key.global", map[string]interface{}{"key": binding})
}
