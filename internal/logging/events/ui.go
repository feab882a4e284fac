package events

import "github.com/atomicstack/tabdeck/internal/logging"

type ListTracer struct{}

type FilterTracer struct{}

var (
	List   = ListTracer{}
	Filter = FilterTracer{}
)

func (ListTracer) Cursor(list string, cursor int) {
	logging.Trace("list.cursor", map[string]interface{}{"list": list, "cursor": cursor})
}

func (FilterTracer) Set(list, filter string, matches int) {
	logging.Trace("filter.set", map[string]interface{}{"list": list, "filter": filter, "matches": matches})
}

func (FilterTracer) Cleared(list string) {
	logging.Trace("filter.clear", map[string]interface{}{"list": list})
}
