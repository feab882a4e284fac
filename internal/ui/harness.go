package ui

import tea "github.com/charmbracelet/bubbletea"

// maxHarnessSteps bounds the messages drained after one Send so a command
// that keeps rescheduling itself cannot hang a test.
const maxHarnessSteps = 1000

// Harness drives the UI model programmatically for integration tests.
// Commands run synchronously and batches are flattened in order.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model and runs its Init
// command.
func NewHarness(model *Model) *Harness {
	h := &Harness{model: model}
	if model != nil {
		h.processCmd(model.Init())
	}
	return h
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.processCmd(h.update(msg))
}

func (h *Harness) update(msg tea.Msg) tea.Cmd {
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	return cmd
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < maxHarnessSteps; steps++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			h.quit = true
		default:
			queue = append(queue, h.update(msg))
		}
	}
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
