package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/tabdeck/internal/app"
	"github.com/atomicstack/tabdeck/internal/config"
	"github.com/atomicstack/tabdeck/internal/logging"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/tab"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	stores := app.OpenStores(cfg.App.DBPath)
	events.App.Start(startupTracePayload(cfg, stores))

	err := app.Run(cfg.App, stores)
	events.App.Exit(err)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload records what the deck starts with: where state lives,
// which palette and tabs are on offer, and the terminal it was launched in.
func startupTracePayload(cfg config.Config, stores *app.Stores) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}

	store := map[string]interface{}{
		"path":    cfg.App.DBPath,
		"durable": stores.Durable(),
	}
	if !stores.Durable() {
		store["fallback"] = "memory"
	}

	tabs := make([]string, 0, len(tab.All()))
	for _, id := range tab.All() {
		tabs = append(tabs, id.String())
	}

	payload := map[string]interface{}{
		"argv":       cfg.Args,
		"flags":      flags,
		"configFile": cfg.File,
		"store":      store,
		"tabs":       tabs,
		"ui": map[string]interface{}{
			"width":  cfg.App.Width,
			"height": cfg.App.Height,
			"footer": cfg.App.ShowFooter,
			"mouse":  cfg.App.Mouse,
		},
		"terminal": probeTerminal(),
	}
	if palette, err := app.Palette(cfg.App); err == nil {
		names := make([]string, len(palette))
		for i, th := range palette {
			names[i] = th.Primary.Name + "/" + th.Secondary.Name
		}
		payload["palette"] = names
	}
	return payload
}

// terminalInfo is the size of the first standard descriptor attached to a
// terminal, if any.
type terminalInfo struct {
	Source string `json:"source,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

func probeTerminal() terminalInfo {
	for _, f := range []*os.File{os.Stdout, os.Stdin, os.Stderr} {
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			continue
		}
		width, height, err := term.GetSize(fd)
		if err != nil {
			return terminalInfo{Source: f.Name(), Error: err.Error()}
		}
		return terminalInfo{Source: f.Name(), Width: width, Height: height}
	}
	return terminalInfo{Error: "no terminal attached"}
}
