// Package shell holds the tab and theme state of the application frame.
package shell

import (
	"github.com/atomicstack/tabdeck/internal/panel"
	"github.com/atomicstack/tabdeck/internal/prefs"
	"github.com/atomicstack/tabdeck/internal/tab"
	"github.com/atomicstack/tabdeck/internal/theme"
)

// UIState is a snapshot of the frame state.
type UIState struct {
	ActiveTab  tab.ID
	DarkMode   bool
	ThemeIndex int
}

// Shell bundles the router and the theme controller.
type Shell struct {
	Router *Router
	Theme  *theme.Controller
}

// Options configures Load.
type Options struct {
	Registry panel.Registry
	Palette  theme.Palette
	Surface  theme.Surface
}

// Load builds a shell from persisted preferences, defaulting to the calendar
// tab in light mode. Nothing is written during startup.
func Load(adapter *prefs.Adapter, opts Options) (*Shell, error) {
	snap := adapter.Load()
	router, err := NewRouter(opts.Registry, snap.ActiveTabOr(tab.Default), adapter)
	if err != nil {
		return nil, err
	}
	ctrl := theme.NewController(opts.Palette, snap.DarkModeOr(false), opts.Surface, adapter)
	return &Shell{Router: router, Theme: ctrl}, nil
}

// State reports the current frame state.
func (s *Shell) State() UIState {
	return UIState{
		ActiveTab:  s.Router.Active(),
		DarkMode:   s.Theme.DarkMode(),
		ThemeIndex: s.Theme.Index(),
	}
}
