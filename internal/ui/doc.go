// Package ui contains the Bubble Tea program that draws the tabbed shell.
// The Model type focuses on message orchestration while the shell package
// owns the tab and theme state it renders.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Key presses, mouse events and resizes are routed through a typed handler
//     registry. Shell bindings (tab switching, palette, dark mode, quit) are
//     consumed there; any other key goes to the mounted panel.
//   - Every other message, including the replies of panel commands run on the
//     command bus, is forwarded to the mounted panel unchanged.
//
// State ownership:
//   - shell.Router decides which panel is mounted and persists the active tab.
//   - theme.Controller owns dark mode and the palette index; the model
//     rebuilds its styles after each change.
//   - Panels only ever see panel.Props, so they never reach back into the
//     shell.
//
// Layout:
//   - A header bar with the title and the palette and dark-mode buttons, a
//     navigation column with one entry per tab, and the panel box. The same
//     frame geometry drives both rendering and mouse hit testing.
package ui
