package ui

import (
	"strings"

	"github.com/atomicstack/tabdeck/internal/tab"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	targetPalette   = "palette"
	targetDark      = "dark"
	tabTargetPrefix = "tab:"

	headerRows   = 2 // title bar + blank separator
	minBodyRows  = 3
	minBoxWidth  = 12
	panelBorder  = 2
	panelPadding = 2
)

type styledLine struct {
	text  string
	style *lipgloss.Style
}

// hitRegion is a clickable span on a single row, [x0, x1).
type hitRegion struct {
	target string
	x0, x1 int
	y      int
}

func (r hitRegion) contains(x, y int) bool {
	return y == r.y && x >= r.x0 && x < r.x1
}

// frame is the geometry of one render. Mouse handling recomputes it from the
// same inputs so clicks always match what was drawn.
type frame struct {
	width      int
	height     int
	navWidth   int
	boxWidth   int
	bodyHeight int
	palette    string
	dark       string
	regions    []hitRegion
}

func (m *Model) layout() frame {
	f := frame{width: max(m.width, minBoxWidth), height: m.height}
	f.palette = "Palette"
	if m.shell.Theme.DarkMode() {
		f.dark = "Light"
	} else {
		f.dark = "Dark"
	}

	darkW := lipgloss.Width(f.dark) + 2
	paletteW := lipgloss.Width(f.palette) + 2
	darkX := f.width - 1 - darkW
	paletteX := darkX - 1 - paletteW
	if minX := lipgloss.Width(m.titleText()) + 1; paletteX < minX {
		paletteX = minX
		darkX = paletteX + paletteW + 1
	}
	f.regions = append(f.regions,
		hitRegion{target: targetPalette, x0: paletteX, x1: paletteX + paletteW, y: 0},
		hitRegion{target: targetDark, x0: darkX, x1: darkX + darkW, y: 0},
	)

	for _, id := range tab.All() {
		if w := lipgloss.Width(navLabel(id)) + 2; w > f.navWidth {
			f.navWidth = w
		}
	}
	for i, id := range tab.All() {
		f.regions = append(f.regions, hitRegion{
			target: tabTargetPrefix + id.String(),
			x0:     0,
			x1:     f.navWidth,
			y:      headerRows + i,
		})
	}

	f.boxWidth = max(f.width-f.navWidth-1, minBoxWidth)
	rows := f.height - headerRows - 1
	if m.showFooter {
		rows--
	}
	f.bodyHeight = max(rows, minBodyRows)
	return f
}

func (f frame) hit(x, y int) (string, bool) {
	for _, r := range f.regions {
		if r.contains(x, y) {
			return r.target, true
		}
	}
	return "", false
}

func navLabel(id tab.ID) string {
	return id.Icon() + " " + id.Label()
}

func (m *Model) titleText() string {
	return " " + m.title
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	f := m.layout()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderNav(f), " ", m.renderPanel(f))

	sections := []string{m.renderHeader(f), "", body}
	bottom := []styledLine{{text: m.currentInfo(), style: m.styles.Info}}
	if m.showFooter {
		bottom = append(bottom, styledLine{text: m.keys.footer(), style: m.styles.Footer})
	}
	sections = append(sections, renderLines(applyWidth(bottom, f.width)))
	page := strings.Join(sections, "\n")
	return m.styles.Page.Width(f.width).Render(page)
}

func (m *Model) renderHeader(f frame) string {
	bar := m.styles.Header.UnsetPadding()
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.titleText()))
	col := lipgloss.Width(m.titleText())
	for _, r := range f.regions {
		if r.y != 0 {
			continue
		}
		if r.x0 > col {
			b.WriteString(bar.Render(strings.Repeat(" ", r.x0-col)))
		}
		label := f.palette
		if r.target == targetDark {
			label = f.dark
		}
		b.WriteString(m.headerButton(r.target, label))
		col = r.x1
	}
	if col < f.width {
		b.WriteString(bar.Render(strings.Repeat(" ", f.width-col)))
	}
	return b.String()
}

func (m *Model) headerButton(target, label string) string {
	if m.hover == target {
		return m.styles.Button.Render(label)
	}
	return m.styles.Header.Render(label)
}

func (m *Model) renderNav(f frame) string {
	active := m.shell.Router.Active()
	rows := make([]string, 0, len(tab.All()))
	for _, id := range tab.All() {
		style := m.styles.NavIdle
		switch {
		case id == active:
			style = m.styles.NavActive
		case m.hover == tabTargetPrefix+id.String():
			style = m.styles.Button
		}
		rows = append(rows, style.Width(f.navWidth).Render(navLabel(id)))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderPanel(f frame) string {
	innerW := f.boxWidth - panelBorder - panelPadding
	innerH := f.bodyHeight - panelBorder
	content := "Loading…"
	if mounted := m.shell.Router.Mounted(); mounted != nil {
		content = mounted.View(m.props(innerW, innerH))
	}
	content = clipBlock(content, innerW, innerH)
	return m.styles.Panel.
		Width(f.boxWidth - panelBorder).
		Height(innerH).
		Render(content)
}

// clipBlock trims rendered panel output to the box it is drawn into. Lines may
// carry ANSI styling, so truncation is escape-aware.
func clipBlock(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = truncate.StringWithTail(line, uint(width), "…")
		}
	}
	return strings.Join(lines, "\n")
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = styledLine{text: truncateText(line.text, width), style: line.style}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
