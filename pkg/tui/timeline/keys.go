package timeline

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/gesture"
	"tableflip.dev/roadmap/pkg/viewport"
)

const helpText = "+/- zoom  ←/→ scroll  1-4 views  t today  ↑/↓ select  r/R resize  s sort  z fold  c compact  u undo  q quit"

var sortCycle = []app.SortKey{app.SortNone, app.SortLead, app.SortArea, app.SortName, app.SortStart, app.SortEnd, app.SortStatus}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if _, ok := m.svc.Resizing(); ok {
		return m.handleResizeKey(msg)
	}
	m.status = ""
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m.quit()
	case "+", "=":
		m.vp.ZoomAt(ZoomStep, m.vp.Width()/2)
	case "-", "_":
		m.vp.ZoomAt(-ZoomStep, m.vp.Width()/2)
	case "left", "h":
		m.vp.ScrollBy(-m.vp.Width() / 4)
	case "right", "l":
		m.vp.ScrollBy(m.vp.Width() / 4)
	case "home":
		m.vp.SetScroll(0)
	case "end":
		m.vp.SetScroll(m.vp.TotalWidth())
	case "1", "2", "3", "4":
		presets := viewport.Presets()
		p := presets[int(key[0]-'1')%len(presets)]
		m.vp.Apply(p, m.svc.Now())
		m.setStatus("view " + p.Name)
	case "t":
		m.vp.ScrollToDate(m.svc.Now())
	case "up", "k":
		m.moveSelection(-1)
	case "down", "j":
		m.moveSelection(1)
	case "pgup":
		m.body.ScrollUp(max(1, m.body.Height()/2))
	case "pgdown":
		m.body.ScrollDown(max(1, m.body.Height()/2))
	case "c":
		m.compact = !m.compact
	case "s":
		m.cycleSort()
	case "z":
		m.toggleFold()
	case "r":
		m.beginResize(gesture.SideRight)
	case "R":
		m.beginResize(gesture.SideLeft)
	case "u":
		m.undo()
	}
	return nil
}

func (m *Model) handleResizeKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		m.moveResize(-CellPixels)
	case "right", "l":
		m.moveResize(CellPixels)
	case "shift+left", "H":
		m.moveResize(-7 * m.vp.PixelsPerDay())
	case "shift+right", "L":
		m.moveResize(7 * m.vp.PixelsPerDay())
	case "enter":
		c, applied, err := m.svc.CommitResize(m.vp)
		switch {
		case err != nil:
			m.setStatus("resize: " + err.Error())
		case !applied && !c.Moved:
			m.setStatus("resize released, nothing moved")
		case !applied:
			m.setStatus("resize discarded, the item is gone")
		default:
			m.setStatus(fmt.Sprintf("resized to %s – %s", c.Start.Format("2 Jan 2006"), c.End.Format("2 Jan 2006")))
		}
	case "esc":
		if m.svc.CancelResize() {
			m.setStatus("resize cancelled")
		}
	case "u":
		m.undo()
	case "q", "ctrl+c":
		m.svc.CancelResize()
		return m.quit()
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.stopWatch()
	if err := m.svc.Flush(); err != nil && !errors.Is(err, app.ErrNoPersistence) {
		m.log.Error("flush on quit failed", zap.Error(err))
	}
	return tea.Quit
}

func (m *Model) moveSelection(delta int) {
	rows := visibleRows(m.frame())
	if len(rows) == 0 {
		return
	}
	i := 0
	for j, r := range rows {
		if r.ID == m.selected {
			i = j
			break
		}
	}
	i += delta
	if i < 0 {
		i = 0
	}
	if i >= len(rows) {
		i = len(rows) - 1
	}
	m.selected = rows[i].ID
}

func (m *Model) cycleSort() {
	next := 0
	for i, k := range sortCycle {
		if k == m.sort {
			next = (i + 1) % len(sortCycle)
		}
	}
	m.sort = sortCycle[next]
	if m.sort == app.SortNone {
		m.setStatus("unsorted")
	} else {
		m.setStatus("sort by " + string(m.sort))
	}
}

func (m *Model) toggleFold() {
	if m.sort != app.SortStatus || m.selected == "" {
		return
	}
	p, err := m.svc.Project(m.selected)
	if err != nil {
		return
	}
	m.collapsed[p.Status] = !m.collapsed[p.Status]
}

func (m *Model) beginResize(side gesture.Side) {
	if m.selected == "" {
		return
	}
	target := gesture.Target{Kind: gesture.KindProject, ID: m.selected}
	left, width, err := m.svc.Geometry(m.vp, target)
	if err != nil {
		m.setStatus("resize: " + err.Error())
		return
	}
	x := left + width
	if side == gesture.SideLeft {
		x = left
	}
	if _, err := m.svc.BeginResize(m.vp, target, side, x); err != nil {
		m.setStatus("resize: " + err.Error())
		return
	}
	m.pointer = x
}

func (m *Model) moveResize(dx float64) {
	m.pointer += dx
	if _, err := m.svc.MoveResize(m.pointer); err != nil {
		m.setStatus("resize: " + err.Error())
	}
}

func (m *Model) undo() {
	if err := m.svc.Undo(); err != nil {
		m.setStatus(err.Error())
		return
	}
	m.setStatus("undone")
}

// contentX converts a terminal column to a screen position in timeline pixels.
func contentX(col int) float64 {
	return float64(col-Gutter) * CellPixels
}

func (m *Model) handleClick(mouse tea.Mouse) {
	if mouse.Button != tea.MouseLeft || mouse.X < Gutter {
		return
	}
	if _, err := m.drag.BeginDrag(contentX(mouse.X), m.vp.Scroll()); err != nil {
		m.drag.Cancel()
	}
}

func (m *Model) handleMotion(mouse tea.Mouse) {
	if !m.drag.Active() {
		return
	}
	st, err := m.drag.Move(contentX(mouse.X))
	if err != nil {
		return
	}
	if d, ok := st.(gesture.Dragging); ok && d.Dragged {
		m.vp.SetScroll(d.Scroll)
	}
}

func (m *Model) handleRelease(mouse tea.Mouse) {
	if !m.drag.Active() {
		return
	}
	rel, err := m.drag.Release(m.vp.Mapper())
	if err != nil {
		return
	}
	if rel.Clicked && mouse.X >= Gutter {
		m.setStatus(m.vp.DateAt(contentX(mouse.X)).Format("Mon 2 Jan 2006"))
	}
}

func (m *Model) handleWheel(mouse tea.Mouse) {
	anchor := contentX(max(mouse.X, Gutter))
	switch mouse.Button {
	case tea.MouseWheelUp:
		m.vp.ZoomAt(ZoomStep, anchor)
	case tea.MouseWheelDown:
		m.vp.ZoomAt(-ZoomStep, anchor)
	case tea.MouseWheelLeft:
		m.vp.ScrollBy(-m.vp.Width() / 8)
	case tea.MouseWheelRight:
		m.vp.ScrollBy(m.vp.Width() / 8)
	}
}
