// Package timeline is the interactive terminal viewer: a scrollable, zoomable
// rendering of the roadmap with keyboard resize and mouse drag-to-scroll.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bubbleviewport "github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/gesture"
	"tableflip.dev/roadmap/pkg/layout"
	"tableflip.dev/roadmap/pkg/logging"
	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/store"
	"tableflip.dev/roadmap/pkg/viewport"
)

const (
	CellPixels = printers.CellPixels
	Gutter     = printers.DefaultGutter
	// ZoomStep is the zoom change per key press or wheel notch.
	ZoomStep = 0.25

	chromeRows = 2
)

// Watcher streams store change notifications.
type Watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Options configure the viewer.
type Options struct {
	Service *app.Service
	Watcher Watcher
	Logger  *zap.Logger
	Compact bool
	View    string
	Profile termenv.Profile
}

// Model is the bubbletea model of the viewer.
type Model struct {
	ctx  context.Context
	svc  *app.Service
	log  *zap.Logger
	opts Options

	vp   *viewport.Viewport
	body bubbleviewport.Model
	drag gesture.Engine

	width  int
	height int

	compact   bool
	sort      app.SortKey
	collapsed map[string]bool
	selected  string
	pointer   float64
	status    string

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	styles Styles
}

// New builds a viewer over svc.
func New(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:       ctx,
		svc:       opts.Service,
		log:       logging.OrNop(opts.Logger),
		opts:      opts,
		compact:   opts.Compact,
		collapsed: make(map[string]bool),
		styles:    DefaultStyles(),
		body: bubbleviewport.New(
			bubbleviewport.WithWidth(1),
			bubbleviewport.WithHeight(1),
		),
	}
	m.vp = m.svc.NewViewport(CellPixels)
	if opts.View != "" {
		if err := m.vp.ApplyPreset(opts.View, m.svc.Now()); err != nil {
			m.status = err.Error()
		}
	}
	return m
}

// Init starts watching the store for writes by other processes.
func (m *Model) Init() tea.Cmd {
	return startWatchCmd(m.ctx, m.opts.Watcher)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
	case tea.KeyPressMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	case tea.MouseClickMsg:
		m.handleClick(msg.Mouse())
	case tea.MouseMotionMsg:
		m.handleMotion(msg.Mouse())
	case tea.MouseReleaseMsg:
		m.handleRelease(msg.Mouse())
	case tea.MouseWheelMsg:
		m.handleWheel(msg.Mouse())
	case watchStartedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, app.ErrNoPersistence) {
				m.setStatus("watch: " + msg.err.Error())
			}
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	}
	m.refresh()
	return m, tea.Batch(cmds...)
}

func (m *Model) setSize(width, height int) {
	m.width, m.height = width, height
	cols := max(1, width-Gutter)
	m.vp.SetWidth(float64(cols * CellPixels))
	m.body.SetWidth(max(1, width))
	m.body.SetHeight(max(1, height-chromeRows))
}

func (m *Model) setStatus(s string) {
	m.status = s
}

// frame renders the current state through the service.
func (m *Model) frame() layout.Frame {
	return m.svc.Render(m.vp, app.RenderOptions{
		Query:     app.Query{Sort: m.sort},
		Compact:   m.compact,
		Collapsed: m.collapsed,
	})
}

func (m *Model) canvas() printers.Canvas {
	cols := max(1, m.width-Gutter)
	c := printers.NewCanvas(m.vp.Scroll(), m.vp.Width(), cols, Gutter)
	c.Profile = m.opts.Profile
	c.Selected = m.selected
	return c
}

// refresh re-renders the body into the row viewport.
func (m *Model) refresh() {
	if m.width == 0 {
		return
	}
	f := m.frame()
	if m.selected == "" || !hasRow(f, m.selected) {
		m.selected = ""
		if rows := visibleRows(f); len(rows) > 0 {
			m.selected = rows[0].ID
		}
	}
	m.body.SetContent(strings.TrimSuffix(m.canvas().Render(f), "\n"))
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	from, to := m.vp.VisibleRange()
	title := fmt.Sprintf("Roadmap  %s → %s  zoom %.2fx", from.Format("2 Jan 2006"), to.Format("2 Jan 2006"), m.vp.Zoom())
	if m.sort != app.SortNone {
		title += "  sort:" + string(m.sort)
	}
	if m.compact {
		title += "  compact"
	}
	footer := m.status
	if r, ok := m.svc.Resizing(); ok {
		footer = fmt.Sprintf("resizing %s (%s): ←/→ move, enter commit, esc cancel", r.Target.ID, r.Side)
	} else if footer == "" {
		footer = helpText
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Width(m.width).Render(title),
		m.body.View(),
		m.styles.Footer.Width(m.width).Render(footer),
	)
}

// Run starts the viewer full screen and flushes pending writes on exit.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	m.stopWatch()
	if ferr := opts.Service.Flush(); ferr != nil && !errors.Is(ferr, app.ErrNoPersistence) {
		return ferr
	}
	return err
}

func hasRow(f layout.Frame, id string) bool {
	for _, r := range visibleRows(f) {
		if r.ID == id {
			return true
		}
	}
	return false
}

func visibleRows(f layout.Frame) []layout.ProjectRow {
	var rows []layout.ProjectRow
	for _, s := range f.Sections {
		if s.Collapsed {
			continue
		}
		rows = append(rows, s.Rows...)
	}
	return rows
}
