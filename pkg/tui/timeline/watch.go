package timeline

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/roadmap/pkg/store"
)

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, w Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := w.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// handleWatchEvent reloads after another process wrote the store. Local
// unsaved edits and an active resize win; the reload is skipped.
func (m *Model) handleWatchEvent(ev store.Event) {
	if ev.Type == store.EventKeyChanged && !isStateKey(ev.Key) {
		return
	}
	ok, err := m.svc.Reload(m.ctx)
	switch {
	case err != nil:
		m.log.Warn("reload failed", zap.Error(err))
		m.setStatus("reload: " + err.Error())
	case ok:
		m.setStatus("reloaded external changes")
	default:
		m.log.Debug("reload skipped", zap.String("key", ev.Key))
	}
}

func isStateKey(key string) bool {
	for _, k := range store.StateKeys() {
		if k == key {
			return true
		}
	}
	return false
}
