package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const toastFade = 300 * time.Millisecond

type toastPhase int

const (
	toastEntering toastPhase = iota
	toastShown
	toastLeaving
	toastGone
)

type toast struct {
	id      int
	message string
	color   string
	phase   toastPhase
}

// toastMsg moves toast id into phase.
type toastMsg struct {
	id    int
	phase toastPhase
}

// toastStack is the board's notifier. Toasts stack in arrival order and
// each one runs its own fade in, hold, fade out timers.
type toastStack struct {
	items   []toast
	nextID  int
	hold    time.Duration
	fade    time.Duration
	pending []tea.Cmd
}

func newToastStack(hold time.Duration) *toastStack {
	return &toastStack{hold: hold, fade: toastFade}
}

func (s *toastStack) Notify(message, color string) {
	s.nextID++
	s.items = append(s.items, toast{id: s.nextID, message: message, color: color, phase: toastEntering})
	s.pending = append(s.pending, toastAfter(s.fade, s.nextID, toastShown))
}

// Flush hands the timers queued by Notify to the program.
func (s *toastStack) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func (s *toastStack) Update(msg toastMsg) tea.Cmd {
	i := s.index(msg.id)
	if i < 0 {
		return nil
	}
	switch msg.phase {
	case toastShown:
		s.items[i].phase = toastShown
		return toastAfter(s.hold, msg.id, toastLeaving)
	case toastLeaving:
		s.items[i].phase = toastLeaving
		return toastAfter(s.fade, msg.id, toastGone)
	case toastGone:
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	return nil
}

func (s *toastStack) index(id int) int {
	for i, t := range s.items {
		if t.id == id {
			return i
		}
	}
	return -1
}

func (s *toastStack) Len() int {
	return len(s.items)
}

func (s *toastStack) View(width int) string {
	if len(s.items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(s.items))
	for _, t := range s.items {
		style := toastStyle.Background(lipgloss.Color(t.color))
		if t.phase != toastShown {
			style = style.Faint(true)
		}
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, style.Render(t.message)))
	}
	return strings.Join(lines, "\n")
}

func toastAfter(d time.Duration, id int, phase toastPhase) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastMsg{id: id, phase: phase}
	})
}
