// Package inspector renders a live, scrolling list of packets
// observed on a monitor.Broker as a terminal program, the direct
// domain descendant of the teacher's query list TUI.
package inspector

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mickamy/craftd-proxy/monitor"
)

// maxRows bounds how many observed packets the model retains; older
// entries are dropped once the list exceeds this.
const maxRows = 500

type observedMsg monitor.Observed

type closedMsg struct{}

// Model is the Bubble Tea model for the packet inspector.
type Model struct {
	broker *monitor.Broker
	ch     <-chan monitor.Observed
	unsub  func()

	rows   []monitor.Observed
	cursor int
	width  int
	height int
}

// New returns a Model that will subscribe to b once started.
func New(b *monitor.Broker) Model {
	return Model{broker: b}
}

func (m Model) Init() tea.Cmd {
	return m.subscribe
}

func (m Model) subscribe() tea.Msg {
	ch, unsub := m.broker.Subscribe()
	return subscribedMsg{ch: ch, unsub: unsub}
}

type subscribedMsg struct {
	ch    <-chan monitor.Observed
	unsub func()
}

func waitForObserved(ch <-chan monitor.Observed) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return observedMsg(ev)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case subscribedMsg:
		m.ch = msg.ch
		m.unsub = msg.unsub
		return m, waitForObserved(m.ch)

	case observedMsg:
		m.rows = append(m.rows, monitor.Observed(msg))
		if len(m.rows) > maxRows {
			m.rows = m.rows[len(m.rows)-maxRows:]
		}
		m.cursor = len(m.rows) - 1
		return m, waitForObserved(m.ch)

	case closedMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.unsub != nil {
				m.unsub()
			}
			return m, tea.Quit
		case "j", "down":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("  %-8s %-10s %-22s %s", "SESSION", "DIR", "OPCODE", "SUMMARY"))

	start := 0
	visible := max(m.height-4, 3)
	if len(m.rows) > visible {
		start = len(m.rows) - visible
	}

	var lines []string
	lines = append(lines, header)
	for i := start; i < len(m.rows); i++ {
		row := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-8s %-10s %-22s %s",
			cursor, row.SessionID, row.Direction, opcodeName(row.Packet), summarize(row.Packet))
		lines = append(lines, ansi.Cut(line, 0, max(m.width-2, 10)))
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(max(m.width-4, 20))

	return border.Render(strings.Join(lines, "\n")) + "\n  q: quit  j/k: scroll"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
