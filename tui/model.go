package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-phinrip/clip"
	"go-phinrip/midi"
	"go-phinrip/theme"
	"go-phinrip/widgets"
)

// Model is a read-only monitor of a running clip controller. It only sees
// snapshots; it never touches the queue.
type Model struct {
	Theme   *theme.Theme
	Title   string
	Tracks  int
	Scenes  int
	updates <-chan clip.Snapshot
	stop    func()

	last     clip.Snapshot
	finished bool
	quitting bool
}

type SnapshotMsg clip.Snapshot

type DoneMsg struct{}

// NewModel watches updates. stop is called when the user quits.
func NewModel(th *theme.Theme, title string, tracks, scenes int, updates <-chan clip.Snapshot, stop func()) Model {
	return Model{
		Theme:   th,
		Title:   title,
		Tracks:  tracks,
		Scenes:  scenes,
		updates: updates,
		stop:    stop,
	}
}

// ListenForSnapshots waits for the next snapshot
func ListenForSnapshots(updates <-chan clip.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return DoneMsg{}
		}
		return SnapshotMsg(s)
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForSnapshots(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if m.stop != nil {
				m.stop()
			}
			return m, tea.Quit
		}

	case SnapshotMsg:
		m.last = clip.Snapshot(msg)
		return m, ListenForSnapshots(m.updates)

	case DoneMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

// Last returns the most recent snapshot
func (m Model) Last() clip.Snapshot {
	return m.last
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	errStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	s := m.last
	state := "RUN"
	if m.finished {
		state = "DONE"
	}
	bar := s.Now / clip.DefaultInterval
	beat := (s.Now % clip.DefaultInterval) / midi.PulsesPerQuarter
	header := headerStyle.Render(fmt.Sprintf("%s  %s  bar:%03d beat:%d  t=%d", m.Title, state, bar+1, beat+1, s.Now))

	stats := fmt.Sprintf("updates:%d  pending:%d  sent:%d  held:%d", s.Updates, s.Pending, s.Sent, s.Held)

	var launched *[2]int
	clipLine := "last clip: -"
	if s.LastClip != nil {
		launched = &[2]int{s.LastClip.Track, s.LastClip.Scene}
		clipLine = "last clip: " + s.LastClip.String()
	}
	grid := widgets.RenderClipGrid(m.Theme, m.Tracks, m.Scenes, launched)

	help := dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{{Key: "q", Desc: "stop and quit"}}},
	}))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(stats)
	out.WriteString("\n")
	out.WriteString(clipLine)
	if s.LastSent != "" {
		out.WriteString("\n")
		out.WriteString(dimStyle.Render("last sent: " + s.LastSent))
	}
	out.WriteString("\n\n")
	out.WriteString(grid)
	if s.Err != nil {
		out.WriteString("\n\n")
		out.WriteString(errStyle.Render("error: " + s.Err.Error()))
	}
	out.WriteString("\n\n")
	out.WriteString(help)
	out.WriteString("\n")
	return out.String()
}
