package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"go-phinrip/sequencer"
	"go-phinrip/theme"
)

func steps(n int) []sequencer.Step {
	out := make([]sequencer.Step, n)
	for i := range out {
		if i%4 == 3 {
			out[i] = sequencer.RestStep()
		} else {
			out[i] = sequencer.NoteStep(60+i, 96, 0)
		}
	}
	return out
}

func TestStepStripRows(t *testing.T) {
	th := theme.New(nil)
	out := RenderStepStrip(th, steps(20), 8, 4, 2)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "   9 "))
	assert.Equal(t, 1, strings.Count(out, "▶"))
	assert.Equal(t, 5, strings.Count(out, "·"))
	assert.Equal(t, 5+8+1, lipgloss.Width(lines[0]))
}

func TestNoteList(t *testing.T) {
	out := RenderNoteList(theme.New(nil), []sequencer.Step{sequencer.NoteStep(61, 96, 0), sequencer.RestStep()})
	assert.Contains(t, out, "C#4")
	assert.Contains(t, out, "--")
}

func TestClipGrid(t *testing.T) {
	th := theme.New(nil)
	out := RenderClipGrid(th, 4, 3, &[2]int{1, 2})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, 1, strings.Count(out, "■"))
	assert.Contains(t, lines[2], "■")
	assert.Equal(t, 11, strings.Count(out, "□"))
}

func TestKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{{Title: "Monitor", Keys: []KeyBinding{{Key: "q", Desc: "quit"}}}})
	assert.Equal(t, "Monitor\n  q            quit", out)
}
