package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-phinrip/note"
	"go-phinrip/sequencer"
	"go-phinrip/theme"
)

// RenderStep renders one step, colored by pitch class
func RenderStep(th *theme.Theme, s sequencer.Step, playhead bool) string {
	if playhead {
		return lipgloss.NewStyle().Foreground(th.Accent()).Render(string(th.Symbols.StepPlayhead))
	}
	if s.IsRest() {
		return lipgloss.NewStyle().Foreground(th.Muted()).Render(string(th.Symbols.StepRest))
	}
	return lipgloss.NewStyle().Foreground(th.PitchColor(s.Pitch)).Render(string(th.Symbols.StepNote))
}

// RenderStepStrip renders steps in rows of perRow, with bar separators every
// beatEvery steps. playhead is the index to highlight, -1 for none.
func RenderStepStrip(th *theme.Theme, steps []sequencer.Step, perRow, beatEvery, playhead int) string {
	if perRow <= 0 {
		perRow = 16
	}
	var lines []string
	for start := 0; start < len(steps); start += perRow {
		end := min(start+perRow, len(steps))
		var line strings.Builder
		line.WriteString(fmt.Sprintf("%4d ", start+1))
		for i := start; i < end; i++ {
			if i > start && beatEvery > 0 && (i-start)%beatEvery == 0 {
				line.WriteString(" ")
			}
			line.WriteString(RenderStep(th, steps[i], i == playhead))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderNoteList renders pitch names in pitch-class colors
func RenderNoteList(th *theme.Theme, steps []sequencer.Step) string {
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		if s.IsRest() {
			parts = append(parts, lipgloss.NewStyle().Foreground(th.Muted()).Render("--"))
			continue
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(th.PitchColor(s.Pitch)).Render(note.PitchName(s.Pitch)))
	}
	return strings.Join(parts, " ")
}
