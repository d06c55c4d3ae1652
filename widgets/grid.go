package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-phinrip/theme"
)

// RenderClipGrid renders the clip launcher with scene 0 at the top and one
// column per track. launched marks the last launched slot; nil for none.
func RenderClipGrid(th *theme.Theme, tracks, scenes int, launched *[2]int) string {
	idle := lipgloss.NewStyle().Foreground(th.Muted())
	hot := lipgloss.NewStyle().Foreground(th.Success())

	var lines []string
	for scene := 0; scene < scenes; scene++ {
		var line strings.Builder
		for track := 0; track < tracks; track++ {
			if track > 0 {
				line.WriteString(" ")
			}
			if launched != nil && launched[0] == track && launched[1] == scene {
				line.WriteString(hot.Render(string(th.Symbols.ClipLaunched)))
			} else {
				line.WriteString(idle.Render(string(th.Symbols.ClipIdle)))
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
