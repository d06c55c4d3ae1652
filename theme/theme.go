package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Step strip
	StepNote     rune // ● note step
	StepRest     rune // · rest step
	StepPlayhead rune // ▶ current step

	// Clip grid
	ClipIdle     rune // □ slot
	ClipLaunched rune // ■ last launched slot
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			StepNote:     '●',
			StepRest:     '·',
			StepPlayhead: '▶',

			ClipIdle:     '□',
			ClipLaunched: '■',
		},
	}
}

// Load builds a theme from a .gpl palette, or the built-in palette when
// path is empty
func Load(path string) (*Theme, error) {
	if path == "" {
		return New(nil), nil
	}
	p, err := LoadGPL(path)
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleMuted   = 0.2
	RoleFG      = 0.4
	RoleAccent  = 0.5
	RoleActive  = 0.7
	RoleWarning = 0.8
	RoleSuccess = 1.0
)

func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.Color(RoleSuccess) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(norm).Hex())
}

// PitchColor spreads the twelve pitch classes over the palette
func (t *Theme) PitchColor(pitch int) lipgloss.Color {
	pc := ((pitch % 12) + 12) % 12
	return t.Color(float64(pc) / 11)
}

// VelocityColor maps 0-127 onto the upper half of the palette
func (t *Theme) VelocityColor(velocity int) lipgloss.Color {
	return t.Color(0.5 + float64(velocity)/254)
}
