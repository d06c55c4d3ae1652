package sequencer

import (
	"fmt"
	"strings"

	"go-phinrip/faults"
)

var (
	ErrUnknownStepLength = faults.New(faults.KindConfiguration, "unknown step length")
	ErrEmptyStep         = faults.New(faults.KindValidation, "step length must produce a positive tick count")
)

// StepLength is the fixed duration shared by every step of a sequence
type StepLength int

const (
	Whole StepLength = iota
	Half
	Quarter
	Eighth
	Sixteenth
)

var stepLengthNames = []string{"WHOLE", "HALF", "QUARTER", "EIGHTH", "SIXTEENTH"}

// quarters per step, as numerator/denominator
var stepLengthQuarters = [][2]int{
	Whole:     {4, 1},
	Half:      {2, 1},
	Quarter:   {1, 1},
	Eighth:    {1, 2},
	Sixteenth: {1, 4},
}

func (l StepLength) String() string {
	if l < Whole || l > Sixteenth {
		return fmt.Sprintf("StepLength(%d)", int(l))
	}
	return stepLengthNames[l]
}

// Quarters returns the step length in quarter notes
func (l StepLength) Quarters() float64 {
	q := stepLengthQuarters[l]
	return float64(q[0]) / float64(q[1])
}

// Ticks converts the step length to ticks at the given resolution
func (l StepLength) Ticks(ticksPerQuarter int) (int, error) {
	if l < Whole || l > Sixteenth {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStepLength, int(l))
	}
	q := stepLengthQuarters[l]
	ticks := ticksPerQuarter * q[0] / q[1]
	if ticks <= 0 {
		return 0, fmt.Errorf("%w: %s at %d ppq", ErrEmptyStep, l, ticksPerQuarter)
	}
	return ticks, nil
}

// ParseStepLength parses a name like "eighth", case-insensitive
func ParseStepLength(s string) (StepLength, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range stepLengthNames {
		if name == key {
			return StepLength(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStepLength, s)
}

// Step is one fixed-length step: a note or a rest
type Step struct {
	Pitch    int
	Velocity int
	Channel  int
	Rest     bool
}

func NoteStep(pitch, velocity, channel int) Step {
	return Step{Pitch: pitch, Velocity: velocity, Channel: channel}
}

func RestStep() Step {
	return Step{Rest: true}
}

func (s Step) IsRest() bool {
	return s.Rest
}

func (s Step) String() string {
	if s.Rest {
		return "rest"
	}
	return fmt.Sprintf("note %d vel %d ch %d", s.Pitch, s.Velocity, s.Channel)
}
