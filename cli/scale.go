package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-phinrip/note"
	"go-phinrip/sequencer"
)

var (
	scaleOutput string
	scaleRoot   string
	scaleName   string
	scaleBPM    float64
)

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Write a scale up and down in eighth notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bpm := scaleBPM
		if !cmd.Flags().Changed("bpm") && cfg.Sequence.BPM > 0 {
			bpm = cfg.Sequence.BPM
		}
		seq, err := scaleSequence(scaleRoot, scaleName, bpm)
		if err != nil {
			return err
		}
		if err := seq.Save(scaleOutput); err != nil {
			return fmt.Errorf("write %s: %w", scaleOutput, err)
		}
		printSuccess(cmd.OutOrStdout(), "Wrote %s %s scale to %s", scaleRoot, scaleName, scaleOutput)
		return nil
	},
}

func init() {
	scaleCmd.Flags().StringVarP(&scaleOutput, "output", "o", "scale.mid", "Destination MIDI file")
	scaleCmd.Flags().StringVar(&scaleRoot, "root", "C4", "Root note")
	scaleCmd.Flags().StringVar(&scaleName, "scale", "major", "Scale name")
	scaleCmd.Flags().Float64Var(&scaleBPM, "bpm", sequencer.DefaultBPM, "Tempo")
}

// scaleSequence plays one octave of the scale up, then back down without
// repeating the top note
func scaleSequence(root, name string, bpm float64) (*sequencer.Sequence, error) {
	rootNote, err := note.Named(root)
	if err != nil {
		return nil, err
	}
	st, err := note.LookupScale(name)
	if err != nil {
		return nil, err
	}

	settings := sequencer.DefaultSettings()
	settings.BPM = bpm
	settings.StepLength = sequencer.Eighth
	settings.TrackName = fmt.Sprintf("%s %s", root, st)
	seq, err := sequencer.NewSequence(settings)
	if err != nil {
		return nil, err
	}

	up := st.Pitches(rootNote.Pitch, 1)
	pitches := append([]int(nil), up...)
	for i := len(up) - 2; i >= 0; i-- {
		pitches = append(pitches, up[i])
	}
	for _, p := range pitches {
		if err := seq.AddNote(p, note.DefaultVelocity, 0); err != nil {
			return nil, err
		}
	}
	return seq, nil
}
