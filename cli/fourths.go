package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-phinrip/generator"
	"go-phinrip/sequencer"
)

var fourthsOutput string

// chromaticThree is one octave from C3, spelled with flats
var chromaticThree = []string{
	"C3", "Db3", "D3", "Eb3", "E3", "F3",
	"Gb3", "G3", "Ab3", "A3", "Bb3", "B3",
}

// fourthsWeights are the transition weights from C3 to each note of
// chromaticThree. Each following source note uses them rotated right by one.
var fourthsWeights = []float64{4, 0, 16, 8, 2, 32, 0, 32, 2, 8, 16, 0}

const fourthsNoteCount = 256

var fourthsCmd = &cobra.Command{
	Use:   "fourths",
	Short: "Write the chromatic fourths Markov document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := fourthsDocument().Marshal()
		if err != nil {
			return err
		}
		if err := os.WriteFile(fourthsOutput, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("write %s: %w", fourthsOutput, err)
		}
		printSuccess(cmd.OutOrStdout(), "Wrote %s", fourthsOutput)
		return nil
	},
}

func init() {
	fourthsCmd.Flags().StringVarP(&fourthsOutput, "output", "o", "fourths.json", "Destination JSON file")
}

func fourthsDocument() *sequencer.Document {
	nmap := make(map[string]string, len(chromaticThree))
	for _, name := range chromaticThree {
		nmap["note_"+name] = name
	}

	weights := append([]float64(nil), fourthsWeights...)
	var transitions []generator.Transition
	for _, src := range chromaticThree {
		for i, dst := range chromaticThree {
			if weights[i] > 0 {
				transitions = append(transitions, generator.Transition{
					From:   "note_" + src,
					To:     "note_" + dst,
					Weight: weights[i],
				})
			}
		}
		last := weights[len(weights)-1]
		copy(weights[1:], weights[:len(weights)-1])
		weights[0] = last
	}

	return &sequencer.Document{
		Generators: []generator.Spec{{
			Class:       generator.ClassMarkovSequence,
			NoteMap:     nmap,
			Transitions: transitions,
			NoteCount:   fourthsNoteCount,
		}},
	}
}
