package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"go-phinrip/generator"
	"go-phinrip/modulator"
	"go-phinrip/phrandom"
	"go-phinrip/sequencer"
	"go-phinrip/theme"
	"go-phinrip/widgets"
)

var (
	stepsOutput  string
	stepsCount   int
	stepsSeed    int64
	stepsPreview bool
)

var errNoStepCount = errors.New("unable to determine the number of steps. Specify --steps or provide notecount values in JSON.")

var stepsCmd = &cobra.Command{
	Use:   "steps <config>",
	Short: "Render a JSON sequence document to a MIDI file",
	Long: `Render a JSON sequence document to a Standard MIDI File.

The number of steps defaults to the sum of the document's notecount values.
The output defaults to the document path with a .mid extension.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rc := newRandomness(cmd, stepsSeed)

		seq, err := renderDocument(args[0], stepsCount, rc)
		if err != nil {
			return err
		}

		out := stepsOutput
		if out == "" {
			out = midiPath(args[0])
		}
		if err := seq.Save(out); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}

		w := cmd.OutOrStdout()
		printSuccess(w, "Wrote %d steps to %s", seq.Len(), out)
		printField(w, "seed", rc.Seed())
		if stepsPreview {
			th, err := theme.Load(cfg.UI.Palette)
			if err != nil {
				printWarning(w, "palette: %v", err)
				th = theme.New(nil)
			}
			fmt.Fprintln(w, widgets.RenderStepStrip(th, seq.Steps(), 16, 4, -1))
			fmt.Fprintln(w, widgets.RenderNoteList(th, seq.Steps()))
		}
		return nil
	},
}

func init() {
	stepsCmd.Flags().StringVarP(&stepsOutput, "output", "o", "", "Destination MIDI file")
	stepsCmd.Flags().IntVarP(&stepsCount, "steps", "s", 0, "Number of steps (default: sum of notecounts)")
	stepsCmd.Flags().Int64Var(&stepsSeed, "seed", 0, "Seed to reproduce a sequence exactly")
	stepsCmd.Flags().BoolVar(&stepsPreview, "preview", false, "Print the rendered steps")
}

// newRandomness seeds from --seed when it was given, otherwise from the clock
func newRandomness(cmd *cobra.Command, seed int64) *phrandom.Context {
	if cmd.Flags().Changed("seed") {
		return phrandom.New(seed)
	}
	return phrandom.NewFromTime()
}

// renderDocument builds the sequence described by the document at path.
// steps <= 0 uses the document's own step count.
func renderDocument(path string, steps int, rc *phrandom.Context) (*sequencer.Sequence, error) {
	path = expandHome(path)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("configuration file not found: %s", path)
	}
	doc, err := sequencer.LoadDocument(path)
	if err != nil {
		return nil, err
	}

	builder, err := doc.Build(generator.DefaultRegistry(), modulator.DefaultRegistry(), rc)
	if err != nil {
		return nil, err
	}

	if steps <= 0 {
		steps = doc.StepCount()
	}
	if steps <= 0 {
		return nil, errNoStepCount
	}
	return builder.GenerateSteps(steps)
}

func midiPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".mid"
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
