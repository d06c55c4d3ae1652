package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"go-phinrip/sequencer"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.mid>",
	Short: "Print the metadata of a rendered MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		md, err := sequencer.ReadMetadata(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		printMetadata(cmd.OutOrStdout(), args[0], md)
		return nil
	},
}

func printMetadata(w io.Writer, name string, md *sequencer.Metadata) {
	bold.Fprintf(w, "## Metadata - %s ##\n", name)
	if md.TrackName != "" {
		printField(w, "track name", md.TrackName)
	}
	for _, text := range md.Text {
		fmt.Fprintf(w, "  %s\n", text)
	}
	if md.TimeSignature.Num > 0 {
		printField(w, "time signature", fmt.Sprintf("%d / %d", md.TimeSignature.Num, md.TimeSignature.Denom))
	}
	if md.BPM > 0 {
		printField(w, "tempo", fmt.Sprintf("%.0f bpm", md.BPM))
	}
	printField(w, "notes", md.Notes)
	printField(w, "length", fmt.Sprintf("%d ticks @ %d ppq", md.Ticks, md.TicksPerQuarter))
}
