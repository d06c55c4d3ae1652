package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"go-phinrip/midi"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input and output ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := midi.ListPorts(cfg.MIDI.ScanTimeout)
		if err != nil {
			return err
		}
		printPorts(cmd.OutOrStdout(), ports)
		return nil
	},
}

func printPorts(w io.Writer, ports midi.Ports) {
	section := func(title string, names []string) {
		bold.Fprintln(w, title)
		if len(names) == 0 {
			printWarning(w, "none")
			return
		}
		for i, name := range names {
			fmt.Fprintf(w, "  %d: %s\n", i, name)
		}
	}
	section("Inputs", ports.In)
	section("Outputs", ports.Out)
}
