package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-phinrip/midi"
	"go-phinrip/note"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "clock":
		if len(os.Args) < 3 {
			usage()
			return
		}
		countClock(os.Args[2], 5*time.Second)
	case "note":
		if len(os.Args) < 3 {
			usage()
			return
		}
		name := "C4"
		if len(os.Args) > 3 {
			name = os.Args[3]
		}
		sendNote(os.Args[2], name)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list              - List all MIDI ports")
	fmt.Println("  clock <in>        - Count clock pulses for 5 seconds")
	fmt.Println("  note <out> [name] - Send one note (default C4)")
}

func listPorts() {
	fmt.Println("=== MIDI Ports ===")
	fmt.Printf("(waiting up to %s...)\n", midi.DefaultScanTimeout)

	ports, err := midi.ListPorts(midi.DefaultScanTimeout)
	if err != nil {
		fmt.Printf("\n%v\n", err)
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	fmt.Println("Inputs:")
	for i, p := range ports.In {
		fmt.Printf("  %d: %s\n", i, p)
	}
	fmt.Println("Outputs:")
	for i, p := range ports.Out {
		fmt.Printf("  %d: %s\n", i, p)
	}
}

func countClock(in string, d time.Duration) {
	agent := midi.NewPortAgent(in, "", midi.ClockOnly(true))
	if err := agent.Open(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer agent.Close()

	fmt.Printf("Counting clock on %q for %s...\n", in, d)
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	pulses := 0
	for agent.Listen(ctx) == nil {
		pulses++
		if pulses%midi.PulsesPerQuarter == 0 {
			fmt.Printf("  beat %d\n", pulses/midi.PulsesPerQuarter)
		}
	}

	bpm := float64(pulses) / midi.PulsesPerQuarter / d.Minutes()
	fmt.Printf("%d pulses, ~%.1f bpm\n", pulses, bpm)
}

func sendNote(out, name string) {
	n, err := note.Named(name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	agent := midi.NewPortAgent("", out)
	if err := agent.Open(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer agent.Close()

	fmt.Printf("Sending %s to %q\n", n, out)
	on := midi.Event{Type: midi.NoteOn, Note: uint8(n.Pitch), Velocity: uint8(n.Velocity)}
	if err := agent.SendEvent(on); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	time.Sleep(500 * time.Millisecond)
	agent.SendEvent(midi.Event{Type: midi.NoteOff, Note: uint8(n.Pitch)})
	fmt.Println("Done!")
}
