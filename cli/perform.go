package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-phinrip/clip"
	"go-phinrip/debug"
	"go-phinrip/generator"
	"go-phinrip/midi"
	"go-phinrip/modulator"
	"go-phinrip/phrandom"
	"go-phinrip/sequencer"
	"go-phinrip/theme"
	"go-phinrip/tui"
)

var (
	performIn        string
	performOut       string
	performUpdates   int
	performDocument  string
	performClockOnly bool
	performMonitor   bool
	performSeed      int64
)

var performCmd = &cobra.Command{
	Use:   "perform",
	Short: "Launch clips live, driven by an external MIDI clock",
	Long: `Listen for MIDI clock on the input port and launch clips on the output
port. Every update (four quarter notes by default) launches one random clip.

With --config the notes of a sequence document are played instead, one per
step of the document's step length.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyPerformFlags(cmd); err != nil {
			return err
		}
		if cfg.MIDI.In == "" {
			return fmt.Errorf("no input port: set --in or midi.in")
		}

		rc := newRandomness(cmd, performSeed)
		source, err := performSource(rc, performDocument)
		if err != nil {
			return err
		}

		agent := midi.NewPortAgent(cfg.MIDI.In, cfg.MIDI.Out,
			midi.ClockOnly(cfg.MIDI.ClockOnly),
			midi.ScanTimeout(cfg.MIDI.ScanTimeout))
		if err := agent.Open(); err != nil {
			return err
		}
		defer agent.Close()

		controller := clip.NewController(agent, source,
			clip.WithInterval(int64(cfg.Perform.UpdateInterval)))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w := cmd.OutOrStdout()
		printInfo(w, "Performing on %s -> %s (seed %d)", cfg.MIDI.In, cfg.MIDI.Out, rc.Seed())

		var runErr error
		if performMonitor {
			runErr = monitor(ctx, controller)
		} else {
			runErr = runController(ctx, controller)
		}

		received, sent := agent.Stats()
		printField(w, "updates", controller.UpdateCount())
		printField(w, "pulses", received)
		printField(w, "sent", sent)
		if runErr != nil && ctx.Err() == nil {
			return runErr
		}
		printSuccess(w, "Stopped")
		return nil
	},
}

func init() {
	performCmd.Flags().StringVar(&performIn, "in", "", "Clock input port (name or substring)")
	performCmd.Flags().StringVar(&performOut, "out", "", "Clip output port (name or substring)")
	performCmd.Flags().IntVar(&performUpdates, "updates", 0, "Stop after this many updates (0 runs until interrupted)")
	performCmd.Flags().StringVar(&performDocument, "config", "", "Play a sequence document instead of random clips")
	performCmd.Flags().BoolVar(&performClockOnly, "clock-only", true, "Ignore input messages other than clock")
	performCmd.Flags().BoolVar(&performMonitor, "monitor", false, "Show the live monitor")
	performCmd.Flags().Int64Var(&performSeed, "seed", 0, "Seed to reproduce a performance")
}

// applyPerformFlags overrides config keys with the flags that were set
func applyPerformFlags(cmd *cobra.Command) error {
	overrides := []struct {
		flag string
		key  string
		val  any
	}{
		{"in", "midi.in", performIn},
		{"out", "midi.out", performOut},
		{"clock-only", "midi.clock_only", performClockOnly},
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		if err := cfg.Set(o.key, o.val); err != nil {
			return err
		}
	}
	return nil
}

// performSource returns random clips, or the notes of the document at path
func performSource(rc *phrandom.Context, path string) (clip.Source, error) {
	if path == "" {
		g, err := clip.NewRandomClipGenerator(rc, cfg.Perform.Tracks, cfg.Perform.Scenes)
		if err != nil {
			return nil, err
		}
		g.Delta = int64(cfg.Perform.ClipDelta)
		return g, nil
	}

	doc, err := sequencer.LoadDocument(expandHome(path))
	if err != nil {
		return nil, err
	}
	settings, err := doc.Settings()
	if err != nil {
		return nil, err
	}
	gen, mods, err := doc.Sources(generator.DefaultRegistry(), modulator.DefaultRegistry(), rc)
	if err != nil {
		return nil, err
	}
	stepTicks := int64(settings.StepLength.Quarters() * midi.PulsesPerQuarter)
	s, err := clip.NewNoteSource(gen, mods, stepTicks)
	if err != nil {
		return nil, err
	}
	s.Delta = int64(cfg.Perform.ClipDelta)
	return s, nil
}

func runController(ctx context.Context, c *clip.Controller) error {
	if performUpdates > 0 {
		return c.RunFor(ctx, performUpdates)
	}
	return c.Run(ctx)
}

// monitor runs the controller behind the terminal monitor. Quitting the
// monitor stops the controller; the controller ending closes the monitor.
func monitor(ctx context.Context, c *clip.Controller) error {
	th, err := theme.Load(cfg.UI.Palette)
	if err != nil {
		debug.Warn("palette", "err", err)
		th = theme.New(nil)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := func() {
		c.Stop()
		cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- runController(runCtx, c)
	}()

	m := tui.NewModel(th, "phinrip", cfg.Perform.Tracks, cfg.Perform.Scenes, c.Updates(), stop)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, uiErr := p.Run()
	stop()
	runErr := <-done
	if uiErr != nil && ctx.Err() == nil {
		return fmt.Errorf("monitor: %w", uiErr)
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
