package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-phinrip/config"
	"go-phinrip/debug"
)

var (
	verbose    bool
	configFile string

	// cfg is loaded before any subcommand runs
	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "phinrip",
	Short: "Markov step sequences and live clip launching",
	Long: `phinrip renders generative note sequences to Standard MIDI Files and
drives a clip launcher live from an external MIDI clock.

Sequences are described by JSON documents of chained note generators and
note modulators. Every run prints its seed so a result can be reproduced.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		if err := debug.Init(verbose || cfg.Log.Verbose, cfg.Log.File); err != nil {
			printWarning(os.Stderr, "log file: %v, logging to stderr", err)
		}
		debug.Log("cli", "config %s", cfg.Path())
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "Config file (default ~/.config/go-phinrip/config.json)")

	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(performCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(fourthsCmd)
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(portsCmd)
}
