// ABOUTME: Root command of the wavplay CLI
// ABOUTME: Wires configuration, logging and the subcommands together
package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gtRZync/wav-player/internal/config"
	"github.com/gtRZync/wav-player/pkg/audio/output"
	"github.com/spf13/cobra"
)

// options holds the values shared by every subcommand
type options struct {
	envFile      string
	backend      string
	logFile      string
	drainTimeout time.Duration
	noTUI        bool

	cfg *config.Config

	// newDevice replaces the configured backend when set
	newDevice output.Factory
}

// NewRootCommand builds the wavplay command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(&options{})
}

func newRootCommand(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "wavplay",
		Short: "Play and inspect 16-bit PCM WAV files",
		Long: `wavplay loads a 16-bit PCM WAV file into memory and plays it through
the system audio output, or prints the decoded header.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file to read settings from")
	flags.StringVar(&opts.backend, "backend", "", fmt.Sprintf("Output backend %v", output.Backends()))
	flags.StringVar(&opts.logFile, "log-file", config.DefaultLogFile, "Log file path")
	flags.DurationVar(&opts.drainTimeout, "drain-timeout", 0, "Longest wait for playback to stop on unload")
	flags.BoolVar(&opts.noTUI, "no-tui", false, "Disable TUI, use streaming logs instead")

	root.AddCommand(newPlayCommand(opts))
	root.AddCommand(newInfoCommand())
	root.AddCommand(newVersionCommand())

	return root
}

// load reads the configuration; flags given on the command line win
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = o.backend
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("drain-timeout") {
		cfg.DrainTimeout = o.drainTimeout
	}
	if flags.Changed("no-tui") {
		cfg.NoTUI = o.noTUI
	}

	o.cfg = cfg
	return nil
}

// setupLogging sends logs to the log file, and to stdout as well when the
// TUI is off. The returned function closes the file.
func setupLogging(cfg *config.Config, useTUI bool, stdout io.Writer) (func(), error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(stdout, f))
	}

	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}

// Execute runs the wavplay command line
func Execute() error {
	return NewRootCommand().Execute()
}
