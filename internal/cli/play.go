// ABOUTME: play subcommand
// ABOUTME: Loads a WAV file, plays it and unloads it on exit or interrupt
package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gtRZync/wav-player/internal/ui"
	"github.com/gtRZync/wav-player/pkg/sound"
	"github.com/spf13/cobra"
)

func newPlayCommand(opts *options) *cobra.Command {
	var repeat int

	cmd := &cobra.Command{
		Use:   "play <file.wav>",
		Short: "Play a WAV file",
		Long: `Play loads the whole file into memory and plays it. With the TUI,
space plays the sound again and q quits. Without it the sound is played
--repeat times back to back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if repeat < 1 {
				return fmt.Errorf("--repeat must be at least 1, got %d", repeat)
			}
			return opts.play(cmd, args[0], repeat)
		},
	}

	cmd.Flags().IntVarP(&repeat, "repeat", "r", 1, "Times to play the sound when the TUI is disabled")
	return cmd
}

func (o *options) play(cmd *cobra.Command, path string, repeat int) error {
	useTUI := !o.cfg.NoTUI

	closeLog, err := setupLogging(o.cfg, useTUI, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeLog()

	engineCfg := o.cfg.Engine()
	engineCfg.NewDevice = o.newDevice
	engine, err := sound.NewEngine(engineCfg)
	if err != nil {
		return err
	}

	h, err := engine.Load(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := h.Unload(); err != nil {
			log.Printf("Error unloading %s: %v", path, err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if useTUI {
		return runTUI(ctx, h)
	}
	return playRepeated(ctx, h, repeat)
}

// playRepeated plays h n times, returning early on interrupt
func playRepeated(ctx context.Context, h *sound.Handle, n int) error {
	for i := 0; i < n; i++ {
		if err := h.Play(); err != nil {
			return err
		}
		log.Printf("Playing %s (%d/%d, %s)", sound.Filename(h.Path), i+1, n, h.Duration())

		if err := h.Wait(ctx); err != nil {
			log.Printf("Shutdown signal received")
			return nil
		}
	}
	return nil
}

// runTUI shows the now-playing view until the user quits
func runTUI(ctx context.Context, h *sound.Handle) error {
	control := ui.NewControl()
	prog, err := ui.Run(h, control)
	if err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := prog.Run()
		done <- err
	}()

	format := h.Format()
	prog.Send(ui.StatusMsg{
		Name:       sound.Filename(h.Path),
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		BitDepth:   format.BitsPerSample,
		Frames:     h.Frames(),
		Duration:   h.Duration(),
	})
	play(prog, h)

	for {
		select {
		case <-control.Play:
			play(prog, h)
		case <-control.Quit:
			log.Printf("Received quit signal from TUI")
			return <-done
		case err := <-done:
			return err
		case <-ctx.Done():
			log.Printf("Shutdown signal received")
			prog.Quit()
			return <-done
		}
	}
}

func play(prog *tea.Program, h *sound.Handle) {
	if err := h.Play(); err != nil {
		log.Printf("Play failed: %v", err)
		prog.Send(ui.StatusMsg{Err: err})
		return
	}
	prog.Send(ui.StatusMsg{Started: true})
}
