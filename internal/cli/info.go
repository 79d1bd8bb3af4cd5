// ABOUTME: info subcommand
// ABOUTME: Prints the decoded header and peak levels of a WAV file without playing it
package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/gtRZync/wav-player/pkg/audio/decode"
	"github.com/gtRZync/wav-player/pkg/audio/wav"
	"github.com/spf13/cobra"
)

func newInfoCommand() *cobra.Command {
	var levels bool

	cmd := &cobra.Command{
		Use:   "info <file.wav>",
		Short: "Print the header of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := wav.ParseFile(args[0])
			if err != nil {
				return err
			}
			if err := wav.Fprint(cmd.OutOrStdout(), file); err != nil {
				return err
			}
			if !levels {
				return nil
			}
			return printPeaks(cmd.OutOrStdout(), file)
		},
	}

	cmd.Flags().BoolVar(&levels, "levels", true, "Also print the peak level of each channel")
	return cmd
}

// peaks returns the largest absolute sample value of each channel
func peaks(file *wav.File) ([]int, error) {
	dec, err := decode.NewPCM(file.Format)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	samples, err := dec.Decode(file.Data)
	if err != nil {
		return nil, err
	}

	channels := file.Format.Channels
	out := make([]int, channels)
	for i, s := range samples {
		v := int(s)
		if v < 0 {
			v = -v
		}
		if ch := i % channels; v > out[ch] {
			out[ch] = v
		}
	}
	return out, nil
}

func printPeaks(w io.Writer, file *wav.File) error {
	levels, err := peaks(file)
	if err != nil {
		return err
	}
	for ch, peak := range levels {
		level := "silent"
		if peak > 0 {
			level = fmt.Sprintf("%.1f dBFS", 20*math.Log10(float64(peak)/math.MaxInt16))
		}
		if _, err := fmt.Fprintf(w, "Peak Level (ch %d): %d (%s)\n", ch+1, peak, level); err != nil {
			return err
		}
	}
	return nil
}
