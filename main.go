// ABOUTME: Entry point for the wavplay command
// ABOUTME: Runs the CLI and maps failures to a non-zero exit status
package main

import (
	"fmt"
	"os"

	"github.com/gtRZync/wav-player/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "wavplay: %v\n", err)
		os.Exit(1)
	}
}
