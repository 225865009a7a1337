package main

import (
	"os"

	"github.com/arthur-debert/wheelink/cmd/wheelink"
	"github.com/arthur-debert/wheelink/pkg/ui"
)

func main() {
	rootCmd := wheelink.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		ui.NewPrinter(os.Stderr, ui.Resolve(ui.FormatAuto, os.Stderr)).Error(err)
		os.Exit(1)
	}
}
