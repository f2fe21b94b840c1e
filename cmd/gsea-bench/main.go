// Package main provides the gsea-bench CLI tool for checking the
// calibration and power of the engine on simulated data.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
