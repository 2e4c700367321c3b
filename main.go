// Package main is the entry point for the pcapsum capture summarizer.
package main

import (
	"fmt"
	"os"

	"github.com/avnixm/pcapsum/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
