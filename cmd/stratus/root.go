package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:   "stratus",
		Short: "Instance lifecycle API",
		Long: `Stratus - Instance Lifecycle API

Stratus is a thin HTTP facade over EC2: create, list, inspect, start,
stop, and terminate instances, plus an aggregate status summary. The
cloud is the only source of truth; stratus keeps no state of its own.`,
		Version: version,
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(`Stratus {{.Version}} - Instance Lifecycle API
`)
}
