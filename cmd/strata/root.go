// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the strata CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strata",
		Short: "Strata - tiered content dispatch for text adventures",
		Long: `Strata loads layered content modules below a content root, merges
their vocabulary, event, and handler contributions with tiered
precedence, and reports authoring conflicts before an engine ever
dispatches a verb.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewVerbsCmd())
	cmd.AddCommand(NewPlayCmd())

	return cmd
}
