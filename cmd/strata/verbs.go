// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stratamud/strata/internal/engine"
	"github.com/stratamud/strata/internal/logging"
)

// NewVerbsCmd creates the verbs subcommand, listing the merged vocabulary
// with per-tier handler and event bindings.
func NewVerbsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verbs",
		Short: "List the merged vocabulary of a content root",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			logging.SetDefault("strata", version, cfg.LogFormat)

			eng, err := engine.Load(cmd.Context(), cfg.Root, engine.WithEngineVersion(cfg.EngineVersion))
			if err != nil {
				return err
			}

			for _, verb := range eng.Vocabulary().Verbs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s", verb)
				if syns := eng.Vocabulary().Synonyms(verb); len(syns) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), " (%s)", strings.Join(syns, ", "))
				}
				fmt.Fprintln(cmd.OutOrStdout())

				for _, hb := range eng.Handlers().For(verb) {
					fmt.Fprintf(cmd.OutOrStdout(), "  handler tier %d: %s\n", hb.Tier, hb.Module)
				}
				for _, eb := range eng.Events().For(verb) {
					fmt.Fprintf(cmd.OutOrStdout(), "  event   tier %d: %s (%s)\n", eb.Tier, eb.Event, eb.Module)
				}
			}
			return nil
		},
	}

	addCommonFlags(cmd.Flags())
	return cmd
}
