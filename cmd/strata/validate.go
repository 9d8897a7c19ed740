// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratamud/strata/internal/engine"
	"github.com/stratamud/strata/internal/logging"
)

// NewValidateCmd creates the validate subcommand. It loads a content
// root the same way an embedding engine would and reports either a load
// summary or every authoring conflict found.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a content root and report authoring conflicts",
		Long: `Validate discovers every content module below the root, resolves
tiers, and merges vocabulary, event, and handler contributions. It
prints a summary on success; on conflict it lists every offending
module pair and exits non-zero. A content root that validates here
loads identically in the engine.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			logging.SetDefault("strata", version, cfg.LogFormat)

			eng, err := engine.Load(cmd.Context(), cfg.Root, engine.WithEngineVersion(cfg.EngineVersion))
			if err != nil {
				var conflicts *engine.ConflictError
				if errors.As(err, &conflicts) {
					fmt.Fprintf(cmd.ErrOrStderr(), "%d authoring conflict(s):\n", len(conflicts.Conflicts))
					for _, c := range conflicts.Conflicts {
						fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", c)
					}
				}
				return err
			}

			modules := eng.Modules()
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d module(s), %d verb(s)\n", len(modules), len(eng.Vocabulary().Verbs()))
			for _, mod := range modules {
				fmt.Fprintf(cmd.OutOrStdout(), "  tier %d  %-24s %s\n", mod.Tier, mod.Name, mod.Path)
			}
			return nil
		},
	}

	addCommonFlags(cmd.Flags())
	return cmd
}
