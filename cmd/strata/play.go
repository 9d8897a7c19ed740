// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stratamud/strata/internal/content"
	"github.com/stratamud/strata/internal/dispatch"
	"github.com/stratamud/strata/internal/engine"
	"github.com/stratamud/strata/internal/logging"
	"github.com/stratamud/strata/internal/observability"
	"github.com/stratamud/strata/internal/world"
)

// NewPlayCmd creates the play subcommand: an interactive loop that loads
// a content root plus a world file and dispatches one command per input
// line. It exists to exercise content the way an embedding engine would,
// without one.
func NewPlayCmd() *cobra.Command {
	var (
		actorID     string
		worldPath   string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Dispatch commands interactively against a content root",
		Long: `Play loads the content root and a YAML world file, then reads one
command per line from stdin: a verb, an optional object entity id, and
the rest as raw arguments. Each line runs through the full dispatch
pipeline. An empty line or "quit" ends the session.`,
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

			store := world.NewStore()
			if worldPath != "" {
				store, err = world.LoadFile(worldPath)
				if err != nil {
					return err
				}
			}

			d, err := eng.Dispatcher(store)
			if err != nil {
				return err
			}

			if metricsAddr != "" {
				obs := observability.NewServer(metricsAddr, func() bool { return true })
				if _, err := obs.Start(); err != nil {
					return err
				}
				defer func() { _ = obs.Stop(cmd.Context()) }()
			}

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			fmt.Fprint(out, "> ")
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || line == "quit" || line == "exit" {
					break
				}

				res, err := d.Dispatch(cmd.Context(), parseLine(line, actorID))
				if err != nil {
					fmt.Fprintf(out, "%s\n> ", dispatch.PlayerMessage(err))
					continue
				}
				fmt.Fprintf(out, "%s\n> ", res.Message)
			}
			return scanner.Err()
		},
	}

	addCommonFlags(cmd.Flags())
	cmd.Flags().StringVar(&actorID, "actor", "player", "acting entity id")
	cmd.Flags().StringVar(&worldPath, "world", "", "YAML world file of entities")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve /metrics and health probes on this address")

	return cmd
}

// parseLine splits an input line into an action: verb, optional object
// entity id, remaining raw arguments. Deliberately naive; embedding
// engines bring their own parser.
func parseLine(line, actorID string) content.Action {
	fields := strings.Fields(line)
	action := content.Action{Verb: fields[0], ActorID: actorID}
	if len(fields) > 1 {
		action.ObjectID = fields[1]
	}
	if len(fields) > 2 {
		action.Args = strings.Join(fields[2:], " ")
	}
	return action
}
