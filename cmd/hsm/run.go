package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/hsm/internal/game"
	"github.com/aretw0/hsm/internal/logging"
	"github.com/aretw0/hsm/internal/scenario"
	"github.com/aretw0/hsm/pkg/stream"
)

// runCmd plays a YAML event scenario through the demo hierarchy and prints
// the lifted score.
var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Play an event scenario through the state machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		sc, err := scenario.Load(args[0])
		if err != nil {
			return err
		}

		events := make([]game.Event, 0, len(sc.Events))
		for _, name := range sc.Events {
			ev, err := game.ParseEvent(name)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			events = append(events, ev)
		}

		logger.Info("running scenario", "name", sc.Name, "events", len(events), "start", sc.Start)

		score, err := game.Run(cmd.Context(), stream.FromSlice(events), sc.Start)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}

		fmt.Fprintf(os.Stdout, "%d\n", score)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
