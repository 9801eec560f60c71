package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "healthstate",
		Short: "Personal health-state scores and daily data lifecycle",
		Long: `healthstate tracks daily nutrition, water, workouts and lab results for a
handful of local users, and derives recovery, stress and energy scores.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newRolloverCmd(), newScoreCmd(), newUsersCmd())
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
