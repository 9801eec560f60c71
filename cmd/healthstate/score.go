package main

import (
	"errors"

	"healthstate/internal/app"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var (
		userID    string
		sleep     float64
		intensity float64
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Prints today's recovery, stress and energy scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			if userID == "" {
				u, err := e.svc.Users.CurrentUser(cmd.Context())
				if err != nil {
					return err
				}
				if u == nil {
					return errors.New("no current user; pass --user")
				}
				userID = u.ID
			}

			req := app.ScoreRequest{SleepHours: sleep}
			if cmd.Flags().Changed("intensity") {
				req.WorkoutIntensity = &intensity
			}
			rep, err := e.svc.Scores.Today(cmd.Context(), userID, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (default: current user)")
	cmd.Flags().Float64Var(&sleep, "sleep", 7.5, "hours slept last night")
	cmd.Flags().Float64Var(&intensity, "intensity", 0, "workout intensity 0-10 (default: highest logged today)")
	return cmd
}
