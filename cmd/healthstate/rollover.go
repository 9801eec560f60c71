package main

import (
	"fmt"

	"healthstate/internal/app"

	"github.com/spf13/cobra"
)

func newRolloverCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "Archives and resets daily counters that belong to a past day",
		Long: `Runs the daily reset once. Without --user every registered user is
processed. Running it again on the same day changes nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			var results []app.RolloverResult
			if userID != "" {
				u, err := e.svc.Users.GetUser(cmd.Context(), userID)
				if err != nil {
					return err
				}
				if u == nil {
					return fmt.Errorf("%w: %s", app.ErrUserNotFound, userID)
				}
				results = []app.RolloverResult{e.svc.Rollover.EnsureDailyReset(cmd.Context(), userID)}
			} else if results, err = rolloverAll(cmd.Context(), e); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (default: all users)")
	return cmd
}
