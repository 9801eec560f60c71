package main

import (
	"fmt"
	"text/tabwriter"

	"healthstate/internal/domain"

	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manages local user profiles",
	}
	cmd.AddCommand(newUsersAddCmd(), newUsersListCmd())
	return cmd
}

func newUsersAddCmd() *cobra.Command {
	var (
		u    domain.UserProfile
		goal string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Registers a new user profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if u.Phone == "" && u.Email == "" {
				return fmt.Errorf("one of --phone or --email is required")
			}
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			u.Goal = domain.Goal(goal)
			added, err := e.svc.Users.AddUser(cmd.Context(), u)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), added.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&u.Phone, "phone", "", "phone number used to log in")
	f.StringVar(&u.Email, "email", "", "email used to log in")
	f.StringVar(&u.Password, "password", "", "login password")
	f.StringVar(&u.Nickname, "nickname", "", "display name")
	f.Float64Var(&u.HeightCm, "height", 0, "height in cm")
	f.Float64Var(&u.WeightKg, "weight", 0, "weight in kg")
	f.StringVar(&goal, "goal", "", "gain, maintain or lose")
	f.StringVar(&u.DobISO, "dob", "", "date of birth, YYYY-MM-DD")
	f.StringVar(&u.Sex, "sex", "", "male or female")
	f.StringVar(&u.ActivityLevel, "activity", "", "sedentary, light, moderate, active or very_active")
	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			users, err := e.svc.Users.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			current, err := e.svc.Users.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNICKNAME\tPHONE\tEMAIL\tCURRENT")
			for _, u := range users {
				mark := ""
				if current != nil && current.ID == u.ID {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Nickname, u.Phone, u.Email, mark)
			}
			return tw.Flush()
		},
	}
}
