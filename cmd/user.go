package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/table-booking/controllers"
	"github.com/yeremiapane/table-booking/models"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage staff accounts",
	}
	cmd.AddCommand(newUserCreateCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var name, email, password, role string

	c := &cobra.Command{
		Use:   "create",
		Short: "Create a staff or admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != models.RoleAdmin && role != models.RoleStaff {
				return fmt.Errorf("invalid --role %q (want admin or staff)", role)
			}
			if len(password) < 8 {
				return fmt.Errorf("--password must be at least 8 characters")
			}

			a, err := openApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := controllers.CreateUser(a.db, name, email, password, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user id=%d email=%s role=%s\n", user.ID, user.Email, user.Role)
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "display name")
	c.Flags().StringVar(&email, "email", "", "login email")
	c.Flags().StringVar(&password, "password", "", "password")
	c.Flags().StringVar(&role, "role", models.RoleStaff, "admin or staff")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("email")
	_ = c.MarkFlagRequired("password")
	return c
}
