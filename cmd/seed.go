package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/table-booking/database"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample tables and shifts into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := database.SeedSampleData(a.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sample data ready")
			return nil
		},
	}
}
