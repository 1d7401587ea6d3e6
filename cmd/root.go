package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/table-booking/config"
	"github.com/yeremiapane/table-booking/utils"
)

var (
	Version   = "dev"
	CommitSHA = "none"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "table-booking",
		Short: "Restaurant table booking service: availability, holds and table assignment",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.InitLogger(config.FromEnv().LogLevel)
		},
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newSweepCmd())
	root.AddCommand(newSlotsCmd())
	root.AddCommand(newUserCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", Version, CommitSHA)
		},
	})

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
