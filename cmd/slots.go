package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSlotsCmd() *cobra.Command {
	var (
		date      string
		partySize int
	)

	c := &cobra.Command{
		Use:   "slots",
		Short: "Print the bookable times for a date and party size",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			slots, err := a.slots.AvailableSlots(date, partySize)
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no availability on %s for %d\n", date, partySize)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(slots, " "))
			return nil
		},
	}

	c.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD")
	c.Flags().IntVar(&partySize, "party-size", 2, "party size")
	_ = c.MarkFlagRequired("date")
	return c
}
