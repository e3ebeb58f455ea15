package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fleet_desk/internal/geo"
)

func newGeoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geo",
		Short: "States and cities offered by the location pickers",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "states",
			Short: "List states",
			Run: func(cmd *cobra.Command, args []string) {
				for _, s := range geo.States() {
					printf(cmd, "%s\t%s\n", s.IsoCode, s.Name)
				}
			},
		},
		&cobra.Command{
			Use:   "cities <state>",
			Short: "List the cities of a state",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cities := geo.CitiesOf(args[0])
				if cities == nil {
					return fmt.Errorf("unknown state %q", args[0])
				}
				for _, c := range cities {
					printf(cmd, "%s\n", c)
				}
				return nil
			},
		},
	)
	return cmd
}
