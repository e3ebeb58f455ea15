package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fleet_desk/internal/models"
	"fleet_desk/internal/screens"
)

func newVehicleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "vehicle",
		Short:             "Vehicles listed on the marketplace",
		PersistentPreRunE: loggedIn(a),
	}
	cmd.AddCommand(newVehicleSellCmd(a))
	return cmd
}

func dots(c *screens.Carousel) string {
	var b strings.Builder
	for _, on := range c.Dots() {
		if on {
			b.WriteString("●")
		} else {
			b.WriteString("○")
		}
	}
	return b.String()
}

func newVehicleSellCmd(a *app) *cobra.Command {
	var query string
	var photo int
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "List vehicles for sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := screens.NewSellVehicles(a.env())
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			s.SetQuery(query)
			cards := s.Visible()
			if len(cards) == 0 {
				printf(cmd, "No vehicles found\n")
				return nil
			}
			for _, c := range cards {
				v := c.Vehicle
				c.Carousel.Select(photo)
				ac := "Non-AC"
				if v.IsAC {
					ac = "AC"
				}
				printf(cmd, "%s  %s %s (%s)\n", v.Number, v.ChassisBrand, v.Model, models.VehicleTypeLabel(v.Type))
				printf(cmd, "  %d seats, %s, %s, %s\n", v.SeatingCapacity, ac, v.BodyType, v.Location)
				printf(cmd, "  contact %s\n", v.ContactNumber)
				if url := c.Carousel.Current(); url != "" {
					printf(cmd, "  %s %s\n", dots(c.Carousel), url)
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search every vehicle field")
	cmd.Flags().IntVar(&photo, "photo", 0, "photo index to show per vehicle")
	return cmd
}
