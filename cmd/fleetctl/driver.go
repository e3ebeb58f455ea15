package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fleet_desk/internal/apiclient"
	"fleet_desk/internal/screens"
)

func newDriverCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driver",
		Short: "Add and list drivers",
		PersistentPreRunE: loggedIn(a),
	}
	cmd.AddCommand(newDriverAddCmd(a), newDriverListCmd(a))
	return cmd
}

func newDriverAddCmd(a *app) *cobra.Command {
	var in struct {
		name, mobile, password, state, city, vehicleType string
		photo, aadhar, license                           string
	}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a driver with photo, Aadhaar card and license images",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := screens.NewDriverForm(a.env())
			f.Name, f.MobileNumber, f.Password, f.VehicleType = in.name, in.mobile, in.password, in.vehicleType
			if in.state != "" {
				if err := f.Location.SelectState(in.state); err != nil {
					return err
				}
			}
			if in.city != "" {
				if err := f.Location.SelectCity(in.city); err != nil {
					return err
				}
			}
			a.term.files[screens.ImagePhoto] = in.photo
			a.term.files[screens.ImageAadharCard] = in.aadhar
			a.term.files[screens.ImageLicense] = in.license
			for _, field := range []string{screens.ImagePhoto, screens.ImageAadharCard, screens.ImageLicense} {
				if err := f.PickImage(field); err != nil {
					return err
				}
			}
			err := f.Submit(cmd.Context())
			fmt.Fprintln(cmd.ErrOrStderr())
			return err
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&in.name, "name", "", "driver name")
	fl.StringVar(&in.mobile, "mobile", "", "mobile number, also the driver's login")
	fl.StringVar(&in.password, "password", "", "initial password")
	fl.StringVar(&in.state, "state", "", "state ISO code or name")
	fl.StringVar(&in.city, "city", "", "city within the state")
	fl.StringVar(&in.vehicleType, "vehicle-type", "", "CAR, TRUCK, BUS or TAMPO")
	fl.StringVar(&in.photo, "photo", "", "path to the driver's photo")
	fl.StringVar(&in.aadhar, "aadhar", "", "path to the Aadhaar card image")
	fl.StringVar(&in.license, "license", "", "path to the license image")
	return cmd
}

type driverRow struct {
	ID           uint   `json:"ID"`
	Name         string `json:"name"`
	MobileNumber string `json:"mobileNumber"`
	City         string `json:"city"`
	State        string `json:"state"`
	VehicleType  string `json:"vehicleType"`
}

func newDriverListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered drivers",
		RunE: func(cmd *cobra.Command, args []string) error {
			var env apiclient.Envelope[[]driverRow]
			if err := a.api.Get(cmd.Context(), "/api/driver", &env); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMOBILE\tCITY\tSTATE\tVEHICLE")
			for _, d := range env.Data {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.MobileNumber, d.City, d.State, d.VehicleType)
			}
			return w.Flush()
		},
	}
}
