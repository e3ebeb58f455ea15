package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fleet_desk/internal/events"
	"fleet_desk/internal/models"
	"fleet_desk/internal/screens"
)

func newTechnicianCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "technician",
		Aliases:           []string{"tech"},
		Short:             "Browse and manage support technicians",
		PersistentPreRunE: loggedIn(a),
	}
	cmd.AddCommand(
		newTechnicianListCmd(a),
		newTechnicianAddCmd(a),
		newTechnicianEditCmd(a),
		newTechnicianDeleteCmd(a),
		newTechnicianCallCmd(a),
	)
	return cmd
}

func printTechnicians(w io.Writer, ts []screens.Technician) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tNAME\tCITY\tMOBILE\tALTERNATE\tVEHICLE")
	for _, t := range ts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.TechnicianType, t.Name, t.City,
			t.MobileNumber, t.AlternateNumber, models.VehicleTypeLabel(t.VehicleType))
	}
	tw.Flush()
}

func newTechnicianListCmd(a *app) *cobra.Command {
	var query, vehicleType string
	var watch bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List technicians, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := screens.NewTechnicianSupport(a.env())
			s.SetQuery(query)
			s.SetVehicleFilter(vehicleType)
			if err := s.Mount(ctx); err != nil {
				return err
			}
			defer s.Unmount()
			printTechnicians(cmd.OutOrStdout(), s.Visible())
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.api.Listen(ctx, func(ev events.Event) {
				logrus.WithFields(logrus.Fields{"action": ev.Action, "id": ev.ID}).Info("change received")
				a.store.Publish(ev.Topic)
				if ev.Topic == events.TopicTechnicians {
					fmt.Fprintln(cmd.OutOrStdout())
					printTechnicians(cmd.OutOrStdout(), s.Visible())
				}
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "technician type contains")
	cmd.Flags().StringVar(&vehicleType, "vehicle-type", "", "only this vehicle type")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep listening and reprint on changes")
	return cmd
}

type technicianFlags struct {
	technicianType, name, state, city, mobile, alternate, vehicleType string
}

func (tf *technicianFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&tf.technicianType, "type", "", "technician type, e.g. Mechanic")
	fl.StringVar(&tf.name, "name", "", "name")
	fl.StringVar(&tf.state, "state", "", "state ISO code or name")
	fl.StringVar(&tf.city, "city", "", "city within the state")
	fl.StringVar(&tf.mobile, "mobile", "", "mobile number")
	fl.StringVar(&tf.alternate, "alternate", "", "alternate number")
	fl.StringVar(&tf.vehicleType, "vehicle-type", "", "CAR, TRUCK, BUS or TAMPO")
}

// apply copies the flags the user set onto the form.
func (tf *technicianFlags) apply(cmd *cobra.Command, f *screens.TechnicianForm) error {
	changed := cmd.Flags().Changed
	if changed("type") {
		f.TechnicianType = tf.technicianType
	}
	if changed("name") {
		f.Name = tf.name
	}
	if changed("state") {
		if err := f.Location.SelectState(tf.state); err != nil {
			return err
		}
	}
	if changed("city") {
		if err := f.Location.SelectCity(tf.city); err != nil {
			return err
		}
	}
	if changed("mobile") {
		f.MobileNumber = tf.mobile
	}
	if changed("alternate") {
		f.AlternateNumber = tf.alternate
	}
	if changed("vehicle-type") {
		f.VehicleType = tf.vehicleType
	}
	return nil
}

func newTechnicianAddCmd(a *app) *cobra.Command {
	var tf technicianFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a technician",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := screens.NewAddTechnicianForm(a.env())
			if err := tf.apply(cmd, f); err != nil {
				return err
			}
			return f.Submit(cmd.Context())
		},
	}
	tf.register(cmd)
	return cmd
}

// findTechnician loads the list screen and returns the technician with id.
func findTechnician(ctx context.Context, s *screens.TechnicianSupport, id string) (screens.Technician, error) {
	if err := s.Load(ctx); err != nil {
		return screens.Technician{}, err
	}
	for _, t := range s.All() {
		if t.ID == id {
			return t, nil
		}
	}
	return screens.Technician{}, fmt.Errorf("technician %s not found", id)
}

func newTechnicianEditCmd(a *app) *cobra.Command {
	var tf technicianFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a technician; only the given flags are updated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := screens.NewTechnicianSupport(a.env())
			t, err := findTechnician(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}
			s.Edit(t)
			f, err := screens.NewEditTechnicianForm(a.env())
			if err != nil {
				return err
			}
			if err := tf.apply(cmd, f); err != nil {
				return err
			}
			return f.Submit(cmd.Context())
		},
	}
	tf.register(cmd)
	return cmd
}

func newTechnicianDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a technician after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := screens.NewTechnicianSupport(a.env())
			t, err := findTechnician(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}
			s.RequestDelete(t.ID)
			if !yes && !a.term.Confirm(fmt.Sprintf("Delete %s (%s)?", t.Name, t.TechnicianType)) {
				s.CancelDelete()
				printf(cmd, "Cancelled\n")
				return nil
			}
			if err := s.ConfirmDelete(cmd.Context()); err != nil {
				return err
			}
			printf(cmd, "Deleted %s, %d technicians left\n", t.ID, len(s.All()))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newTechnicianCallCmd(a *app) *cobra.Command {
	var alternate bool
	cmd := &cobra.Command{
		Use:   "call <id>",
		Short: "Dial a technician",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := screens.NewTechnicianSupport(a.env())
			t, err := findTechnician(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}
			number := t.MobileNumber
			if alternate {
				number = t.AlternateNumber
			}
			return s.Call(number)
		},
	}
	cmd.Flags().BoolVar(&alternate, "alternate", false, "use the alternate number")
	return cmd
}
