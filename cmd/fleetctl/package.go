package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fleet_desk/internal/screens"
)

func newPackageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "package",
		Short:             "Package bookings",
		PersistentPreRunE: loggedIn(a),
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a package booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := screens.NewPackageDetail(a.env())
			p.Load(cmd.Context(), args[0])
			if p.Err != "" {
				return errors.New(p.Err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range p.Rows() {
				fmt.Fprintf(w, "%s:\t%s\n", r.Label, r.Value)
			}
			return w.Flush()
		},
	})
	return cmd
}
