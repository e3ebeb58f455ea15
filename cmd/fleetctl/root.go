package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fleet_desk/internal/apiclient"
	"fleet_desk/internal/logger"
	"fleet_desk/internal/screens"
	"fleet_desk/internal/session"
)

var errNotLoggedIn = errors.New("not logged in, run: fleetctl login")

// app is the state shared by all subcommands, built once per invocation.
type app struct {
	cfg   cliConfig
	store *session.Store
	api   *apiclient.Caller
	term  *terminal
}

func (a *app) env() screens.Env {
	return screens.Env{
		API:     a.api,
		Session: a.store,
		Alerts:  a.term,
		Nav:     a.term,
		Dialer:  a.term,
		Picker:  a.term,
	}
}

// loggedIn runs the root setup and then refuses to continue without a
// stored token. Cobra only runs the nearest persistent hook.
func loggedIn(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if !a.store.IsLoggedIn() {
			return errNotLoggedIn
		}
		return nil
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	a := &app{}

	root := &cobra.Command{
		Use:           "fleetctl",
		Short:         "Operator console for fleet_desk",
		Long:          `fleetctl signs operators in and manages drivers, technicians, vehicles for sale and package bookings on a fleet_desk server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if err := v.BindPFlag("base_url", cmd.Flags().Lookup("base-url")); err != nil {
				return err
			}
			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			logger.SetupConsole(cmd.ErrOrStderr(), cfg.LogLevel)

			keys, err := session.NewFileKeystore(cfg.StoreDir)
			if err != nil {
				return err
			}
			store := session.New(keys)
			if _, err := store.Restore(); err != nil {
				return err
			}
			api, err := apiclient.New(cfg.BaseURL, store,
				apiclient.WithTimeout(cfg.Timeout),
				apiclient.WithUploadProgress(func(total int64) io.Writer {
					return progressbar.DefaultBytes(total, "uploading")
				}),
			)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.store = store
			a.api = api
			a.term = newTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fleetctl.yaml)")
	root.PersistentFlags().String("base-url", "", "API base URL (overrides base_url)")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newDriverCmd(a),
		newTechnicianCmd(a),
		newVehicleCmd(a),
		newPackageCmd(a),
		newGeoCmd(),
	)
	return root
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
