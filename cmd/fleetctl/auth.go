package main

import (
	"github.com/spf13/cobra"

	"fleet_desk/internal/screens"
)

func newLoginCmd(a *app) *cobra.Command {
	var userName, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if userName == "" {
				if userName, err = a.term.Prompt("Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.term.Prompt("Password: "); err != nil {
					return err
				}
			}
			l := screens.NewLogin(a.env())
			l.UserName, l.Password = userName, password
			if err := l.Submit(cmd.Context()); err != nil {
				return err
			}
			printf(cmd, "Signed in as %s\n", a.store.UserName())
			return nil
		},
	}
	cmd.Flags().StringVarP(&userName, "user", "u", "", "user name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when empty)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := screens.Logout(a.env()); err != nil {
				return err
			}
			printf(cmd, "Signed out\n")
			return nil
		},
	}
}
