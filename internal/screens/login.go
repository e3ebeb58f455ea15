package screens

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"fleet_desk/internal/apiclient"
)

const (
	loginFailedTitle   = "Login Failed"
	loginFailedMessage = "Please check your credentials and try again."
)

type Login struct {
	env Env

	UserName string
	Password string
	Loading  bool
}

func NewLogin(env Env) *Login {
	return &Login{env: env}
}

// Submit signs in with the entered credentials. On success the token is
// persisted, the session is marked signed in and the front-end is sent
// home; on any failure the user is alerted and nothing is stored.
func (l *Login) Submit(ctx context.Context) error {
	if l.UserName == "" || l.Password == "" {
		l.env.Alerts.Alert(loginFailedTitle, "Please enter both username and password.")
		return ErrValidation
	}

	l.Loading = true
	defer func() { l.Loading = false }()

	var resp apiclient.LoginResponse
	err := l.env.API.Post(ctx, "/api/user/login", map[string]string{
		"userName": l.UserName,
		"password": l.Password,
	}, &resp)
	if err == nil && resp.Token() == "" {
		err = fmt.Errorf("login response carried no token")
	}
	if err == nil {
		userName := resp.User()
		if userName == "" {
			userName = l.UserName
		}
		err = l.env.Session.SignIn(resp.Token(), userName)
	}
	if err != nil {
		logrus.WithError(err).WithField("userName", l.UserName).Warn("Login failed")
		l.env.Alerts.Alert(loginFailedTitle, loginFailedMessage)
		return err
	}

	l.Password = ""
	l.env.Nav.Replace(RouteHome)
	return nil
}

// Logout forgets the persisted token and the in-memory session, then
// returns the front-end to the login screen.
func Logout(env Env) error {
	err := env.Session.SignOut()
	if err != nil {
		logrus.WithError(err).Warn("Failed to clear stored token")
	}
	env.Nav.Replace(RouteLogin)
	return err
}
