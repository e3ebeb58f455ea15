package screens

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"fleet_desk/internal/session"
)

func TestLoginEmptyFieldsSendNothing(t *testing.T) {
	cases := []struct{ name, user, pass string }{
		{"both empty", "", ""},
		{"no password", "ravi", ""},
		{"no username", "", "pw"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeAPI{}
			env, ui := newEnv(t, api)
			l := NewLogin(env)
			l.UserName, l.Password = tc.user, tc.pass

			if err := l.Submit(context.Background()); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if n := len(api.Requests()); n != 0 {
				t.Errorf("%d requests sent", n)
			}
			alerts := ui.Alerts()
			if len(alerts) != 1 || alerts[0] != (alert{"Login Failed", "Please enter both username and password."}) {
				t.Errorf("alerts = %v", alerts)
			}
			if l.UserName != tc.user || l.Password != tc.pass || env.Session.IsLoggedIn() {
				t.Errorf("state changed: %q %q loggedIn=%v", l.UserName, l.Password, env.Session.IsLoggedIn())
			}
		})
	}
}

func TestLoginSuccessStoresTokenAndGoesHome(t *testing.T) {
	api := &fakeAPI{handler: respond(http.StatusOK, `{"authToken":"abc","userName":"ravi"}`)}
	env, ui := newEnv(t, api)
	l := NewLogin(env)
	l.UserName, l.Password = "ravi", "pw"

	if err := l.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	reqs := api.Requests()
	if len(reqs) != 1 || reqs[0].Method != http.MethodPost || reqs[0].Target != "/api/user/login" {
		t.Fatalf("requests = %+v", reqs)
	}
	var body map[string]string
	json.Unmarshal(reqs[0].Body, &body)
	if body["userName"] != "ravi" || body["password"] != "pw" {
		t.Errorf("body = %v", body)
	}

	if !env.Session.IsLoggedIn() || env.Session.Token() != "abc" || env.Session.UserName() != "ravi" {
		t.Errorf("session = %q %q", env.Session.Token(), env.Session.UserName())
	}
	if stored, ok, err := ui.keys.Get(session.TokenKey); err != nil || !ok || stored != "abc" {
		t.Errorf("secure storage %s = %q, %v, %v", session.TokenKey, stored, ok, err)
	}
	if len(ui.replace) != 1 || ui.replace[0] != RouteHome {
		t.Errorf("navigation = %v", ui.replace)
	}
	if len(ui.Alerts()) != 0 {
		t.Errorf("unexpected alerts %v", ui.Alerts())
	}
	if l.Loading {
		t.Error("loading flag left set")
	}
}

func TestLoginNestedToken(t *testing.T) {
	api := &fakeAPI{handler: respond(http.StatusOK, `{"data":{"authToken":"nested"}}`)}
	env, _ := newEnv(t, api)
	l := NewLogin(env)
	l.UserName, l.Password = "ravi", "pw"

	if err := l.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if env.Session.Token() != "nested" || env.Session.UserName() != "ravi" {
		t.Errorf("session = %q %q", env.Session.Token(), env.Session.UserName())
	}
}

func TestLoginFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"unauthorized": respond(http.StatusUnauthorized, `{"error":"invalid username or password"}`),
		"no token":     respond(http.StatusOK, `{"userName":"ravi"}`),
		"server error": respond(http.StatusInternalServerError, ``),
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			env, ui := newEnv(t, &fakeAPI{handler: h})
			l := NewLogin(env)
			l.UserName, l.Password = "ravi", "wrong"

			if err := l.Submit(context.Background()); err == nil {
				t.Fatal("expected error")
			}
			if env.Session.IsLoggedIn() {
				t.Error("session signed in after failure")
			}
			if tok, ok, _ := ui.keys.Get(session.TokenKey); ok {
				t.Errorf("token %q persisted", tok)
			}
			alerts := ui.Alerts()
			if len(alerts) != 1 || alerts[0] != (alert{loginFailedTitle, loginFailedMessage}) {
				t.Errorf("alerts = %v", alerts)
			}
			if len(ui.replace) != 0 {
				t.Errorf("navigated to %v", ui.replace)
			}
			if l.Loading {
				t.Error("loading flag left set")
			}
		})
	}
}

func TestLogout(t *testing.T) {
	env, ui := newEnv(t, &fakeAPI{})
	env.Session.SignIn("tok", "ravi")
	env.Session.SetEditData(Technician{ID: "t1"})

	if err := Logout(env); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if env.Session.IsLoggedIn() || env.Session.EditData() != nil {
		t.Error("session not cleared")
	}
	if len(ui.replace) != 1 || ui.replace[0] != RouteLogin {
		t.Errorf("navigation = %v", ui.replace)
	}
}
