// Package screens holds the headless models behind each operator screen.
// A front-end drives them through method calls and renders their state;
// every side effect on the user goes through the small UI interfaces below.
package screens

import (
	"errors"

	"fleet_desk/internal/apiclient"
	"fleet_desk/internal/session"
)

var (
	// ErrValidation is returned when a form is submitted incomplete. The
	// user has already been alerted and no request was sent.
	ErrValidation = errors.New("validation failed")
	// ErrNoEditTarget is returned when an edit screen opens without a
	// record handed over from a list screen.
	ErrNoEditTarget = errors.New("no record to edit")
)

// Routes pushed or replaced through Navigator.
const (
	RouteHome           = "/"
	RouteLogin          = "/login"
	RouteAddTechnician  = "add_technician"
	RouteEditTechnician = "edit_technician"
)

type Alerter interface {
	Alert(title, message string)
}

type Navigator interface {
	Push(route string)
	Replace(route string)
}

// Dialer opens a URL such as tel:+919800000000 with the platform handler.
type Dialer interface {
	Dial(url string) error
}

// ImagePicker returns the local path of an image chosen for field, or ""
// when the user cancels.
type ImagePicker interface {
	PickImage(field string) (string, error)
}

// Env is what every screen is constructed with.
type Env struct {
	API     *apiclient.Caller
	Session *session.Store
	Alerts  Alerter
	Nav     Navigator
	Dialer  Dialer
	Picker  ImagePicker
}
