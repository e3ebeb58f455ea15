package screens

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"fleet_desk/internal/events"
	"fleet_desk/internal/geo"
	"fleet_desk/internal/models"
)

// TechnicianForm adds a technician, or edits the one handed over by the
// technician list when built with NewEditTechnicianForm.
type TechnicianForm struct {
	env    Env
	editID string

	TechnicianType  string
	Name            string
	Location        LocationPicker
	MobileNumber    string
	AlternateNumber string
	VehicleType     string

	Loading bool
}

func NewAddTechnicianForm(env Env) *TechnicianForm {
	return &TechnicianForm{env: env}
}

// NewEditTechnicianForm prefills the form from the session's edit handoff.
// It alerts and returns ErrNoEditTarget when nothing was handed over.
func NewEditTechnicianForm(env Env) (*TechnicianForm, error) {
	t, err := technicianFromHandoff(env.Session.EditData())
	if err != nil {
		env.Alerts.Alert("Error", "No technician selected for editing.")
		return nil, err
	}
	f := &TechnicianForm{
		env:             env,
		editID:          t.ID,
		TechnicianType:  t.TechnicianType,
		Name:            t.Name,
		MobileNumber:    t.MobileNumber,
		AlternateNumber: t.AlternateNumber,
		VehicleType:     t.VehicleType,
	}
	if s, ok := geo.StateOfCity(t.City); ok {
		f.Location.SelectState(s.IsoCode)
		f.Location.SelectCity(t.City)
	} else {
		// Unlisted or ambiguous city: the operator picks the state and the
		// city stays selectable under it.
		f.Location.Keep(t.City)
	}
	return f, nil
}

// technicianFromHandoff accepts the record as stored by the list screen or
// as a loosely typed map, e.g. one decoded from a websocket payload.
func technicianFromHandoff(v any) (Technician, error) {
	switch t := v.(type) {
	case Technician:
		if t.ID != "" {
			return t, nil
		}
	case *Technician:
		if t != nil && t.ID != "" {
			return *t, nil
		}
	case map[string]any:
		var out Technician
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "mapstructure",
			WeaklyTypedInput: true,
			Result:           &out,
		})
		if err != nil {
			return Technician{}, err
		}
		if err := dec.Decode(t); err != nil {
			return Technician{}, fmt.Errorf("decode technician handoff: %w", err)
		}
		if out.ID != "" {
			return out, nil
		}
	}
	return Technician{}, ErrNoEditTarget
}

func (f *TechnicianForm) Editing() bool { return f.editID != "" }

func (f *TechnicianForm) EditID() string { return f.editID }

func (f *TechnicianForm) VehicleTypeOptions() []string {
	return models.VehicleTypes
}

func (f *TechnicianForm) payload() map[string]string {
	return map[string]string{
		"technicianType":  f.TechnicianType,
		"name":            f.Name,
		"city":            f.Location.City,
		"mobileNumber":    f.MobileNumber,
		"alternateNumber": f.AlternateNumber,
		"vehicleType":     f.VehicleType,
	}
}

// Submit creates or updates the technician and notifies technician lists.
func (f *TechnicianForm) Submit(ctx context.Context) error {
	if f.TechnicianType == "" || f.Name == "" || f.Location.State == "" || f.Location.City == "" ||
		f.MobileNumber == "" || f.VehicleType == "" {
		f.env.Alerts.Alert("Please fill all required fields.", "")
		return ErrValidation
	}

	f.Loading = true
	defer func() { f.Loading = false }()

	var err error
	if f.Editing() {
		err = f.env.API.Put(ctx, "/api/technician?technicianId="+url.QueryEscape(f.editID), f.payload(), nil)
	} else {
		err = f.env.API.Post(ctx, "/api/technician", f.payload(), nil)
	}
	if err != nil {
		logrus.WithError(err).WithField("technicianId", f.editID).Error("Failed to save technician")
		if f.Editing() {
			f.env.Alerts.Alert("Error", "Failed to update technician. Please try again.")
		} else {
			f.env.Alerts.Alert("Error", "Failed to add technician. Please try again.")
		}
		return err
	}

	if f.Editing() {
		f.env.Session.ClearEditData()
		f.env.Session.Publish(events.TopicTechnicians)
		f.env.Alerts.Alert("Success", "Technician updated successfully!")
		return nil
	}
	f.Reset()
	f.env.Session.Publish(events.TopicTechnicians)
	f.env.Alerts.Alert("Success", "Technician added successfully!")
	return nil
}

func (f *TechnicianForm) Reset() {
	f.TechnicianType, f.Name = "", ""
	f.Location.Reset()
	f.MobileNumber, f.AlternateNumber, f.VehicleType = "", "", ""
}
