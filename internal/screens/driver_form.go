package screens

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"fleet_desk/internal/apiclient"
	"fleet_desk/internal/events"
	"fleet_desk/internal/models"
)

// Image fields of the driver form, as named in the multipart request.
const (
	ImagePhoto      = "photo"
	ImageAadharCard = "aadharCard"
	ImageLicense    = "license"
)

type DriverForm struct {
	env Env

	Name         string
	MobileNumber string
	Password     string
	Location     LocationPicker
	VehicleType  string
	Photo        string
	AadharCard   string
	License      string

	Loading bool
}

func NewDriverForm(env Env) *DriverForm {
	return &DriverForm{env: env}
}

func (f *DriverForm) VehicleTypeOptions() []string {
	return models.VehicleTypes
}

// PickImage asks the image picker for one of the three documents. A
// cancelled pick leaves the current selection untouched.
func (f *DriverForm) PickImage(field string) error {
	path, err := f.env.Picker.PickImage(field)
	if err != nil {
		return fmt.Errorf("pick %s: %w", field, err)
	}
	if path == "" {
		return nil
	}
	switch field {
	case ImagePhoto:
		f.Photo = path
	case ImageAadharCard:
		f.AadharCard = path
	case ImageLicense:
		f.License = path
	default:
		return fmt.Errorf("unknown image field %q", field)
	}
	return nil
}

func (f *DriverForm) complete() bool {
	for _, v := range []string{
		f.Name, f.MobileNumber, f.Password, f.Location.City, f.Location.State,
		f.VehicleType, f.Photo, f.AadharCard, f.License,
	} {
		if v == "" {
			return false
		}
	}
	return true
}

// Submit uploads the driver with its three images. Fields are reset only
// after the server accepted the driver.
func (f *DriverForm) Submit(ctx context.Context) error {
	if !f.complete() {
		f.env.Alerts.Alert("Please fill all fields and provide images.", "")
		return ErrValidation
	}

	f.Loading = true
	defer func() { f.Loading = false }()

	form := (&apiclient.MultipartForm{}).
		AddField("name", f.Name).
		AddField("mobileNumber", f.MobileNumber).
		AddField("password", f.Password).
		AddField("city", f.Location.City).
		AddField("state", f.Location.State).
		AddField("vehicleType", f.VehicleType).
		AddFile(ImagePhoto, f.Photo).
		AddFile(ImageAadharCard, f.AadharCard).
		AddFile(ImageLicense, f.License)

	if err := f.env.API.PostMultipart(ctx, "/api/driver", form, nil); err != nil {
		logrus.WithError(err).WithField("mobileNumber", f.MobileNumber).Error("Failed to add driver")
		f.env.Alerts.Alert("Error", "Failed to add driver. Please try again.")
		return err
	}

	f.Reset()
	f.env.Session.Publish(events.TopicDrivers)
	f.env.Alerts.Alert("Success", "Driver added successfully!")
	return nil
}

func (f *DriverForm) Reset() {
	f.Name, f.MobileNumber, f.Password = "", "", ""
	f.Location.Reset()
	f.VehicleType = ""
	f.Photo, f.AadharCard, f.License = "", "", ""
}
