package screens

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func writeImage(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte("img:"+name), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func filledDriverForm(t *testing.T, env Env) *DriverForm {
	t.Helper()
	f := NewDriverForm(env)
	f.Name = "Suresh"
	f.MobileNumber = "9800000001"
	f.Password = "pw"
	if err := f.Location.SelectState("MH"); err != nil {
		t.Fatal(err)
	}
	if err := f.Location.SelectCity("Pune"); err != nil {
		t.Fatal(err)
	}
	f.VehicleType = "BUS"
	f.Photo = writeImage(t, "photo.jpg")
	f.AadharCard = writeImage(t, "aadhar.png")
	f.License = writeImage(t, "license.jpg")
	return f
}

func driverFields(f *DriverForm) [9]string {
	return [9]string{
		f.Name, f.MobileNumber, f.Password, f.Location.State, f.Location.City,
		f.VehicleType, f.Photo, f.AadharCard, f.License,
	}
}

func TestDriverFormAnyMissingFieldSendsNothing(t *testing.T) {
	blanks := map[string]func(*DriverForm){
		"name":        func(f *DriverForm) { f.Name = "" },
		"mobile":      func(f *DriverForm) { f.MobileNumber = "" },
		"password":    func(f *DriverForm) { f.Password = "" },
		"state":       func(f *DriverForm) { f.Location.State = "" },
		"city":        func(f *DriverForm) { f.Location.City = "" },
		"vehicleType": func(f *DriverForm) { f.VehicleType = "" },
		"photo":       func(f *DriverForm) { f.Photo = "" },
		"aadharCard":  func(f *DriverForm) { f.AadharCard = "" },
		"license":     func(f *DriverForm) { f.License = "" },
		"images": func(f *DriverForm) {
			f.Photo, f.AadharCard, f.License = "", "", ""
		},
		"everything": func(f *DriverForm) { *f = *NewDriverForm(f.env) },
	}
	for name, blank := range blanks {
		t.Run(name, func(t *testing.T) {
			api := &fakeAPI{}
			env, ui := newEnv(t, api)
			f := filledDriverForm(t, env)
			blank(f)
			before := driverFields(f)

			if err := f.Submit(context.Background()); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v", err)
			}
			if n := len(api.Requests()); n != 0 {
				t.Errorf("%d requests sent for incomplete form", n)
			}
			alerts := ui.Alerts()
			if len(alerts) != 1 || alerts[0] != (alert{"Please fill all fields and provide images.", ""}) {
				t.Errorf("alerts = %v", alerts)
			}
			if after := driverFields(f); after != before {
				t.Errorf("fields changed: %v -> %v", before, after)
			}
		})
	}
}

func TestDriverFormSuccessResetsAndAlertsOnce(t *testing.T) {
	api := &fakeAPI{handler: respond(http.StatusCreated, `{"data":{}}`)}
	env, ui := newEnv(t, api)
	env.Session.SignIn("tok", "op")
	f := filledDriverForm(t, env)

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	reqs := api.Requests()
	if len(reqs) != 1 || reqs[0].Method != http.MethodPost || reqs[0].Target != "/api/driver" {
		t.Fatalf("requests = %+v", reqs)
	}
	if got := reqs[0].Header.Get("Authorization"); got != "Bearer tok" {
		t.Errorf("Authorization = %q", got)
	}
	mediaType, params, err := mime.ParseMediaType(reqs[0].Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("Content-Type = %q", reqs[0].Header.Get("Content-Type"))
	}
	form, err := multipart.NewReader(bytes.NewReader(reqs[0].Body), params["boundary"]).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	want := map[string]string{
		"name": "Suresh", "mobileNumber": "9800000001", "password": "pw",
		"city": "Pune", "state": "MH", "vehicleType": "BUS",
	}
	for k, v := range want {
		if got := form.Value[k]; len(got) != 1 || got[0] != v {
			t.Errorf("field %s = %v, want %q", k, got, v)
		}
	}
	for _, field := range []string{ImagePhoto, ImageAadharCard, ImageLicense} {
		if len(form.File[field]) != 1 {
			t.Errorf("file %s missing", field)
		}
	}

	alerts := ui.Alerts()
	if len(alerts) != 1 || alerts[0] != (alert{"Success", "Driver added successfully!"}) {
		t.Errorf("alerts = %v", alerts)
	}
	if f.Name != "" || f.MobileNumber != "" || f.Password != "" || f.Location.State != "" ||
		f.Location.City != "" || f.VehicleType != "" || f.Photo != "" || f.AadharCard != "" || f.License != "" {
		t.Errorf("form not reset: %+v", f)
	}
}

func TestDriverFormFailureKeepsFields(t *testing.T) {
	api := &fakeAPI{handler: respond(http.StatusInternalServerError, `{"error":"boom"}`)}
	env, ui := newEnv(t, api)
	f := filledDriverForm(t, env)

	if err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	alerts := ui.Alerts()
	if len(alerts) != 1 || alerts[0] != (alert{"Error", "Failed to add driver. Please try again."}) {
		t.Errorf("alerts = %v", alerts)
	}
	if f.Name != "Suresh" || f.Location.City != "Pune" || f.Photo == "" {
		t.Errorf("fields lost: %+v", f)
	}
	if f.Loading {
		t.Error("loading flag left set")
	}
}

func TestDriverFormPickImage(t *testing.T) {
	env, ui := newEnv(t, &fakeAPI{})
	ui.picks[ImageAadharCard] = "/tmp/aadhar.png"
	f := NewDriverForm(env)
	f.Photo = "/tmp/kept.jpg"

	if err := f.PickImage(ImageAadharCard); err != nil {
		t.Fatal(err)
	}
	if err := f.PickImage(ImagePhoto); err != nil {
		t.Fatal(err)
	}
	if f.AadharCard != "/tmp/aadhar.png" || f.Photo != "/tmp/kept.jpg" {
		t.Errorf("aadhar=%q photo=%q", f.AadharCard, f.Photo)
	}
	ui.picks["selfie"] = "/tmp/x.png"
	if err := f.PickImage("selfie"); err == nil {
		t.Error("unknown field accepted")
	}
}
