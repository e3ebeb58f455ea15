package screens

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"sync/atomic"
	"testing"

	"fleet_desk/internal/events"
)

const techniciansBody = `{"data":[
	{"_id":"t1","technicianType":"Electrician","name":"Ravi","city":"Pune","mobileNumber":"900","vehicleType":"CAR"},
	{"_id":"t2","technicianType":"Mechanic","name":"Asha","city":"Pune","mobileNumber":"901","vehicleType":"BUS"},
	{"_id":"t3","technicianType":"AC Mechanic","name":"Imran","city":"Delhi","mobileNumber":"902","vehicleType":"CAR"}
]}`

func ids(ts []Technician) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterTechnicians(t *testing.T) {
	all := []Technician{
		{ID: "1", TechnicianType: "Electrician", VehicleType: "CAR"},
		{ID: "2", TechnicianType: "Mechanic", VehicleType: "BUS"},
		{ID: "3", TechnicianType: "AC Mechanic", VehicleType: "CAR"},
	}
	cases := []struct {
		query, vehicle string
		want           []string
	}{
		{"", "", []string{"1", "2", "3"}},
		{"mech", "", []string{"2", "3"}},
		{"MECH", "CAR", []string{"3"}},
		{"", "BUS", []string{"2"}},
		{"plumber", "", []string{}},
	}
	for _, c := range cases {
		if got := ids(FilterTechnicians(all, c.query, c.vehicle)); !reflect.DeepEqual(got, c.want) {
			t.Errorf("FilterTechnicians(%q, %q) = %v, want %v", c.query, c.vehicle, got, c.want)
		}
	}
}

func TestTechnicianSupportLoadAndFilter(t *testing.T) {
	api := &fakeAPI{handler: respond(http.StatusOK, techniciansBody)}
	env, _ := newEnv(t, api)
	s := NewTechnicianSupport(env)
	if err := s.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	defer s.Unmount()

	if len(s.Visible()) != 3 {
		t.Fatalf("visible = %v", s.Visible())
	}
	s.SetQuery("mech")
	s.SetVehicleFilter("CAR")
	if got := ids(s.Visible()); !reflect.DeepEqual(got, []string{"t3"}) {
		t.Errorf("visible = %v", got)
	}
	if len(s.All()) != 3 {
		t.Error("filter modified the full list")
	}
}

func TestTechnicianSupportReloadsOnNotification(t *testing.T) {
	api := &fakeAPI{handler: respond(http.StatusOK, `{"data":[]}`)}
	env, _ := newEnv(t, api)
	s := NewTechnicianSupport(env)
	s.Mount(context.Background())

	env.Session.Publish(events.TopicTechnicians)
	env.Session.Publish(events.TopicVehicles)
	if n := len(api.Requests()); n != 2 {
		t.Fatalf("requests after notification = %d, want 2", n)
	}

	s.Unmount()
	env.Session.Publish(events.TopicTechnicians)
	if n := len(api.Requests()); n != 2 {
		t.Errorf("unmounted screen still reloads: %d requests", n)
	}
}

func TestTechnicianSupportDiscardsStaleLoad(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	api := &fakeAPI{}
	api.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			<-release
			respond(http.StatusOK, `{"data":[{"_id":"old"}]}`)(w, r)
			return
		}
		respond(http.StatusOK, `{"data":[{"_id":"new"}]}`)(w, r)
	})
	env, _ := newEnv(t, api)
	s := NewTechnicianSupport(env)

	done := make(chan error)
	go func() { done <- s.Load(context.Background()) }()
	for calls.Load() == 0 {
	}
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	close(release)
	<-done

	if got := ids(s.All()); !reflect.DeepEqual(got, []string{"new"}) {
		t.Errorf("list = %v, stale response won", got)
	}
}

func TestTechnicianSupportConfirmDelete(t *testing.T) {
	api := &fakeAPI{}
	api.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			respond(http.StatusOK, `{"message":"deleted"}`)(w, r)
			return
		}
		respond(http.StatusOK, techniciansBody)(w, r)
	})
	env, ui := newEnv(t, api)
	s := NewTechnicianSupport(env)
	s.Load(context.Background())

	s.RequestDelete("t1")
	if id, open := s.PendingDelete(); !open || id != "t1" {
		t.Fatalf("modal = %q %v", id, open)
	}
	if err := s.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}

	reqs := api.Requests()
	if len(reqs) != 3 {
		t.Fatalf("requests = %+v", reqs)
	}
	if reqs[1].Method != http.MethodDelete || reqs[1].Target != "/api/technician?technicianId=t1" {
		t.Errorf("delete request = %s %s", reqs[1].Method, reqs[1].Target)
	}
	if reqs[2].Method != http.MethodGet || reqs[2].Target != "/api/technician" {
		t.Errorf("no re-fetch after delete: %s %s", reqs[2].Method, reqs[2].Target)
	}
	if _, open := s.PendingDelete(); open {
		t.Error("modal still open")
	}
	if len(ui.Alerts()) != 0 {
		t.Errorf("alerts = %v", ui.Alerts())
	}
}

func TestTechnicianSupportDeleteFailure(t *testing.T) {
	api := &fakeAPI{handler: respond(http.StatusNotFound, `{"error":"technician not found"}`)}
	env, ui := newEnv(t, api)
	s := NewTechnicianSupport(env)
	s.RequestDelete("gone")

	if err := s.ConfirmDelete(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(ui.Alerts()) != 1 {
		t.Errorf("alerts = %v", ui.Alerts())
	}
	if _, open := s.PendingDelete(); open {
		t.Error("modal still open")
	}

	s.CancelDelete()
	if err := s.ConfirmDelete(context.Background()); err != nil {
		t.Errorf("confirm without target: %v", err)
	}
	if n := len(api.Requests()); n != 1 {
		t.Errorf("requests = %d", n)
	}
}

func TestTechnicianSupportEditAndCall(t *testing.T) {
	env, ui := newEnv(t, &fakeAPI{})
	s := NewTechnicianSupport(env)
	tech := Technician{ID: "t2", Name: "Asha", MobileNumber: "901"}

	s.Edit(tech)
	if env.Session.EditData() != tech {
		t.Errorf("handoff = %v", env.Session.EditData())
	}
	if len(ui.pushed) != 1 || ui.pushed[0] != RouteEditTechnician {
		t.Errorf("pushed = %v", ui.pushed)
	}

	if err := s.Call("901"); err != nil {
		t.Fatal(err)
	}
	if len(ui.dialed) != 1 || ui.dialed[0] != "tel:901" {
		t.Errorf("dialed = %v", ui.dialed)
	}

	ui.dialErr = errors.New("no handler")
	if err := s.Call("902"); err == nil {
		t.Error("dial failure swallowed")
	}
	if len(ui.Alerts()) != 1 {
		t.Errorf("alerts = %v", ui.Alerts())
	}
}

func TestTechnicianFormAdd(t *testing.T) {
	api := &fakeAPI{handler: respond(http.StatusCreated, `{"data":{"_id":"t9"}}`)}
	env, ui := newEnv(t, api)
	var notified int
	env.Session.Subscribe(events.TopicTechnicians, func(string) { notified++ })

	f := NewAddTechnicianForm(env)
	f.TechnicianType = "Mechanic"
	f.Name = "Asha"
	f.Location.SelectState("KA")
	f.Location.SelectCity("Mysuru")
	f.MobileNumber = "901"
	f.VehicleType = "TRUCK"

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	reqs := api.Requests()
	if len(reqs) != 1 || reqs[0].Method != http.MethodPost || reqs[0].Target != "/api/technician" {
		t.Fatalf("requests = %+v", reqs)
	}
	var body map[string]string
	json.Unmarshal(reqs[0].Body, &body)
	if body["city"] != "Mysuru" || body["vehicleType"] != "TRUCK" {
		t.Errorf("body = %v", body)
	}
	if notified != 1 {
		t.Errorf("notified = %d", notified)
	}
	if f.Name != "" || f.Location.State != "" {
		t.Error("form not reset")
	}
	if alerts := ui.Alerts(); len(alerts) != 1 || alerts[0].Title != "Success" {
		t.Errorf("alerts = %v", alerts)
	}
}

func filledTechnicianForm(t *testing.T, env Env) *TechnicianForm {
	t.Helper()
	f := NewAddTechnicianForm(env)
	f.TechnicianType = "Mechanic"
	f.Name = "Asha"
	if err := f.Location.SelectState("KA"); err != nil {
		t.Fatal(err)
	}
	if err := f.Location.SelectCity("Mysuru"); err != nil {
		t.Fatal(err)
	}
	f.MobileNumber = "901"
	f.VehicleType = "TRUCK"
	return f
}

func technicianFields(f *TechnicianForm) [7]string {
	return [7]string{
		f.TechnicianType, f.Name, f.Location.State, f.Location.City,
		f.MobileNumber, f.AlternateNumber, f.VehicleType,
	}
}

func TestTechnicianFormAnyMissingFieldSendsNothing(t *testing.T) {
	blanks := map[string]func(*TechnicianForm){
		"technicianType": func(f *TechnicianForm) { f.TechnicianType = "" },
		"name":           func(f *TechnicianForm) { f.Name = "" },
		"state":          func(f *TechnicianForm) { f.Location.State = "" },
		"city":           func(f *TechnicianForm) { f.Location.City = "" },
		"mobile":         func(f *TechnicianForm) { f.MobileNumber = "" },
		"vehicleType":    func(f *TechnicianForm) { f.VehicleType = "" },
		"all but name": func(f *TechnicianForm) {
			f.Reset()
			f.Name = "Asha"
		},
	}
	for name, blank := range blanks {
		t.Run(name, func(t *testing.T) {
			api := &fakeAPI{}
			env, ui := newEnv(t, api)
			f := filledTechnicianForm(t, env)
			f.AlternateNumber = "902"
			blank(f)
			before := technicianFields(f)

			if err := f.Submit(context.Background()); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v", err)
			}
			if n := len(api.Requests()); n != 0 {
				t.Errorf("%d requests sent for incomplete form", n)
			}
			alerts := ui.Alerts()
			if len(alerts) != 1 || alerts[0] != (alert{"Please fill all required fields.", ""}) {
				t.Errorf("alerts = %v", alerts)
			}
			if after := technicianFields(f); after != before {
				t.Errorf("fields changed: %v -> %v", before, after)
			}
		})
	}
}

func TestTechnicianFormAlternateNumberIsOptional(t *testing.T) {
	api := &fakeAPI{handler: respond(http.StatusCreated, `{"data":{"_id":"t9"}}`)}
	env, _ := newEnv(t, api)
	f := filledTechnicianForm(t, env)

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if n := len(api.Requests()); n != 1 {
		t.Errorf("%d requests sent", n)
	}
}

func TestTechnicianFormEditFromHandoff(t *testing.T) {
	api := &fakeAPI{handler: respond(http.StatusOK, `{"data":{}}`)}
	env, _ := newEnv(t, api)
	env.Session.SetEditData(map[string]any{
		"_id":            "t1",
		"technicianType": "Electrician",
		"name":           "Ravi",
		"city":           "Pune",
		"mobileNumber":   9000000000,
		"vehicleType":    "CAR",
	})

	f, err := NewEditTechnicianForm(env)
	if err != nil {
		t.Fatalf("NewEditTechnicianForm: %v", err)
	}
	if !f.Editing() || f.EditID() != "t1" || f.Location.State != "MH" || f.MobileNumber != "9000000000" {
		t.Fatalf("form = %+v", f)
	}

	f.Name = "Ravi K"
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	reqs := api.Requests()
	if len(reqs) != 1 || reqs[0].Method != http.MethodPut || reqs[0].Target != "/api/technician?technicianId=t1" {
		t.Fatalf("requests = %+v", reqs)
	}
	if env.Session.EditData() != nil {
		t.Error("handoff not cleared after edit")
	}
}

func TestTechnicianFormEditUnlistedCity(t *testing.T) {
	api := &fakeAPI{handler: respond(http.StatusOK, `{"data":{}}`)}
	env, ui := newEnv(t, api)
	env.Session.SetEditData(Technician{
		ID: "t9", TechnicianType: "Mechanic", Name: "Ganesh", City: "Lonavala",
		MobileNumber: "9100000000", VehicleType: "BUS",
	})

	f, err := NewEditTechnicianForm(env)
	if err != nil {
		t.Fatalf("NewEditTechnicianForm: %v", err)
	}
	if f.Location.State != "" || f.Location.City != "Lonavala" {
		t.Fatalf("prefilled state, city = %q, %q", f.Location.State, f.Location.City)
	}

	if err := f.Location.SelectState("MH"); err != nil {
		t.Fatal(err)
	}
	if f.Location.City != "Lonavala" {
		t.Fatalf("city cleared by state pick: %q", f.Location.City)
	}
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v (alerts %v)", err, ui.Alerts())
	}
	reqs := api.Requests()
	if len(reqs) != 1 || reqs[0].Method != http.MethodPut || reqs[0].Target != "/api/technician?technicianId=t9" {
		t.Fatalf("requests = %+v", reqs)
	}
	var body map[string]string
	json.Unmarshal(reqs[0].Body, &body)
	if body["city"] != "Lonavala" {
		t.Errorf("body = %v", body)
	}
}

func TestTechnicianFormEditAmbiguousCity(t *testing.T) {
	env, _ := newEnv(t, &fakeAPI{})
	env.Session.SetEditData(Technician{ID: "t4", City: "Udaipur"})

	f, err := NewEditTechnicianForm(env)
	if err != nil {
		t.Fatal(err)
	}
	if f.Location.State != "" || f.Location.City != "Udaipur" {
		t.Fatalf("prefilled state, city = %q, %q", f.Location.State, f.Location.City)
	}
	f.Location.SelectState("TR")
	if f.Location.City != "Udaipur" {
		t.Errorf("city lost under Tripura: %q", f.Location.City)
	}
}

func TestTechnicianFormEditWithoutHandoff(t *testing.T) {
	env, ui := newEnv(t, &fakeAPI{})
	if _, err := NewEditTechnicianForm(env); !errors.Is(err, ErrNoEditTarget) {
		t.Fatalf("err = %v", err)
	}
	if len(ui.Alerts()) != 1 {
		t.Errorf("alerts = %v", ui.Alerts())
	}
}
