package screens

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"fleet_desk/internal/apiclient"
	"fleet_desk/internal/events"
)

// TechnicianSupport lists technicians with a type search, a vehicle type
// filter and a delete confirmation modal. Loads may be triggered from a
// change-feed goroutine, so state is guarded and only the newest load wins.
type TechnicianSupport struct {
	env Env

	mu           sync.Mutex
	gen          uint64
	all          []Technician
	query        string
	vehicle      string
	loading      bool
	deleteTarget string
	unsubscribe  func()
}

func NewTechnicianSupport(env Env) *TechnicianSupport {
	return &TechnicianSupport{env: env}
}

// Mount loads the list and reloads it on every technician notification
// until Unmount.
func (s *TechnicianSupport) Mount(ctx context.Context) error {
	s.mu.Lock()
	if s.unsubscribe == nil {
		s.unsubscribe = s.env.Session.Subscribe(events.TopicTechnicians, func(string) {
			s.Load(ctx)
		})
	}
	s.mu.Unlock()
	return s.Load(ctx)
}

func (s *TechnicianSupport) Unmount() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Load fetches the full technician list. A failed load keeps the previous
// list.
func (s *TechnicianSupport) Load(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	s.mu.Unlock()

	var env apiclient.Envelope[[]Technician]
	err := s.env.API.Get(ctx, "/api/technician", &env)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil
	}
	s.loading = false
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch technicians")
		return err
	}
	s.all = env.Data
	return nil
}

func (s *TechnicianSupport) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *TechnicianSupport) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
}

// SetVehicleFilter narrows the list to one vehicle type; "" shows all.
func (s *TechnicianSupport) SetVehicleFilter(vehicleType string) {
	s.mu.Lock()
	s.vehicle = vehicleType
	s.mu.Unlock()
}

func (s *TechnicianSupport) All() []Technician {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Technician(nil), s.all...)
}

func (s *TechnicianSupport) Visible() []Technician {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilterTechnicians(s.all, s.query, s.vehicle)
}

// FilterTechnicians keeps technicians whose type contains query, ignoring
// case, and whose vehicle type equals vehicleType when it is set.
func FilterTechnicians(all []Technician, query, vehicleType string) []Technician {
	q := strings.ToLower(query)
	out := make([]Technician, 0, len(all))
	for _, t := range all {
		if !strings.Contains(strings.ToLower(t.TechnicianType), q) {
			continue
		}
		if vehicleType != "" && t.VehicleType != vehicleType {
			continue
		}
		out = append(out, t)
	}
	return out
}

// RequestDelete opens the confirmation modal for id.
func (s *TechnicianSupport) RequestDelete(id string) {
	s.mu.Lock()
	s.deleteTarget = id
	s.mu.Unlock()
}

func (s *TechnicianSupport) CancelDelete() {
	s.RequestDelete("")
}

// PendingDelete returns the id awaiting confirmation, if the modal is open.
func (s *TechnicianSupport) PendingDelete() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteTarget, s.deleteTarget != ""
}

// ConfirmDelete deletes the pending technician, reloads the list and
// closes the modal. A failed delete is alerted and also closes the modal.
func (s *TechnicianSupport) ConfirmDelete(ctx context.Context) error {
	id, ok := s.PendingDelete()
	if !ok {
		return nil
	}
	defer s.CancelDelete()

	if err := s.env.API.Delete(ctx, "/api/technician?technicianId="+url.QueryEscape(id), nil); err != nil {
		logrus.WithError(err).WithField("technicianId", id).Error("Failed to delete technician")
		s.env.Alerts.Alert("Error", "Failed to delete technician. Please try again.")
		return err
	}
	return s.Load(ctx)
}

// Edit hands t to the edit screen and navigates there.
func (s *TechnicianSupport) Edit(t Technician) {
	s.env.Session.SetEditData(t)
	s.env.Nav.Push(RouteEditTechnician)
}

func (s *TechnicianSupport) Add() {
	s.env.Nav.Push(RouteAddTechnician)
}

// Call dials number with the platform phone handler.
func (s *TechnicianSupport) Call(number string) error {
	if number == "" {
		return nil
	}
	if err := s.env.Dialer.Dial("tel:" + number); err != nil {
		logrus.WithError(err).Warn("Failed to open dialer")
		s.env.Alerts.Alert("Error", "Unable to place the call.")
		return err
	}
	return nil
}
