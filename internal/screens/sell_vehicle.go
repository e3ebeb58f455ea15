package screens

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"fleet_desk/internal/apiclient"
	"fleet_desk/internal/events"
)

// VehicleCard is one listed vehicle with its own photo carousel.
type VehicleCard struct {
	Vehicle  Vehicle
	Carousel *Carousel
}

// SellVehicles lists the vehicles offered for sale with a free-text search.
type SellVehicles struct {
	env Env

	mu          sync.Mutex
	gen         uint64
	cards       []VehicleCard
	query       string
	loading     bool
	unsubscribe func()
}

func NewSellVehicles(env Env) *SellVehicles {
	return &SellVehicles{env: env}
}

func (s *SellVehicles) Mount(ctx context.Context) error {
	s.mu.Lock()
	if s.unsubscribe == nil {
		s.unsubscribe = s.env.Session.Subscribe(events.TopicVehicles, func(string) {
			s.Load(ctx)
		})
	}
	s.mu.Unlock()
	return s.Load(ctx)
}

func (s *SellVehicles) Unmount() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Load fetches the SELL listing and keeps only vehicles flagged for sale.
func (s *SellVehicles) Load(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	s.mu.Unlock()

	var env apiclient.Envelope[[]Vehicle]
	err := s.env.API.Get(ctx, "/api/vehicle/purpose/SELL/", &env)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil
	}
	s.loading = false
	if err != nil {
		logrus.WithError(err).Error("Error fetching vehicles")
		return err
	}
	cards := make([]VehicleCard, 0, len(env.Data))
	for _, v := range env.Data {
		if !v.IsForSell {
			continue
		}
		cards = append(cards, VehicleCard{Vehicle: v, Carousel: &Carousel{Photos: v.Photos}})
	}
	s.cards = cards
	return nil
}

func (s *SellVehicles) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *SellVehicles) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
}

// Visible returns the cards matching the current query. Carousels are
// shared with the screen, so paging a visible card survives re-filtering.
func (s *SellVehicles) Visible() []VehicleCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.query == "" {
		return append([]VehicleCard(nil), s.cards...)
	}
	out := make([]VehicleCard, 0, len(s.cards))
	for _, c := range s.cards {
		if vehicleMatches(c.Vehicle, s.query) {
			out = append(out, c)
		}
	}
	return out
}

// FilterVehicles keeps vehicles where any field, in its string form,
// contains query ignoring case. An empty query keeps everything.
func FilterVehicles(all []Vehicle, query string) []Vehicle {
	if query == "" {
		return all
	}
	out := make([]Vehicle, 0, len(all))
	for _, v := range all {
		if vehicleMatches(v, query) {
			out = append(out, v)
		}
	}
	return out
}

func vehicleMatches(v Vehicle, query string) bool {
	q := strings.ToLower(query)
	for _, field := range vehicleFieldStrings(v) {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func vehicleFieldStrings(v Vehicle) []string {
	return []string{
		v.ID,
		v.Number,
		strconv.Itoa(v.SeatingCapacity),
		v.Model,
		v.BodyType,
		v.ChassisBrand,
		v.Location,
		v.ContactNumber,
		strings.Join(v.Photos, ","),
		strconv.FormatBool(v.IsAC),
		strconv.FormatBool(v.IsForRent),
		strconv.FormatBool(v.IsForSell),
		v.Type,
	}
}
