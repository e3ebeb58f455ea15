package demo

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/jaswdr/faker"

	"fleet_desk/internal/geo"
	"fleet_desk/internal/models"
)

func TestGenerateProducesConsistentRecords(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	g := NewGenerator(faker.NewWithSeed(rand.NewSource(7)), now)
	set := g.Generate(25)

	if len(set.Technicians) != 25 || len(set.Vehicles) != 25 || len(set.Bookings) != 25 {
		t.Fatalf("sizes = %d %d %d", len(set.Technicians), len(set.Vehicles), len(set.Bookings))
	}
	seen := map[string]bool{}
	for _, tech := range set.Technicians {
		if tech.ID == "" || seen[tech.ID] {
			t.Fatalf("bad or duplicate id %q", tech.ID)
		}
		seen[tech.ID] = true
		if !models.IsVehicleType(tech.VehicleType) {
			t.Errorf("vehicle type %q", tech.VehicleType)
		}
		if len(geo.StatesOfCity(tech.City)) == 0 {
			t.Errorf("city %q not in dataset", tech.City)
		}
		if len(tech.MobileNumber) != 10 || !strings.HasPrefix(tech.MobileNumber, "9") {
			t.Errorf("mobile %q", tech.MobileNumber)
		}
	}
	for _, v := range set.Vehicles {
		if !v.IsForSell && !v.IsForRent {
			t.Errorf("vehicle %s listed nowhere", v.Number)
		}
		if len(v.Photos) == 0 {
			t.Errorf("vehicle %s has no photos", v.Number)
		}
	}
	for _, b := range set.Bookings {
		if !b.ReturnTime.After(b.DepartureTime) {
			t.Errorf("return %v before departure %v", b.ReturnTime, b.DepartureTime)
		}
		if b.DepartureTime.Before(now) {
			t.Errorf("departure %v in the past", b.DepartureTime)
		}
		if b.RemainingAmountInINR < 0 {
			t.Errorf("negative remaining amount")
		}
	}
}
