// Package demo generates plausible technicians, vehicles and bookings for
// local servers and screenshots.
package demo

import (
	"fmt"
	"strings"
	"time"

	"github.com/jaswdr/faker"

	"fleet_desk/internal/geo"
	"fleet_desk/internal/models"
)

var (
	technicianTypes = []string{"Mechanic", "Electrician", "AC Mechanic", "Tyre Specialist", "Denter", "Painter", "Towing"}
	bodyTypes       = []string{"Coach", "Sleeper", "Open Body", "Container", "Hatchback", "Sedan", "SUV"}
	chassisBrands   = []string{"Tata", "Ashok Leyland", "Eicher", "BharatBenz", "Force", "Mahindra", "Maruti Suzuki"}
	vehicleModels   = []string{"Starbus", "Viking", "Skyline", "Traveller", "Ertiga", "Bolero", "Innova"}
)

type Generator struct {
	fake faker.Faker
	now  time.Time
}

func NewGenerator(fake faker.Faker, now time.Time) *Generator {
	return &Generator{fake: fake, now: now.UTC()}
}

func (g *Generator) mobile() string {
	return g.fake.Numerify("9#########")
}

func (g *Generator) place() (geo.State, string) {
	states := geo.States()
	s := states[g.fake.IntBetween(0, len(states)-1)]
	return s, g.fake.RandomStringElement(s.Cities)
}

func (g *Generator) vehicleNumber(state geo.State) string {
	letters := strings.ToUpper(g.fake.Lexify("??"))
	return fmt.Sprintf("%s%02d%s%04d", state.IsoCode, g.fake.IntBetween(1, 99), letters, g.fake.IntBetween(1, 9999))
}

func (g *Generator) Technician() models.Technician {
	_, city := g.place()
	return models.Technician{
		TechnicianType:  g.fake.RandomStringElement(technicianTypes),
		Name:            g.fake.Person().Name(),
		City:            city,
		MobileNumber:    g.mobile(),
		AlternateNumber: g.mobile(),
		VehicleType:     g.fake.RandomStringElement(models.VehicleTypes),
	}
}

// Vehicle returns a vehicle listed for sale, for rent, or both.
func (g *Generator) Vehicle() models.Vehicle {
	state, city := g.place()
	vt := g.fake.RandomStringElement(models.VehicleTypes)
	seats := map[string][2]int{"CAR": {4, 7}, "TAMPO": {9, 17}, "BUS": {25, 52}, "TRUCK": {2, 3}}[vt]
	photos := make([]string, g.fake.IntBetween(1, 4))
	for i := range photos {
		photos[i] = fmt.Sprintf("https://picsum.photos/seed/%s/640/480", g.fake.Lexify("????????"))
	}
	forSell := g.fake.Bool()
	return models.Vehicle{
		Number:          g.vehicleNumber(state),
		SeatingCapacity: g.fake.IntBetween(seats[0], seats[1]),
		Model:           g.fake.RandomStringElement(vehicleModels),
		BodyType:        g.fake.RandomStringElement(bodyTypes),
		ChassisBrand:    g.fake.RandomStringElement(chassisBrands),
		Location:        city,
		ContactNumber:   g.mobile(),
		Photos:          photos,
		IsAC:            g.fake.Bool(),
		IsForSell:       forSell,
		IsForRent:       !forSell || g.fake.Bool(),
		Type:            vt,
	}
}

// PackageBooking returns a trip departing within the next month and
// returning one to seven days later.
func (g *Generator) PackageBooking(vehicle string) models.PackageBooking {
	_, from := g.place()
	_, to := g.place()
	depart := g.fake.Time().TimeBetween(g.now, g.now.AddDate(0, 1, 0)).Truncate(15 * time.Minute)
	ret := depart.Add(time.Duration(g.fake.IntBetween(1, 7)) * 24 * time.Hour).Add(time.Duration(g.fake.IntBetween(0, 12)) * time.Hour)
	km := float64(g.fake.IntBetween(10000, 250000))
	rate := float64(g.fake.IntBetween(12, 60))
	advance := float64(g.fake.IntBetween(1, 20) * 500)
	estimate := rate * float64(g.fake.IntBetween(300, 2500))
	remaining := estimate - advance
	if remaining < 0 {
		remaining = 0
	}
	return models.PackageBooking{
		Vehicle:              vehicle,
		CustomerName:         g.fake.Person().Name(),
		MobileNumber:         g.mobile(),
		AlternateNumber:      g.mobile(),
		KmStarting:           km,
		PerKmRateInINR:       rate,
		AdvanceAmountInINR:   advance,
		RemainingAmountInINR: remaining,
		DeparturePlace:       from,
		DestinationPlace:     to,
		DepartureDate:        depart.Truncate(24 * time.Hour),
		DepartureTime:        depart,
		ReturnDate:           ret.Truncate(24 * time.Hour),
		ReturnTime:           ret,
		TollInINR:            float64(g.fake.IntBetween(0, 40) * 50),
		OtherStateTaxInINR:   float64(g.fake.IntBetween(0, 10) * 100),
		Instructions:         g.fake.Lorem().Sentence(8),
		Note:                 g.fake.Lorem().Sentence(5),
	}
}

// Set is one batch of generated records.
type Set struct {
	Technicians []models.Technician
	Vehicles    []models.Vehicle
	Bookings    []models.PackageBooking
}

// Generate builds n technicians, n vehicles and one booking per vehicle.
// Ids are assigned here so the records can seed stores that do not run
// gorm hooks.
func (g *Generator) Generate(n int) Set {
	var s Set
	for i := 0; i < n; i++ {
		t := g.Technician()
		t.ID = models.NewID()
		t.CreatedAt, t.UpdatedAt = g.now, g.now
		s.Technicians = append(s.Technicians, t)

		v := g.Vehicle()
		v.ID = models.NewID()
		s.Vehicles = append(s.Vehicles, v)

		b := g.PackageBooking(v.Number)
		b.ID = models.NewID()
		b.CreatedAt, b.UpdatedAt = g.now, g.now
		s.Bookings = append(s.Bookings, b)
	}
	return s
}
