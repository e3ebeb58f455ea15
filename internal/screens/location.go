package screens

import (
	"fmt"
	"strings"

	"fleet_desk/internal/geo"
)

// LocationPicker is the cascaded state then city selection shared by the
// forms. State holds the ISO code of the selected state.
type LocationPicker struct {
	State       string
	City        string
	CityOptions []string

	// kept is a prefilled city the bundled table does not list for the
	// record's state. It stays selectable under every state.
	kept string
}

func (p *LocationPicker) StateOptions() []geo.State {
	return geo.States()
}

// Keep prefills city as given, whether or not the table lists it.
func (p *LocationPicker) Keep(city string) {
	p.kept = city
	p.City = city
	if p.State != "" {
		p.CityOptions = p.options(p.State)
	}
}

func (p *LocationPicker) options(code string) []string {
	opts := geo.CitiesOf(code)
	if p.kept != "" && !geo.HasCity(code, p.kept) {
		opts = append(opts, p.kept)
	}
	return opts
}

// canonical returns the spelling to store for city under the current state.
func (p *LocationPicker) canonical(city string) (string, bool) {
	if c, ok := geo.CityIn(p.State, city); ok {
		return c, true
	}
	if p.kept != "" && strings.EqualFold(city, p.kept) {
		return p.kept, true
	}
	return "", false
}

// SelectState switches the city list to the new state and drops a selected
// city that does not belong to it. An empty code clears both.
func (p *LocationPicker) SelectState(code string) error {
	if code == "" {
		p.State, p.City, p.CityOptions = "", "", nil
		return nil
	}
	s, ok := geo.LookupState(code)
	if !ok {
		return fmt.Errorf("%w: unknown state %q", ErrValidation, code)
	}
	p.State = s.IsoCode
	p.CityOptions = p.options(s.IsoCode)
	if p.City != "" {
		p.City, _ = p.canonical(p.City)
	}
	return nil
}

func (p *LocationPicker) SelectCity(city string) error {
	if p.State == "" {
		return fmt.Errorf("%w: select a state first", ErrValidation)
	}
	if city == "" {
		p.City = ""
		return nil
	}
	c, ok := p.canonical(city)
	if !ok {
		return fmt.Errorf("%w: %q is not in %s", ErrValidation, city, p.State)
	}
	p.City = c
	return nil
}

func (p *LocationPicker) Reset() {
	p.State, p.City, p.CityOptions, p.kept = "", "", nil, ""
}
