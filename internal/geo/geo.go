// Package geo serves the static state and city lists used by the location
// pickers. Only India is bundled.
package geo

import (
	_ "embed"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

const CountryCode = "IN"

type State struct {
	IsoCode string   `json:"isoCode"`
	Name    string   `json:"name"`
	Cities  []string `json:"cities"`
}

type country struct {
	IsoCode string  `json:"isoCode"`
	Name    string  `json:"name"`
	States  []State `json:"states"`
}

//go:embed data/in.json
var rawIndia []byte

var (
	loadOnce sync.Once
	india    country
	byCode   map[string]State
)

func load() {
	loadOnce.Do(func() {
		if err := json.Unmarshal(rawIndia, &india); err != nil {
			panic("geo: embedded dataset is invalid: " + err.Error())
		}
		sort.Slice(india.States, func(i, j int) bool { return india.States[i].Name < india.States[j].Name })
		byCode = make(map[string]State, len(india.States))
		for _, s := range india.States {
			byCode[s.IsoCode] = s
		}
	})
}

// States returns every state sorted by name. Callers own the returned slice.
func States() []State {
	load()
	out := make([]State, len(india.States))
	copy(out, india.States)
	return out
}

// LookupState finds a state by ISO code or, failing that, by name
// (case-insensitive).
func LookupState(codeOrName string) (State, bool) {
	load()
	if s, ok := byCode[strings.ToUpper(codeOrName)]; ok {
		return s, true
	}
	for _, s := range india.States {
		if strings.EqualFold(s.Name, codeOrName) {
			return s, true
		}
	}
	return State{}, false
}

// CitiesOf returns the cities of the given state, or nil for an unknown state.
func CitiesOf(codeOrName string) []string {
	s, ok := LookupState(codeOrName)
	if !ok {
		return nil
	}
	out := make([]string, len(s.Cities))
	copy(out, s.Cities)
	return out
}

// CityIn returns the dataset spelling of city when the state lists it.
func CityIn(codeOrName, city string) (string, bool) {
	s, ok := LookupState(codeOrName)
	if !ok {
		return "", false
	}
	for _, c := range s.Cities {
		if strings.EqualFold(c, city) {
			return c, true
		}
	}
	return "", false
}

// HasCity reports whether city belongs to the state.
func HasCity(codeOrName, city string) bool {
	_, ok := CityIn(codeOrName, city)
	return ok
}

// StatesOfCity returns every state, in name order, that lists city.
func StatesOfCity(city string) []State {
	load()
	var out []State
	for _, s := range india.States {
		for _, c := range s.Cities {
			if strings.EqualFold(c, city) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// StateOfCity resolves the state of city. A city listed by several states
// resolves only to the one sharing its name (Delhi, Chandigarh); otherwise
// ok is false.
func StateOfCity(city string) (State, bool) {
	states := StatesOfCity(city)
	if len(states) == 1 {
		return states[0], true
	}
	for _, s := range states {
		if strings.EqualFold(s.Name, city) {
			return s, true
		}
	}
	return State{}, false
}
