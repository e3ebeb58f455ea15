package geo

import "testing"

func TestStatesSortedAndComplete(t *testing.T) {
	states := States()
	if len(states) < 30 {
		t.Fatalf("only %d states bundled", len(states))
	}
	for i := 1; i < len(states); i++ {
		if states[i-1].Name > states[i].Name {
			t.Fatalf("states not sorted at %q/%q", states[i-1].Name, states[i].Name)
		}
	}
	for _, s := range states {
		if s.IsoCode == "" || len(s.Cities) == 0 {
			t.Errorf("state %+v has no code or cities", s)
		}
	}
}

func TestLookupByCodeOrName(t *testing.T) {
	for _, in := range []string{"MH", "mh", "Maharashtra", "maharashtra"} {
		s, ok := LookupState(in)
		if !ok || s.IsoCode != "MH" {
			t.Errorf("LookupState(%q) = %+v, %v", in, s, ok)
		}
	}
	if _, ok := LookupState("Atlantis"); ok {
		t.Error("unknown state resolved")
	}
}

func TestCitiesOf(t *testing.T) {
	if !HasCity("KA", "Bengaluru") {
		t.Error("Bengaluru missing from Karnataka")
	}
	if HasCity("KA", "Mumbai") {
		t.Error("Mumbai listed under Karnataka")
	}
	if CitiesOf("nowhere") != nil {
		t.Error("unknown state returned cities")
	}

	cities := CitiesOf("DL")
	cities[0] = "mutated"
	if CitiesOf("DL")[0] == "mutated" {
		t.Error("CitiesOf exposes internal slice")
	}
}

func TestStateOfCity(t *testing.T) {
	s, ok := StateOfCity("pune")
	if !ok || s.IsoCode != "MH" {
		t.Errorf("StateOfCity(pune) = %+v, %v", s, ok)
	}
	if _, ok := StateOfCity("Springfield"); ok {
		t.Error("unknown city resolved")
	}
	if s, ok := StateOfCity("Chandigarh"); !ok || s.IsoCode != "CH" {
		t.Errorf("StateOfCity(Chandigarh) = %+v, %v", s, ok)
	}
	if s, ok := StateOfCity("Udaipur"); ok {
		t.Errorf("ambiguous Udaipur resolved to %s", s.IsoCode)
	}
}

func TestStatesOfCity(t *testing.T) {
	var codes []string
	for _, s := range StatesOfCity("udaipur") {
		codes = append(codes, s.IsoCode)
	}
	if len(codes) != 2 || codes[0] != "RJ" || codes[1] != "TR" {
		t.Errorf("StatesOfCity(udaipur) = %v", codes)
	}
}

func TestCityInReturnsDatasetSpelling(t *testing.T) {
	if c, ok := CityIn("MH", "pUNE"); !ok || c != "Pune" {
		t.Errorf("CityIn(MH, pUNE) = %q, %v", c, ok)
	}
	if _, ok := CityIn("KA", "Pune"); ok {
		t.Error("Pune found in KA")
	}
	if _, ok := CityIn("ZZ", "Pune"); ok {
		t.Error("unknown state matched")
	}
}
