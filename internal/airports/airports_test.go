package airports

import "testing"

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry("Asia/Vladivostok", "Asia/Tel_Aviv")
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return r
}

func TestNewRegistry_BadZone(t *testing.T) {
	if _, err := NewRegistry("Not/AZone", "Asia/Tel_Aviv"); err == nil {
		t.Error("expected error for unknown origin zone")
	}
	if _, err := NewRegistry("Asia/Vladivostok", "Not/AZone"); err == nil {
		t.Error("expected error for unknown destination zone")
	}
}

func TestLookup_KnownAirports(t *testing.T) {
	r := newTestRegistry(t)

	for _, code := range []string{"VVO", "TLV"} {
		a, ok := r.Lookup(code)
		if !ok {
			t.Fatalf("expected %s to be registered", code)
		}
		if !a.Location.Valid() {
			t.Errorf("%s must carry coordinates", code)
		}
		if a.Zone == nil {
			t.Errorf("%s must carry a timezone", code)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	r := newTestRegistry(t)
	if _, ok := r.Lookup("JFK"); ok {
		t.Error("JFK should not be registered")
	}
}

func TestOriginFor_RegisteredCode(t *testing.T) {
	r := newTestRegistry(t)

	info, zone := r.OriginFor("VVO", "Vladivostok")
	if info.Timezone != "Asia/Vladivostok" {
		t.Errorf("timezone = %q, want Asia/Vladivostok", info.Timezone)
	}
	if !info.Location.Valid() {
		t.Error("registered airport must have coordinates")
	}
	if zone.String() != "Asia/Vladivostok" {
		t.Errorf("zone = %q, want Asia/Vladivostok", zone)
	}
}

func TestEndpointFallbacks(t *testing.T) {
	r := newTestRegistry(t)

	origin, originZone := r.OriginFor("LED", "Saint Petersburg")
	if origin.Location.Valid() {
		t.Error("unknown origin must get the missing placeholder")
	}
	if originZone.String() != "Asia/Vladivostok" {
		t.Errorf("unknown origin zone = %q, want legacy origin fallback", originZone)
	}

	dest, destZone := r.DestinationFor("DME", "Moscow")
	if dest.Location.Valid() {
		t.Error("unknown destination must get the missing placeholder")
	}
	if destZone.String() != "Asia/Tel_Aviv" {
		t.Errorf("unknown destination zone = %q, want legacy destination fallback", destZone)
	}
}
