// Package airports resolves IATA codes to timezone and coordinates.
// The registry is seeded with the airports of the bundled dataset; unknown
// codes fall back to the configured legacy zones so the fixed-route behavior
// of the original data stays intact.
package airports

import (
	"fmt"
	"time"

	"ticket-analyzer/internal/model"
)

// Airport is one registry entry.
type Airport struct {
	Code     string
	City     string
	Zone     *time.Location
	Location model.Coordinate
}

// Registry looks up airports by IATA code.
type Registry struct {
	byCode       map[string]Airport
	originZone   *time.Location
	destZone     *time.Location
	originZoneID string
	destZoneID   string
}

// seed lists the airports we have authoritative data for.
var seed = []struct {
	code, city, zone string
	lat, lon         float64
}{
	{"VVO", "Vladivostok", "Asia/Vladivostok", 43.398889, 132.148056},
	{"TLV", "Tel Aviv", "Asia/Tel_Aviv", 32.009444, 34.882778},
}

// NewRegistry builds the registry. originTZ and destTZ are the legacy fallback
// zones attached to unknown origin and destination codes.
func NewRegistry(originTZ, destTZ string) (*Registry, error) {
	origin, err := time.LoadLocation(originTZ)
	if err != nil {
		return nil, fmt.Errorf("load origin timezone %q: %w", originTZ, err)
	}
	dest, err := time.LoadLocation(destTZ)
	if err != nil {
		return nil, fmt.Errorf("load destination timezone %q: %w", destTZ, err)
	}

	r := &Registry{
		byCode:       make(map[string]Airport, len(seed)),
		originZone:   origin,
		destZone:     dest,
		originZoneID: originTZ,
		destZoneID:   destTZ,
	}
	for _, s := range seed {
		zone, err := time.LoadLocation(s.zone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q for %s: %w", s.zone, s.code, err)
		}
		loc, err := model.NewCoordinate(s.lat, s.lon)
		if err != nil {
			return nil, fmt.Errorf("seed coordinate for %s: %w", s.code, err)
		}
		r.byCode[s.code] = Airport{Code: s.code, City: s.city, Zone: zone, Location: loc}
	}
	return r, nil
}

// Lookup returns the registered airport for code, if any.
func (r *Registry) Lookup(code string) (Airport, bool) {
	a, ok := r.byCode[code]
	return a, ok
}

// OriginFor resolves the origin endpoint of a segment: registered data when
// the code is known, otherwise the city from the input with the legacy origin
// zone and no coordinates.
func (r *Registry) OriginFor(code, city string) (model.AirportInfo, *time.Location) {
	if a, ok := r.byCode[code]; ok {
		return model.AirportInfo{Code: code, City: city, Timezone: a.Zone.String(), Location: a.Location}, a.Zone
	}
	return model.AirportInfo{Code: code, City: city, Timezone: r.originZoneID, Location: model.MissingCoordinate()}, r.originZone
}

// DestinationFor resolves the destination endpoint of a segment.
func (r *Registry) DestinationFor(code, city string) (model.AirportInfo, *time.Location) {
	if a, ok := r.byCode[code]; ok {
		return model.AirportInfo{Code: code, City: city, Timezone: a.Zone.String(), Location: a.Location}, a.Zone
	}
	return model.AirportInfo{Code: code, City: city, Timezone: r.destZoneID, Location: model.MissingCoordinate()}, r.destZone
}
