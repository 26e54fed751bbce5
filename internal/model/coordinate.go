package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// Coordinate is a geographic point in degrees. Latitude must be within
// [-90, 90] and longitude within [-180, 180]; NewCoordinate rejects anything
// outside those ranges. A coordinate with NaN components stands for "location
// unknown" and is only obtainable through MissingCoordinate. Callers must
// check Valid before feeding a coordinate into any geo math.
type Coordinate struct {
	Lat float64
	Lon float64
}

// NewCoordinate validates the given degrees and returns a Coordinate.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if lat < -90 || lat > 90 || math.IsNaN(lat) {
		return Coordinate{}, fmt.Errorf("latitude must be between -90 and 90, got %v", lat)
	}
	if lon < -180 || lon > 180 || math.IsNaN(lon) {
		return Coordinate{}, fmt.Errorf("longitude must be between -180 and 180, got %v", lon)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

// MissingCoordinate returns the placeholder for an unknown location.
func MissingCoordinate() Coordinate {
	return Coordinate{Lat: math.NaN(), Lon: math.NaN()}
}

// Valid reports whether both components are real numbers.
func (c Coordinate) Valid() bool {
	return !math.IsNaN(c.Lat) && !math.IsNaN(c.Lon)
}

type coordinateJSON struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// MarshalJSON encodes a missing coordinate as null; encoding/json cannot
// represent NaN.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(coordinateJSON{Lat: c.Lat, Lon: c.Lon})
}

// UnmarshalJSON decodes null back into the missing placeholder and validates
// the ranges of anything else.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = MissingCoordinate()
		return nil
	}
	var raw coordinateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewCoordinate(raw.Lat, raw.Lon)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
