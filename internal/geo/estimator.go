// Package geo estimates in-air flight time from great-circle distance.
package geo

import (
	"math"
	"time"

	"ticket-analyzer/internal/model"
)

// earthRadiusMeters is the mean Earth radius used for distance calculations.
const earthRadiusMeters = 6372795.0

// Distance returns the great-circle distance in meters between two points,
// using the Haversine formula in its atan2 form, which stays numerically
// stable for both near-identical and antipodal points. Both coordinates must
// be valid.
func Distance(origin, destination model.Coordinate) float64 {
	lat1 := origin.Lat * math.Pi / 180
	lon1 := origin.Lon * math.Pi / 180
	lat2 := destination.Lat * math.Pi / 180
	lon2 := destination.Lon * math.Pi / 180

	cosLat1 := math.Cos(lat1)
	cosLat2 := math.Cos(lat2)
	sinLat1 := math.Sin(lat1)
	sinLat2 := math.Sin(lat2)

	deltaLon := lon2 - lon1
	cosDeltaLon := math.Cos(deltaLon)
	sinDeltaLon := math.Sin(deltaLon)

	y := math.Sqrt(math.Pow(cosLat2*sinDeltaLon, 2) +
		math.Pow(cosLat1*sinLat2-sinLat1*cosLat2*cosDeltaLon, 2))
	x := sinLat1*sinLat2 + cosLat1*cosLat2*cosDeltaLon

	return math.Atan2(y, x) * earthRadiusMeters
}

// EstimateFlightTime converts the great-circle distance between two points
// into pure in-air time at the given cruise speed, truncated to whole minutes.
// Taxiing, takeoff and landing are not included. cruiseSpeedKmh must be
// positive; the result for a non-positive speed is undefined.
func EstimateFlightTime(origin, destination model.Coordinate, cruiseSpeedKmh float64) time.Duration {
	distanceKm := Distance(origin, destination) / 1000.0
	hours := distanceKm / cruiseSpeedKmh
	return time.Duration(int64(hours*60)) * time.Minute
}
