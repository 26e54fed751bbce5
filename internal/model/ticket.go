package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Price is a monetary amount with a three-letter currency code. Amounts use
// decimal.Decimal so that averages and medians never pick up binary
// floating-point drift.
type Price struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// AirportInfo describes one endpoint of a flight segment. Timezone is an IANA
// zone name; Location may be the missing placeholder when no coordinates are
// known for the airport.
type AirportInfo struct {
	Code     string     `json:"code"`
	City     string     `json:"city"`
	Timezone string     `json:"timezone"`
	Location Coordinate `json:"location"`
}

// FlightSegment is one leg of a journey. Departure and Arrival carry their
// endpoint timezones; upstream data may place arrival before departure and
// nothing here rejects that.
type FlightSegment struct {
	Origin      AirportInfo `json:"origin"`
	Departure   time.Time   `json:"departure"`
	Destination AirportInfo `json:"destination"`
	Arrival     time.Time   `json:"arrival"`
}

// Ticket is a single airline ticket: a price, a carrier and the ordered legs
// of the journey. One segment means a direct flight.
type Ticket struct {
	Price       Price           `json:"price"`
	CarrierCode string          `json:"carrier_code"`
	CarrierName string          `json:"carrier_name"`
	Segments    []FlightSegment `json:"segments"`
}

// ErrNoSegments is returned by NewTicket for an empty journey.
var ErrNoSegments = errors.New("ticket must have at least one segment")

// NewTicket builds a Ticket, rejecting an empty segment list. The parser is
// the only producer of tickets, so a zero-segment ticket cannot reach the
// analysis engine through this constructor.
func NewTicket(price Price, carrierCode, carrierName string, segments []FlightSegment) (Ticket, error) {
	if len(segments) == 0 {
		return Ticket{}, ErrNoSegments
	}
	return Ticket{
		Price:       price,
		CarrierCode: carrierCode,
		CarrierName: carrierName,
		Segments:    segments,
	}, nil
}

// First returns the first segment of the journey.
func (t Ticket) First() FlightSegment { return t.Segments[0] }

// Last returns the final segment of the journey.
func (t Ticket) Last() FlightSegment { return t.Segments[len(t.Segments)-1] }

// JourneyDuration is the total travel time from first departure to last
// arrival, computed on absolute instants so timezone-crossing journeys come
// out right. Returns 0 for a ticket without segments.
func (t Ticket) JourneyDuration() time.Duration {
	if len(t.Segments) == 0 {
		return 0
	}
	return t.Last().Arrival.Sub(t.First().Departure)
}
