// Package analysis computes route-level statistics over a resolved ticket
// batch: the minimum total journey time per carrier and the absolute
// difference between the average and median ticket price.
package analysis

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ticket-analyzer/internal/geo"
	"ticket-analyzer/internal/model"
)

// Result holds the statistics for one analyzed route. Matched is the number
// of tickets that survived the route filter; when it is zero the maps and
// difference are the valid empty result, not an error.
type Result struct {
	MinJourneyTimes map[string]time.Duration
	PriceDifference decimal.Decimal
	Matched         int
}

// Engine runs the analysis pipeline. It is stateless between calls; every
// invocation works on its own ticket slice.
type Engine struct {
	cruiseSpeedKmh float64
	logger         *slog.Logger
}

// New creates an Engine. cruiseSpeedKmh feeds the diagnostic in-air time
// estimate and must be positive.
func New(cruiseSpeedKmh float64, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cruiseSpeedKmh: cruiseSpeedKmh, logger: logger}
}

// Analyze filters tickets for the given route and computes the statistics.
// City matching is case-insensitive on the first segment's origin and the
// last segment's destination.
func (e *Engine) Analyze(tickets []model.Ticket, originCity, destinationCity string) Result {
	relevant := filterRoute(tickets, originCity, destinationCity)
	if len(relevant) == 0 {
		return Result{
			MinJourneyTimes: map[string]time.Duration{},
			PriceDifference: decimal.Zero,
		}
	}

	return Result{
		MinJourneyTimes: e.minJourneyTimes(relevant),
		PriceDifference: priceDifference(relevant),
		Matched:         len(relevant),
	}
}

// filterRoute keeps tickets whose journey starts in originCity and ends in
// destinationCity. Tickets without segments never match.
func filterRoute(tickets []model.Ticket, originCity, destinationCity string) []model.Ticket {
	var relevant []model.Ticket
	for _, t := range tickets {
		if len(t.Segments) == 0 {
			continue
		}
		if strings.EqualFold(t.First().Origin.City, originCity) &&
			strings.EqualFold(t.Last().Destination.City, destinationCity) {
			relevant = append(relevant, t)
		}
	}
	return relevant
}

// minJourneyTimes groups tickets by carrier display name and keeps the
// shortest journey per group. Durations are differences of absolute instants,
// so a journey departing in UTC+10 and arriving in UTC+2 is measured
// correctly.
func (e *Engine) minJourneyTimes(tickets []model.Ticket) map[string]time.Duration {
	minByCarrier := make(map[string]time.Duration)
	for _, t := range tickets {
		d := t.JourneyDuration()
		e.logEstimatedAirTime(t, d)
		if cur, ok := minByCarrier[t.CarrierName]; !ok || d < cur {
			minByCarrier[t.CarrierName] = d
		}
	}
	return minByCarrier
}

// logEstimatedAirTime emits a debug line comparing the scheduled journey time
// against the theoretical in-air time from great-circle distance. Tickets
// without known coordinates skip the estimate; it never feeds the returned
// statistics.
func (e *Engine) logEstimatedAirTime(t model.Ticket, journey time.Duration) {
	origin := t.First().Origin.Location
	destination := t.Last().Destination.Location
	if !origin.Valid() || !destination.Valid() {
		e.logger.Debug("air time estimate skipped, missing coordinates",
			slog.String("carrier", t.CarrierName),
			slog.Duration("journey", journey))
		return
	}
	estimated := geo.EstimateFlightTime(origin, destination, e.cruiseSpeedKmh)
	e.logger.Debug("air time estimate",
		slog.String("carrier", t.CarrierName),
		slog.Duration("journey", journey),
		slog.Duration("estimated_air_time", estimated))
}

// priceDifference returns |average - median| over the ticket prices. The
// average and an even-count median are rounded to 2 decimal places, half up.
// An empty price list yields zero.
func priceDifference(tickets []model.Ticket) decimal.Decimal {
	prices := make([]decimal.Decimal, 0, len(tickets))
	for _, t := range tickets {
		prices = append(prices, t.Price.Amount)
	}
	if len(prices) == 0 {
		return decimal.Zero
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].Cmp(prices[j]) < 0 })

	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(p)
	}
	n := len(prices)
	// DivRound rounds half away from zero, which is half-up for the
	// non-negative amounts handled here.
	average := sum.DivRound(decimal.NewFromInt(int64(n)), 2)

	var median decimal.Decimal
	if n%2 == 0 {
		median = prices[n/2-1].Add(prices[n/2]).DivRound(decimal.NewFromInt(2), 2)
	} else {
		median = prices[n/2]
	}

	return average.Sub(median).Abs()
}
