package analysis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ticket-analyzer/internal/model"
)

var (
	depZone = time.FixedZone("UTC+10", 10*3600)
	arrZone = time.FixedZone("UTC+3", 3*3600)
)

// ticket builds a single-segment Vladivostok -> Tel Aviv ticket with the
// given carrier, price and journey duration.
func ticket(carrier, price string, journey time.Duration) model.Ticket {
	departure := time.Date(2018, 5, 12, 10, 0, 0, 0, depZone)
	return model.Ticket{
		Price:       model.Price{Amount: decimal.RequireFromString(price), Currency: "RUB"},
		CarrierCode: carrier,
		CarrierName: carrier,
		Segments: []model.FlightSegment{{
			Origin:      model.AirportInfo{Code: "VVO", City: "Vladivostok", Location: model.MissingCoordinate()},
			Departure:   departure,
			Destination: model.AirportInfo{Code: "TLV", City: "Tel Aviv", Location: model.MissingCoordinate()},
			Arrival:     departure.Add(journey).In(arrZone),
		}},
	}
}

func TestAnalyze_PriceDifference(t *testing.T) {
	cases := []struct {
		name   string
		prices []string
		want   string
	}{
		{"odd count symmetric", []string{"100", "200", "300"}, "0"},
		{"even count", []string{"100", "200"}, "0"},
		{"odd count skewed", []string{"100", "200", "400"}, "33.33"},
		{"single ticket", []string{"12400"}, "0"},
	}

	engine := New(850, nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tickets := make([]model.Ticket, 0, len(tc.prices))
			for _, p := range tc.prices {
				tickets = append(tickets, ticket("SU", p, 6*time.Hour))
			}

			res := engine.Analyze(tickets, "Vladivostok", "Tel Aviv")
			want := decimal.RequireFromString(tc.want)
			if !res.PriceDifference.Equal(want) {
				t.Errorf("price difference = %s, want %s", res.PriceDifference, want)
			}
		})
	}
}

func TestAnalyze_MinJourneyTimePerCarrier(t *testing.T) {
	tickets := []model.Ticket{
		ticket("SU", "100", 10*time.Hour),
		ticket("SU", "100", 12*time.Hour),
		ticket("SU", "100", 9*time.Hour),
		ticket("TK", "100", 7*time.Hour+30*time.Minute),
	}

	engine := New(850, nil)
	res := engine.Analyze(tickets, "Vladivostok", "Tel Aviv")

	if got := res.MinJourneyTimes["SU"]; got != 9*time.Hour {
		t.Errorf("SU minimum = %v, want 9h", got)
	}
	if got := res.MinJourneyTimes["TK"]; got != 7*time.Hour+30*time.Minute {
		t.Errorf("TK minimum = %v, want 7h30m", got)
	}
}

func TestAnalyze_MinIsOrderIndependent(t *testing.T) {
	a := []model.Ticket{
		ticket("SU", "100", 9*time.Hour),
		ticket("SU", "100", 12*time.Hour),
		ticket("SU", "100", 10*time.Hour),
	}
	b := []model.Ticket{a[1], a[2], a[0]}

	engine := New(850, nil)
	if got := engine.Analyze(a, "Vladivostok", "Tel Aviv").MinJourneyTimes["SU"]; got != 9*time.Hour {
		t.Errorf("order a: minimum = %v, want 9h", got)
	}
	if got := engine.Analyze(b, "Vladivostok", "Tel Aviv").MinJourneyTimes["SU"]; got != 9*time.Hour {
		t.Errorf("order b: minimum = %v, want 9h", got)
	}
}

func TestAnalyze_TimezoneCrossingDuration(t *testing.T) {
	// Departure 09:00 UTC+10, arrival 12:00 UTC+2 the same day: 11 hours.
	dep := time.Date(2018, 5, 12, 9, 0, 0, 0, time.FixedZone("UTC+10", 10*3600))
	arr := time.Date(2018, 5, 12, 12, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	tk := model.Ticket{
		Price:       model.Price{Amount: decimal.NewFromInt(100), Currency: "RUB"},
		CarrierName: "TK",
		Segments: []model.FlightSegment{{
			Origin:      model.AirportInfo{City: "Vladivostok", Location: model.MissingCoordinate()},
			Departure:   dep,
			Destination: model.AirportInfo{City: "Tel Aviv", Location: model.MissingCoordinate()},
			Arrival:     arr,
		}},
	}

	engine := New(850, nil)
	res := engine.Analyze([]model.Ticket{tk}, "Vladivostok", "Tel Aviv")
	if got := res.MinJourneyTimes["TK"]; got != 11*time.Hour {
		t.Errorf("timezone-crossing duration = %v, want 11h", got)
	}
}

func TestAnalyze_CaseInsensitiveCityMatch(t *testing.T) {
	engine := New(850, nil)
	res := engine.Analyze([]model.Ticket{ticket("SU", "100", 6*time.Hour)}, "vladivostok", "tel aviv")
	if res.Matched != 1 {
		t.Errorf("expected 1 matched ticket, got %d", res.Matched)
	}
}

func TestAnalyze_NoMatchIsValidEmptyResult(t *testing.T) {
	engine := New(850, nil)
	res := engine.Analyze([]model.Ticket{ticket("SU", "100", 6*time.Hour)}, "Moscow", "Tel Aviv")

	if res.Matched != 0 {
		t.Errorf("expected 0 matched, got %d", res.Matched)
	}
	if len(res.MinJourneyTimes) != 0 {
		t.Errorf("expected empty duration map, got %v", res.MinJourneyTimes)
	}
	if !res.PriceDifference.IsZero() {
		t.Errorf("expected zero price difference, got %s", res.PriceDifference)
	}
}

func TestAnalyze_SkipsZeroSegmentTickets(t *testing.T) {
	broken := model.Ticket{CarrierName: "XX"} // bypasses the constructor on purpose
	tickets := []model.Ticket{broken, ticket("SU", "100", 6*time.Hour)}

	engine := New(850, nil)
	res := engine.Analyze(tickets, "Vladivostok", "Tel Aviv")
	if res.Matched != 1 {
		t.Errorf("expected the broken ticket to be excluded, matched=%d", res.Matched)
	}
	if _, ok := res.MinJourneyTimes["XX"]; ok {
		t.Error("zero-segment ticket must not contribute a duration")
	}
}

func TestAnalyze_ValidCoordinatesDontChangeStatistics(t *testing.T) {
	withCoords := ticket("SU", "150", 6*time.Hour)
	vvo, _ := model.NewCoordinate(43.398889, 132.148056)
	tlv, _ := model.NewCoordinate(32.009444, 34.882778)
	withCoords.Segments[0].Origin.Location = vvo
	withCoords.Segments[0].Destination.Location = tlv

	engine := New(850, nil)
	plain := engine.Analyze([]model.Ticket{ticket("SU", "150", 6*time.Hour)}, "Vladivostok", "Tel Aviv")
	located := engine.Analyze([]model.Ticket{withCoords}, "Vladivostok", "Tel Aviv")

	if plain.MinJourneyTimes["SU"] != located.MinJourneyTimes["SU"] {
		t.Error("air-time estimate must not affect journey durations")
	}
	if !plain.PriceDifference.Equal(located.PriceDifference) {
		t.Error("air-time estimate must not affect the price difference")
	}
}
