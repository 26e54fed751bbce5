// Package parse turns raw ticket JSON into clean domain models. It owns the
// input file layout and the drop policy for records that fail to map: a bad
// ticket is logged and skipped, a bad document fails the whole parse.
package parse

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"ticket-analyzer/internal/airports"
	"ticket-analyzer/internal/model"
)

// dateTimeLayout matches the input "dd.MM.yy H:mm" format; Go's parser
// accepts single-digit hours for the "15" verb.
const dateTimeLayout = "02.01.06 15:04"

// defaultCurrency is attached to every parsed price; the input format does
// not carry a currency.
const defaultCurrency = "RUB"

// ParseError reports a malformed input document. Per-ticket mapping failures
// never produce it; only an unreadable document does.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse tickets: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse tickets: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

type ticketDTO struct {
	Origin          string          `json:"origin"`
	OriginName      string          `json:"origin_name"`
	Destination     string          `json:"destination"`
	DestinationName string          `json:"destination_name"`
	DepartureDate   string          `json:"departure_date"`
	DepartureTime   string          `json:"departure_time"`
	ArrivalDate     string          `json:"arrival_date"`
	ArrivalTime     string          `json:"arrival_time"`
	Carrier         string          `json:"carrier"`
	Stops           int             `json:"stops"`
	Price           decimal.Decimal `json:"price"`
}

type documentDTO struct {
	Tickets []ticketDTO `json:"tickets"`
}

// Parser maps raw bytes to tickets using an airport registry for timezone and
// coordinate resolution.
type Parser struct {
	airports *airports.Registry
	logger   *slog.Logger

	// OnDropped, when set, is called once per ticket dropped during mapping.
	OnDropped func()
}

// New creates a Parser. logger may be nil, in which case slog's default is
// used.
func New(reg *airports.Registry, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{airports: reg, logger: logger}
}

// Parse decodes a JSON document with a top-level "tickets" array into domain
// tickets, preserving input order. Tickets that fail to map are dropped with
// a diagnostic; a missing or unreadable document returns a *ParseError.
func (p *Parser) Parse(data []byte) ([]model.Ticket, error) {
	var doc documentDTO
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Reason: "malformed JSON document", Err: err}
	}
	if doc.Tickets == nil {
		return nil, &ParseError{Reason: "root 'tickets' array is missing"}
	}

	tickets := make([]model.Ticket, 0, len(doc.Tickets))
	dropped := 0
	for i, dto := range doc.Tickets {
		ticket, err := p.mapTicket(dto)
		if err != nil {
			dropped++
			if p.OnDropped != nil {
				p.OnDropped()
			}
			p.logger.Warn("dropping unmappable ticket",
				slog.Int("index", i),
				slog.String("carrier", dto.Carrier),
				slog.Any("error", err))
			continue
		}
		tickets = append(tickets, ticket)
	}

	p.logger.Info("parsed ticket document",
		slog.Int("tickets", len(tickets)),
		slog.Int("dropped", dropped))
	return tickets, nil
}

// mapTicket converts one DTO into a domain Ticket. The input format carries a
// single origin-to-destination leg per ticket, so every ticket maps to one
// segment.
func (p *Parser) mapTicket(dto ticketDTO) (model.Ticket, error) {
	origin, originZone := p.airports.OriginFor(dto.Origin, dto.OriginName)
	destination, destZone := p.airports.DestinationFor(dto.Destination, dto.DestinationName)

	departure, err := parseLocal(dto.DepartureDate, dto.DepartureTime, originZone)
	if err != nil {
		return model.Ticket{}, fmt.Errorf("departure time: %w", err)
	}
	arrival, err := parseLocal(dto.ArrivalDate, dto.ArrivalTime, destZone)
	if err != nil {
		return model.Ticket{}, fmt.Errorf("arrival time: %w", err)
	}

	segment := model.FlightSegment{
		Origin:      origin,
		Departure:   departure,
		Destination: destination,
		Arrival:     arrival,
	}
	price := model.Price{Amount: dto.Price, Currency: defaultCurrency}

	return model.NewTicket(price, dto.Carrier, carrierName(dto.Carrier), []model.FlightSegment{segment})
}

// parseLocal combines a date and a time-of-day string and pins the result to
// the endpoint's timezone.
func parseLocal(date, clock string, zone *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateTimeLayout, date+" "+clock, zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q %q: %w", date, clock, err)
	}
	return t, nil
}

// carrierNames maps known IATA carrier codes to display names. Unknown codes
// fall back to the code itself so grouping by carrier still works.
var carrierNames = map[string]string{
	"TK": "Turkish Airlines",
	"S7": "S7 Airlines",
	"SU": "Aeroflot",
	"BA": "British Airways",
}

func carrierName(code string) string {
	if name, ok := carrierNames[code]; ok {
		return name
	}
	return code
}
