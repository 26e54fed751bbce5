// cmd/analyze resolves a ticket batch through the file -> cache -> bundled
// dataset chain and reports route statistics: the minimum journey time per
// carrier and the difference between the average and median ticket price.
//
// Usage:
//
//	analyze [flags] [tickets.json] <origin city> <destination city>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"ticket-analyzer/config"
	"ticket-analyzer/internal/airports"
	"ticket-analyzer/internal/analysis"
	"ticket-analyzer/internal/logger"
	"ticket-analyzer/internal/metrics"
	"ticket-analyzer/internal/parse"
	"ticket-analyzer/internal/present"
	"ticket-analyzer/internal/resolve"
	"ticket-analyzer/internal/store"
	redisstore "ticket-analyzer/internal/store/redis"
	sqlitestore "ticket-analyzer/internal/store/sqlite"
)

// Exit codes follow the usual CLI convention: usage-level problems (no data,
// malformed input) are the user's to fix, everything else is ours.
const (
	exitOK       = 0
	exitSoftware = 1
	exitUsage    = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	cruiseSpeed := fs.Float64("cruise-speed", cfg.CruiseSpeedKmh, "Average cruise speed in km/h for the air-time estimate")
	storeBackend := fs.String("store", cfg.StoreBackend, "Batch cache backend: sqlite or redis")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	log := logger.Init("ticket-analyzer", logger.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	var filePath, originCity, destinationCity string
	switch fs.NArg() {
	case 2:
		originCity, destinationCity = fs.Arg(0), fs.Arg(1)
	case 3:
		filePath, originCity, destinationCity = fs.Arg(0), fs.Arg(1), fs.Arg(2)
	default:
		fmt.Fprintln(os.Stderr, "usage: analyze [flags] [tickets.json] <origin city> <destination city>")
		return exitUsage
	}

	if *cruiseSpeed <= 0 {
		fmt.Fprintln(os.Stderr, "ERROR: cruise speed must be positive")
		return exitUsage
	}

	m := metrics.New()
	health := metrics.NewHealthStatus()

	st, err := openStore(*storeBackend, cfg)
	if err != nil {
		log.Error("failed to open batch cache", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, "CRITICAL ERROR: could not open the batch cache. Check the logs for details.")
		return exitSoftware
	}
	defer st.Close()

	if cfg.MetricsAddr != "" {
		probeHealth(st, health)
		srv := metrics.NewServer(cfg.MetricsAddr, health)
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Stop(ctx)
		}()
	}

	registry, err := airports.NewRegistry(cfg.OriginTZ, cfg.DestTZ)
	if err != nil {
		log.Error("failed to build airport registry", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, "CRITICAL ERROR: invalid timezone configuration. Check the logs for details.")
		return exitSoftware
	}

	parser := parse.New(registry, log)
	parser.OnDropped = m.TicketsDropped.Inc

	resolver := resolve.New(st, parser, log, m)
	engine := analysis.New(*cruiseSpeed, log)
	out := present.New(os.Stdout)

	ctx := context.Background()
	log.Info("analysis started",
		slog.String("origin", originCity),
		slog.String("destination", destinationCity),
		slog.String("file", filePath))

	tickets, err := resolver.Resolve(ctx, filePath)
	if err != nil {
		return reportResolveError(log, err)
	}
	m.TicketsParsed.Add(float64(len(tickets)))

	if len(tickets) == 0 {
		out.PrintNoData()
		return exitOK
	}

	result := engine.Analyze(tickets, originCity, destinationCity)
	if result.Matched == 0 {
		out.PrintNoFlights(originCity, destinationCity)
		return exitOK
	}
	m.TicketsAnalyzed.Add(float64(result.Matched))

	out.PrintResults(result)
	log.Info("analysis finished", slog.Int("matched", result.Matched))
	return exitOK
}

// openStore picks the batch cache backend.
func openStore(backend string, cfg *config.Config) (store.BatchStore, error) {
	switch backend {
	case "redis":
		return redisstore.New(redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "sqlite":
		return sqlitestore.New(sqlitestore.Config{Path: cfg.SQLitePath})
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// probeHealth records initial backend connectivity for /healthz.
func probeHealth(st store.BatchStore, health *metrics.HealthStatus) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	switch s := st.(type) {
	case *sqlitestore.Store:
		health.CheckSQLite(ctx, s.DB())
	case *redisstore.Store:
		health.CheckRedis(ctx, s.Client())
	}
}

// reportResolveError maps resolver failures to user-facing messages and exit
// codes: missing data and malformed input are usage errors, the rest is a
// software failure.
func reportResolveError(log *slog.Logger, err error) int {
	var parseErr *parse.ParseError
	switch {
	case errors.Is(err, resolve.ErrDataUnavailable):
		log.Error("data source error", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, "ERROR: Could not find ticket data. Provide a valid file path or ensure the default data is available.")
		return exitUsage
	case errors.As(err, &parseErr):
		log.Error("data format error", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, "ERROR: The provided JSON file is malformed or unreadable.")
		return exitUsage
	case errors.Is(err, os.ErrNotExist):
		log.Error("data source error", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, "ERROR: The provided file path does not exist.")
		return exitUsage
	default:
		log.Error("unexpected error during analysis", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, "CRITICAL ERROR: An unexpected internal error occurred. Check the logs for details.")
		return exitSoftware
	}
}
