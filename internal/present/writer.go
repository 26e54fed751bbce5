// Package present renders analysis results for the console. It is the final
// view of the pipeline; nothing here feeds back into the statistics.
package present

import (
	"fmt"
	"io"
	"sort"
	"time"

	"ticket-analyzer/internal/analysis"
)

// Writer prints the analysis report.
type Writer struct {
	out io.Writer
}

// New creates a Writer targeting out.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// PrintResults writes the price difference and the per-carrier minimum
// journey times, carriers sorted by name for stable output.
func (w *Writer) PrintResults(res analysis.Result) {
	fmt.Fprintf(w.out, "Difference between average and median price: %s\n",
		res.PriceDifference.StringFixed(2))

	carriers := make([]string, 0, len(res.MinJourneyTimes))
	for name := range res.MinJourneyTimes {
		carriers = append(carriers, name)
	}
	sort.Strings(carriers)

	for _, name := range carriers {
		fmt.Fprintf(w.out, "%s - %s\n", name, formatDuration(res.MinJourneyTimes[name]))
	}
}

// PrintNoFlights reports an empty route match. This is a valid empty result,
// not an error.
func (w *Writer) PrintNoFlights(originCity, destinationCity string) {
	fmt.Fprintf(w.out, "No flights found for route %s -> %s\n", originCity, destinationCity)
}

// PrintNoData reports that no tier of the data source chain produced tickets.
func (w *Writer) PrintNoData() {
	fmt.Fprintln(w.out, "No data available for analysis.")
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
