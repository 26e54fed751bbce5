package geo

import (
	"math"
	"testing"
	"time"

	"ticket-analyzer/internal/model"
)

func mustCoord(t *testing.T, lat, lon float64) model.Coordinate {
	t.Helper()
	c, err := model.NewCoordinate(lat, lon)
	if err != nil {
		t.Fatalf("coordinate %v,%v: %v", lat, lon, err)
	}
	return c
}

func TestDistance_SamePoint(t *testing.T) {
	p := mustCoord(t, 43.398889, 132.148056)
	if d := Distance(p, p); d != 0 {
		t.Errorf("expected 0 distance for identical points, got %v", d)
	}
}

func TestDistance_AntipodalOnEquator(t *testing.T) {
	a := mustCoord(t, 0, 0)
	b := mustCoord(t, 0, 180)

	// Half the Earth's circumference at the chosen mean radius.
	want := math.Pi * earthRadiusMeters
	got := Distance(a, b)
	if math.Abs(got-want) > 1.0 {
		t.Errorf("antipodal distance = %v, want %v", got, want)
	}
}

func TestDistance_Symmetry(t *testing.T) {
	vvo := mustCoord(t, 43.398889, 132.148056)
	tlv := mustCoord(t, 32.009444, 34.882778)

	d1 := Distance(vvo, tlv)
	d2 := Distance(tlv, vvo)
	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("distance is not symmetric: %v vs %v", d1, d2)
	}

	// Vladivostok to Tel Aviv is roughly eight thousand kilometers.
	if d1 < 7_500_000 || d1 > 8_800_000 {
		t.Errorf("VVO-TLV distance out of plausible range: %v m", d1)
	}
}

func TestEstimateFlightTime_SamePoint(t *testing.T) {
	p := mustCoord(t, 10, 10)
	if got := EstimateFlightTime(p, p, 850); got != 0 {
		t.Errorf("expected 0 duration, got %v", got)
	}
}

func TestEstimateFlightTime_TruncatesToMinutes(t *testing.T) {
	a := mustCoord(t, 0, 0)
	b := mustCoord(t, 0, 180)

	got := EstimateFlightTime(a, b, 850)

	minutes := math.Pi * earthRadiusMeters / 1000 / 850 * 60
	want := time.Duration(int64(minutes)) * time.Minute
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got%time.Minute != 0 {
		t.Errorf("duration must be whole minutes, got %v", got)
	}
}

func TestEstimateFlightTime_FasterIsShorter(t *testing.T) {
	vvo := mustCoord(t, 43.398889, 132.148056)
	tlv := mustCoord(t, 32.009444, 34.882778)

	slow := EstimateFlightTime(vvo, tlv, 700)
	fast := EstimateFlightTime(vvo, tlv, 900)
	if fast >= slow {
		t.Errorf("expected faster cruise speed to shorten the estimate: %v vs %v", fast, slow)
	}
}
