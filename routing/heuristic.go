package routing

import (
	"fmt"
	"math"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

const (
	// EARTH_RADIUS_KM is the mean radius used by HaversineKm.
	EARTH_RADIUS_KM = 6371.0
	// DEFAULT_SPEED_KMH is the average train speed applied when none is configured.
	DEFAULT_SPEED_KMH = 30.0
	// DEFAULT_HOUR is the departure hour assumed when the caller gives none.
	DEFAULT_HOUR = 8.0
)

type Coordinate struct {
	Lat float64
	Lon float64
}

// StationLookup is the read side of the station registry the graph needs.
type StationLookup interface {
	ByID(id int) (models.Station, bool)
	Len() int
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(coord1, coord2 Coordinate) float64 {
	phi1 := toRadians(coord1.Lat)
	phi2 := toRadians(coord2.Lat)
	deltaPhi := toRadians(coord2.Lat - coord1.Lat)
	deltaLambda := toRadians(coord2.Lon - coord1.Lon)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EARTH_RADIUS_KM * c
}

// MinutesAt converts a distance to travel minutes at a cruising speed.
func MinutesAt(distanceKm, speedKmh float64) float64 {
	return distanceKm / speedKmh * 60.0
}

// Estimator turns straight-line distance between stations into minutes. It
// supplies both the edge weights of the graph and the A* heuristic, so the
// heuristic never exceeds the cost of any path built from those edges.
type Estimator struct {
	stations StationLookup
	speedKmh float64
}

func NewEstimator(stations StationLookup, speedKmh float64) *Estimator {
	if speedKmh <= 0 {
		speedKmh = DEFAULT_SPEED_KMH
	}
	return &Estimator{stations: stations, speedKmh: speedKmh}
}

func (e *Estimator) SpeedKmh() float64 {
	return e.speedKmh
}

// TravelTime estimates the minutes between two stations at the reference speed.
func (e *Estimator) TravelTime(from, to int) (float64, error) {
	a, ok := e.stations.ByID(from)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStation, from)
	}
	b, ok := e.stations.ByID(to)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStation, to)
	}
	d := HaversineKm(Coordinate{Lat: a.Lat, Lon: a.Lon}, Coordinate{Lat: b.Lat, Lon: b.Lon})
	return MinutesAt(d, e.speedKmh), nil
}

// Heuristic is the A* lower bound from a station to the goal. The hour is
// accepted for the penalty hooks but does not change the estimate. Unknown
// stations estimate to zero, which is still admissible.
func (e *Estimator) Heuristic(from, goal int, hour float64) float64 {
	minutes, err := e.TravelTime(from, goal)
	if err != nil {
		return 0.0
	}
	return minutes
}
