package preprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

// ErrEmptyFeed is returned when a GTFS directory yields no usable line.
var ErrEmptyFeed = errors.New("gtfs feed has no stop sequence with two or more stations")

type GTFSStop struct {
	ID            string `csv:"stop_id"`
	Name          string `csv:"stop_name"`
	Lat           string `csv:"stop_lat"`
	Lon           string `csv:"stop_lon"`
	LocationType  string `csv:"location_type"`
	ParentStation string `csv:"parent_station"`
}

type GTFSRoute struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
}

type GTFSTrip struct {
	ID          string `csv:"trip_id"`
	RouteID     string `csv:"route_id"`
	DirectionID string `csv:"direction_id"`
}

type GTFSStopTime struct {
	TripID       string `csv:"trip_id"`
	StopID       string `csv:"stop_id"`
	StopSequence int    `csv:"stop_sequence"`
}

// LoadGTFS builds a network from a GTFS directory.
// Required files: stops.txt, routes.txt, trips.txt, stop_times.txt
//
// Platforms collapse onto their parent station. Every distinct stop sequence
// of a route becomes one Line labelled with the route short name; a sequence
// and its reverse count once. Station ids are assigned densely in stop_id order.
func LoadGTFS(dir string, logger *zap.Logger) (*models.Network, error) {
	var (
		stops     []GTFSStop
		routes    []GTFSRoute
		trips     []GTFSTrip
		stopTimes []GTFSStopTime
	)
	if err := readGTFSFile(filepath.Join(dir, "stops.txt"), &stops); err != nil {
		return nil, err
	}
	if err := readGTFSFile(filepath.Join(dir, "routes.txt"), &routes); err != nil {
		return nil, err
	}
	if err := readGTFSFile(filepath.Join(dir, "trips.txt"), &trips); err != nil {
		return nil, err
	}
	if err := readGTFSFile(filepath.Join(dir, "stop_times.txt"), &stopTimes); err != nil {
		return nil, err
	}

	stopsByID := make(map[string]GTFSStop, len(stops))
	for _, s := range stops {
		if s.ID != "" {
			stopsByID[s.ID] = s
		}
	}
	stationOf := func(stopID string) string {
		s, ok := stopsByID[stopID]
		if !ok {
			return ""
		}
		if s.ParentStation != "" {
			if _, ok := stopsByID[s.ParentStation]; ok {
				return s.ParentStation
			}
		}
		return s.ID
	}

	labelOf := make(map[string]string, len(routes))
	for _, r := range routes {
		label := strings.TrimSpace(r.ShortName)
		if label == "" {
			label = r.ID
		}
		labelOf[r.ID] = label
	}
	routeOfTrip := make(map[string]string, len(trips))
	for _, t := range trips {
		routeOfTrip[t.ID] = t.RouteID
	}

	sort.SliceStable(stopTimes, func(i, j int) bool {
		if stopTimes[i].TripID != stopTimes[j].TripID {
			return stopTimes[i].TripID < stopTimes[j].TripID
		}
		return stopTimes[i].StopSequence < stopTimes[j].StopSequence
	})
	sequences := map[string][]string{}
	var tripOrder []string
	for _, st := range stopTimes {
		station := stationOf(st.StopID)
		if station == "" {
			logger.Debug("Skipping stop_time with unknown stop", zap.String("trip_id", st.TripID), zap.String("stop_id", st.StopID))
			continue
		}
		seq, ok := sequences[st.TripID]
		if !ok {
			tripOrder = append(tripOrder, st.TripID)
		}
		if len(seq) > 0 && seq[len(seq)-1] == station {
			continue
		}
		sequences[st.TripID] = append(seq, station)
	}

	type pattern struct {
		label string
		stops []string
	}
	seen := map[string]struct{}{}
	var patterns []pattern
	used := map[string]struct{}{}
	for _, tripID := range tripOrder {
		seq := sequences[tripID]
		if len(seq) < 2 {
			continue
		}
		routeID, ok := routeOfTrip[tripID]
		if !ok {
			logger.Debug("Skipping trip without route", zap.String("trip_id", tripID))
			continue
		}
		label, ok := labelOf[routeID]
		if !ok {
			label = routeID
		}
		key := label + "|" + canonicalKey(seq)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		patterns = append(patterns, pattern{label: label, stops: seq})
		for _, id := range seq {
			used[id] = struct{}{}
		}
	}
	if len(patterns) == 0 {
		return nil, ErrEmptyFeed
	}

	stopIDs := make([]string, 0, len(used))
	for id := range used {
		stopIDs = append(stopIDs, id)
	}
	sort.Strings(stopIDs)

	net := &models.Network{
		Name:     filepath.Base(dir),
		Stations: make([]models.Station, len(stopIDs)),
	}
	denseID := make(map[string]int, len(stopIDs))
	for i, stopID := range stopIDs {
		s := stopsByID[stopID]
		lat, err := strconv.ParseFloat(strings.TrimSpace(s.Lat), 64)
		if err != nil {
			return nil, fmt.Errorf("stop %s: stop_lat %q: %w", stopID, s.Lat, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(s.Lon), 64)
		if err != nil {
			return nil, fmt.Errorf("stop %s: stop_lon %q: %w", stopID, s.Lon, err)
		}
		denseID[stopID] = i
		net.Stations[i] = models.Station{ID: i, Name: s.Name, Lat: lat, Lon: lon}
	}

	sort.SliceStable(patterns, func(i, j int) bool { return patterns[i].label < patterns[j].label })
	for _, p := range patterns {
		line := models.Line{Label: p.label, Stops: make([]int, len(p.stops))}
		for i, stopID := range p.stops {
			line.Stops[i] = denseID[stopID]
		}
		net.Lines = append(net.Lines, line)
	}

	logger.Info("Loaded GTFS feed",
		zap.String("dir", dir),
		zap.Int("stations", len(net.Stations)),
		zap.Int("lines", len(net.Lines)),
		zap.Int("trips", len(tripOrder)))
	return finalize(net)
}

// canonicalKey identifies a sequence regardless of travel direction.
func canonicalKey(seq []string) string {
	fwd := strings.Join(seq, ",")
	rev := make([]string, len(seq))
	for i, id := range seq {
		rev[len(seq)-1-i] = id
	}
	bwd := strings.Join(rev, ",")
	if bwd < fwd {
		return bwd
	}
	return fwd
}

func readGTFSFile(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	in := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	if err := gocsv.UnmarshalCSV(gtfsCSVReader(in), out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// GTFS allows optional trailing columns, so rows may be shorter than the header.
func gtfsCSVReader(in io.Reader) gocsv.CSVReader {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	return r
}
