package routing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

var (
	// ErrUnknownStation is returned when an id is not in the station registry.
	ErrUnknownStation = errors.New("unknown station id")
	// ErrZeroWeight is returned when two consecutive stops of a line would be
	// linked at no cost: the same id twice, or distinct stations sharing coordinates.
	ErrZeroWeight = errors.New("zero travel time between consecutive stops")
)

// Edge is an undirected link between two stations, weighted in minutes.
type Edge struct {
	FromID     int
	ToID       int
	TravelTime float64
}

// Graph is the symmetric weighted adjacency of the network. It is frozen by
// BuildGraph and only read afterwards, so any number of searches may share it.
type Graph struct {
	estimator *Estimator
	edges     [][]Edge // per station, sorted by ToID
	lines     []models.Line
	edgeCount int
}

// BuildGraph links consecutive stops of every line with their estimated travel
// time. A pair served by several lines keeps the smallest weight. A stop id
// missing from stations aborts the build.
func BuildGraph(stations StationLookup, lines []models.Line, speedKmh float64) (*Graph, error) {
	est := NewEstimator(stations, speedKmh)
	n := stations.Len()
	weights := make([]map[int]float64, n)

	for _, line := range lines {
		for i := 0; i+1 < len(line.Stops); i++ {
			from, to := line.Stops[i], line.Stops[i+1]
			w, err := est.TravelTime(from, to)
			if err != nil {
				return nil, fmt.Errorf("line %s, stop %d: %w", line.Label, i, err)
			}
			if from == to || w <= 0 {
				return nil, fmt.Errorf("line %s, stops %d-%d: %w", line.Label, from, to, ErrZeroWeight)
			}
			setMin(weights, from, to, w)
			setMin(weights, to, from, w)
		}
	}

	g := &Graph{
		estimator: est,
		edges:     make([][]Edge, n),
		lines:     make([]models.Line, len(lines)),
	}
	for i, line := range lines {
		g.lines[i] = models.Line{Label: line.Label, Stops: append([]int(nil), line.Stops...)}
	}
	for from, adj := range weights {
		if len(adj) == 0 {
			continue
		}
		edges := make([]Edge, 0, len(adj))
		for to, w := range adj {
			edges = append(edges, Edge{FromID: from, ToID: to, TravelTime: w})
		}
		sort.Slice(edges, func(i, j int) bool { return edges[i].ToID < edges[j].ToID })
		g.edges[from] = edges
		g.edgeCount += len(edges)
	}
	g.edgeCount /= 2

	return g, nil
}

func setMin(weights []map[int]float64, from, to int, w float64) {
	if weights[from] == nil {
		weights[from] = make(map[int]float64)
	}
	if old, ok := weights[from][to]; !ok || w < old {
		weights[from][to] = w
	}
}

// Len returns the number of stations in the graph.
func (g *Graph) Len() int {
	return len(g.edges)
}

// EdgeCount returns the number of undirected links.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Neighbors returns the links leaving id. The slice is shared; do not modify it.
func (g *Graph) Neighbors(id int) []Edge {
	if id < 0 || id >= len(g.edges) {
		return nil
	}
	return g.edges[id]
}

// Weight returns the travel time of the direct link between a and b, if any.
func (g *Graph) Weight(a, b int) (float64, bool) {
	edges := g.Neighbors(a)
	i := sort.Search(len(edges), func(i int) bool { return edges[i].ToID >= b })
	if i < len(edges) && edges[i].ToID == b {
		return edges[i].TravelTime, true
	}
	return 0, false
}

func (g *Graph) Estimator() *Estimator {
	return g.estimator
}

// Lines returns the line definitions the graph was built from.
func (g *Graph) Lines() []models.Line {
	return g.lines
}

// LineSummaries groups line definitions by label, in label order.
func (g *Graph) LineSummaries() []models.LineSummary {
	byLabel := make(map[string]*models.LineSummary)
	stops := make(map[string]map[int]bool)
	for _, line := range g.lines {
		s, ok := byLabel[line.Label]
		if !ok {
			s = &models.LineSummary{Label: line.Label}
			byLabel[line.Label] = s
			stops[line.Label] = make(map[int]bool)
		}
		s.Branches++
		for _, id := range line.Stops {
			stops[line.Label][id] = true
		}
	}

	out := make([]models.LineSummary, 0, len(byLabel))
	for label, s := range byLabel {
		s.Stops = len(stops[label])
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return lessLabel(out[i].Label, out[j].Label) })
	return out
}

// lessLabel orders "2" before "10" and "3" before "3bis".
func lessLabel(a, b string) bool {
	na, ra := leadingNumber(a)
	nb, rb := leadingNumber(b)
	if na != nb {
		return na < nb
	}
	return ra < rb
}

// maxLabelDigits keeps leadingNumber within int range; longer numeric runs
// compare as plain strings after every regular label.
const maxLabelDigits = 9

func leadingNumber(s string) (int, string) {
	n, i := 0, 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		if i < maxLabelDigits {
			n = n*10 + int(s[i]-'0')
		}
		i++
	}
	if i == 0 || i > maxLabelDigits {
		return 1 << 30, s
	}
	return n, s[i:]
}
