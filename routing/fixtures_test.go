package routing

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
	"github.com/AijingLI-KCLLP/find-path-ratp/stations"
)

// withLines fills each station's line set from the line definitions.
func withLines(list []models.Station, lines []models.Line) []models.Station {
	out := make([]models.Station, len(list))
	copy(out, list)
	byID := make(map[int]int, len(out))
	for i, st := range out {
		byID[st.ID] = i
		out[i].Lines = nil
	}
	for _, line := range lines {
		for _, id := range line.Stops {
			i, ok := byID[id]
			if !ok {
				continue
			}
			if !out[i].HasLine(line.Label) {
				out[i].Lines = append(out[i].Lines, line.Label)
				sort.Strings(out[i].Lines)
			}
		}
	}
	return out
}

func newTestGraph(t *testing.T, list []models.Station, lines []models.Line) (*stations.Registry, *Graph) {
	t.Helper()
	reg, err := stations.NewRegistry(withLines(list, lines))
	require.NoError(t, err)
	g, err := BuildGraph(reg, lines, DEFAULT_SPEED_KMH)
	require.NoError(t, err)
	return reg, g
}

// abcStations is three stations one degree apart on the equator.
func abcStations() []models.Station {
	return []models.Station{
		{ID: 0, Name: "A", Lat: 0, Lon: 0},
		{ID: 1, Name: "B", Lat: 0, Lon: 1},
		{ID: 2, Name: "C", Lat: 0, Lon: 2},
		{ID: 3, Name: "D", Lat: 1, Lon: 1},
	}
}

func randomNetwork(seed int64, n, lineCount int) ([]models.Station, []models.Line) {
	rng := rand.New(rand.NewSource(seed))
	list := make([]models.Station, n)
	for i := range list {
		list[i] = models.Station{
			ID:   i,
			Name: string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Lat:  48.80 + rng.Float64()*0.1,
			Lon:  2.25 + rng.Float64()*0.15,
		}
	}
	lines := make([]models.Line, lineCount)
	for i := range lines {
		length := 3 + rng.Intn(6)
		lines[i] = models.Line{
			Label: string(rune('A' + i)),
			Stops: rng.Perm(n)[:length],
		}
	}
	return list, lines
}

// dijkstra is a quadratic reference implementation over the same graph.
func dijkstra(g *Graph, start int, mod CostModifier) []float64 {
	dist := make([]float64, g.Len())
	done := make([]bool, g.Len())
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[start] = 0

	for {
		current := -1
		for i := range dist {
			if !done[i] && !math.IsInf(dist[i], 1) && (current < 0 || dist[i] < dist[current]) {
				current = i
			}
		}
		if current < 0 {
			return dist
		}
		done[current] = true
		for _, e := range g.Neighbors(current) {
			d := dist[current] + e.TravelTime
			if mod != nil {
				d += mod.ExtraMinutes(current, e.ToID, PenaltyContext{})
			}
			if d < dist[e.ToID] {
				dist[e.ToID] = d
			}
		}
	}
}

func pathCost(t *testing.T, g *Graph, path []int, mod CostModifier) float64 {
	t.Helper()
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		w, ok := g.Weight(path[i], path[i+1])
		require.True(t, ok, "no edge %d-%d on returned path", path[i], path[i+1])
		total += w
		if mod != nil {
			total += mod.ExtraMinutes(path[i], path[i+1], PenaltyContext{})
		}
	}
	return total
}
