package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
	"github.com/AijingLI-KCLLP/find-path-ratp/stations"
)

func TestBuildGraphIsSymmetric(t *testing.T) {
	list, lines := randomNetwork(7, 25, 6)
	_, g := newTestGraph(t, list, lines)

	for a := 0; a < g.Len(); a++ {
		for _, e := range g.Neighbors(a) {
			back, ok := g.Weight(e.ToID, a)
			require.True(t, ok, "missing reverse edge %d-%d", e.ToID, a)
			assert.Equal(t, e.TravelTime, back)
			assert.Greater(t, e.TravelTime, 0.0)
		}
	}
}

func TestBuildGraphDeduplicatesSharedPairs(t *testing.T) {
	lines := []models.Line{
		{Label: "L1", Stops: []int{0, 1, 2}},
		{Label: "L2", Stops: []int{2, 1, 3}},
	}
	_, g := newTestGraph(t, abcStations(), lines)

	assert.Equal(t, 3, g.EdgeCount())
	assert.Len(t, g.Neighbors(1), 3)
	assert.Len(t, g.Neighbors(2), 1)

	w, ok := g.Weight(1, 2)
	require.True(t, ok)
	want, err := g.Estimator().TravelTime(1, 2)
	require.NoError(t, err)
	assert.Equal(t, want, w)

	_, ok = g.Weight(0, 2)
	assert.False(t, ok)
}

func TestBuildGraphKeepsNeighborsSorted(t *testing.T) {
	_, g := newTestGraph(t, abcStations(), []models.Line{{Label: "L", Stops: []int{3, 1, 0}}, {Label: "M", Stops: []int{2, 1}}})

	var ids []int
	for _, e := range g.Neighbors(1) {
		ids = append(ids, e.ToID)
		assert.Equal(t, 1, e.FromID)
	}
	assert.Equal(t, []int{0, 2, 3}, ids)
	assert.Nil(t, g.Neighbors(-1))
	assert.Nil(t, g.Neighbors(4))
}

func TestBuildGraphRejectsUnknownStation(t *testing.T) {
	reg, err := stations.NewRegistry(abcStations())
	require.NoError(t, err)

	_, err = BuildGraph(reg, []models.Line{{Label: "L1", Stops: []int{0, 1, 9}}}, DEFAULT_SPEED_KMH)
	assert.ErrorIs(t, err, ErrUnknownStation)
	assert.Contains(t, err.Error(), "line L1")
}

func TestBuildGraphRejectsZeroWeight(t *testing.T) {
	list := []models.Station{
		{ID: 0, Name: "A", Lat: 48.85, Lon: 2.35},
		{ID: 1, Name: "A bis", Lat: 48.85, Lon: 2.35},
		{ID: 2, Name: "B", Lat: 48.86, Lon: 2.35},
	}
	reg, err := stations.NewRegistry(list)
	require.NoError(t, err)

	_, err = BuildGraph(reg, []models.Line{{Label: "L1", Stops: []int{2, 0, 1}}}, DEFAULT_SPEED_KMH)
	assert.ErrorIs(t, err, ErrZeroWeight)

	_, err = BuildGraph(reg, []models.Line{{Label: "L1", Stops: []int{0, 2, 2}}}, DEFAULT_SPEED_KMH)
	assert.ErrorIs(t, err, ErrZeroWeight)
}

func TestLineSummaries(t *testing.T) {
	lines := []models.Line{
		{Label: "10", Stops: []int{0, 1}},
		{Label: "3bis", Stops: []int{1, 2}},
		{Label: "3", Stops: []int{0, 1, 2}},
		{Label: "3", Stops: []int{1, 3}},
	}
	_, g := newTestGraph(t, abcStations(), lines)

	got := g.LineSummaries()
	require.Len(t, got, 3)
	assert.Equal(t, models.LineSummary{Label: "3", Branches: 2, Stops: 4}, got[0])
	assert.Equal(t, "3bis", got[1].Label)
	assert.Equal(t, "10", got[2].Label)
	assert.Len(t, g.Lines(), 4)
}

func TestLessLabelLongNumericRun(t *testing.T) {
	assert.True(t, lessLabel("2", "10"))
	assert.True(t, lessLabel("3", "3bis"))
	assert.True(t, lessLabel("14", "12345678901234567890"))
	assert.False(t, lessLabel("12345678901234567890", "14"))
	assert.True(t, lessLabel("12345678901234567890", "99999999999999999999"))
}
