package preprocessing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	net, err := Default()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "paris.db")
	require.NoError(t, SaveSQLite(ctx, path, net))

	back, err := LoadSQLite(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, net, back)

	viaLoad, err := Load(ctx, path, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, net, viaLoad)
}

func TestSQLiteKeepsBranchesApart(t *testing.T) {
	ctx := context.Background()
	net := &models.Network{
		Name: "branches",
		Stations: []models.Station{
			{ID: 0, Name: "Trunk", Lat: 0, Lon: 0},
			{ID: 1, Name: "East", Lat: 0, Lon: 1},
			{ID: 2, Name: "North", Lat: 1, Lon: 0},
		},
		Lines: []models.Line{
			{Label: "7", Stops: []int{0, 1}},
			{Label: "7", Stops: []int{0, 2}},
		},
	}
	path := filepath.Join(t.TempDir(), "branches.sqlite")
	require.NoError(t, SaveSQLite(ctx, path, net))

	// Saving twice replaces the content instead of appending.
	require.NoError(t, SaveSQLite(ctx, path, net))

	back, err := LoadSQLite(ctx, path)
	require.NoError(t, err)
	require.Len(t, back.Lines, 2)
	assert.Equal(t, []int{0, 1}, back.Lines[0].Stops)
	assert.Equal(t, []int{0, 2}, back.Lines[1].Stops)
	assert.Equal(t, []string{"7"}, back.Stations[0].Lines)
}

func TestSaveSQLiteRejectsInvalidNetwork(t *testing.T) {
	net := &models.Network{
		Stations: []models.Station{{ID: 0, Name: "A"}},
		Lines:    []models.Line{{Label: "1", Stops: []int{0, 5}}},
	}
	err := SaveSQLite(context.Background(), filepath.Join(t.TempDir(), "bad.db"), net)
	assert.ErrorIs(t, err, ErrInvalidNetwork)
}
