package stations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

func fixtureStations() []models.Station {
	return []models.Station{
		{ID: 2, Name: "Hôtel de Ville", Lat: 48.8573, Lon: 2.3520, Lines: []string{"11", "1"}},
		{ID: 0, Name: "Châtelet", Lat: 48.8585, Lon: 2.3474, Lines: []string{"1", "4", "11", "14"}},
		{ID: 1, Name: "Louvre - Rivoli", Lat: 48.8608, Lon: 2.3409, Lines: []string{"1"}},
	}
}

func TestNewRegistryIndexesByID(t *testing.T) {
	reg, err := NewRegistry(fixtureStations())
	require.NoError(t, err)

	assert.Equal(t, 3, reg.Len())

	st, ok := reg.ByID(2)
	require.True(t, ok)
	assert.Equal(t, "Hôtel de Ville", st.Name)
	assert.Equal(t, []string{"1", "11"}, st.Lines)

	_, ok = reg.ByID(3)
	assert.False(t, ok)
	_, ok = reg.ByID(-1)
	assert.False(t, ok)
}

func TestNewRegistryRejectsBadIDs(t *testing.T) {
	tests := []struct {
		name     string
		stations []models.Station
	}{
		{"gap", []models.Station{{ID: 0, Name: "A"}, {ID: 2, Name: "B"}}},
		{"duplicate", []models.Station{{ID: 0, Name: "A"}, {ID: 0, Name: "B"}}},
		{"negative", []models.Station{{ID: -1, Name: "A"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.stations)
			assert.ErrorIs(t, err, ErrInvalidStationID)
		})
	}
}

func TestByNameNormalizes(t *testing.T) {
	reg, err := NewRegistry(fixtureStations())
	require.NoError(t, err)

	for _, name := range []string{"Châtelet", "chatelet", "  CHATELET ", "louvre rivoli", "hotel-de-ville"} {
		_, err := reg.ByName(name)
		assert.NoError(t, err, name)
	}

	st, err := reg.ByName("louvre rivoli")
	require.NoError(t, err)
	assert.Equal(t, 1, st.ID)
}

func TestByNameNotFound(t *testing.T) {
	reg, err := NewRegistry(fixtureStations())
	require.NoError(t, err)

	_, err = reg.ByName("Nation")
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestByNameAmbiguous(t *testing.T) {
	reg, err := NewRegistry([]models.Station{
		{ID: 0, Name: "Saint-Michel"},
		{ID: 1, Name: "Saint Michel"},
	})
	require.NoError(t, err)

	_, err = reg.ByName("saint michel")
	assert.ErrorIs(t, err, ErrAmbiguousName)
	assert.Contains(t, err.Error(), "#0")
	assert.Contains(t, err.Error(), "#1")
}

func TestSearch(t *testing.T) {
	reg, err := NewRegistry(fixtureStations())
	require.NoError(t, err)

	all := reg.Search("", 0)
	require.Len(t, all, 3)
	assert.Equal(t, "Châtelet", all[0].Name)
	assert.Equal(t, "Hôtel de Ville", all[1].Name)

	got := reg.Search("VILLE", 0)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)

	assert.Len(t, reg.Search("", 2), 2)
}
