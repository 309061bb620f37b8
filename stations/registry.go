// Package stations holds the immutable station table of a network and answers
// lookups by id and by name.
package stations

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
	"github.com/AijingLI-KCLLP/find-path-ratp/utils"
)

var (
	// ErrStationNotFound is returned when no station matches an id or a name.
	ErrStationNotFound = errors.New("station not found")
	// ErrAmbiguousName is returned when a name matches more than one station.
	ErrAmbiguousName = errors.New("station name is ambiguous")
	// ErrInvalidStationID is returned when station ids are not exactly 0..N-1.
	ErrInvalidStationID = errors.New("station ids must be unique and cover 0..N-1")
)

// Registry is safe for concurrent reads; it is never mutated after NewRegistry.
type Registry struct {
	byID   []models.Station
	byName map[string][]int
}

// NewRegistry indexes list. Ids must be dense: every id in [0, len(list)) exactly once.
func NewRegistry(list []models.Station) (*Registry, error) {
	byID := make([]models.Station, len(list))
	seen := make([]bool, len(list))
	for _, st := range list {
		if st.ID < 0 || st.ID >= len(list) {
			return nil, fmt.Errorf("%w: id %d out of range for %d stations", ErrInvalidStationID, st.ID, len(list))
		}
		if seen[st.ID] {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidStationID, st.ID)
		}
		seen[st.ID] = true
		st.Lines = append([]string(nil), st.Lines...)
		sort.Strings(st.Lines)
		byID[st.ID] = st
	}

	byName := make(map[string][]int, len(list))
	for _, st := range byID {
		key := utils.NormalizeName(st.Name)
		byName[key] = append(byName[key], st.ID)
	}

	return &Registry{byID: byID, byName: byName}, nil
}

// Len returns the number of stations N.
func (r *Registry) Len() int {
	return len(r.byID)
}

// ByID returns the station with the given id.
func (r *Registry) ByID(id int) (models.Station, bool) {
	if id < 0 || id >= len(r.byID) {
		return models.Station{}, false
	}
	return r.byID[id], true
}

// ByName resolves a station by name, ignoring case, accents and punctuation.
// Two stations normalizing to the same key make the name ambiguous.
func (r *Registry) ByName(name string) (models.Station, error) {
	ids := r.byName[utils.NormalizeName(name)]
	switch len(ids) {
	case 0:
		return models.Station{}, fmt.Errorf("%w: %q", ErrStationNotFound, name)
	case 1:
		return r.byID[ids[0]], nil
	default:
		names := make([]string, 0, len(ids))
		for _, id := range ids {
			names = append(names, fmt.Sprintf("%s (#%d)", r.byID[id].Name, id))
		}
		return models.Station{}, fmt.Errorf("%w: %q matches %s", ErrAmbiguousName, name, strings.Join(names, ", "))
	}
}

// All returns every station ordered by id.
func (r *Registry) All() []models.Station {
	out := make([]models.Station, len(r.byID))
	copy(out, r.byID)
	return out
}

// Search returns stations whose normalized name contains query, sorted by name.
// An empty query matches everything. limit <= 0 means no limit.
func (r *Registry) Search(query string, limit int) []models.Station {
	key := utils.NormalizeName(query)
	var out []models.Station
	for _, st := range r.byID {
		if strings.Contains(utils.NormalizeName(st.Name), key) {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utils.NormalizeName(out[i].Name) < utils.NormalizeName(out[j].Name)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
