// Package preprocessing turns the supported network sources (YAML, GTFS,
// SQLite and the embedded default) into a validated models.Network.
package preprocessing

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

// ErrInvalidNetwork wraps every structural problem found by Validate.
var ErrInvalidNetwork = errors.New("invalid network")

var validate = validator.New()

// Validate checks field constraints, that station ids are exactly 0..N-1 and
// that every line stop names a station.
func Validate(net *models.Network) error {
	if net == nil {
		return fmt.Errorf("%w: nil network", ErrInvalidNetwork)
	}
	if err := validate.Struct(net); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidNetwork, err)
	}

	n := len(net.Stations)
	seen := make([]bool, n)
	for _, st := range net.Stations {
		if st.ID >= n {
			return fmt.Errorf("%w: station id %d out of range for %d stations", ErrInvalidNetwork, st.ID, n)
		}
		if seen[st.ID] {
			return fmt.Errorf("%w: duplicate station id %d", ErrInvalidNetwork, st.ID)
		}
		seen[st.ID] = true
	}
	for _, line := range net.Lines {
		for i, id := range line.Stops {
			if id >= n {
				return fmt.Errorf("%w: line %s stop %d references unknown station %d", ErrInvalidNetwork, line.Label, i, id)
			}
		}
	}
	return nil
}

// DeriveLines rebuilds every station's Lines from line membership, sorted and
// de-duplicated. Stations on no line end up with an empty set.
func DeriveLines(net *models.Network) {
	net.Stations = models.WithLines(net.Stations, net.Lines)
}

func finalize(net *models.Network) (*models.Network, error) {
	if err := Validate(net); err != nil {
		return nil, err
	}
	DeriveLines(net)
	return net, nil
}
