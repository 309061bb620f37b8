package routing

import (
	"errors"
	"fmt"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

// UNKNOWN_LINE labels a hop whose two stations share no line.
const UNKNOWN_LINE = "unknown"

// ErrNoCommonLine reports a path hop between stations with no line in common.
// Search paths only follow line links, so this means the network data is broken.
var ErrNoCommonLine = errors.New("consecutive stations share no line")

// SegmentPath splits a station path into same-line segments. A segment keeps
// its line for as long as the next hop allows it, even when another common
// line sorts first; a new segment takes the smallest common label. Hops with
// no common line open an UNKNOWN_LINE segment and are reported in the error,
// which accompanies the full segmentation.
func SegmentPath(path []models.Station) ([]models.Segment, int, error) {
	var (
		segments []models.Segment
		current  *models.Segment
		errs     []error
	)

	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		common := models.CommonLines(from, to)

		if current != nil && contains(common, current.Line) {
			current.Stations = append(current.Stations, to.Name)
			continue
		}

		line := UNKNOWN_LINE
		if len(common) > 0 {
			line = common[0]
		} else {
			errs = append(errs, fmt.Errorf("%w: %s (#%d) -> %s (#%d)", ErrNoCommonLine, from.Name, from.ID, to.Name, to.ID))
		}
		segments = append(segments, models.Segment{Line: line, Stations: []string{from.Name, to.Name}})
		current = &segments[len(segments)-1]
	}

	transfers := len(segments) - 1
	if transfers < 0 {
		transfers = 0
	}
	return segments, transfers, errors.Join(errs...)
}

func contains(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
