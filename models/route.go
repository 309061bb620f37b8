package models

// Segment is a maximal run of consecutive stations ridden on one line.
type Segment struct {
	Line     string   `json:"line"`
	Stations []string `json:"stations"`
}

// Itinerary is a resolved fastest path between two stations.
type Itinerary struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	StationIDs []int     `json:"stationIds"`
	Stations   []string  `json:"stations"`
	Segments   []Segment `json:"segments"`
	Transfers  int       `json:"transfers"`
	Minutes    float64   `json:"minutes"`
}

// TransferPoints returns the station names where the rider changes line.
func (it *Itinerary) TransferPoints() []string {
	if len(it.Segments) < 2 {
		return nil
	}
	points := make([]string, 0, len(it.Segments)-1)
	for _, seg := range it.Segments[1:] {
		points = append(points, seg.Stations[0])
	}
	return points
}
