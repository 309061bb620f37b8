package models

import "sort"

// Line is one ordered run of stops. Branches of a physical line are supplied
// as further Line values sharing the same Label.
type Line struct {
	Label string `json:"label" yaml:"label" validate:"required"`
	Stops []int  `json:"stops" yaml:"stops" validate:"min=1,dive,gte=0"`
}

// Network is the static definition the graph is built from.
type Network struct {
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Stations []Station `json:"stations" yaml:"stations" validate:"required,dive"`
	Lines    []Line    `json:"lines" yaml:"lines" validate:"dive"`
}

// WithLines returns a copy of stations whose Lines are rebuilt from line
// membership, sorted and de-duplicated. Stations on no line get an empty set.
func WithLines(stations []Station, lines []Line) []Station {
	served := make(map[int]map[string]struct{}, len(stations))
	for _, line := range lines {
		for _, id := range line.Stops {
			if served[id] == nil {
				served[id] = map[string]struct{}{}
			}
			served[id][line.Label] = struct{}{}
		}
	}

	out := make([]Station, len(stations))
	for i, st := range stations {
		set := served[st.ID]
		labels := make([]string, 0, len(set))
		for label := range set {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		st.Lines = labels
		out[i] = st
	}
	return out
}

// LineSummary groups every branch of a label for listing.
type LineSummary struct {
	Label    string `json:"label"`
	Branches int    `json:"branches"`
	Stops    int    `json:"stops"`
}
