package models

import "sort"

// Station is a named stop of the network. Lines holds the sorted, de-duplicated
// labels of every line serving it. Stations are immutable once loaded.
type Station struct {
	ID    int      `json:"id" yaml:"id" validate:"gte=0"`
	Name  string   `json:"name" yaml:"name" validate:"required"`
	Lat   float64  `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lon   float64  `json:"lon" yaml:"lon" validate:"gte=-180,lte=180"`
	Lines []string `json:"lines,omitempty" yaml:"-"`
}

// HasLine reports whether the station is served by label.
func (s Station) HasLine(label string) bool {
	lines := sortedLabels(s.Lines)
	i := sort.SearchStrings(lines, label)
	return i < len(lines) && lines[i] == label
}

// CommonLines returns the sorted, de-duplicated labels serving both a and b.
// Lines need not be sorted on input.
func CommonLines(a, b Station) []string {
	al, bl := sortedLabels(a.Lines), sortedLabels(b.Lines)
	var common []string
	i, j := 0, 0
	for i < len(al) && j < len(bl) {
		switch {
		case al[i] == bl[j]:
			if len(common) == 0 || common[len(common)-1] != al[i] {
				common = append(common, al[i])
			}
			i++
			j++
		case al[i] < bl[j]:
			i++
		default:
			j++
		}
	}
	return common
}

// sortedLabels returns labels itself when already sorted, else a sorted copy.
func sortedLabels(labels []string) []string {
	if sort.StringsAreSorted(labels) {
		return labels
	}
	out := append([]string(nil), labels...)
	sort.Strings(out)
	return out
}
