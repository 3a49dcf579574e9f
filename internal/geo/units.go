// Package geo holds the coordinate math used to lay out a sample lattice
// around a center point, and the parser for human-entered center strings.
package geo

import (
	"fmt"
	"strings"
)

const (
	// KilometersPerLatDegree is the length of one degree of latitude.
	KilometersPerLatDegree = 110.567
	// MilesPerLatDegree is the same length in statute miles.
	MilesPerLatDegree = 69.172
)

// Units selects the linear unit system of one run. The lattice distance
// constant and the unit requested from the elevation provider always come
// from the same Units value.
type Units int

const (
	Metric Units = iota
	Imperial
)

// ParseUnits accepts "metric"/"km"/"meters" and "imperial"/"mi"/"feet".
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "metric", "km", "meters", "m":
		return Metric, nil
	case "imperial", "mi", "miles", "feet", "ft":
		return Imperial, nil
	}
	return Metric, fmt.Errorf("unknown units %q (want metric or imperial)", s)
}

func (u Units) String() string {
	if u == Imperial {
		return "imperial"
	}
	return "metric"
}

// PerDegree is the distance spanned by one degree of latitude.
func (u Units) PerDegree() float64 {
	if u == Imperial {
		return MilesPerLatDegree
	}
	return KilometersPerLatDegree
}

// ProviderUnit is the value of the EPQS "units" query parameter.
func (u Units) ProviderUnit() string {
	if u == Imperial {
		return "Feet"
	}
	return "Meters"
}

func (u Units) DistanceLabel() string {
	if u == Imperial {
		return "mi"
	}
	return "km"
}

func (u Units) ElevationLabel() string {
	if u == Imperial {
		return "feet"
	}
	return "meters"
}
