package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate marks every bad-input coordinate error.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// DistancePerLonDegree approximates the distance between two meridians one
// degree apart at the given latitude. perDegree is the length of a latitude
// degree in the unit the caller works in (see Units.PerDegree).
//
// The approximation is (90 - |lat|) * pi/180 * perDegree. Poles have no
// usable spacing, so |lat| >= 90 is rejected.
func DistancePerLonDegree(lat, perDegree float64) (float64, error) {
	abs := math.Abs(lat)
	if math.IsNaN(abs) || abs >= 90 {
		return 0, fmt.Errorf("%w: latitude %v has no longitude spacing", ErrInvalidCoordinate, lat)
	}
	return (90 - abs) * math.Pi / 180 * perDegree, nil
}

func ValidateLatitude(lat float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: bad latitude %v", ErrInvalidCoordinate, lat)
	}
	return nil
}

func ValidateLongitude(lon float64) error {
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: bad longitude %v", ErrInvalidCoordinate, lon)
	}
	return nil
}

// FormatLatLon renders a coordinate with hemisphere letters, e.g.
// "46.86167 N, 121.760280 W".
func FormatLatLon(lat, lon float64) string {
	latDir := "N"
	if lat < 0 {
		latDir = "S"
	}
	lonDir := "E"
	if lon < 0 {
		lonDir = "W"
	}
	return fmt.Sprintf("%.5f %s, %.6f %s", math.Abs(lat), latDir, math.Abs(lon), lonDir)
}
