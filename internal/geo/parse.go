package geo

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

var (
	markReplacer = strings.NewReplacer(
		"°", " ", "º", " ", "′", " ", "″", " ", "’", " ", "”", " ",
		"'", " ", `"`, " ", ",", " ", ";", " ",
	)
	hemisphereRe = regexp.MustCompile(`[NSEWnsew]`)
)

// component is one latitude or longitude as written: up to three numbers
// (degrees, minutes, seconds) and an optional hemisphere letter.
type component struct {
	nums []float64
	hemi byte
}

func (c component) degrees() (float64, error) {
	if len(c.nums) == 0 || len(c.nums) > 3 {
		return 0, fmt.Errorf("expected 1 to 3 numbers, got %d", len(c.nums))
	}
	deg := c.nums[0]
	neg := math.Signbit(deg)
	v := math.Abs(deg)
	for i, scale := range []float64{60, 3600} {
		if len(c.nums) <= i+1 {
			break
		}
		n := c.nums[i+1]
		if n < 0 || n >= 60 {
			return 0, fmt.Errorf("minutes/seconds %v out of range", n)
		}
		v += n / scale
	}
	if c.hemi == 'S' || c.hemi == 'W' {
		if neg {
			return 0, fmt.Errorf("negative value with hemisphere %c", c.hemi)
		}
		neg = true
	}
	if neg {
		v = -v
	}
	return v, nil
}

// ParseCenter parses a latitude/longitude pair written in degree, minute
// and second notation or as decimals. Accepted forms include:
//
//	46° 51' 6 N 121° 45' 37 W
//	N 46° 51' 6, W 121° 45' 37
//	46° 51.1' N 121° 58.6167' W
//	46.86167° N, 121.76028° W
//	46.86167 N 121.76028 W
//	46.86167, -121.76028
//
// The result is an orb.Point, so X is the longitude and Y the latitude.
func ParseCenter(s string) (orb.Point, error) {
	norm := markReplacer.Replace(s)
	norm = hemisphereRe.ReplaceAllString(norm, " $0 ")
	fields := strings.Fields(norm)
	if len(fields) == 0 {
		return orb.Point{}, fmt.Errorf("%w: empty center", ErrInvalidCoordinate)
	}

	var parts []component
	var cur component
	for _, tok := range fields {
		if len(tok) == 1 && hemisphereRe.MatchString(tok) {
			h := strings.ToUpper(tok)[0]
			switch {
			case cur.hemi != 0 && len(cur.nums) > 0:
				parts = append(parts, cur)
				cur = component{hemi: h}
			case cur.hemi != 0:
				return orb.Point{}, fmt.Errorf("%w: %q: repeated hemisphere", ErrInvalidCoordinate, s)
			case len(cur.nums) > 0:
				cur.hemi = h
				parts = append(parts, cur)
				cur = component{}
			default:
				cur.hemi = h
			}
			continue
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return orb.Point{}, fmt.Errorf("%w: %q: unexpected %q", ErrInvalidCoordinate, s, tok)
		}
		cur.nums = append(cur.nums, f)
	}
	if len(cur.nums) > 0 {
		parts = append(parts, cur)
	} else if cur.hemi != 0 {
		return orb.Point{}, fmt.Errorf("%w: %q: hemisphere without value", ErrInvalidCoordinate, s)
	}

	// bare decimal pair
	if len(parts) == 1 && parts[0].hemi == 0 && len(parts[0].nums) == 2 {
		parts = []component{{nums: parts[0].nums[:1]}, {nums: parts[0].nums[1:]}}
	}
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("%w: %q: expected a latitude and a longitude", ErrInvalidCoordinate, s)
	}

	var lat, lon float64
	var haveLat, haveLon bool
	for i, p := range parts {
		v, err := p.degrees()
		if err != nil {
			return orb.Point{}, fmt.Errorf("%w: %q: %v", ErrInvalidCoordinate, s, err)
		}
		isLat := p.hemi == 'N' || p.hemi == 'S' || (p.hemi == 0 && i == 0)
		if isLat {
			if haveLat {
				return orb.Point{}, fmt.Errorf("%w: %q: two latitudes", ErrInvalidCoordinate, s)
			}
			lat, haveLat = v, true
		} else {
			if haveLon {
				return orb.Point{}, fmt.Errorf("%w: %q: two longitudes", ErrInvalidCoordinate, s)
			}
			lon, haveLon = v, true
		}
	}
	if err := ValidateLatitude(lat); err != nil {
		return orb.Point{}, err
	}
	if err := ValidateLongitude(lon); err != nil {
		return orb.Point{}, err
	}
	return orb.Point{lon, lat}, nil
}
