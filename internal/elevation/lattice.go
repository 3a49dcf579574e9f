package elevation

import (
	"context"
	"fmt"
	"log"

	"github.com/paulmach/orb"
	"github.com/pavletto/reliefgrid/internal/geo"
	"github.com/pavletto/reliefgrid/internal/grid"
)

// GridRequest describes the sample lattice around a center point.
type GridRequest struct {
	Center   orb.Point // X = longitude, Y = latitude
	Radius   float64   // in Units.DistanceLabel()
	GridSize int       // samples per side
	Units    geo.Units
}

// Sample is one lattice point and the elevation fetched for it.
type Sample struct {
	Row, Col  int
	Lat, Lon  float64
	Elevation int
}

func (s Sample) Point() orb.Point { return orb.Point{s.Lon, s.Lat} }

// GenerateGrid walks a GridSize x GridSize lattice centered on req.Center
// and fetches one elevation per cell, rows outer and columns inner. Row 0 is
// the northernmost row and column 0 the westernmost column.
//
// Row y sits at center.lat + radius/K * (mid-y)/mid with mid = GridSize/2
// and K the latitude degree length of req.Units. Column spacing depends on
// the row latitude, so it is recomputed for every row. Each coordinate is
// validated before the provider is called; the first error aborts the walk
// and no grid is returned.
//
// onProgress, if not nil, is called once per finished cell.
func GenerateGrid(ctx context.Context, p Provider, req GridRequest, onProgress func(Sample)) (*grid.Grid[Sample], error) {
	if p == nil {
		return nil, fmt.Errorf("%w: provider is nil", ErrInvalidRequest)
	}
	if req.GridSize < 1 {
		return nil, fmt.Errorf("%w: grid size must be at least 1, got %d", ErrInvalidRequest, req.GridSize)
	}
	if req.Radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidRequest, req.Radius)
	}
	if err := geo.ValidateLatitude(req.Center.Lat()); err != nil {
		return nil, fmt.Errorf("center: %w", err)
	}
	if err := geo.ValidateLongitude(req.Center.Lon()); err != nil {
		return nil, fmt.Errorf("center: %w", err)
	}

	n := req.GridSize
	mid := n / 2
	perDegree := req.Units.PerDegree()
	out := grid.New(n, n, Sample{})

	for y := 0; y < n; y++ {
		lat := req.Center.Lat() + req.Radius/perDegree*offset(mid-y, mid)
		if err := geo.ValidateLatitude(lat); err != nil {
			return nil, fmt.Errorf("row %d: %w", y, err)
		}
		perLon, err := geo.DistancePerLonDegree(lat, perDegree)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", y, err)
		}
		for x := 0; x < n; x++ {
			lon := req.Center.Lon() + req.Radius/perLon*offset(x-mid, mid)
			if err := geo.ValidateLongitude(lon); err != nil {
				return nil, fmt.Errorf("row %d, column %d: %w", y, x, err)
			}
			e, err := p.Elevation(ctx, lat, lon)
			if err != nil {
				return nil, fmt.Errorf("sample y: %d, x: %d at %s: %w", y, x, geo.FormatLatLon(lat, lon), err)
			}
			s := Sample{Row: y, Col: x, Lat: lat, Lon: lon, Elevation: e}
			out.Set(y, x, s)
			log.Printf("y: %d, x: %d, %s, %d %s", y, x, geo.FormatLatLon(lat, lon), e, req.Units.ElevationLabel())
			if onProgress != nil {
				onProgress(s)
			}
		}
	}
	return out, nil
}

// offset is steps/mid, the fractional lattice offset from the center.
// A one-cell grid has mid 0 and samples only the center.
func offset(steps, mid int) float64 {
	if mid == 0 {
		return 0
	}
	return float64(steps) / float64(mid)
}

// Elevations projects a sample grid onto its elevation values.
func Elevations(samples *grid.Grid[Sample]) *grid.Grid[int] {
	return grid.Map(samples, func(s Sample) int { return s.Elevation })
}

// Points projects a sample grid onto its lattice coordinates.
func Points(samples *grid.Grid[Sample]) *grid.Grid[orb.Point] {
	return grid.Map(samples, Sample.Point)
}

// Bound is the bounding box of every sampled point.
func Bound(samples *grid.Grid[Sample]) orb.Bound {
	return orb.MultiPoint(Points(samples).Values()).Bound()
}
