package elevation

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/paulmach/orb"
	"github.com/pavletto/reliefgrid/internal/geo"
	"github.com/pavletto/reliefgrid/internal/grid"
)

// Accepted ranges for relief requests.
const (
	MaxRadius   = 10000
	MaxLevels   = 255
	MaxGridSize = 1000
)

// HeightRequest contains parameters for a single point lookup
type HeightRequest struct {
	Lat float64
	Lon float64
}

// HeightResult contains the result of a single point lookup
type HeightResult struct {
	Lat    float64
	Lon    float64
	Height int
}

// ReliefRequest contains parameters for building a layered relief grid
type ReliefRequest struct {
	Center   orb.Point
	Radius   float64 // kilometres or miles, per Units
	Levels   int     // highest layer index
	GridSize int     // samples per side
	Units    geo.Units
}

// ReliefResult contains the sampled lattice and its quantized levels
type ReliefResult struct {
	Samples      *grid.Grid[Sample]
	Levels       *grid.Grid[int]
	MinElevation int
	MaxElevation int
	Bound        orb.Bound
}

// PickHeight retrieves the elevation at a single location.
// It is shared by the height command and the /height endpoint.
func PickHeight(ctx context.Context, p Provider, req HeightRequest) (HeightResult, error) {
	if p == nil {
		return HeightResult{}, fmt.Errorf("%w: provider is nil", ErrInvalidRequest)
	}
	if err := geo.ValidateLatitude(req.Lat); err != nil {
		return HeightResult{}, err
	}
	if err := geo.ValidateLongitude(req.Lon); err != nil {
		return HeightResult{}, err
	}

	h, err := p.Elevation(ctx, req.Lat, req.Lon)
	if err != nil {
		return HeightResult{}, fmt.Errorf("height lookup failed: %w", err)
	}
	return HeightResult{Lat: req.Lat, Lon: req.Lon, Height: h}, nil
}

// Validate checks the request against the accepted ranges.
func (r ReliefRequest) Validate() error {
	if math.IsNaN(r.Radius) || r.Radius < 1 || r.Radius > MaxRadius {
		return fmt.Errorf("%w: radius must be between 1 and %d, got %v", ErrInvalidRequest, MaxRadius, r.Radius)
	}
	if r.Levels < 1 || r.Levels > MaxLevels {
		return fmt.Errorf("%w: levels must be between 1 and %d, got %d", ErrInvalidRequest, MaxLevels, r.Levels)
	}
	if r.GridSize < 1 || r.GridSize > MaxGridSize {
		return fmt.Errorf("%w: gridsize must be between 1 and %d, got %d", ErrInvalidRequest, MaxGridSize, r.GridSize)
	}
	return nil
}

// BuildRelief samples the lattice around the center and quantizes the
// elevations into req.Levels layers. Nothing is returned unless every cell
// was fetched.
func BuildRelief(ctx context.Context, p Provider, req ReliefRequest, onProgress func(Sample)) (ReliefResult, error) {
	if err := req.Validate(); err != nil {
		return ReliefResult{}, err
	}

	samples, err := GenerateGrid(ctx, p, GridRequest{
		Center:   req.Center,
		Radius:   req.Radius,
		GridSize: req.GridSize,
		Units:    req.Units,
	}, onProgress)
	if err != nil {
		return ReliefResult{}, err
	}

	elevations := Elevations(samples)
	lo, hi, err := grid.MinMax(elevations)
	if err != nil {
		return ReliefResult{}, err
	}
	levels, err := grid.Quantize(elevations, req.Levels)
	if err != nil {
		return ReliefResult{}, err
	}

	bound := Bound(samples)
	log.Printf("sampled %d points between %s and %s, elevation %d..%d %s",
		samples.Len(),
		geo.FormatLatLon(bound.Min.Lat(), bound.Min.Lon()),
		geo.FormatLatLon(bound.Max.Lat(), bound.Max.Lon()),
		lo, hi, req.Units.ElevationLabel())

	return ReliefResult{
		Samples:      samples,
		Levels:       levels,
		MinElevation: lo,
		MaxElevation: hi,
		Bound:        bound,
	}, nil
}
