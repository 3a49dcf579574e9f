package output

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pavletto/reliefgrid/internal/grid"
)

// LatticeFeatures builds one Point feature per lattice cell with its row,
// column, elevation and level as properties.
func LatticeFeatures(points *grid.Grid[orb.Point], elevations, levels *grid.Grid[int]) (*geojson.FeatureCollection, error) {
	if !sameShape(points, elevations) || !sameShape(points, levels) {
		return nil, fmt.Errorf("elevation and level grids must match the %dx%d lattice", points.Rows(), points.Cols())
	}

	fc := geojson.NewFeatureCollection()
	for r := 0; r < points.Rows(); r++ {
		for c := 0; c < points.Cols(); c++ {
			f := geojson.NewFeature(points.At(r, c))
			f.Properties["row"] = r
			f.Properties["col"] = c
			f.Properties["elevation"] = elevations.At(r, c)
			f.Properties["level"] = levels.At(r, c)
			fc.Append(f)
		}
	}
	return fc, nil
}

// WriteGeoJSON writes the lattice as a GeoJSON FeatureCollection.
func WriteGeoJSON(path string, points *grid.Grid[orb.Point], elevations, levels *grid.Grid[int]) error {
	fc, err := LatticeFeatures(points, elevations, levels)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func sameShape[T, U any](a *grid.Grid[T], b *grid.Grid[U]) bool {
	return a.Rows() == b.Rows() && a.Cols() == b.Cols()
}
