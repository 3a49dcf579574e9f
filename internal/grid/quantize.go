package grid

import (
	"errors"
	"fmt"
)

// MinMax returns the smallest and largest cell of a non-empty grid.
func MinMax(g *Grid[int]) (lo, hi int, err error) {
	if g.Len() == 0 {
		return 0, 0, errors.New("grid: empty grid")
	}
	lo, hi = g.values[0], g.values[0]
	for _, v := range g.values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, nil
}

// Quantize rescales elevations onto integer levels:
//
//	level = (e - min) * (levels + 1) / (max + 1 - min)
//
// using truncating integer division. The +1 on max keeps the denominator
// positive and keeps the top elevation inside the top band, so results lie
// in [0, levels]. A constant grid maps to all zeros.
func Quantize(g *Grid[int], levels int) (*Grid[int], error) {
	if levels < 1 {
		return nil, fmt.Errorf("grid: levels must be at least 1, got %d", levels)
	}
	lo, hi, err := MinMax(g)
	if err != nil {
		return nil, err
	}
	span := int64(hi) + 1 - int64(lo)
	bands := int64(levels) + 1
	return Map(g, func(e int) int {
		return int((int64(e) - int64(lo)) * bands / span)
	}), nil
}
