// Package grid provides a fixed-size row-major grid and the level quantizer
// that turns an elevation grid into stackable layer counts.
package grid

import "fmt"

// Grid is a rows x cols buffer stored row-major. It is created once with a
// uniform fill and never resized.
type Grid[T any] struct {
	rows, cols int
	values     []T
}

func New[T any](rows, cols int, fill T) *Grid[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("grid: negative dimensions %dx%d", rows, cols))
	}
	values := make([]T, rows*cols)
	for i := range values {
		values[i] = fill
	}
	return &Grid[T]{rows: rows, cols: cols, values: values}
}

func (g *Grid[T]) Rows() int { return g.rows }
func (g *Grid[T]) Cols() int { return g.cols }
func (g *Grid[T]) Len() int  { return len(g.values) }

func (g *Grid[T]) At(r, c int) T {
	return g.values[g.index(r, c)]
}

func (g *Grid[T]) Set(r, c int, v T) {
	g.values[g.index(r, c)] = v
}

// Row returns row r. The slice aliases the grid.
func (g *Grid[T]) Row(r int) []T {
	return g.values[r*g.cols : (r+1)*g.cols]
}

// Values returns all cells in row-major order. The slice aliases the grid.
func (g *Grid[T]) Values() []T { return g.values }

func (g *Grid[T]) index(r, c int) int {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		panic(fmt.Sprintf("grid: index (%d, %d) out of range %dx%d", r, c, g.rows, g.cols))
	}
	return r*g.cols + c
}

// Map builds a grid of the same shape with f applied to every cell.
func Map[T, U any](g *Grid[T], f func(T) U) *Grid[U] {
	out := &Grid[U]{rows: g.rows, cols: g.cols, values: make([]U, len(g.values))}
	for i, v := range g.values {
		out.values[i] = f(v)
	}
	return out
}
