package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pavletto/reliefgrid/internal/grid"
)

// EncodeCSV writes one record per grid row, cells as decimal integers,
// without a header.
func EncodeCSV(w io.Writer, g *grid.Grid[int]) error {
	cw := csv.NewWriter(w)
	record := make([]string, g.Cols())
	for r := 0; r < g.Rows(); r++ {
		for c, v := range g.Row(r) {
			record[c] = strconv.Itoa(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes g to path as CSV. The file only appears once it is
// completely written and flushed.
func WriteCSV(path string, g *grid.Grid[int]) error {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeCSV(w, g)
	})
}
