// Package preview renders quick-look images of reconstructed spectra:
// a PNG heatmap for reports and a standalone HTML chart for interactive
// inspection in a browser.
package preview

import (
	"fmt"

	"github.com/banshee-data/spectra.report/internal/spectrum"
)

// surface reduces an array to the trailing two dimensions for plotting.
// Arrays with more than two dimensions are sliced at index 0 along each
// leading axis; quick-look rendering does not page through stacks.
type surface struct {
	arr        *spectrum.Array
	rowAxis    int // second-to-last dim
	colAxis    int // last dim
	rows, cols int
	lead       []int // fixed zero indices for leading dims
}

func newSurface(arr *spectrum.Array) (*surface, error) {
	if arr.NDim() < 2 {
		return nil, fmt.Errorf("preview: need at least 2 dimensions, have %d", arr.NDim())
	}
	n := arr.NDim()
	return &surface{
		arr:     arr,
		rowAxis: n - 2,
		colAxis: n - 1,
		rows:    arr.Shape[n-2],
		cols:    arr.Shape[n-1],
		lead:    make([]int, n-2),
	}, nil
}

func (s *surface) at(row, col int) float64 {
	idx := make([]int, 0, s.arr.NDim())
	idx = append(idx, s.lead...)
	idx = append(idx, row, col)
	return s.arr.At(idx...)
}

func (s *surface) rowCoords() []float64 {
	return s.arr.Coords[s.arr.Dims[s.rowAxis]]
}

func (s *surface) colCoords() []float64 {
	return s.arr.Coords[s.arr.Dims[s.colAxis]]
}

func (s *surface) rowName() string { return s.arr.Dims[s.rowAxis] }
func (s *surface) colName() string { return s.arr.Dims[s.colAxis] }

// valueRange returns the min and max across the plotted surface.
func (s *surface) valueRange() (lo, hi float64) {
	lo = s.at(0, 0)
	hi = lo
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			v := s.at(r, c)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}
