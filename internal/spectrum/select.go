package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// defaultSelWidths holds reasonable per-axis integration widths for
// FatSel, in the axis's own units.
var defaultSelWidths = map[string]float64{
	"eV":    0.05,
	"phi":   2,
	"beta":  2,
	"theta": 2,
	"kx":    0.02,
	"ky":    0.02,
	"kp":    0.02,
	"kz":    0.1,
	"x":     0.1,
	"y":     0.1,
}

// FatSel integrates a small window around a coordinate point on each of
// the named axes and collapses those axes, normalizing by the number of
// samples integrated. The collapsed axes become scalar coordinates at
// the window centers. Widths override the per-axis defaults; axes with
// no default and no override use the local coordinate spacing (selecting
// a single sample).
func (a *Array) FatSel(centers map[string]float64, widths map[string]float64) (*Array, error) {
	type window struct {
		axis   int
		lo, hi int // inclusive index bounds
	}
	var windows []window
	selected := make(map[int]bool)

	for dim, center := range centers {
		axis := a.AxisIndex(dim)
		if axis < 0 {
			return nil, fmt.Errorf("spectrum: no axis %q in array (have %v)", dim, a.Dims)
		}
		width, ok := widths[dim]
		if !ok {
			width, ok = defaultSelWidths[dim]
		}
		coords := a.Coords[dim]
		if !ok {
			width = coordSpacing(coords)
		}
		lo, hi := -1, -1
		for i, c := range coords {
			if math.Abs(c-center) <= width/2 {
				if lo < 0 {
					lo = i
				}
				hi = i
			}
		}
		if lo < 0 {
			return nil, fmt.Errorf("spectrum: no %q samples within %g of %g", dim, width/2, center)
		}
		windows = append(windows, window{axis: axis, lo: lo, hi: hi})
		selected[axis] = true
	}

	var outDims []string
	var outShape []int
	for i, d := range a.Dims {
		if !selected[i] {
			outDims = append(outDims, d)
			outShape = append(outShape, a.Shape[i])
		}
	}
	outLen := 1
	for _, s := range outShape {
		outLen *= s
	}
	outData := make([]float64, outLen)

	idx := make([]int, len(a.Shape))
	for flat, v := range a.Data {
		decompose(flat, a.Shape, idx)
		inWindow := true
		for _, w := range windows {
			if idx[w.axis] < w.lo || idx[w.axis] > w.hi {
				inWindow = false
				break
			}
		}
		if !inWindow {
			continue
		}
		out := 0
		for i := range idx {
			if selected[i] {
				continue
			}
			out = out*a.Shape[i] + idx[i]
		}
		outData[out] += v
	}

	thickness := 1.0
	for _, w := range windows {
		thickness *= float64(w.hi - w.lo + 1)
	}
	floats.Scale(1/thickness, outData)

	result, err := NewArray(a.Name, outDims, outShape, outData)
	if err != nil {
		return nil, err
	}
	for _, d := range outDims {
		result.Coords[d] = append([]float64(nil), a.Coords[d]...)
	}
	for k, v := range a.Scalars {
		result.Scalars[k] = v
	}
	for dim, center := range centers {
		result.Scalars[dim] = center
	}
	for k, v := range a.Attrs {
		result.Attrs[k] = v
	}
	return result, nil
}

// decompose converts a flat row-major offset to a multi-index in idx.
func decompose(flat int, shape []int, idx []int) {
	for i := len(shape) - 1; i >= 0; i-- {
		idx[i] = flat % shape[i]
		flat /= shape[i]
	}
}

// coordSpacing estimates a sensible single-sample window from the local
// coordinate spacing.
func coordSpacing(coords []float64) float64 {
	if len(coords) < 2 {
		return 1
	}
	return math.Abs(coords[1] - coords[0])
}
