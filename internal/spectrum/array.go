package spectrum

import "fmt"

// Array is an N-dimensional labeled numeric array: named dimensions,
// a coordinate vector per dimension, zero-dimensional scalar
// coordinates, and free-form string attributes. Data is stored
// row-major with trailing dimensions varying fastest.
type Array struct {
	Name    string
	Dims    []string
	Shape   []int
	Data    []float64
	Coords  map[string][]float64
	Scalars map[string]float64
	Attrs   map[string]string
}

// NewArray builds an array and validates that the data length matches
// the product of the shape.
func NewArray(name string, dims []string, shape []int, data []float64) (*Array, error) {
	if len(dims) != len(shape) {
		return nil, fmt.Errorf("spectrum: %d dims but %d shape entries", len(dims), len(shape))
	}
	n := 1
	for _, s := range shape {
		if s <= 0 {
			return nil, fmt.Errorf("spectrum: non-positive extent %d", s)
		}
		n *= s
	}
	if n != len(data) {
		return nil, fmt.Errorf("spectrum: shape %v wants %d values, have %d", shape, n, len(data))
	}
	return &Array{
		Name:    name,
		Dims:    dims,
		Shape:   shape,
		Data:    data,
		Coords:  make(map[string][]float64),
		Scalars: make(map[string]float64),
		Attrs:   make(map[string]string),
	}, nil
}

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.Dims) }

// AxisIndex returns the position of the named dimension, or -1.
func (a *Array) AxisIndex(dim string) int {
	for i, d := range a.Dims {
		if d == dim {
			return i
		}
	}
	return -1
}

// At returns the value at the given multi-index.
func (a *Array) At(idx ...int) float64 {
	return a.Data[a.flatIndex(idx)]
}

func (a *Array) flatIndex(idx []int) int {
	if len(idx) != len(a.Shape) {
		panic(fmt.Sprintf("spectrum: %d indices for %d-dim array", len(idx), len(a.Shape)))
	}
	flat := 0
	for i, ix := range idx {
		if ix < 0 || ix >= a.Shape[i] {
			panic(fmt.Sprintf("spectrum: index %d out of range for dim %q (extent %d)", ix, a.Dims[i], a.Shape[i]))
		}
		flat = flat*a.Shape[i] + ix
	}
	return flat
}

// Dataset wraps the reconstructed spectrum array together with the
// merged settings as shared attributes. This is the container shape
// handed to downstream array tooling: a single named field "spectrum".
type Dataset struct {
	Spectrum *Array
	Attrs    map[string]string
}
