package preview

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/spectra.report/internal/spectrum"
)

// spectrumGrid adapts a plotting surface to plotter.GridXYZ. Columns
// run along the scan variable (fastest axis), rows along the secondary
// ordinate.
type spectrumGrid struct {
	s *surface
}

func (g spectrumGrid) Dims() (c, r int) { return g.s.cols, g.s.rows }

func (g spectrumGrid) Z(c, r int) float64 { return g.s.at(r, c) }

func (g spectrumGrid) X(c int) float64 {
	coords := g.s.colCoords()
	if c < len(coords) {
		return coords[c]
	}
	return float64(c)
}

func (g spectrumGrid) Y(r int) float64 {
	coords := g.s.rowCoords()
	if r < len(coords) {
		return coords[r]
	}
	return float64(r)
}

// SavePNG renders a heatmap of the spectrum's trailing two dimensions
// to a PNG file. Width and height are in pixels.
func SavePNG(arr *spectrum.Array, path string, width, height int) error {
	s, err := newSurface(arr)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = arr.Name
	p.X.Label.Text = s.colName()
	p.Y.Label.Text = s.rowName()

	pal := moreland.SmoothBlueRed().Palette(255)
	hm := plotter.NewHeatMap(spectrumGrid{s: s}, pal)
	p.Add(hm)

	if err := p.Save(vg.Points(float64(width)), vg.Points(float64(height)), path); err != nil {
		return fmt.Errorf("preview: failed to save PNG: %w", err)
	}
	return nil
}
