package preview

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/spectra.report/internal/spectrum"
)

// viridis-like gradient for the visual map, dark to bright.
var heatColors = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// SaveHTML renders a standalone HTML heatmap of the spectrum's trailing
// two dimensions. Width and height are in pixels.
func SaveHTML(arr *spectrum.Array, path string, width, height int) error {
	s, err := newSurface(arr)
	if err != nil {
		return err
	}

	xs := make([]string, s.cols)
	colCoords := s.colCoords()
	for c := 0; c < s.cols; c++ {
		if c < len(colCoords) {
			xs[c] = fmt.Sprintf("%.4g", colCoords[c])
		} else {
			xs[c] = fmt.Sprintf("%d", c)
		}
	}
	ys := make([]string, s.rows)
	rowCoords := s.rowCoords()
	for r := 0; r < s.rows; r++ {
		if r < len(rowCoords) {
			ys[r] = fmt.Sprintf("%.4g", rowCoords[r])
		} else {
			ys[r] = fmt.Sprintf("%d", r)
		}
	}

	data := make([]opts.HeatMapData, 0, s.rows*s.cols)
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, r, s.at(r, c)}})
		}
	}

	lo, hi := s.valueRange()

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Spectrum Preview",
			Width:     fmt.Sprintf("%dpx", width),
			Height:    fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    arr.Name,
			Subtitle: fmt.Sprintf("%s × %s (%d × %d)", s.rowName(), s.colName(), s.rows, s.cols),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: s.colName(), Data: xs}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: s.rowName(), Data: ys}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: heatColors},
		}),
	)
	hm.SetXAxis(xs).AddSeries("spectrum", data)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := hm.Render(f); err != nil {
		return fmt.Errorf("preview: failed to render HTML: %w", err)
	}
	return nil
}
