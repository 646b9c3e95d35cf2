package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/spectra.report/internal/spectrum"
)

func testArray(t *testing.T, dims []string, shape []int) *spectrum.Array {
	t.Helper()
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i)
	}
	arr, err := spectrum.NewArray("spectrum", dims, shape, data)
	if err != nil {
		t.Fatalf("NewArray: %v", err)
	}
	for i, d := range dims {
		coords := make([]float64, shape[i])
		for j := range coords {
			coords[j] = float64(j) * 0.5
		}
		arr.Coords[d] = coords
	}
	return arr
}

func TestSurfaceSlicesTrailingDims(t *testing.T) {
	arr := testArray(t, []string{"delay", "y", "eV"}, []int{2, 3, 4})

	s, err := newSurface(arr)
	if err != nil {
		t.Fatalf("newSurface: %v", err)
	}
	if s.rows != 3 || s.cols != 4 {
		t.Errorf("surface = %dx%d, want 3x4", s.rows, s.cols)
	}
	if s.rowName() != "y" || s.colName() != "eV" {
		t.Errorf("axes = %s, %s", s.rowName(), s.colName())
	}
	// Leading delay axis fixed at index 0: flat = (0*3+row)*4 + col.
	if got := s.at(1, 2); got != 6 {
		t.Errorf("at(1,2) = %g, want 6", got)
	}

	lo, hi := s.valueRange()
	if lo != 0 || hi != 11 {
		t.Errorf("valueRange = (%g, %g), want (0, 11)", lo, hi)
	}
}

func TestSurfaceRejectsOneDim(t *testing.T) {
	arr := testArray(t, []string{"eV"}, []int{4})
	if _, err := newSurface(arr); err == nil {
		t.Fatal("expected error for 1-D array")
	}
}

func TestSavePNG(t *testing.T) {
	arr := testArray(t, []string{"y", "eV"}, []int{4, 6})
	path := filepath.Join(t.TempDir(), "spectrum.png")

	if err := SavePNG(arr, path, 400, 300); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PNG file is empty")
	}
}

func TestSaveHTML(t *testing.T) {
	arr := testArray(t, []string{"y", "eV"}, []int{4, 6})
	path := filepath.Join(t.TempDir(), "spectrum.html")

	if err := SaveHTML(arr, path, 800, 500); err != nil {
		t.Fatalf("SaveHTML: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(content), "echarts") {
		t.Error("rendered HTML does not embed a chart")
	}
}

func TestSavePNGRejectsOneDim(t *testing.T) {
	arr := testArray(t, []string{"eV"}, []int{4})
	if err := SavePNG(arr, filepath.Join(t.TempDir(), "x.png"), 100, 100); err == nil {
		t.Fatal("expected error for 1-D array")
	}
}
