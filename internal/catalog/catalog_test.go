package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/spectra.report/internal/spectrum"
)

func testDataset(t *testing.T) *spectrum.Dataset {
	t.Helper()
	arr, err := spectrum.NewArray("spectrum", []string{"y", "eV"}, []int{2, 3}, make([]float64, 6))
	require.NoError(t, err)
	arr.Attrs["AnalyzerLens:"] = "MM_PEEM_0.5kV"
	arr.Attrs["ScanVariable:"] = "KineticEnergy"
	return &spectrum.Dataset{Spectrum: arr, Attrs: arr.Attrs}
}

func TestRecordAndListScans(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer db.Close()

	ds := testDataset(t)
	id, err := db.RecordScan("data/scan1.xy", "G1", "Trial 1", ds)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	scans, err := db.ListScans(10)
	require.NoError(t, err)
	require.Len(t, scans, 1)

	s := scans[0]
	assert.Equal(t, id, s.ScanID)
	assert.Equal(t, "data/scan1.xy", s.Path)
	assert.Equal(t, "G1", s.GroupName)
	assert.Equal(t, "Trial 1", s.TrialName)
	assert.Equal(t, "MM_PEEM_0.5kV", s.AnalyzerLens)
	assert.Equal(t, "KineticEnergy", s.ScanVariable)
	assert.Equal(t, "y,eV", s.Dims)
	assert.Equal(t, "2x3", s.Shape)
	assert.Equal(t, int64(6), s.Samples)
}

func TestListScansLimit(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer db.Close()

	ds := testDataset(t)
	for i := 0; i < 5; i++ {
		_, err := db.RecordScan("scan.xy", "G1", "Trial 1", ds)
		require.NoError(t, err)
	}

	scans, err := db.ListScans(3)
	require.NoError(t, err)
	assert.Len(t, scans, 3)

	// A non-positive limit falls back to the default cap.
	scans, err = db.ListScans(0)
	require.NoError(t, err)
	assert.Len(t, scans, 5)
}
