package spectrum

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/spectra.report/internal/testutil"
	"github.com/banshee-data/spectra.report/internal/xy"
)

func parseFixture(t *testing.T, fixture testutil.XYFile) *xy.File {
	t.Helper()
	f, err := xy.Parse(fixture.Lines())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return f
}

func TestReconstructSyntheticOrdinate(t *testing.T) {
	// Lens mode present but no per-record ordinate entries: the secondary
	// axis degrades to the sentinel with synthetic index coordinates.
	fixture := testutil.XYFile{
		Settings: [][2]string{
			{"AnalyzerLens:", "MM_PEEM_0.5kV"},
			{"SeparateChannelData:", "no"},
		},
		Groups: []testutil.XYGroup{{
			Name: "G1",
			Trials: []testutil.XYTrial{{
				ColumnLabels: "Kinetic Energy  Counts",
				Records: []testutil.XYRecord{
					{Curve: 0, Channel: -1, Rows: testutil.EnergyRows(50, 17, 0.1, 100)},
					{Curve: 1, Channel: -1, Rows: testutil.EnergyRows(50, 17, 0.1, 200)},
					{Curve: 2, Channel: -1, Rows: testutil.EnergyRows(50, 17, 0.1, 300)},
				},
			}},
		}},
	}

	ds, err := Reconstruct(parseFixture(t, fixture), "G1", "")
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	arr := ds.Spectrum

	if diff := cmp.Diff([]string{NoSecondaryOrdinate, "eV"}, arr.Dims); diff != "" {
		t.Errorf("dims mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 50}, arr.Shape); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 1, 2}, arr.Coords[NoSecondaryOrdinate]); diff != "" {
		t.Errorf("synthetic coords mismatch (-want +got):\n%s", diff)
	}
	if got := arr.Coords["eV"][0]; got != 17 {
		t.Errorf("eV coord 0 = %g, want 17", got)
	}
	if got := arr.At(1, 3); got != 203 {
		t.Errorf("At(1,3) = %g, want 203", got)
	}
	for _, name := range []string{"chi", "theta", "psi", "alpha"} {
		if v, ok := arr.Scalars[name]; !ok || v != 0 {
			t.Errorf("scalar %q = %v, %v; want 0, true", name, v, ok)
		}
	}
}

func TestReconstructOrdinateFromLens(t *testing.T) {
	fixture := testutil.XYFile{
		Settings: [][2]string{
			{"AnalyzerLens:", "MM_PEEM_0.5kV"},
			{"SeparateChannelData:", "no"},
		},
		Groups: []testutil.XYGroup{{
			Name: "G1",
			Trials: []testutil.XYTrial{{
				ColumnLabels: "Kinetic Energy  Counts",
				Records: []testutil.XYRecord{
					{Curve: 0, Channel: -1, NonEnergyOrdinate: testutil.Float(-8), Rows: testutil.EnergyRows(4, 17, 0.5, 0)},
					{Curve: 1, Channel: -1, NonEnergyOrdinate: testutil.Float(0), Rows: testutil.EnergyRows(4, 17, 0.5, 10)},
					{Curve: 2, Channel: -1, NonEnergyOrdinate: testutil.Float(8), Rows: testutil.EnergyRows(4, 17, 0.5, 20)},
				},
			}},
		}},
	}

	ds, err := Reconstruct(parseFixture(t, fixture), "", "")
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	arr := ds.Spectrum

	if diff := cmp.Diff([]string{"y", "eV"}, arr.Dims); diff != "" {
		t.Errorf("dims mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{-8, 0, 8}, arr.Coords["y"]); diff != "" {
		t.Errorf("y coords mismatch (-want +got):\n%s", diff)
	}
	if got := arr.At(2, 0); got != 20 {
		t.Errorf("At(2,0) = %g, want 20", got)
	}
	if got := arr.Attrs["AnalyzerLens:"]; got != "MM_PEEM_0.5kV" {
		t.Errorf("attrs AnalyzerLens = %q", got)
	}
}

func TestReconstructUnknownGroup(t *testing.T) {
	fixture := testutil.XYFile{
		Groups: []testutil.XYGroup{{
			Name: "G1",
			Trials: []testutil.XYTrial{{
				ColumnLabels: "Kinetic Energy  Counts",
				Records:      []testutil.XYRecord{{Channel: -1, Rows: testutil.EnergyRows(3, 17, 1, 0)}},
			}},
		}},
	}

	_, err := Reconstruct(parseFixture(t, fixture), "NoSuchGroup", "")
	var le *LookupError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v (%T), want *LookupError", err, err)
	}
	if le.Kind != "group" || le.Name != "NoSuchGroup" {
		t.Errorf("LookupError = %+v", le)
	}
	if diff := cmp.Diff([]string{"G1"}, le.Valid); diff != "" {
		t.Errorf("valid names mismatch (-want +got):\n%s", diff)
	}
}

func TestReconstructUnknownTrial(t *testing.T) {
	fixture := testutil.XYFile{
		Groups: []testutil.XYGroup{{
			Name: "G1",
			Trials: []testutil.XYTrial{{
				ColumnLabels: "Kinetic Energy  Counts",
				Records:      []testutil.XYRecord{{Channel: -1, Rows: testutil.EnergyRows(3, 17, 1, 0)}},
			}},
		}},
	}

	_, err := Reconstruct(parseFixture(t, fixture), "G1", "Trial 9")
	var le *LookupError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v (%T), want *LookupError", err, err)
	}
	if le.Kind != "trial" {
		t.Errorf("Kind = %q, want trial", le.Kind)
	}
}

func TestReconstructCycleStack(t *testing.T) {
	// Two cycles of two curves each, no parameter sweep declared: the
	// cycle stack becomes the leading axis with sentinel naming.
	rows := func(base float64) [][2]float64 { return testutil.EnergyRows(6, 17, 0.5, base) }
	fixture := testutil.XYFile{
		Groups: []testutil.XYGroup{{
			Name: "Scan",
			Trials: []testutil.XYTrial{{
				ColumnLabels: "Kinetic Energy  Counts",
				Records: []testutil.XYRecord{
					{Cycle: 0, Curve: 0, Channel: -1, Rows: rows(0)},
					{Cycle: 0, Curve: 1, Channel: -1, Rows: rows(10)},
					{Cycle: 1, Curve: 0, Channel: -1, Rows: rows(20)},
					{Cycle: 1, Curve: 1, Channel: -1, Rows: rows(30)},
				},
			}},
		}},
	}

	ds, err := Reconstruct(parseFixture(t, fixture), "Scan", "Trial 1")
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	arr := ds.Spectrum

	if diff := cmp.Diff([]string{NoLogicalVariable, NoSecondaryOrdinate, "eV"}, arr.Dims); diff != "" {
		t.Errorf("dims mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 2, 6}, arr.Shape); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
	if got := arr.At(1, 0, 2); got != 22 {
		t.Errorf("At(1,0,2) = %g, want 22", got)
	}
	if diff := cmp.Diff([]float64{0, 1}, arr.Coords[NoLogicalVariable]); diff != "" {
		t.Errorf("cycle coords mismatch (-want +got):\n%s", diff)
	}
}

func TestReconstructParameterSweep(t *testing.T) {
	rows := func(base float64) [][2]float64 { return testutil.EnergyRows(4, 17, 0.5, base) }
	fixture := testutil.XYFile{
		Groups: []testutil.XYGroup{{
			Name: "Delay Scan",
			Trials: []testutil.XYTrial{{
				ColumnLabels: "Kinetic Energy  Counts",
				Records: []testutil.XYRecord{
					{Cycle: 0, Channel: -1, Parameter: `"Delay [fs]" = 100`, Rows: rows(0)},
					{Cycle: 1, Channel: -1, Parameter: `"Delay [fs]" = 200`, Rows: rows(10)},
					{Cycle: 2, Channel: -1, Parameter: `"Delay [fs]" = 300`, Rows: rows(20)},
				},
			}},
		}},
	}

	ds, err := Reconstruct(parseFixture(t, fixture), "", "")
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	arr := ds.Spectrum

	if diff := cmp.Diff([]string{"Delay_fs_", NoSecondaryOrdinate, "eV"}, arr.Dims); diff != "" {
		t.Errorf("dims mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{100, 200, 300}, arr.Coords["Delay_fs_"]); diff != "" {
		t.Errorf("sweep coords mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 1, 4}, arr.Shape); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
}

func TestReconstructSeparatedChannels(t *testing.T) {
	rows := func(base float64) [][2]float64 { return testutil.EnergyRows(5, 17, 0.5, base) }
	fixture := testutil.XYFile{
		Settings: [][2]string{
			{"AnalyzerLens:", "MM_Momentum_1.1kV"},
			{"SeparateChannelData:", "yes"},
		},
		Groups: []testutil.XYGroup{{
			Name: "G1",
			Trials: []testutil.XYTrial{{
				ColumnLabels: "Kinetic Energy  Counts",
				Records: []testutil.XYRecord{
					{Curve: 0, Channel: 0, NonEnergyOrdinate: testutil.Float(-0.5), Rows: rows(0)},
					{Curve: 0, Channel: 1, NonEnergyOrdinate: testutil.Float(0.5), Rows: rows(10)},
					{Curve: 1, Channel: 0, NonEnergyOrdinate: testutil.Float(-0.5), Rows: rows(20)},
					{Curve: 1, Channel: 1, NonEnergyOrdinate: testutil.Float(0.5), Rows: rows(30)},
				},
			}},
		}},
	}

	ds, err := Reconstruct(parseFixture(t, fixture), "", "")
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	arr := ds.Spectrum

	if diff := cmp.Diff([]string{"kx", "ky", "eV"}, arr.Dims); diff != "" {
		t.Errorf("dims mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 2, 5}, arr.Shape); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{-0.5, 0.5}, arr.Coords["ky"]); diff != "" {
		t.Errorf("ky coords mismatch (-want +got):\n%s", diff)
	}
	// Channel coordinates reuse the secondary-ordinate vector; this is
	// the instrument format's documented limitation, not an inference.
	if diff := cmp.Diff([]float64{-0.5, 0.5}, arr.Coords["kx"]); diff != "" {
		t.Errorf("kx coords mismatch (-want +got):\n%s", diff)
	}
	if got := arr.At(1, 0, 1); got != 21 {
		t.Errorf("At(1,0,1) = %g, want 21", got)
	}
}

func TestReconstructMultiCycleSeparatedUnsupported(t *testing.T) {
	rows := func(base float64) [][2]float64 { return testutil.EnergyRows(3, 17, 1, base) }
	fixture := testutil.XYFile{
		Settings: [][2]string{
			{"AnalyzerLens:", "MM_Momentum_1.1kV"},
			{"SeparateChannelData:", "yes"},
		},
		Groups: []testutil.XYGroup{{
			Name: "G1",
			Trials: []testutil.XYTrial{{
				ColumnLabels: "Kinetic Energy  Counts",
				Records: []testutil.XYRecord{
					{Cycle: 0, Channel: 0, Rows: rows(0)},
					{Cycle: 1, Channel: 0, Rows: rows(10)},
				},
			}},
		}},
	}

	_, err := Reconstruct(parseFixture(t, fixture), "", "")
	var ue *UnsupportedError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v (%T), want *UnsupportedError", err, err)
	}
}

func TestReconstructUnrecognizedLens(t *testing.T) {
	fixture := testutil.XYFile{
		Settings: [][2]string{{"AnalyzerLens:", "DriftTube_9kV"}},
		Groups: []testutil.XYGroup{{
			Name: "G1",
			Trials: []testutil.XYTrial{{
				ColumnLabels: "Kinetic Energy  Counts",
				Records: []testutil.XYRecord{
					{Channel: -1, NonEnergyOrdinate: testutil.Float(0), Rows: testutil.EnergyRows(3, 17, 1, 0)},
				},
			}},
		}},
	}

	_, err := Reconstruct(parseFixture(t, fixture), "", "")
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v (%T), want *ConfigError", err, err)
	}
	if ce.Setting != xy.MarkerAnalyzerLens {
		t.Errorf("Setting = %q, want %q", ce.Setting, xy.MarkerAnalyzerLens)
	}
}

func TestReconstructInconsistentSampleCounts(t *testing.T) {
	fixture := testutil.XYFile{
		Groups: []testutil.XYGroup{{
			Name: "G1",
			Trials: []testutil.XYTrial{{
				ColumnLabels: "Kinetic Energy  Counts",
				Records: []testutil.XYRecord{
					{Curve: 0, Channel: -1, Rows: testutil.EnergyRows(4, 17, 1, 0)},
					{Curve: 1, Channel: -1, Rows: testutil.EnergyRows(3, 17, 1, 10)},
				},
			}},
		}},
	}

	_, err := Reconstruct(parseFixture(t, fixture), "", "")
	var se *ShapeError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v (%T), want *ShapeError", err, err)
	}
}

func TestScanVariableLabel(t *testing.T) {
	tests := []struct {
		labels string
		want   string
	}{
		{"Kinetic Energy  Counts", "Kinetic Energy"},
		{"Binding Energy  Intensity  Extra", "Binding Energy"},
		{"", "scan"},
		{"   ", "scan"},
	}
	for _, tt := range tests {
		if got := scanVariableLabel(tt.labels); got != tt.want {
			t.Errorf("scanVariableLabel(%q) = %q, want %q", tt.labels, got, tt.want)
		}
	}
}

func TestNormalizeAxisName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`"Delay [fs]"`, "Delay__fs_"},
		{"Sample Bias", "Sample_Bias"},
		{"  theta  ", "theta"},
	}
	for _, tt := range tests {
		if got := normalizeAxisName(tt.in); got != tt.want {
			t.Errorf("normalizeAxisName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
