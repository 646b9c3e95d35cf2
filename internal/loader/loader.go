// Package loader is the endstation entry point for .xy momentum
// microscope data: it reads a file, parses it, reconstructs the
// requested trial and applies the post-load kinetic-to-binding energy
// conversion.
package loader

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/spectra.report/internal/fsutil"
	"github.com/banshee-data/spectra.report/internal/spectrum"
	"github.com/banshee-data/spectra.report/internal/units"
	"github.com/banshee-data/spectra.report/internal/xy"
)

// Loader resolves and loads .xy frames through a filesystem
// abstraction so tests can run against in-memory files.
type Loader struct {
	FS fsutil.FileSystem
}

// New returns a Loader backed by the OS filesystem.
func New() *Loader {
	return &Loader{FS: fsutil.OSFileSystem{}}
}

// Load reads one .xy file and reconstructs the named group/trial into a
// labeled dataset. Empty group and trial names select the defaults.
// When the scan axis is kinetic energy, the energy coordinates are
// shifted to binding energy using the workfunction and excitation
// energy recorded in the file.
func (l *Loader) Load(path, group, trial string) (*spectrum.Dataset, error) {
	if ext := filepath.Ext(path); ext != ".xy" {
		return nil, fmt.Errorf("loader: unsupported extension %q (want .xy)", ext)
	}

	data, err := l.FS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}
	lines, err := xy.DecodeLines(data)
	if err != nil {
		return nil, err
	}
	parsed, err := xy.Parse(lines)
	if err != nil {
		return nil, err
	}
	ds, err := spectrum.Reconstruct(parsed, group, trial)
	if err != nil {
		return nil, err
	}
	if err := convertToBindingEnergy(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Parse reads and parses one .xy file without reconstructing, for
// callers that only need the nested structure (settings inspection,
// group listings).
func (l *Loader) Parse(path string) (*xy.File, error) {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}
	lines, err := xy.DecodeLines(data)
	if err != nil {
		return nil, err
	}
	return xy.Parse(lines)
}

// convertToBindingEnergy shifts the eV coordinate axis from kinetic to
// binding energy in place. The conversion applies only when the dataset
// has an eV axis and the scan variable declares kinetic energy; it is
// driven entirely by the Eff.Workfunction:, ExcitationEnergy: and
// ScanVariable: attributes.
func convertToBindingEnergy(ds *spectrum.Dataset) error {
	arr := ds.Spectrum
	coords, ok := arr.Coords["eV"]
	if !ok {
		return nil
	}
	if !strings.Contains(arr.Attrs[xy.MarkerScanVariable], units.KineticEnergy) {
		return nil
	}

	workfunction, err := strconv.ParseFloat(arr.Attrs[xy.MarkerWorkfunction], 64)
	if err != nil {
		return fmt.Errorf("loader: bad %s attribute: %w", xy.MarkerWorkfunction, err)
	}
	photonEnergy, err := strconv.ParseFloat(arr.Attrs[xy.MarkerExcitationEnergy], 64)
	if err != nil {
		return fmt.Errorf("loader: bad %s attribute: %w", xy.MarkerExcitationEnergy, err)
	}

	for i, v := range coords {
		coords[i] = units.ToBinding(v, workfunction, photonEnergy)
	}
	return nil
}
