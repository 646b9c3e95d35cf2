package spectrum

import (
	"regexp"
	"strings"

	"github.com/banshee-data/spectra.report/internal/monitoring"
)

// Sentinel axis names used when the file does not encode the
// corresponding dimension.
const (
	NoSecondaryOrdinate = "No_NEO"
	NoChannel           = "No_Channel"
	NoLogicalVariable   = "No_LV"
)

// Fixed zero-valued angular coordinates attached to every spectrum.
// The momentum microscope does not measure these angles, but downstream
// array tooling expects them to exist.
var angularScalars = []string{"chi", "theta", "psi", "alpha"}

// renameCoords maps instrument-native axis names onto the canonical
// coordinate vocabulary. Names missing from this table pass through
// unchanged with a logged note.
var renameCoords = map[string]string{
	"X": "x",
	"Y": "y",
	"Z": "z",

	"k_x": "kx",
	"k_y": "ky",
	"kx":  "kx",
	"ky":  "ky",
	"x":   "x",
	"y":   "y",
	"z":   "z",

	"Kinetic Energy": "eV",
	"KineticEnergy":  "eV",
	"energy":         "eV",
}

// renameAxis remaps an instrument axis name to the canonical vocabulary,
// passing unmapped names through verbatim.
func renameAxis(name string) string {
	if mapped, ok := renameCoords[name]; ok {
		return mapped
	}
	monitoring.Logf("spectrum: axis %q not renamed to canonical convention; some downstream functionality may not apply", name)
	return name
}

// Lens-mode tables. The analyzer lens setting determines whether the
// detector's non-energy ordinate (and, for channel-separated data, the
// channel axis) lives in reciprocal or real space.
var (
	lensOrdinateAxis = []struct{ mode, axis string }{
		{"MM_Momentum", "ky"},
		{"MM_PEEM", "y"},
		{"ARPES", "ky"},
	}
	lensChannelAxis = []struct{ mode, axis string }{
		{"MM_Momentum", "kx"},
		{"MM_PEEM", "x"},
		{"ARPES", "kx"},
	}
)

func lookupLensAxis(table []struct{ mode, axis string }, lens string) (string, bool) {
	for _, e := range table {
		if strings.Contains(lens, e.mode) {
			return renameAxis(e.axis), true
		}
	}
	return "", false
}

var (
	quoteRE   = regexp.MustCompile(`"`)
	spaceRE   = regexp.MustCompile(`\s+`)
	bracketRE = regexp.MustCompile(`[\[\]]`)
)

// normalizeAxisName turns a free-form parameter label into an axis-name
// token: quotes stripped, whitespace and brackets replaced by
// underscores.
func normalizeAxisName(name string) string {
	name = quoteRE.ReplaceAllString(name, "")
	name = spaceRE.ReplaceAllString(strings.TrimSpace(name), "_")
	return bracketRE.ReplaceAllString(name, "_")
}
