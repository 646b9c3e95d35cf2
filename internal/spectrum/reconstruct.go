// Package spectrum reconstructs parsed .xy trials into labeled
// N-dimensional arrays with physical coordinate axes.
//
// The file format declares no schema; dimensionality, axis identity and
// axis ordering are inferred from the record keys, the instrument's lens
// mode, and the per-record metadata. Reconstruction either fully
// succeeds or fails with a typed error; a partial array is never
// returned.
package spectrum

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/banshee-data/spectra.report/internal/xy"
)

// DefaultTrial is the trial used when the caller does not name one.
const DefaultTrial = "Trial 1"

var labelSplitRE = regexp.MustCompile(`\s{2,}`)

// Reconstruct assembles the named trial of a parsed file into a labeled
// spectrum. An empty groupName selects the first group in file order; an
// empty trialName selects "Trial 1". Unknown names produce a
// *LookupError listing the valid choices.
func Reconstruct(f *xy.File, groupName, trialName string) (*Dataset, error) {
	if len(f.Groups) == 0 {
		return nil, fmt.Errorf("spectrum: file contains no groups")
	}

	group := f.Groups[0]
	if groupName != "" {
		if group = f.Group(groupName); group == nil {
			return nil, &LookupError{Kind: "group", Name: groupName, Valid: f.GroupNames()}
		}
	}
	if trialName == "" {
		trialName = DefaultTrial
	}
	trial := group.Trial(trialName)
	if trial == nil {
		return nil, &LookupError{Kind: "trial", Name: trialName, Valid: group.TrialNames()}
	}

	// Trial-local scalar settings override the global block. Records are
	// not settings and never merge in; the merge returns a fresh map.
	merged := f.Settings.Merge(trial.Settings)

	recs := make([]*xy.Record, 0, len(trial.Records))
	for _, r := range trial.Records {
		if len(r.Samples) > 0 {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		return nil, &ShapeError{Detail: fmt.Sprintf("trial %q has no sample data", trialName)}
	}

	samples := len(recs[0].Samples)
	for _, r := range recs {
		if len(r.Samples) != samples {
			return nil, &ShapeError{Detail: fmt.Sprintf(
				"record %s has %d samples, want %d", r.Key, len(r.Samples), samples)}
		}
	}

	separated := strings.Contains(merged[xy.MarkerSeparateChannels], "yes")
	multiCycle := false
	multiCurve := false
	for _, r := range recs {
		if r.Key.Cycle >= 1 {
			multiCycle = true
		}
		if r.Key.Curve == 1 && r.Key.Channel == 0 {
			multiCurve = true
		}
	}
	if multiCycle && separated {
		return nil, &UnsupportedError{Detail: "multi-cycle stacking combined with channel-separated acquisition"}
	}

	cuts, err := stackRecords(recs, multiCycle, separated && multiCurve)
	if err != nil {
		return nil, err
	}

	// Shared scan-variable axis: column 0 is identical across records in
	// a trial, so it is sampled once from the first record.
	scanCoords := make([]float64, samples)
	for i, s := range recs[0].Samples {
		scanCoords[i] = s[0]
	}
	scanName := renameAxis(scanVariableLabel(recs[0].Meta[xy.MarkerColumnLabels]))

	neoName, neoCoords, err := ordinateAxis(merged, recs)
	if err != nil {
		return nil, err
	}

	lvName, lvCoords := logicalAxis(recs)

	inner := len(cuts[0])
	if neoName == NoSecondaryOrdinate {
		neoCoords = indexCoords(inner)
	} else if len(neoCoords) != inner {
		return nil, &ShapeError{Detail: fmt.Sprintf(
			"ordinate axis %q has %d coordinates for extent %d", neoName, len(neoCoords), inner)}
	}

	var dims []string
	var shape []int
	coords := make(map[string][]float64)

	if multiCycle {
		extent := len(cuts)
		if lvName == NoLogicalVariable {
			lvCoords = indexCoords(extent)
		} else if len(lvCoords) != extent {
			return nil, &ShapeError{Detail: fmt.Sprintf(
				"logical variable %q has %d coordinates for %d stacks", lvName, len(lvCoords), extent)}
		}
		dims = append(dims, lvName)
		shape = append(shape, extent)
		coords[lvName] = lvCoords
	}

	if separated {
		chName, err := channelAxis(merged)
		if err != nil {
			return nil, err
		}
		extent := len(cuts)
		// Per-channel coordinates are not separately recoverable from
		// this format; the secondary-ordinate vector is reused.
		chCoords := append([]float64(nil), neoCoords...)
		if len(chCoords) != extent {
			return nil, &ShapeError{Detail: fmt.Sprintf(
				"channel axis %q reuses %d ordinate coordinates for %d stacks", chName, len(chCoords), extent)}
		}
		dims = append(dims, chName)
		shape = append(shape, extent)
		coords[chName] = chCoords
	}

	dims = append(dims, neoName, scanName)
	shape = append(shape, inner, samples)
	coords[neoName] = neoCoords
	coords[scanName] = scanCoords

	data := make([]float64, 0, len(cuts)*inner*samples)
	for _, cut := range cuts {
		if len(cut) != inner {
			return nil, &ShapeError{Detail: fmt.Sprintf(
				"stack has %d records, want %d", len(cut), inner)}
		}
		for _, rec := range cut {
			for _, s := range rec.Samples {
				data = append(data, s[1])
			}
		}
	}

	arr, err := NewArray("spectrum", dims, shape, data)
	if err != nil {
		return nil, err
	}
	arr.Coords = coords
	for _, name := range angularScalars {
		arr.Scalars[name] = 0
	}
	arr.Attrs = merged

	return &Dataset{Spectrum: arr, Attrs: merged}, nil
}

// stackRecords arranges records into an ordered list of stacks. A cycle
// increment opens a new outer stack; for channel-separated trials with a
// single cycle, a curve increment does. Records whose index neither
// matches the current stack nor increments it by one are dropped, which
// matches the tolerant handling of instrument dumps elsewhere.
func stackRecords(recs []*xy.Record, byCycle, byCurve bool) ([][]*xy.Record, error) {
	if !byCycle && !byCurve {
		return [][]*xy.Record{recs}, nil
	}

	index := func(r *xy.Record) int {
		if byCycle {
			return r.Key.Cycle
		}
		return r.Key.Curve
	}

	var cuts [][]*xy.Record
	var cur []*xy.Record
	want := 0
	for _, r := range recs {
		switch index(r) {
		case want:
			cur = append(cur, r)
		case want + 1:
			want++
			cuts = append(cuts, cur)
			cur = []*xy.Record{r}
		}
	}
	cuts = append(cuts, cur)
	return cuts, nil
}

// scanVariableLabel extracts the scan-variable name from the shared
// column-label string: the first label, where labels are separated by
// runs of two or more spaces. Single spaces inside a label ("Kinetic
// Energy") are preserved.
func scanVariableLabel(labels string) string {
	labels = strings.TrimSpace(labels)
	if labels == "" {
		return "scan"
	}
	return strings.TrimSpace(labelSplitRE.Split(labels, -1)[0])
}

// ordinateAxis infers the secondary ordinate axis from the analyzer
// lens mode and collects its coordinate vector from the records'
// NonEnergyOrdinate entries. An absent lens setting or absent ordinate
// entries degrade to the No_NEO sentinel; a lens setting that is present
// but unrecognized is a configuration error.
func ordinateAxis(settings xy.Settings, recs []*xy.Record) (string, []float64, error) {
	lens, ok := settings[xy.MarkerAnalyzerLens]
	if !ok {
		return NoSecondaryOrdinate, nil, nil
	}
	name, ok := lookupLensAxis(lensOrdinateAxis, lens)
	if !ok {
		return "", nil, &ConfigError{Setting: xy.MarkerAnalyzerLens, Value: lens}
	}

	var coords []float64
	seen := make(map[float64]bool)
	for _, r := range recs {
		raw, ok := r.Meta[xy.MarkerNonEnergyOrd]
		if !ok {
			return NoSecondaryOrdinate, nil, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return NoSecondaryOrdinate, nil, nil
		}
		if !seen[v] {
			seen[v] = true
			coords = append(coords, v)
		}
	}
	return name, coords, nil
}

// channelAxis names the channel dimension from the lens mode. Channel
// separation without a lens setting leaves the axis unidentifiable.
func channelAxis(settings xy.Settings) (string, error) {
	lens, ok := settings[xy.MarkerAnalyzerLens]
	if !ok {
		return "", &ConfigError{Setting: xy.MarkerAnalyzerLens, Value: "(absent)"}
	}
	name, ok := lookupLensAxis(lensChannelAxis, lens)
	if !ok {
		return "", &ConfigError{Setting: xy.MarkerAnalyzerLens, Value: lens}
	}
	return name, nil
}

// logicalAxis derives the parametric sweep axis from Parameter entries.
// The name comes from the first record's entry (text left of "="); the
// coordinates are the de-duplicated values right of "=" across all
// records declaring one.
func logicalAxis(recs []*xy.Record) (string, []float64) {
	raw, ok := recs[0].Meta[xy.MarkerParameter]
	if !ok {
		return NoLogicalVariable, nil
	}
	name, _, found := strings.Cut(raw, "=")
	if !found {
		return NoLogicalVariable, nil
	}

	var coords []float64
	seen := make(map[float64]bool)
	for _, r := range recs {
		entry, ok := r.Meta[xy.MarkerParameter]
		if !ok {
			continue
		}
		_, val, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			continue
		}
		if !seen[v] {
			seen[v] = true
			coords = append(coords, v)
		}
	}
	return normalizeAxisName(name), coords
}

// indexCoords synthesizes 0..n-1 placeholder coordinates for sentinel
// axes.
func indexCoords(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}
