// Package testutil provides shared test utilities and fixtures.
//
// The central fixture is a builder that synthesizes .xy exports in the
// instrument's own textual layout, so parser and reconstruction tests
// can describe experiments structurally instead of embedding large
// string literals.
package testutil

import (
	"fmt"
	"strings"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// XYRecord describes one cycle/curve/channel unit in a synthetic file.
// Channel < 0 omits the channel index from the marker line.
type XYRecord struct {
	Cycle, Curve, Channel int
	NonEnergyOrdinate     *float64
	Parameter             string // e.g. `"Delay [fs]" = 100`; empty for none
	Rows                  [][2]float64
}

// XYTrial describes one trial: an optional region header, local
// settings, a shared column-label string and the record stream.
type XYTrial struct {
	Region       string
	Settings     [][2]string
	ColumnLabels string
	Records      []XYRecord
}

// XYGroup is a named collection of trials.
type XYGroup struct {
	Name   string
	Trials []XYTrial
}

// XYFile builds a complete synthetic .xy export.
type XYFile struct {
	Settings [][2]string
	Groups   []XYGroup
}

// Float returns a pointer for optional fixture fields.
func Float(v float64) *float64 { return &v }

// Lines renders the file as trimmed lines in the instrument's layout.
func (f XYFile) Lines() []string {
	var out []string
	for _, kv := range f.Settings {
		out = append(out, fmt.Sprintf("#   %s         %s", kv[0], kv[1]))
	}
	out = append(out,
		"#   Time Zone Format:         UTC",
		"",
	)
	for _, g := range f.Groups {
		out = append(out, g.lines()...)
	}
	return out
}

// Bytes renders the file as raw file content.
func (f XYFile) Bytes() []byte {
	return []byte(strings.Join(f.Lines(), "\n") + "\n")
}

func (g XYGroup) lines() []string {
	out := []string{fmt.Sprintf("# Group:               %s", g.Name)}
	multi := len(g.Trials) > 1
	for ti, tr := range g.Trials {
		if multi {
			region := tr.Region
			if region == "" {
				region = fmt.Sprintf("Region%d", ti+1)
			}
			out = append(out, fmt.Sprintf("# Region:            %s", region))
		}
		for _, kv := range tr.Settings {
			out = append(out, fmt.Sprintf("#   %s         %s", kv[0], kv[1]))
		}
		// Data begins a fixed three lines after the ordinate-range
		// marker, matching the instrument's layout.
		out = append(out,
			"# OrdinateRange:         [17.000000, 20.000000]",
			"#   ValuesPerOrdinate:         64",
			"#",
		)
		for ri, r := range tr.Records {
			// The record stream opens directly with the first record's
			// metadata; marker lines only separate subsequent records,
			// so the first record must carry the implicit initial key.
			out = append(out, r.lines(tr.ColumnLabels, ri > 0)...)
		}
		out = append(out, "")
	}
	return out
}

func (r XYRecord) lines(columnLabels string, marker bool) []string {
	var out []string
	if marker {
		if r.Channel >= 0 {
			out = append(out, fmt.Sprintf("# Cycle: %d, Curve: %d, Channel: %d", r.Cycle, r.Curve, r.Channel))
		} else {
			out = append(out, fmt.Sprintf("# Cycle: %d, Curve: %d", r.Cycle, r.Curve))
		}
	}
	if r.NonEnergyOrdinate != nil {
		out = append(out, fmt.Sprintf("# NonEnergyOrdinate:   %g", *r.NonEnergyOrdinate))
	}
	if columnLabels != "" {
		out = append(out, fmt.Sprintf("# ColumnLabels:        %s", columnLabels))
	}
	if r.Parameter != "" {
		out = append(out, fmt.Sprintf("# Parameter:   %s", r.Parameter))
	}
	for _, row := range r.Rows {
		out = append(out, fmt.Sprintf("%.6f  %.6f", row[0], row[1]))
	}
	return out
}

// EnergyRows builds n evenly spaced (energy, intensity) sample rows
// starting at e0 with the given step; intensities are deterministic and
// distinct so tests can locate values after stacking.
func EnergyRows(n int, e0, step, base float64) [][2]float64 {
	rows := make([][2]float64, n)
	for i := range rows {
		rows[i] = [2]float64{e0 + float64(i)*step, base + float64(i)}
	}
	return rows
}
