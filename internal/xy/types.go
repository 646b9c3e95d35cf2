package xy

import "fmt"

// Settings holds key/value metadata parsed from the "#"-prefixed header
// lines of a .xy export. Keys keep their trailing colon exactly as the
// instrument writes them (e.g. "AnalyzerLens:") so that downstream
// consumers can match on the vendor's sentinel strings.
type Settings map[string]string

// Clone returns a copy of the settings map.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a new Settings with overlay entries written over a copy
// of the receiver. Neither input is mutated.
func (s Settings) Merge(overlay Settings) Settings {
	out := s.Clone()
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// RecordKey identifies one cycle/curve/channel unit within a trial.
// Channel is -1 when the acquisition was not channel-separated.
type RecordKey struct {
	Cycle   int
	Curve   int
	Channel int
}

// String renders the key in the instrument's composite label format.
func (k RecordKey) String() string {
	if k.Channel < 0 {
		return fmt.Sprintf("Cycle: %d, Curve: %d", k.Cycle, k.Curve)
	}
	return fmt.Sprintf("Cycle: %d, Curve: %d, Channel: %d", k.Cycle, k.Curve, k.Channel)
}

// Record is the atomic numeric unit within a trial: a local metadata
// block plus a two-column sample array. Column 0 is the scan-variable
// coordinate, column 1 the measured intensity.
type Record struct {
	Key     RecordKey
	Meta    Settings
	Samples [][2]float64
}

// Trial is one scan within a group: its local settings plus the ordered
// records produced during that scan.
type Trial struct {
	Name     string // "Trial N", 1-based
	Settings Settings
	Records  []*Record
}

// Group is a named contiguous slice of the file holding one or more trials.
type Group struct {
	Name   string
	Trials []*Trial
}

// Trial returns the named trial, or nil if the group has no such trial.
func (g *Group) Trial(name string) *Trial {
	for _, t := range g.Trials {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TrialNames lists the trial names in file order.
func (g *Group) TrialNames() []string {
	names := make([]string, len(g.Trials))
	for i, t := range g.Trials {
		names[i] = t.Name
	}
	return names
}

// File is the fully parsed .xy export: the global settings block plus
// the groups in order of first appearance.
type File struct {
	Settings Settings
	Groups   []*Group
}

// Group returns the named group, or nil if the file has no such group.
func (f *File) Group(name string) *Group {
	for _, g := range f.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// GroupNames lists the group names in file order.
func (f *File) GroupNames() []string {
	names := make([]string, len(f.Groups))
	for i, g := range f.Groups {
		names[i] = g.Name
	}
	return names
}
