// Package xy parses the structured .xy text exports produced by a SPECS
// momentum-microscope endstation.
//
// The format is nested and positionally delimited rather than tabular:
// a global settings header is followed by one or more named groups, each
// holding one or more trials, each trial holding an ordered sequence of
// cycle/curve/channel records with their own metadata blocks and
// two-column sample arrays. There is no declared schema; structure is
// recovered by classifying lines against the vendor's exact sentinel
// strings.
package xy

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Sentinel substrings written by the instrument. These are exact-match
// markers; changing them breaks compatibility with existing exports.
const (
	MarkerGroup            = "Group"
	MarkerRegion           = "Region:"
	MarkerOrdinateRange    = "OrdinateRange:"
	MarkerParameter        = "Parameter:"
	MarkerCurve            = "Curve:"
	MarkerNonEnergyOrd     = "NonEnergyOrdinate:"
	MarkerColumnLabels     = "ColumnLabels:"
	MarkerAnalyzerLens     = "AnalyzerLens:"
	MarkerSeparateChannels = "SeparateChannelData:"
	MarkerWorkfunction     = "Eff.Workfunction:"
	MarkerExcitationEnergy = "ExcitationEnergy:"
	MarkerScanVariable     = "ScanVariable:"
)

// settingsEndSentinel is the fixed line closing the timestamp block at
// the end of the global settings header.
const settingsEndSentinel = "#   Time Zone Format:         UTC"

// ordinateRangeDataOffset is the number of lines between an
// "OrdinateRange:" marker and the first line belonging to the trial's
// record stream.
const ordinateRangeDataOffset = 3

var multiSpaceRE = regexp.MustCompile(`\s{2,}`)

// DecodeLines decodes a raw .xy byte stream into trimmed lines.
// Invalid UTF-8 is fatal: the caller gets a *DecodeError naming the
// likely offending characters, and no partial result.
func DecodeLines(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		off := 0
		for off < len(data) {
			r, size := utf8.DecodeRune(data[off:])
			if r == utf8.RuneError && size == 1 {
				break
			}
			off += size
		}
		return nil, &DecodeError{Offset: off}
	}
	raw := strings.Split(string(data), "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines, nil
}

// FilterMetaData converts metadata lines into a key/value mapping.
// Each line is split on runs of two or more whitespace characters,
// blank tokens are dropped, a leading "#" marker token is stripped, and
// all remaining whitespace inside each token is removed. The first two
// surviving tokens become (key, value); with more than two, the first
// is discarded as a stray marker. Lines yielding fewer than two tokens
// contribute nothing.
func FilterMetaData(lines []string) Settings {
	out := make(Settings)
	for _, line := range lines {
		tokens := multiSpaceRE.Split(line, -1)
		kept := tokens[:0]
		for _, tok := range tokens {
			if strings.TrimSpace(tok) == "" {
				continue
			}
			kept = append(kept, strings.TrimPrefix(tok, "#"))
		}
		if len(kept) > 2 {
			kept = kept[1:]
		}
		if len(kept) < 2 {
			continue
		}
		key := removeWhitespace(kept[0])
		val := removeWhitespace(kept[1])
		if key == "" {
			continue
		}
		out[key] = val
	}
	return out
}

var anySpaceRE = regexp.MustCompile(`\s+`)

func removeWhitespace(s string) string {
	return anySpaceRE.ReplaceAllString(s, "")
}

// Parse turns the full line sequence of one .xy export into its nested
// structure: global settings, then groups, trials and records. Malformed
// individual lines are skipped rather than failing the parse; instrument
// log dumps are best-effort by nature. Structural failures (missing
// end-of-settings sentinel) abort with an error.
func Parse(lines []string) (*File, error) {
	settingsEnd := -1
	for i, line := range lines {
		if line == settingsEndSentinel {
			settingsEnd = i
			break
		}
	}
	if settingsEnd < 0 {
		return nil, fmt.Errorf("xy: no end-of-settings sentinel %q found", settingsEndSentinel)
	}

	file := &File{
		Settings: FilterMetaData(lines[:settingsEnd+1]),
	}

	if settingsEnd+2 >= len(lines) {
		return file, nil
	}
	body := lines[settingsEnd+2:]

	var groupStarts []int
	for i, line := range body {
		if strings.Contains(line, MarkerGroup) {
			groupStarts = append(groupStarts, i)
		}
	}

	separated := strings.Contains(file.Settings[MarkerSeparateChannels], "yes")

	for gi, start := range groupStarts {
		end := len(body)
		if gi+1 < len(groupStarts) {
			end = groupStarts[gi+1]
		}
		section := body[start:end]
		// Exports carry a blank separator line at the end of each group.
		for len(section) > 0 && section[len(section)-1] == "" {
			section = section[:len(section)-1]
		}
		file.Groups = append(file.Groups, parseGroup(groupName(body[start]), section, separated))
	}

	return file, nil
}

// groupName extracts the trailing token after the last run of four or
// more spaces on a "Group" marker line.
func groupName(line string) string {
	if i := strings.LastIndex(line, "    "); i >= 0 {
		return strings.TrimSpace(line[i+1:])
	}
	return strings.TrimSpace(line)
}

// parseGroup subdivides a group's lines into trials. "OrdinateRange:"
// markers bound the start of each trial's record stream and "Region:"
// markers bound each trial's local settings slice. A group with a single
// "OrdinateRange:" marker is a single trial covering the whole group.
func parseGroup(name string, section []string, separated bool) *Group {
	var dataStarts, regionStarts []int
	for i, line := range section {
		if strings.Contains(line, MarkerOrdinateRange) {
			dataStarts = append(dataStarts, i+ordinateRangeDataOffset)
		}
		if strings.Contains(line, MarkerRegion) {
			regionStarts = append(regionStarts, i)
		}
	}

	g := &Group{Name: name}
	if len(dataStarts) == 0 {
		return g
	}

	type span struct {
		settings Settings
		data     []string
	}
	var spans []span

	if len(dataStarts) == 1 {
		start := min(dataStarts[0], len(section))
		spans = append(spans, span{
			settings: FilterMetaData(section[:start]),
			data:     section[start:],
		})
	} else {
		for i, start := range dataStarts {
			start = min(start, len(section))
			end := len(section)
			if i+1 < len(regionStarts) {
				end = max(regionStarts[i+1]-1, start)
			}
			var local Settings
			if i < len(regionStarts) {
				local = FilterMetaData(section[regionStarts[i]:start])
			} else {
				local = make(Settings)
			}
			spans = append(spans, span{settings: local, data: section[start:end]})
		}
	}

	for i, sp := range spans {
		g.Trials = append(g.Trials, &Trial{
			Name:     fmt.Sprintf("Trial %d", i+1),
			Settings: sp.settings,
			Records:  parseRecords(sp.data, separated),
		})
	}
	return g
}

// parseRecords runs the per-trial state machine over a trial's record
// stream. A "Curve:" line finalizes the pending record and opens the
// next one; "#" lines accumulate into the pending metadata block; lines
// with two numeric tokens append a sample row. Anything malformed is
// skipped.
func parseRecords(data []string, separated bool) []*Record {
	initial := RecordKey{Channel: -1}
	if separated {
		initial.Channel = 0
	}

	var (
		records   []*Record
		pending   = &Record{Key: initial}
		metaLines []string
		param     string
		labels    string
	)

	finalize := func() {
		if param != "" {
			metaLines = append(metaLines, param)
		}
		pending.Meta = FilterMetaData(metaLines)
		if l := columnLabels(metaLines); l != "" {
			labels = l
		}
		records = append(records, pending)
	}

	for _, line := range data {
		if line == "" {
			continue
		}
		if strings.Contains(line, MarkerParameter) {
			// Normalize so FilterMetaData splits the key from the
			// "name=value" payload. The parameter persists across
			// records until the instrument declares a new one.
			param = strings.ReplaceAll(line, ": ", ":   ")
			param = strings.TrimPrefix(param, "#")
		}
		if strings.Contains(line, MarkerCurve) {
			key, ok := parseRecordKey(line, separated)
			if !ok {
				continue
			}
			finalize()
			pending = &Record{Key: key}
			metaLines = nil
			continue
		}
		if strings.HasPrefix(line, "#") {
			metaLines = append(metaLines, line)
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(fields[0], 64)
		y, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pending.Samples = append(pending.Samples, [2]float64{x, y})
	}
	finalize()

	// All records in a trial share one column-label string; the last
	// derived value wins and is applied across the board.
	for _, r := range records {
		r.Meta[MarkerColumnLabels] = labels
	}
	return records
}

// columnLabels extracts the shared column-label value from a pending
// metadata block, preserving any single spaces inside the label names.
func columnLabels(metaLines []string) string {
	for i := len(metaLines) - 1; i >= 0; i-- {
		if idx := strings.Index(metaLines[i], MarkerColumnLabels); idx >= 0 {
			return strings.TrimSpace(metaLines[i][idx+len(MarkerColumnLabels):])
		}
	}
	return ""
}

// parseRecordKey parses a "Cycle: c, Curve: v[, Channel: ch]" marker
// line into a structured key. The key is parsed once here and carried
// as data; nothing downstream re-derives indices from label text.
func parseRecordKey(line string, separated bool) (RecordKey, bool) {
	key := RecordKey{Channel: -1}
	if separated {
		key.Channel = 0
	}
	seenCurve := false
	for _, part := range strings.Split(strings.TrimPrefix(line, "#"), ",") {
		name, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			continue
		}
		switch strings.TrimSpace(name) {
		case "Cycle":
			key.Cycle = n
		case "Curve":
			key.Curve = n
			seenCurve = true
		case "Channel":
			key.Channel = n
		}
	}
	return key, seenCurve
}
