package main

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/banshee-data/spectra.report/internal/catalog"
	"github.com/banshee-data/spectra.report/internal/loader"
	"github.com/banshee-data/spectra.report/internal/preview"
	"github.com/banshee-data/spectra.report/internal/spectrum"
)

// runList prints the group/trial hierarchy of one export.
func runList(l *loader.Loader, path string) error {
	f, err := l.Parse(path)
	if err != nil {
		return err
	}
	for _, g := range f.Groups {
		fmt.Printf("%s\n", g.Name)
		for _, t := range g.Trials {
			fmt.Printf("  %s (%d records)\n", t.Name, len(t.Records))
		}
	}
	return nil
}

// runSettings prints the global settings block, sorted by key.
func runSettings(l *loader.Loader, path string) error {
	f, err := l.Parse(path)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(f.Settings))
	for k := range f.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-40s %s\n", k, f.Settings[k])
	}
	return nil
}

type reconstructOpts struct {
	sel           map[string]float64
	selWidths     map[string]float64
	png, html     string
	width, height int
	catalog       bool
	dbPath        string
}

// parseSelections parses a -sel flag value of the form
// "axis=value,axis=value" into a selection map. An empty spec yields
// a nil map.
func parseSelections(spec string) (map[string]float64, error) {
	if spec == "" {
		return nil, nil
	}
	sel := make(map[string]float64)
	for _, part := range strings.Split(spec, ",") {
		axis, raw, ok := strings.Cut(part, "=")
		axis = strings.TrimSpace(axis)
		if !ok || axis == "" {
			return nil, fmt.Errorf("malformed selection %q, want axis=value", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("selection %q: %w", part, err)
		}
		sel[axis] = v
	}
	return sel, nil
}

// runReconstruct loads and reconstructs one trial, prints an array
// summary and runs the requested side outputs.
func runReconstruct(l *loader.Loader, path, group, trial string, opts reconstructOpts) error {
	ds, err := l.Load(path, group, trial)
	if err != nil {
		return err
	}
	arr := ds.Spectrum

	if len(opts.sel) > 0 {
		arr, err = arr.FatSel(opts.sel, opts.selWidths)
		if err != nil {
			return err
		}
		axes := make([]string, 0, len(opts.sel))
		for a := range opts.sel {
			axes = append(axes, a)
		}
		sort.Strings(axes)
		for _, a := range axes {
			fmt.Printf("selected %s = %g\n", a, arr.Scalars[a])
		}
	}

	fmt.Printf("%s: %d dims\n", arr.Name, arr.NDim())
	for i, d := range arr.Dims {
		coords := arr.Coords[d]
		if len(coords) > 0 {
			fmt.Printf("  %-12s %4d points  [%g .. %g]\n", d, arr.Shape[i], coords[0], coords[len(coords)-1])
		} else {
			fmt.Printf("  %-12s %4d points\n", d, arr.Shape[i])
		}
	}

	if opts.png != "" {
		if err := preview.SavePNG(arr, opts.png, opts.width, opts.height); err != nil {
			return err
		}
		log.Printf("wrote %s", opts.png)
	}
	if opts.html != "" {
		if err := preview.SaveHTML(arr, opts.html, opts.width, opts.height); err != nil {
			return err
		}
		log.Printf("wrote %s", opts.html)
	}

	if opts.catalog {
		id, err := recordScan(opts.dbPath, path, group, trial, ds)
		if err != nil {
			return err
		}
		log.Printf("catalogued scan %s in %s", id, opts.dbPath)
	}
	return nil
}

func recordScan(dbPath, path, group, trial string, ds *spectrum.Dataset) (string, error) {
	db, err := catalog.NewDB(dbPath)
	if err != nil {
		return "", err
	}
	defer db.Close()
	return db.RecordScan(path, group, trial, ds)
}

// runListScans prints the most recent catalogued scans.
func runListScans(dbPath string, limit int) error {
	db, err := catalog.NewDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	scans, err := db.ListScans(limit)
	if err != nil {
		return err
	}
	for _, s := range scans {
		fmt.Printf("%s  %-30s %-12s %-10s %-16s %s\n",
			s.ScanID, s.Path, s.GroupName, s.TrialName, s.Dims, s.Shape)
	}
	return nil
}
