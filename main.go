// Command spectra-report inspects momentum-microscope .xy exports: it
// lists groups and trials, prints the merged settings, reconstructs a
// trial into a labeled array, renders PNG/HTML previews and catalogs
// reconstructed scans in a local SQLite database.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/spectra.report/internal/config"
	"github.com/banshee-data/spectra.report/internal/loader"
	"github.com/banshee-data/spectra.report/internal/version"
)

var (
	file        = flag.String("file", "", "path to a .xy export")
	group       = flag.String("group", "", "group name (default: first group in file)")
	trial       = flag.String("trial", "", "trial name (default: Trial 1)")
	list        = flag.Bool("list", false, "list groups and trials, then exit")
	settings    = flag.Bool("settings", false, "print the global settings block, then exit")
	selSpec     = flag.String("sel", "", `integrate around coordinate points, e.g. "eV=17.5,ky=0"`)
	pngOut      = flag.String("png", "", "render a PNG heatmap preview to this path")
	htmlOut     = flag.String("html", "", "render an HTML heatmap preview to this path")
	catalogScan = flag.Bool("catalog", false, "record the reconstruction in the scan catalog")
	catalogPath = flag.String("db", "", "scan catalog database path")
	configPath  = flag.String("config", "", "optional JSON config file")
	showVersion = flag.Bool("version", false, "print version and exit")
	showScans   = flag.Int("scans", 0, "list the N most recent catalogued scans, then exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg := config.EmptyToolConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	if *catalogPath == "" {
		*catalogPath = cfg.GetCatalogPath()
	}

	if *showScans > 0 {
		if err := runListScans(*catalogPath, *showScans); err != nil {
			log.Fatalf("listing scans: %v", err)
		}
		return
	}

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: spectra-report -file scan.xy [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *group == "" {
		*group = cfg.GetGroup()
	}
	if *trial == "" && cfg.Trial != nil {
		*trial = cfg.GetTrial()
	}

	l := loader.New()

	switch {
	case *list:
		if err := runList(l, *file); err != nil {
			log.Fatalf("listing %s: %v", *file, err)
		}
	case *settings:
		if err := runSettings(l, *file); err != nil {
			log.Fatalf("reading settings of %s: %v", *file, err)
		}
	default:
		sel, err := parseSelections(*selSpec)
		if err != nil {
			log.Fatalf("parsing -sel: %v", err)
		}
		opts := reconstructOpts{
			sel:       sel,
			selWidths: cfg.SelWidths,
			png:       *pngOut,
			html:      *htmlOut,
			width:     cfg.GetPlotWidth(),
			height:    cfg.GetPlotHeight(),
			catalog:   *catalogScan,
			dbPath:    *catalogPath,
		}
		if err := runReconstruct(l, *file, *group, *trial, opts); err != nil {
			log.Fatalf("reconstructing %s: %v", *file, err)
		}
	}
}
