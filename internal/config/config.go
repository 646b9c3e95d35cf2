// Package config loads tool configuration for the .xy workflow.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ToolConfig represents optional defaults for the command-line tool.
// All fields are pointers so a partial JSON file only overrides what it
// names; the Get* methods supply fallback defaults.
type ToolConfig struct {
	// Selection defaults
	Group *string `json:"group,omitempty"`
	Trial *string `json:"trial,omitempty"`

	// Catalog database path
	CatalogPath *string `json:"catalog_path,omitempty"`

	// Rendered preview size in pixels
	PlotWidth  *int `json:"plot_width,omitempty"`
	PlotHeight *int `json:"plot_height,omitempty"`

	// Per-axis FatSel width overrides, in the axis's own units
	SelWidths map[string]float64 `json:"sel_widths,omitempty"`
}

// EmptyToolConfig returns a ToolConfig with all fields unset.
func EmptyToolConfig() *ToolConfig {
	return &ToolConfig{}
}

// Load loads a ToolConfig from a JSON file. The file must have a .json
// extension and stay under the size cap. Omitted fields keep their
// defaults, so partial configs are safe.
func Load(path string) (*ToolConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyToolConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *ToolConfig) Validate() error {
	if c.PlotWidth != nil && *c.PlotWidth <= 0 {
		return fmt.Errorf("plot_width must be positive, got %d", *c.PlotWidth)
	}
	if c.PlotHeight != nil && *c.PlotHeight <= 0 {
		return fmt.Errorf("plot_height must be positive, got %d", *c.PlotHeight)
	}
	for axis, w := range c.SelWidths {
		if w <= 0 {
			return fmt.Errorf("sel_widths[%s] must be positive, got %f", axis, w)
		}
	}
	return nil
}

// GetGroup returns the default group name, empty for first-in-file.
func (c *ToolConfig) GetGroup() string {
	if c.Group == nil {
		return ""
	}
	return *c.Group
}

// GetTrial returns the default trial name.
func (c *ToolConfig) GetTrial() string {
	if c.Trial == nil {
		return "Trial 1"
	}
	return *c.Trial
}

// GetCatalogPath returns the catalog database path.
func (c *ToolConfig) GetCatalogPath() string {
	if c.CatalogPath == nil {
		return "scan_catalog.db"
	}
	return *c.CatalogPath
}

// GetPlotWidth returns the preview width in pixels.
func (c *ToolConfig) GetPlotWidth() int {
	if c.PlotWidth == nil {
		return 900
	}
	return *c.PlotWidth
}

// GetPlotHeight returns the preview height in pixels.
func (c *ToolConfig) GetPlotHeight() int {
	if c.PlotHeight == nil {
		return 600
	}
	return *c.PlotHeight
}
