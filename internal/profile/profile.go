// Package profile loads degradation presets from YAML files, so common
// OCR stress scenarios (e.g. "bad office scanner") can be kept in version
// control instead of long flag lists.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thywilljoshua/pdf-to-raster/internal/raster"
)

// Profile is a partial set of rasterization parameters. Absent fields leave
// whatever value the caller already has.
type Profile struct {
	DPI         *int     `yaml:"dpi"`
	Downscale   *float64 `yaml:"downscale"`
	JPEGQuality *int     `yaml:"jpeg_quality"`
	Blur        *float64 `yaml:"blur"`
	Rotate      *float64 `yaml:"rotate"`
	Noise       *float64 `yaml:"noise"`
	Grayscale   *bool    `yaml:"grayscale"`
}

func Load(path string) (Profile, error) {
	var p Profile
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read profile: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}

// Apply overlays the profile onto params. Flags the user set explicitly
// (keyed by flag name) take precedence and are left untouched.
func (p Profile) Apply(params *raster.Params, explicit map[string]bool) {
	if p.DPI != nil && !explicit["dpi"] {
		params.DPI = *p.DPI
	}
	if p.Downscale != nil && !explicit["downscale"] {
		params.Downscale = *p.Downscale
	}
	if p.JPEGQuality != nil && !explicit["jpeg-quality"] {
		params.JPEGQuality = *p.JPEGQuality
	}
	if p.Blur != nil && !explicit["blur"] {
		params.BlurRadius = *p.Blur
	}
	if p.Rotate != nil && !explicit["rotate"] {
		params.RotateDegrees = *p.Rotate
	}
	if p.Noise != nil && !explicit["noise"] {
		params.NoiseFraction = *p.Noise
	}
	if p.Grayscale != nil && !explicit["grayscale"] {
		params.Grayscale = *p.Grayscale
	}
}
