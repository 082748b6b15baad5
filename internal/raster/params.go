package raster

import "math"

// Params controls how hard each page gets degraded on its way to JPEG.
// All fields are clamped by Normalize before the page loop starts and
// never mutated afterwards.
type Params struct {
	DPI           int
	Downscale     float64
	JPEGQuality   int
	BlurRadius    float64
	RotateDegrees float64
	NoiseFraction float64
	Grayscale     bool
}

const (
	minDPI     = 72
	maxDPI     = 600
	minScale   = 0.1
	maxScale   = 1.0
	minQuality = 1
	maxQuality = 95
	maxBlur    = 10.0
	maxRotate  = 10.0
	maxNoise   = 0.5
)

func DefaultParams() Params {
	return Params{
		DPI:         200,
		Downscale:   1.0,
		JPEGQuality: 70,
	}
}

// Normalize clamps every field into its valid range and returns the result.
func (p Params) Normalize() Params {
	p.DPI = clampInt(p.DPI, minDPI, maxDPI)
	p.Downscale = clamp(p.Downscale, minScale, maxScale)
	p.JPEGQuality = clampInt(p.JPEGQuality, minQuality, maxQuality)
	p.BlurRadius = clamp(p.BlurRadius, 0, maxBlur)
	p.RotateDegrees = clamp(p.RotateDegrees, -maxRotate, maxRotate)
	p.NoiseFraction = clamp(p.NoiseFraction, 0, maxNoise)
	return p
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
