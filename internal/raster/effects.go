package raster

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/disintegration/imaging"
)

const noiseSeedBase = 1337

// degrade runs the optional post-processing stages over one rendered page,
// in fixed order: downscale, rotate, blur, grayscale, noise. Every stage is
// total over the current bitmap; disabled stages are skipped entirely.
func degrade(img *image.NRGBA, p Params, pageIndex int) *image.NRGBA {
	if p.Downscale < 1.0 {
		w := max(1, int(math.Round(float64(img.Bounds().Dx())*p.Downscale)))
		h := max(1, int(math.Round(float64(img.Bounds().Dy())*p.Downscale)))
		img = imaging.Resize(img, w, h, imaging.Linear)
	}

	if p.RotateDegrees != 0 {
		// Expanding rotate on a white background, so content stays in frame.
		img = imaging.Rotate(img, p.RotateDegrees, color.White)
	}

	if p.BlurRadius > 0 {
		img = imaging.Blur(img, p.BlurRadius)
	}

	if p.Grayscale {
		img = imaging.Grayscale(img)
	}

	if p.NoiseFraction > 0 {
		addNoise(img, p.NoiseFraction, noiseSeedBase+pageIndex)
	}

	return img
}

// addNoise jitters every channel of every pixel in place by a uniform integer
// from [-amp, amp], amp = floor(255*fraction). The generator is local and
// seeded per page, so identical inputs and parameters reproduce identical
// pixels across runs.
func addNoise(img *image.NRGBA, fraction float64, seed int) {
	amp := int(255 * fraction)
	if amp == 0 {
		return
	}

	rnd := rand.New(rand.NewSource(int64(seed)))
	span := 2*amp + 1
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := int(pix[i+c]) + rnd.Intn(span) - amp
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			pix[i+c] = uint8(v)
		}
	}
}
