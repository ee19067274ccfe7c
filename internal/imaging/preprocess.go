package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Options controls the pre-processing applied before OCR.
type Options struct {
	// Binarize enables global thresholding after the grayscale conversion.
	// Off by default: faint strokes on thermal-printer invoices are easily
	// lost to a hard cutoff.
	Binarize bool

	// ThresholdLevel is the gray cutoff (0-255) used when Binarize is set.
	// Zero means compute a level from the image histogram with OtsuLevel.
	ThresholdLevel uint8
}

// Grayscale converts an image to grayscale.
//
// Color invoices carry no information Tesseract uses, and the engine's own
// internal binarization behaves better on a clean luminance channel.
func Grayscale(img image.Image) *image.NRGBA {
	return imaging.Grayscale(img)
}

// Threshold binarizes an image with a global gray-level cutoff.
//
// Pixels at or above level become white, the rest black. The input should
// already be grayscale; for color input the per-pixel luminance is used.
func Threshold(img image.Image, level uint8) *image.Gray {
	return segment.Threshold(img, level)
}

// Preprocess runs the OCR preparation pipeline: grayscale conversion,
// then optional binarization per opts.
func Preprocess(img image.Image, opts Options) image.Image {
	gray := Grayscale(img)

	if !opts.Binarize {
		return gray
	}

	level := opts.ThresholdLevel
	if level == 0 {
		level = OtsuLevel(gray)
	}
	return Threshold(gray, level)
}

// OtsuLevel computes a global threshold level from the gray-level histogram
// using Otsu's method (maximizing between-class variance).
//
// The returned level separates the two dominant modes of a bimodal
// histogram, which is the usual shape for dark text on light paper.
// For a degenerate single-mode histogram the midpoint 128 is returned.
func OtsuLevel(img image.Image) uint8 {
	bounds := img.Bounds()
	var hist [256]int
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Rec. 601 luma, same weights Grayscale uses.
			luma := (299*int(r>>8) + 587*int(g>>8) + 114*int(b>>8)) / 1000
			hist[luma]++
			total++
		}
	}

	if total == 0 {
		return 128
	}

	sum := 0
	for i, c := range hist {
		sum += i * c
	}

	var (
		sumBack    int
		weightBack int
		maxVar     float64
		level      = -1
	)
	for t := 0; t < 256; t++ {
		weightBack += hist[t]
		if weightBack == 0 {
			continue
		}
		weightFore := total - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += t * hist[t]

		meanBack := float64(sumBack) / float64(weightBack)
		meanFore := float64(sum-sumBack) / float64(weightFore)
		diff := meanBack - meanFore
		between := float64(weightBack) * float64(weightFore) * diff * diff
		if between > maxVar {
			maxVar = between
			level = t
		}
	}

	if level < 0 {
		return 128
	}
	return uint8(level)
}

// Stats describes the overall tonality of an image.
type Stats struct {
	// MeanLightness is the average perceptual lightness (CIE L*, 0.0 to 1.0).
	MeanLightness float64 `json:"mean_lightness"`

	// SampledPixels is how many pixels contributed to the average.
	SampledPixels int `json:"sampled_pixels"`
}

// maxStatSamples bounds the per-axis sampling grid so Analyze stays cheap
// on multi-megapixel scans.
const maxStatSamples = 256

// Analyze samples the image on a grid and reports its mean perceptual
// lightness. Very dark uploads (photos instead of scans) produce poor OCR,
// and the handler surfaces this value so callers can tell why.
func Analyze(img image.Image) Stats {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return Stats{}
	}

	stepX := w / maxStatSamples
	if stepX < 1 {
		stepX = 1
	}
	stepY := h / maxStatSamples
	if stepY < 1 {
		stepY = 1
	}

	var sum float64
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue // fully transparent pixel
			}
			l, _, _ := c.Lab()
			sum += l
			n++
		}
	}

	if n == 0 {
		return Stats{}
	}
	return Stats{
		MeanLightness: sum / float64(n),
		SampledPixels: n,
	}
}
