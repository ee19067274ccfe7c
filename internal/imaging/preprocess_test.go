package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRect paints a solid rectangle onto img.
func fillRect(img *image.NRGBA, x1, y1, x2, y2 int, c color.Color) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.Set(x, y, c)
		}
	}
}

func newBimodalImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillRect(img, 0, 0, w, h, color.NRGBA{R: 230, G: 230, B: 230, A: 255})
	// Dark "text" band in the middle.
	fillRect(img, 0, h/3, w, 2*h/3, color.NRGBA{R: 25, G: 25, B: 25, A: 255})
	return img
}

func TestGrayscale_RemovesColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	fillRect(img, 0, 0, 10, 10, color.NRGBA{R: 200, G: 40, B: 90, A: 255})

	gray := Grayscale(img)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := gray.NRGBAAt(x, y)
			if c.R != c.G || c.G != c.B {
				t.Fatalf("pixel (%d,%d) not gray: %+v", x, y, c)
			}
		}
	}
}

func TestThreshold_ProducesBlackAndWhiteOnly(t *testing.T) {
	img := newBimodalImage(40, 30)

	bw := Threshold(img, 128)

	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			v := bw.GrayAt(x, y).Y
			if v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want 0 or 255", x, y, v)
			}
		}
	}

	// Dark band must come out black, background white.
	assert.EqualValues(t, 255, bw.GrayAt(5, 2).Y)
	assert.EqualValues(t, 0, bw.GrayAt(5, 15).Y)
}

func TestOtsuLevel_BimodalImage(t *testing.T) {
	img := newBimodalImage(64, 48)

	level := OtsuLevel(img)

	// The cutoff must land between the two modes (25 and 230).
	if level <= 25 || level >= 230 {
		t.Errorf("OtsuLevel = %d, want a value between the modes 25 and 230", level)
	}
}

func TestOtsuLevel_UniformImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	fillRect(img, 0, 0, 16, 16, color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	// A single-mode histogram has no between-class split; expect the
	// midpoint fallback.
	assert.EqualValues(t, 128, OtsuLevel(img))
}

func TestPreprocess_Default(t *testing.T) {
	img := newBimodalImage(20, 20)

	out := Preprocess(img, Options{})

	// Default pipeline is grayscale only.
	nrgba, ok := out.(*image.NRGBA)
	require.True(t, ok, "expected *image.NRGBA from grayscale pipeline, got %T", out)
	c := nrgba.NRGBAAt(3, 3)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
}

func TestPreprocess_Binarize(t *testing.T) {
	img := newBimodalImage(20, 20)

	out := Preprocess(img, Options{Binarize: true})

	gray, ok := out.(*image.Gray)
	require.True(t, ok, "expected *image.Gray from binarize pipeline, got %T", out)
	assert.EqualValues(t, 0, gray.GrayAt(3, 10).Y)
	assert.EqualValues(t, 255, gray.GrayAt(3, 1).Y)
}

func TestPreprocess_BinarizeExplicitLevel(t *testing.T) {
	img := newBimodalImage(20, 20)

	out := Preprocess(img, Options{Binarize: true, ThresholdLevel: 250})

	// With the cutoff above both modes, everything thresholds to black.
	gray, ok := out.(*image.Gray)
	require.True(t, ok)
	assert.EqualValues(t, 0, gray.GrayAt(3, 1).Y)
}

func TestAnalyze_LightnessBounds(t *testing.T) {
	white := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fillRect(white, 0, 0, 8, 8, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	black := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fillRect(black, 0, 0, 8, 8, color.NRGBA{R: 0, G: 0, B: 0, A: 255})

	ws := Analyze(white)
	bs := Analyze(black)

	assert.InDelta(t, 1.0, ws.MeanLightness, 0.02)
	assert.InDelta(t, 0.0, bs.MeanLightness, 0.02)
	assert.Equal(t, 64, ws.SampledPixels)

	if bs.MeanLightness >= ws.MeanLightness {
		t.Errorf("black image lightness (%f) should be below white (%f)",
			bs.MeanLightness, ws.MeanLightness)
	}
}

func TestAnalyze_EmptyImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	s := Analyze(img)
	assert.Zero(t, s.MeanLightness)
	assert.Zero(t, s.SampledPixels)
}
