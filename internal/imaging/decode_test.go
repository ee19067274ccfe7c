package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeBytes_PNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 12, 7))
	fillRect(img, 0, 0, 12, 7, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	decoded, format, err := DecodeBytes(encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 12, decoded.Bounds().Dx())
	assert.Equal(t, 7, decoded.Bounds().Dy())
}

func TestDecodeBytes_JPEG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	fillRect(img, 0, 0, 20, 20, color.NRGBA{R: 200, G: 200, B: 200, A: 255})

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	decoded, format, err := DecodeBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 20, decoded.Bounds().Dx())
}

func TestDecodeBytes_NotAnImage(t *testing.T) {
	_, _, err := DecodeBytes([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestDecodeBytes_Empty(t *testing.T) {
	_, _, err := DecodeBytes(nil)
	assert.Error(t, err)
}

func TestDecode_TruncatedStream(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	data := encodePNG(t, img)

	// Keep the header so format sniffing succeeds, then cut the stream.
	_, _, err := Decode(bytes.NewReader(data[:len(data)/2]))
	assert.Error(t, err)
}
