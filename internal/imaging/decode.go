package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
)

// Decode reads and decodes an image from r.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the image
//     format and color model (e.g., *image.NRGBA, *image.YCbCr).
//   - string: The detected format name ("png", "jpeg", "gif").
//   - error: Non-nil if the stream is not a valid PNG, JPEG, or GIF image,
//     or if the decoded image has no pixels.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, "", fmt.Errorf("image has zero dimensions (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	return img, format, nil
}

// DecodeBytes decodes an image from an in-memory byte slice.
//
// This is the entry point for multipart uploads, where the whole file has
// already been read into memory.
func DecodeBytes(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image data")
	}
	return Decode(bytes.NewReader(data))
}
