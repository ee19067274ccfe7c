package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine is the production Engine backed by the system Tesseract
// installation through gosseract.
//
// Each Recognize call builds and closes its own gosseract client: the
// underlying Tesseract API handle is not safe to share across goroutines,
// and client construction is cheap next to recognition itself.
type TesseractEngine struct {
	// TessdataPrefix is forwarded to Tesseract as the language data
	// directory. Empty means the engine's compiled-in default.
	TessdataPrefix string
}

// NewTesseractEngine creates an engine honoring the TESSDATA_PREFIX
// environment variable when set.
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{
		TessdataPrefix: os.Getenv("TESSDATA_PREFIX"),
	}
}

// Recognize performs OCR on an in-memory image.
//
// The image is handed to Tesseract as encoded PNG bytes, so no temporary
// file is involved. Word-level bounding boxes are extracted with
// Tesseract's RIL_WORD iterator; if that fails the full text is still
// returned with an empty Regions slice.
func (e *TesseractEngine) Recognize(img image.Image, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if e.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(opts.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(opts.PageSegMode)); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Return just text if boxes fail.
		return &Result{
			FullText: text,
			Regions:  []Region{},
		}, nil
	}

	regions := make([]Region, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, Region{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &Result{
		FullText: text,
		Regions:  regions,
	}, nil
}

// Info probes the Tesseract installation.
func (e *TesseractEngine) Info() Info {
	version, err := e.version()
	if err != nil {
		return Info{
			Available:      false,
			Error:          err.Error(),
			TessdataPrefix: e.TessdataPrefix,
		}
	}
	return Info{
		Available:      true,
		Version:        version,
		TessdataPrefix: e.TessdataPrefix,
	}
}

func (e *TesseractEngine) version() (version string, err error) {
	// gosseract panics rather than erroring when the native library is
	// unusable; turn that into an error for the health probe.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tesseract unavailable: %v", r)
		}
	}()

	client := gosseract.NewClient()
	defer client.Close()
	return client.Version(), nil
}
