package ocr

import "image"

// PageSegMode selects Tesseract's page segmentation strategy.
// The values match Tesseract's --psm numbering.
type PageSegMode int

const (
	// PSMAuto lets Tesseract segment the page automatically (--psm 3).
	PSMAuto PageSegMode = 3

	// PSMSingleBlock treats the image as a single uniform block of text
	// (--psm 6). This is the right mode for a form-like invoice.
	PSMSingleBlock PageSegMode = 6
)

// Options configures a single recognition call.
type Options struct {
	// Language is the Tesseract language code (e.g. "eng"). The
	// corresponding language data must be installed. Empty means "eng".
	Language string

	// PageSegMode is the segmentation strategy. Zero means PSMSingleBlock.
	PageSegMode PageSegMode
}

func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = "eng"
	}
	if o.PageSegMode == 0 {
		o.PageSegMode = PSMSingleBlock
	}
	return o
}

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Region represents a recognized word with its location and OCR confidence.
type Region struct {
	// Text is the recognized word.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this word in the image.
	Bounds Bounds `json:"bounds"`
}

// Result contains the complete output of a recognition call.
type Result struct {
	// FullText is all recognized text with original spacing and newlines.
	// This is what the invoice parser consumes.
	FullText string `json:"full_text"`

	// Regions contains individual words with bounding boxes and confidence
	// scores. May be empty if word-level extraction fails; FullText is
	// still populated in that case.
	Regions []Region `json:"regions"`
}

// MeanConfidence averages the word confidences, or 0 when no words were
// recognized.
func (r *Result) MeanConfidence() float64 {
	if len(r.Regions) == 0 {
		return 0
	}
	var sum float64
	for _, reg := range r.Regions {
		sum += reg.Confidence
	}
	return sum / float64(len(r.Regions))
}

// Info describes the availability of the OCR backend.
type Info struct {
	Available      bool   `json:"available"`
	Version        string `json:"version,omitempty"`
	Error          string `json:"error,omitempty"`
	TessdataPrefix string `json:"tessdata_prefix,omitempty"`
}

// Engine recognizes text in images.
//
// Implementations must be safe for concurrent use; TesseractEngine achieves
// this by creating a fresh Tesseract client per call.
type Engine interface {
	// Recognize extracts text from an in-memory image.
	Recognize(img image.Image, opts Options) (*Result, error)

	// Info reports whether the backend is usable and its version.
	Info() Info
}
